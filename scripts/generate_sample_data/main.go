// Command generate_sample_data writes a synthetic loan dataset and a matching
// set of model artifacts so the form can be exercised without a trained model.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"loan-approval/internal/cfg"
	"loan-approval/internal/common"
	"loan-approval/internal/features"
	"loan-approval/internal/ml"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var occupations = []string{"Engineer", "Teacher", "Doctor", "Nurse", "Lawyer", "Accountant", "Artist", "Chef"}

type applicant struct {
	form        features.Form
	creditScore int
	approved    bool
}

func main() {
	var (
		outDir    = flag.String("out", common.DefaultArtifactDir, "Artifact output directory")
		csvPath   = flag.String("csv", common.DefaultDatasetPath, "Dataset output path")
		rows      = flag.Int("rows", 500, "Number of applicants to generate")
		seed      = flag.Int64("seed", 42, "Random seed")
		threshold = flag.Float64("threshold", 55000, "Income above which loans are approved")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	fmt.Printf("Generating %d applicants...\n", *rows)
	fmt.Printf("  Dataset: %s\n", *csvPath)
	fmt.Printf("  Artifacts: %s\n", *outDir)

	rng := rand.New(rand.NewSource(*seed))
	applicants := make([]applicant, *rows)
	for i := range applicants {
		applicants[i] = randomApplicant(rng, *threshold)
	}

	if err := writeDataset(*csvPath, applicants); err != nil {
		log.Fatal().Err(err).Msg("Failed to write dataset")
	}
	if err := writeArtifacts(*outDir, applicants, *threshold); err != nil {
		log.Fatal().Err(err).Msg("Failed to write artifacts")
	}

	fmt.Println("Done.")
}

func randomApplicant(rng *rand.Rand, threshold float64) applicant {
	genders := features.Labels(features.Genders())
	education := features.Labels(features.EducationLevels())
	marital := features.Labels(features.MaritalStatuses())

	income := math.Round(20000 + rng.Float64()*100000)
	return applicant{
		form: features.Form{
			Age:        strconv.Itoa(21 + rng.Intn(45)),
			Gender:     genders[rng.Intn(len(genders))],
			Income:     strconv.FormatFloat(income, 'f', 0, 64),
			Education:  education[rng.Intn(len(education))],
			Marital:    marital[rng.Intn(len(marital))],
			Occupation: occupations[rng.Intn(len(occupations))],
		},
		creditScore: 550 + rng.Intn(300),
		approved:    income > threshold,
	}
}

func writeDataset(path string, applicants []applicant) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		common.ColumnAge, common.ColumnGender, "occupation", common.ColumnEducation,
		common.ColumnMarital, common.ColumnIncome, "credit_score", "loan_status",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, a := range applicants {
		status := "Denied"
		if a.approved {
			status = "Approved"
		}
		rec := []string{
			a.form.Age, a.form.Gender, a.form.Occupation, a.form.Education,
			a.form.Marital, a.form.Income, strconv.Itoa(a.creditScore), status,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// trainingColumns mirrors the layout of a one-hot encoded training frame,
// including the credit_score column the form never collects.
func trainingColumns() []string {
	cols := []string{common.ColumnAge, common.ColumnGender}
	for _, o := range occupations {
		cols = append(cols, common.DefaultOccupationPrefix+o)
	}
	return append(cols, common.ColumnEducation, common.ColumnMarital, common.ColumnIncome, "credit_score")
}

func writeArtifacts(dir string, applicants []applicant, threshold float64) error {
	columns := trainingColumns()
	schema, err := features.NewSchema(columns, common.DefaultOccupationPrefix, []string{"credit_score"})
	if err != nil {
		return err
	}
	enc := cfg.DefaultEncoding()
	encoding, err := features.NewEncoding(enc.Gender, enc.Education, enc.Marital)
	if err != nil {
		return err
	}
	def := cfg.DefaultColumns()
	builder, err := features.NewBuilder(schema, encoding, features.Columns{
		Age: def.Age, Gender: def.Gender, Education: def.Education, Marital: def.Marital, Income: def.Income,
	})
	if err != nil {
		return err
	}

	// Fit a standard scaler over the encoded applicants.
	n := schema.Len()
	sum := make([]float64, n)
	sumSq := make([]float64, n)
	for _, a := range applicants {
		vec, _, err := builder.Build(a.form)
		if err != nil {
			return fmt.Errorf("encode generated applicant: %w", err)
		}
		for i, v := range vec {
			sum[i] += v
			sumSq[i] += v * v
		}
	}
	count := float64(len(applicants))
	scaler := &ml.StandardScaler{Mean: make([]float64, n), Scale: make([]float64, n)}
	for i := range sum {
		mean := sum[i] / count
		scaler.Mean[i] = mean
		scaler.Scale[i] = math.Sqrt(math.Max(sumSq[i]/count-mean*mean, 0))
	}

	// The decision boundary sits exactly on the income threshold in scaled space.
	incomeIdx := -1
	for i, c := range schema.Columns() {
		if c == common.ColumnIncome {
			incomeIdx = i
		}
	}
	scale := scaler.Scale[incomeIdx]
	if scale == 0 {
		scale = 1
	}
	const steepness = 4.0
	model := &ml.LogisticRegression{
		Coef:      make([]float64, n),
		Intercept: -steepness * (threshold - scaler.Mean[incomeIdx]) / scale,
		Classes:   []int{0, 1},
	}
	model.Coef[incomeIdx] = steepness

	modelJSON, err := ml.EncodeArtifact(ml.KindLogisticRegression, model)
	if err != nil {
		return err
	}
	scalerJSON, err := ml.EncodeArtifact(ml.KindStandardScaler, scaler)
	if err != nil {
		return err
	}
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return err
	}
	if _, err := ml.DecodeColumns(columnsJSON); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	for name, data := range map[string][]byte{
		common.ModelFile:   modelJSON,
		common.ScalerFile:  scalerJSON,
		common.ColumnsFile: columnsJSON,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Info().Str("path", path).Msg("Wrote artifact")
	}
	return nil
}
