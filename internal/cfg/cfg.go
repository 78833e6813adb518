package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"loan-approval/internal/common"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	ArtifactDir       string
	ModelPath         string
	ScalerPath        string
	ColumnsPath       string
	BundlePath        string
	DatasetPath       string
	PreviewRows       int
	OccupationPrefix  string
	DropColumns       []string
	UnknownOccupation string
	LogLevel          string
	LogFormat         string
	MetricsFile       string
	Encoding          EncodingConfig
	Columns           ColumnConfig
}

// EncodingConfig maps form labels to the integer codes the model was trained with.
type EncodingConfig struct {
	Gender    map[string]int `yaml:"gender"`
	Education map[string]int `yaml:"education"`
	Marital   map[string]int `yaml:"marital"`
}

// ColumnConfig names the schema column of each scalar form field.
type ColumnConfig struct {
	Age       string `yaml:"age"`
	Gender    string `yaml:"gender"`
	Education string `yaml:"education"`
	Marital   string `yaml:"marital"`
	Income    string `yaml:"income"`
}

type ConfigFile struct {
	Artifacts struct {
		Dir         string `yaml:"dir"`
		ModelPath   string `yaml:"modelPath"`
		ScalerPath  string `yaml:"scalerPath"`
		ColumnsPath string `yaml:"columnsPath"`
		BundlePath  string `yaml:"bundlePath"`
	} `yaml:"artifacts"`

	Schema struct {
		OccupationPrefix  string   `yaml:"occupationPrefix"`
		DropColumns       []string `yaml:"dropColumns"`
		UnknownOccupation string   `yaml:"unknownOccupation"`
	} `yaml:"schema"`

	Columns  ColumnConfig   `yaml:"columns"`
	Encoding EncodingConfig `yaml:"encoding"`

	Preview struct {
		DatasetPath string `yaml:"datasetPath"`
		Rows        int    `yaml:"rows"`
	} `yaml:"preview"`

	System struct {
		LogLevel    string `yaml:"logLevel"`
		LogFormat   string `yaml:"logFormat"`
		MetricsFile string `yaml:"metricsFile"`
	} `yaml:"system"`
}

// DefaultEncoding returns the category codes used when the model was trained.
func DefaultEncoding() EncodingConfig {
	return EncodingConfig{
		Gender:    map[string]int{"Female": 0, "Male": 1},
		Education: map[string]int{"Bachelor": 0, "Master": 1, "High School": 2, "Associate": 3, "Doctoral": 4},
		Marital:   map[string]int{"Single": 0, "Married": 1},
	}
}

// DefaultColumns returns the column names of the scalar fields in the training data.
func DefaultColumns() ColumnConfig {
	return ColumnConfig{
		Age:       common.ColumnAge,
		Gender:    common.ColumnGender,
		Education: common.ColumnEducation,
		Marital:   common.ColumnMarital,
		Income:    common.ColumnIncome,
	}
}

func Load() (Settings, error) {
	// A missing .env is fine; variables already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	if configPath := os.Getenv(common.EnvConfigFile); configPath != "" {
		return loadFromYAML(configPath)
	}

	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	dir := getEnvOrDefault(common.EnvArtifactDir, orDefault(config.Artifacts.Dir, common.DefaultArtifactDir))

	settings := Settings{
		ArtifactDir:       dir,
		ModelPath:         getEnvOrDefault(common.EnvModelPath, config.Artifacts.ModelPath),
		ScalerPath:        getEnvOrDefault(common.EnvScalerPath, config.Artifacts.ScalerPath),
		ColumnsPath:       getEnvOrDefault(common.EnvColumnsPath, config.Artifacts.ColumnsPath),
		BundlePath:        getEnvOrDefault(common.EnvBundlePath, config.Artifacts.BundlePath),
		DatasetPath:       getEnvOrDefault(common.EnvDatasetPath, orDefault(config.Preview.DatasetPath, common.DefaultDatasetPath)),
		PreviewRows:       getIntFromEnvOrConfig(common.EnvPreviewRows, config.Preview.Rows, common.DefaultPreviewRows),
		OccupationPrefix:  getEnvOrDefault(common.EnvOccupationPrefix, orDefault(config.Schema.OccupationPrefix, common.DefaultOccupationPrefix)),
		DropColumns:       getListFromEnvOrConfig(common.EnvDropColumns, config.Schema.DropColumns, common.DefaultDropColumns),
		UnknownOccupation: getEnvOrDefault(common.EnvUnknownOccupation, orDefault(config.Schema.UnknownOccupation, common.DefaultUnknownOccupation)),
		LogLevel:          getEnvOrDefault(common.EnvLogLevel, orDefault(config.System.LogLevel, common.DefaultLogLevel)),
		LogFormat:         getEnvOrDefault(common.EnvLogFormat, orDefault(config.System.LogFormat, common.DefaultLogFormat)),
		MetricsFile:       getEnvOrDefault(common.EnvMetricsFile, config.System.MetricsFile),
		Encoding:          mergeEncoding(config.Encoding),
		Columns:           mergeColumns(config.Columns),
	}
	settings.fillArtifactPaths()

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	settings := Settings{
		ArtifactDir:       getEnvOrDefault(common.EnvArtifactDir, common.DefaultArtifactDir),
		ModelPath:         os.Getenv(common.EnvModelPath),
		ScalerPath:        os.Getenv(common.EnvScalerPath),
		ColumnsPath:       os.Getenv(common.EnvColumnsPath),
		BundlePath:        os.Getenv(common.EnvBundlePath), // optional
		DatasetPath:       getEnvOrDefault(common.EnvDatasetPath, common.DefaultDatasetPath),
		PreviewRows:       getIntOrDefault(common.EnvPreviewRows, common.DefaultPreviewRows),
		OccupationPrefix:  getEnvOrDefault(common.EnvOccupationPrefix, common.DefaultOccupationPrefix),
		DropColumns:       splitOrDefault(os.Getenv(common.EnvDropColumns), []string{common.DefaultDropColumns}),
		UnknownOccupation: getEnvOrDefault(common.EnvUnknownOccupation, common.DefaultUnknownOccupation),
		LogLevel:          getEnvOrDefault(common.EnvLogLevel, common.DefaultLogLevel),
		LogFormat:         getEnvOrDefault(common.EnvLogFormat, common.DefaultLogFormat),
		MetricsFile:       os.Getenv(common.EnvMetricsFile), // optional
		Encoding:          DefaultEncoding(),
		Columns:           DefaultColumns(),
	}
	settings.fillArtifactPaths()

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

// fillArtifactPaths points unset artifact paths at the artifact directory.
func (s *Settings) fillArtifactPaths() {
	if s.ModelPath == "" {
		s.ModelPath = filepath.Join(s.ArtifactDir, common.ModelFile)
	}
	if s.ScalerPath == "" {
		s.ScalerPath = filepath.Join(s.ArtifactDir, common.ScalerFile)
	}
	if s.ColumnsPath == "" {
		s.ColumnsPath = filepath.Join(s.ArtifactDir, common.ColumnsFile)
	}
}

// RejectUnknownOccupation reports whether occupations outside the schema are refused.
func (s *Settings) RejectUnknownOccupation() bool {
	return s.UnknownOccupation == common.OccupationPolicyReject
}

func mergeEncoding(c EncodingConfig) EncodingConfig {
	def := DefaultEncoding()
	if len(c.Gender) > 0 {
		def.Gender = c.Gender
	}
	if len(c.Education) > 0 {
		def.Education = c.Education
	}
	if len(c.Marital) > 0 {
		def.Marital = c.Marital
	}
	return def
}

func mergeColumns(c ColumnConfig) ColumnConfig {
	def := DefaultColumns()
	return ColumnConfig{
		Age:       orDefault(c.Age, def.Age),
		Gender:    orDefault(c.Gender, def.Gender),
		Education: orDefault(c.Education, def.Education),
		Marital:   orDefault(c.Marital, def.Marital),
		Income:    orDefault(c.Income, def.Income),
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func splitOrDefault(v string, def []string) []string {
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getIntFromEnvOrConfig(key string, configValue, defaultValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

func getListFromEnvOrConfig(key string, configValue []string, defaultValue string) []string {
	if env := os.Getenv(key); env != "" {
		return splitOrDefault(env, nil)
	}
	if configValue != nil {
		return configValue
	}
	return []string{defaultValue}
}

// validateSettings performs comprehensive validation of configuration values
func validateSettings(settings *Settings) error {
	if settings.BundlePath == "" {
		if settings.ModelPath == "" || settings.ScalerPath == "" || settings.ColumnsPath == "" {
			return fmt.Errorf("model, scaler and columns paths are required when no bundle is configured")
		}
	}

	if settings.PreviewRows < common.MinPreviewRows || settings.PreviewRows > common.MaxPreviewRows {
		return fmt.Errorf("preview rows must be between %d and %d, got %d",
			common.MinPreviewRows, common.MaxPreviewRows, settings.PreviewRows)
	}

	if settings.OccupationPrefix == "" {
		return fmt.Errorf("occupation prefix cannot be empty")
	}

	switch settings.UnknownOccupation {
	case common.OccupationPolicyAllow, common.OccupationPolicyReject:
	default:
		return fmt.Errorf("unknown occupation policy must be %q or %q, got %q",
			common.OccupationPolicyAllow, common.OccupationPolicyReject, settings.UnknownOccupation)
	}

	switch settings.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", settings.LogFormat)
	}

	cols := settings.Columns
	for name, col := range map[string]string{
		"age": cols.Age, "gender": cols.Gender, "education": cols.Education,
		"marital": cols.Marital, "income": cols.Income,
	} {
		if col == "" {
			return fmt.Errorf("column name for %s cannot be empty", name)
		}
		if strings.HasPrefix(col, settings.OccupationPrefix) {
			return fmt.Errorf("column %q for %s collides with occupation prefix %q", col, name, settings.OccupationPrefix)
		}
	}

	for field, codes := range map[string]map[string]int{
		"gender": settings.Encoding.Gender, "education": settings.Encoding.Education,
		"marital": settings.Encoding.Marital,
	} {
		if len(codes) == 0 {
			return fmt.Errorf("%s encoding cannot be empty", field)
		}
		for label, code := range codes {
			if code < 0 {
				return fmt.Errorf("%s encoding: code for %q must be non-negative, got %d", field, label, code)
			}
		}
	}

	return nil
}
