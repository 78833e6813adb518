package common

// Environment variable keys
const (
	EnvConfigFile        = "CONFIG_FILE"
	EnvArtifactDir       = "ARTIFACT_DIR"
	EnvModelPath         = "MODEL_PATH"
	EnvScalerPath        = "SCALER_PATH"
	EnvColumnsPath       = "COLUMNS_PATH"
	EnvBundlePath        = "BUNDLE_PATH"
	EnvDatasetPath       = "DATASET_PATH"
	EnvPreviewRows       = "PREVIEW_ROWS"
	EnvOccupationPrefix  = "OCCUPATION_PREFIX"
	EnvDropColumns       = "DROP_COLUMNS"
	EnvUnknownOccupation = "UNKNOWN_OCCUPATION"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvMetricsFile       = "METRICS_FILE"
)

// Artifact file names inside the artifact directory
const (
	ModelFile   = "model.json"
	ScalerFile  = "scaler.json"
	ColumnsFile = "feature_columns.json"
)

// Configuration defaults
const (
	DefaultArtifactDir       = "artifacts"
	DefaultDatasetPath       = "loan.csv"
	DefaultPreviewRows       = 30
	DefaultOccupationPrefix  = "occupation_"
	DefaultDropColumns       = "credit_score"
	DefaultUnknownOccupation = OccupationPolicyAllow
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
)

// Occupation policies for labels outside the schema's occupation columns
const (
	OccupationPolicyAllow  = "allow"
	OccupationPolicyReject = "reject"
)

// Default feature column names of the scalar form fields
const (
	ColumnAge       = "age"
	ColumnGender    = "gender"
	ColumnEducation = "education_level"
	ColumnMarital   = "marital_status"
	ColumnIncome    = "income"
)

// Verdict messages shown on the form
const (
	MsgApproved           = "Loan Approved"
	MsgDenied             = "Loan Denied"
	MsgInvalidNumeric     = "Invalid numeric inputs! Check your inputs."
	MsgInvalidCategorical = "Invalid categorical inputs! Check your inputs."
	MsgErrorPrefix        = "Error: "
)

// Validation constants
const (
	MinPreviewRows = 1
	MaxPreviewRows = 1000
)
