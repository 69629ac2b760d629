package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "authorlang/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DatasetConfig locates the per-year paper tables and the pipeline output
// directory. The format of each input file follows from its extension:
// .csv is read row-oriented, .parquet columnar.
type DatasetConfig struct {
	// DataDir is the directory holding the per-year paper tables.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OutputDir is where every stage writes its artifacts.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Years lists the years to process, in order.
	Years []int `json:"years" yaml:"years"`

	// Files maps a year to its table filename inside DataDir. Years
	// missing from the map use the default naming scheme.
	Files map[int]string `json:"files,omitempty" yaml:"files,omitempty"`
}

// FetchConfig holds settings for the profile fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// RequestDelay is the pause between consecutive profile lookups
	// (default 50ms). The profile service is rate limited.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// SaveInterval is the number of fetched profiles per checkpoint
	// commit (default 10).
	SaveInterval int `json:"save_interval" yaml:"save_interval"`

	// MaxRetries bounds retries on transient service errors (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Token is an optional bearer token for the profile service.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// LabelConfig holds settings for the labeling stage. Both reference files
// are mandatory; the stage aborts when either is missing.
type LabelConfig struct {
	// UniversitiesFile is the university directory JSON
	// (institution name and domains to country code).
	UniversitiesFile string `json:"universities_file" yaml:"universities_file"`

	// TOEFLFile is the TOEFL requirement CSV (country name to requirement).
	TOEFLFile string `json:"toefl_file" yaml:"toefl_file"`
}

// TokenizeConfig holds settings for the tokenization stage.
type TokenizeConfig struct {
	// MinAbstractLen is the minimum abstract length in bytes (default 50).
	MinAbstractLen int `json:"min_abstract_len" yaml:"min_abstract_len"`

	// MinSentenceTokens drops sentences with this many tokens or fewer
	// (default 5).
	MinSentenceTokens int `json:"min_sentence_tokens" yaml:"min_sentence_tokens"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Dataset  DatasetConfig  `json:"dataset" yaml:"dataset"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Label    LabelConfig    `json:"label" yaml:"label"`
	Tokenize TokenizeConfig `json:"tokenize" yaml:"tokenize"`
}
