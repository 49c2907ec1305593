package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/spf13/viper"
)

// Defaults for pipeline settings.
const (
	DefaultWorkers      = 4
	DefaultBatchSize    = 5
	DefaultDatabasePath = "$HOME/.local/share/wof/wof.db"
)

// PipelineConfig controls how many documents are processed at once.
type PipelineConfig struct {
	Workers   int
	BatchSize int
}

// SourceConfig selects where scanned work orders are read from. Dir and
// Bucket are mutually exclusive.
type SourceConfig struct {
	Dir             string
	Bucket          string
	Prefix          string
	CredentialsFile string
}

// LoadPipelineConfig reads pipeline.* settings.
func LoadPipelineConfig() (PipelineConfig, error) {
	config := PipelineConfig{
		Workers:   viper.GetInt("pipeline.workers"),
		BatchSize: viper.GetInt("pipeline.batch_size"),
	}
	if config.Workers == 0 {
		config.Workers = DefaultWorkers
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Workers < 0 || config.BatchSize < 0 {
		return PipelineConfig{}, fmt.Errorf("%w: pipeline workers and batch size must be positive", common.ErrInvalidConfig)
	}
	return config, nil
}

// LoadSourceConfig reads source.* settings. The credentials file falls back
// to GOOGLE_APPLICATION_CREDENTIALS.
func LoadSourceConfig() (SourceConfig, error) {
	config := SourceConfig{
		Dir:             ExpandPath(viper.GetString("source.dir")),
		Bucket:          viper.GetString("source.bucket"),
		Prefix:          viper.GetString("source.prefix"),
		CredentialsFile: ExpandPath(viper.GetString("source.credentials_file")),
	}
	if config.CredentialsFile == "" {
		config.CredentialsFile = ExpandPath(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case config.Dir == "" && config.Bucket == "":
		return SourceConfig{}, fmt.Errorf("%w: set source.dir or source.bucket", common.ErrMissingConfig)
	case config.Dir != "" && config.Bucket != "":
		return SourceConfig{}, fmt.Errorf("%w: source.dir and source.bucket are mutually exclusive", common.ErrInvalidConfig)
	}
	return config, nil
}

// DatabasePath returns the expanded database.path, or the default location.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return filepath.Clean(ExpandPath(path))
}
