package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/peer-eval-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Merge   MergeConfig   `yaml:"merge" mapstructure:"merge"`
	Analyze AnalyzeConfig `yaml:"analyze" mapstructure:"analyze"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// MergeConfig configures submission discovery and the combined output file.
type MergeConfig struct {
	InputDir        string   `yaml:"input_dir" mapstructure:"input_dir"`
	OutputFile      string   `yaml:"output_file" mapstructure:"output_file"`
	Pattern         string   `yaml:"pattern" mapstructure:"pattern"`
	ExpectedHeaders []string `yaml:"expected_headers" mapstructure:"expected_headers"`
}

// AnalyzeConfig configures the analysis report.
type AnalyzeConfig struct {
	Roster string `yaml:"roster" mapstructure:"roster"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PEEREVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("merge.input_dir", "./submissions")
	v.SetDefault("merge.output_file", "combined_evaluations.csv")
	v.SetDefault("merge.pattern", "*.csv")
	v.SetDefault("merge.expected_headers", model.EvaluationColumns)
	v.SetDefault("analyze.roster", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would make every run fail.
func (c *Config) Validate() error {
	if c.Merge.Pattern == "" {
		return eris.New("config: merge.pattern must not be empty")
	}
	if strings.ContainsAny(c.Merge.Pattern, `/\`) {
		return eris.Errorf("config: merge.pattern %q must match file names, not paths", c.Merge.Pattern)
	}
	if _, err := filepath.Match(c.Merge.Pattern, ""); err != nil {
		return eris.Wrapf(err, "config: merge.pattern %q", c.Merge.Pattern)
	}
	if len(c.Merge.ExpectedHeaders) == 0 {
		return eris.New("config: merge.expected_headers must not be empty")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
