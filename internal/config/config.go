package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level healthcheck configuration.
type Config struct {
	Org         string        `mapstructure:"org" validate:"required"`
	GitHub      GitHub        `mapstructure:"github"`
	Travis      Travis        `mapstructure:"travis"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	Concurrent  bool          `mapstructure:"concurrent"`
	Weights     Weights       `mapstructure:"weights"`
	Output      Output        `mapstructure:"output"`
	Log         Log           `mapstructure:"log"`
}

// GitHub holds the hosting API endpoint and credentials. A token takes
// precedence over user/password; with neither, calls are unauthenticated.
type GitHub struct {
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	Token    string `mapstructure:"token"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password" validate:"required_with=User"`
}

// Travis holds the CI status API endpoint.
type Travis struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// Weights defines the scoring weights for project health.
type Weights struct {
	ReadMe   float64 `mapstructure:"readme" validate:"gte=0"`
	License  float64 `mapstructure:"license" validate:"gte=0"`
	Metadata float64 `mapstructure:"metadata" validate:"gte=0"`
	CI       float64 `mapstructure:"ci" validate:"gte=0"`
	Activity float64 `mapstructure:"activity" validate:"gte=0"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// Log defines logging preferences.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location),
// applies environment overrides and returns a validated Config. A .env file
// in the working directory is loaded first when present.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("org", DefaultOrg)
	v.SetDefault("github.base_url", DefaultGitHubURL)
	v.SetDefault("github.token", "")
	v.SetDefault("github.user", "")
	v.SetDefault("github.password", "")
	v.SetDefault("travis.base_url", DefaultTravisURL)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("concurrent", true)
	v.SetDefault("weights.readme", DefaultWeights.ReadMe)
	v.SetDefault("weights.license", DefaultWeights.License)
	v.SetDefault("weights.metadata", DefaultWeights.Metadata)
	v.SetDefault("weights.ci", DefaultWeights.CI)
	v.SetDefault("weights.activity", DefaultWeights.Activity)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	// The conventional variable used by most GitHub tooling.
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration and reports the first offending field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed on '%s'", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
