package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks configuration mistakes. They are fatal: the program
// refuses to start (or stops) rather than degrade.
var ErrConfig = errors.New("configuration error")

const (
	DefaultRegion          = "us-east-1"
	DefaultRefreshInterval = time.Second
)

// DefaultRegions is the list offered by the region selector.
var DefaultRegions = []string{
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
	"ca-central-1",
	"eu-west-1",
	"eu-central-1",
	"eu-west-2",
	"eu-west-3",
	"ap-northeast-1",
	"ap-northeast-2",
	"ap-southeast-1",
	"ap-southeast-2",
	"ap-south-1",
	"sa-east-1",
	"us-gov-west-1",
}

// Config holds the application configuration
type Config struct {
	Region          string        `yaml:"region"`
	Profile         string        `yaml:"profile"`
	Service         Service       `yaml:"service"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Regions         []string      `yaml:"regions"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`

	// Credentials only ever come from flags.
	AccessKey    string `yaml:"-"`
	SecretKey    string `yaml:"-"`
	SessionToken string `yaml:"-"`
}

// LoadConfig returns the defaults with the YAML file at path layered on
// top. An empty path means the default location, which may be absent.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() *Config {
	return &Config{
		Region:          GetDefaultRegion(),
		Service:         ServiceEC2,
		RefreshInterval: DefaultRefreshInterval,
		Regions:         append([]string(nil), DefaultRegions...),
		LogLevel:        "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/awstop/config.yaml, falling back to
// ~/.config. It is empty when no home directory can be found.
func DefaultPath() string {
	if dir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && dir != "" {
		return filepath.Join(dir, "awstop", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "awstop", "config.yaml")
}

// GetDefaultRegion returns the default AWS region
func GetDefaultRegion() string {
	if region, ok := os.LookupEnv("AWS_REGION"); ok && region != "" {
		return region
	}
	if region, ok := os.LookupEnv("AWS_DEFAULT_REGION"); ok && region != "" {
		return region
	}
	return DefaultRegion
}

// Validate checks the values the UI relies on.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("%w: region must not be empty", ErrConfig)
	}
	if len(c.Regions) == 0 {
		return fmt.Errorf("%w: region list must not be empty", ErrConfig)
	}
	if !c.Service.Valid() {
		return fmt.Errorf("%w: unknown service %q", ErrConfig, c.Service)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive, got %s", ErrConfig, c.RefreshInterval)
	}
	return nil
}

// Selection returns the initial region/service selection.
func (c *Config) Selection() Selection {
	return Selection{Region: c.Region, Service: c.Service}
}
