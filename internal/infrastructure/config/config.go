// Package config provides configuration loading for the gitweblinks
// application. Settings come from an optional YAML file in the user's
// configuration directory and can be overridden with environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	// EnvConfigPath overrides the location of the settings file.
	EnvConfigPath = "GITWEBLINKS_CONFIG"

	// EnvLinkType overrides the link type (commit, branch, default).
	EnvLinkType = "GITWEBLINKS_LINK_TYPE"

	// EnvPreferredRemote overrides the remote used when a repository has several.
	EnvPreferredRemote = "GITWEBLINKS_REMOTE"

	// EnvDefaultBranch overrides the branch used when the remote HEAD is unknown.
	EnvDefaultBranch = "GITWEBLINKS_DEFAULT_BRANCH"

	// EnvLogLevel is the log level (debug, info, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"
)

// Default values.
const (
	DefaultLinkType        = "branch"
	DefaultPreferredRemote = "origin"
	DefaultLogLevel        = "info"
	DefaultLogAppName      = "gitweblinks"
)

// configFileName is the settings file path relative to the XDG config home.
const configFileName = "gitweblinks/config.yaml"

// Configuration errors.
var (
	// ErrConfigRead indicates the settings file exists but could not be read.
	ErrConfigRead = errors.New("failed to read settings file")

	// ErrConfigParse indicates the settings file is not valid YAML.
	ErrConfigParse = errors.New("settings file is not valid YAML")

	// ErrConfigInvalid indicates the settings contain an unsupported value.
	ErrConfigInvalid = errors.New("settings are invalid")
)

// Server describes a self-hosted instance of a supported service.
type Server struct {
	// BaseURL is the web address of the instance, for example
	// https://github.example.com.
	BaseURL string `yaml:"baseUrl" validate:"required,url"`

	// SSHHost is the host name that SSH remote URLs use for the instance.
	// Leave empty when the instance is only reached over HTTP.
	SSHHost string `yaml:"sshHost" validate:"omitempty,hostname|hostname_port"`
}

// Servers groups the self-hosted instances by service.
type Servers struct {
	GitHub []Server `yaml:"github" validate:"dive"`
	GitLab []Server `yaml:"gitlab" validate:"dive"`
	Gitea  []Server `yaml:"gitea" validate:"dive"`
}

// Config holds all application configuration.
type Config struct {
	// LinkType controls which ref is embedded in links.
	LinkType string `yaml:"linkType" validate:"oneof=commit branch default"`

	// PreferredRemote is the remote used when a repository has several.
	PreferredRemote string `yaml:"preferredRemote" validate:"required"`

	// DefaultBranch is used when the remote HEAD cannot be determined.
	// Empty means there is no fallback and link generation reports the problem.
	DefaultBranch string `yaml:"defaultBranch"`

	// UseShortHash shortens commit hashes in links.
	UseShortHash bool `yaml:"useShortHash"`

	// ShowCopyMessage controls the notification shown after copying a link.
	ShowCopyMessage bool `yaml:"showCopyMessage"`

	// Servers lists self-hosted instances in addition to the built-in ones.
	Servers Servers `yaml:"servers"`

	// LogLevel is the logging level (debug, info, error).
	LogLevel string `yaml:"logLevel" validate:"oneof=debug info error"`

	// LogAppName is the application name for log context.
	LogAppName string `yaml:"logAppName" validate:"required"`
}

// Path returns the settings file location: the EnvConfigPath override when
// set, otherwise gitweblinks/config.yaml under the XDG config home.
func Path() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, configFileName)
}

// Load loads the application configuration from the settings file at Path()
// and the environment. A missing settings file is not an error; defaults
// apply instead.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads the application configuration from the settings file at the
// given path and the environment. Environment variables win over file values.
func LoadFrom(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No settings file; defaults apply.
	case err != nil:
		return nil, fmt.Errorf("%w at %s: %w", ErrConfigRead, path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w at %s: %w", ErrConfigParse, path, err)
		}
	}

	applyEnvironment(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return cfg, nil
}

// defaults returns a Config populated with default values. Unmarshalling
// into it keeps the defaults for any key the settings file omits.
func defaults() *Config {
	return &Config{
		LinkType:        DefaultLinkType,
		PreferredRemote: DefaultPreferredRemote,
		ShowCopyMessage: true,
		LogLevel:        DefaultLogLevel,
		LogAppName:      DefaultLogAppName,
	}
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvLinkType); v != "" {
		cfg.LinkType = v
	}
	if v := os.Getenv(EnvPreferredRemote); v != "" {
		cfg.PreferredRemote = v
	}
	if v := os.Getenv(EnvDefaultBranch); v != "" {
		cfg.DefaultBranch = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogAppName); v != "" {
		cfg.LogAppName = v
	}
}

// Template is the seed content for a newly created settings file.
const Template = `# gitweblinks settings
#
# linkType controls which ref is embedded in links: commit, branch or default.
#linkType: branch

# preferredRemote is the remote used when a repository has several.
#preferredRemote: origin

# defaultBranch is used when the default branch of a remote cannot be
# determined.
#defaultBranch: main

# useShortHash shortens commit hashes in links.
#useShortHash: false

# showCopyMessage controls the notification shown after copying a link.
#showCopyMessage: true

# servers adds self-hosted instances to the built-in ones.
#servers:
#  github:
#    - baseUrl: https://github.example.com
#      sshHost: github.example.com
#  gitlab:
#    - baseUrl: https://gitlab.example.com
#  gitea:
#    - baseUrl: https://forge.example.com
#      sshHost: forge.example.com
`
