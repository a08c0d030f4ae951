package config

import (
	"os"

	"emperror.dev/errors"
	"github.com/spf13/viper"
)

type GitHub struct {
	Token string
	// BaseUrl is the GitHub API base URL. Override for GitHub Enterprise
	// instances.
	BaseUrl string
}

type OpenAI struct {
	ApiKey string
	// Model is the chat-completion model used for every generated field.
	Model string
}

// Config holds all settings for one invocation. It is constructed once at
// startup and handed down by reference; there is no package-level instance.
type Config struct {
	GitHub GitHub
	OpenAI OpenAI
}

// New returns a Config populated with defaults only.
func New() *Config {
	return &Config{
		GitHub: GitHub{
			BaseUrl: "https://api.github.com",
		},
		OpenAI: OpenAI{
			Model: "gpt-4o-mini",
		},
	}
}

// Load builds the configuration: defaults, then a config file (if one
// exists), then environment variable overrides.
// It may optionally be called with a list of additional paths to check for
// the config file.
// Returns the config, a boolean indicating whether or not a config file was
// loaded, and an error if one occurred.
func Load(paths []string) (*Config, bool, error) {
	cfg := New()
	loaded, err := cfg.loadFromFile(paths)
	cfg.loadFromEnv()
	return cfg, loaded, err
}

func (c *Config) loadFromFile(paths []string) (bool, error) {
	config := viper.New()

	// Viper has support for various formats, so it supports json, toml, yaml,
	// and more (https://github.com/spf13/viper#reading-config-files).
	config.SetConfigName("config")

	// Reasonable places to look for config files.
	config.AddConfigPath("$XDG_CONFIG_HOME/repogen")
	config.AddConfigPath("$HOME/.config/repogen")
	config.AddConfigPath("$HOME/.repogen")
	// Add additional custom paths.
	for _, path := range paths {
		config.AddConfigPath(path)
	}

	if err := config.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, err
	}

	if err := config.Unmarshal(c); err != nil {
		return true, errors.Wrap(err, "failed to read repogen configs")
	}

	return true, nil
}

func (c *Config) loadFromEnv() {
	if githubToken := os.Getenv("REPOGEN_GITHUB_TOKEN"); githubToken != "" {
		c.GitHub.Token = githubToken
	} else if githubToken := os.Getenv("GITHUB_TOKEN"); githubToken != "" {
		c.GitHub.Token = githubToken
	}
	if apiKey := os.Getenv("REPOGEN_OPENAI_API_KEY"); apiKey != "" {
		c.OpenAI.ApiKey = apiKey
	} else if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		c.OpenAI.ApiKey = apiKey
	}
	if model := os.Getenv("REPOGEN_OPENAI_MODEL"); model != "" {
		c.OpenAI.Model = model
	}
}
