package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Input struct {
		ProductPath    string `yaml:"product_path"`
		ComparisonPath string `yaml:"comparison_path"` // empty uses the built-in comparison product
	} `yaml:"input"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	AI struct {
		Provider string        `yaml:"provider"` // gemini, openai, ollama; empty disables the agent
		Model    string        `yaml:"model"`
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"ai"`
	Questions struct {
		MinTotal int `yaml:"min_total"`
	} `yaml:"questions"`
	Answers struct {
		UseAgent bool `yaml:"use_agent"`
	} `yaml:"answers"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

const (
	DefaultProductPath = "data/product_input.json"
	DefaultOutputDir   = "output"
	DefaultTimeout     = 30 * time.Second
	DefaultMinTotal    = 15
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Input.ProductPath = DefaultProductPath
	cfg.Output.Dir = DefaultOutputDir
	cfg.AI.Timeout = DefaultTimeout
	cfg.Questions.MinTotal = DefaultMinTotal
	cfg.Logging.Level = "info"
	return cfg
}

// LoadConfig reads .env, then the YAML file at path, then environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if strings.TrimSpace(path) != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PAGEGEN_PRODUCT_PATH"); v != "" {
		c.Input.ProductPath = v
	}
	if v := os.Getenv("PAGEGEN_COMPARISON_PATH"); v != "" {
		c.Input.ComparisonPath = v
	}
	if v := os.Getenv("PAGEGEN_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("PAGEGEN_AI_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	if v := os.Getenv("PAGEGEN_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("PAGEGEN_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("PAGEGEN_AI_BASE_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("PAGEGEN_USE_AGENT_ANSWERS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Answers.UseAgent = b
		}
	}
	if v := os.Getenv("PAGEGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) normalize() {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if strings.TrimSpace(c.Input.ProductPath) == "" {
		c.Input.ProductPath = DefaultProductPath
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = DefaultTimeout
	}
	if c.Questions.MinTotal <= 0 {
		c.Questions.MinTotal = DefaultMinTotal
	}
}

// AgentEnabled reports whether an external text generator is configured.
func (c *Config) AgentEnabled() bool {
	return c.AI.Provider != "" && c.AI.Provider != "none"
}
