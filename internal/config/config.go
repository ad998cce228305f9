package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/llm"
)

// Config is the full application configuration. Values are layered in
// priority order: defaults, then the YAML config file, then STUDIZ_*
// environment variables, then command-line flags.
type Config struct {
	// DB overrides the database path. Empty means the default location.
	DB string `koanf:"db"`

	LLM  llm.Config `koanf:"llm"`
	Exam ExamConfig `koanf:"exam"`
}

// ExamConfig configures assessment sessions.
type ExamConfig struct {
	// QuestionCount is the number of questions generated per exam.
	QuestionCount int `koanf:"question_count" validate:"min=1,max=50"`

	// DurationMins fixes the exam length in minutes. Zero means derive
	// it from the question count.
	DurationMins int `koanf:"duration_mins" validate:"min=0,max=480"`

	// GradeScale maps percentages to letter grades. Empty means the
	// built-in scale.
	GradeScale exam.GradeScale `koanf:"grade_scale"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Exam: ExamConfig{
			QuestionCount: 5,
			GradeScale:    exam.DefaultGradeScale(),
		},
	}
}

// Load builds the effective configuration. path is the config file to
// read ("" means the default location; a missing file is not an error).
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// STUDIZ_LLM__PROVIDER=openai maps to llm.provider. Double
	// underscore separates nesting levels so keys like api_key survive.
	err := k.Load(env.Provider("STUDIZ_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STUDIZ_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("load flag config: %w", err)
		}
	}

	// Unmarshal over the defaults so unset keys keep their values.
	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the grade scale shape. LLM
// credentials are validated later, when a provider is constructed, so a
// keyless config can still run mock-only commands.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Exam.GradeScale.Validate(); err != nil {
		return fmt.Errorf("invalid grade scale: %w", err)
	}
	return nil
}

// DefaultConfigPath resolves the config file path in priority order:
// 1. STUDIZ_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/studiz/config.yaml
// 3. ~/.config/studiz/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv("STUDIZ_CONFIG"); p != "" {
		return p
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "studiz", "config.yaml")
}
