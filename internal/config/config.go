package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/job"
)

// Load загружает конфигурацию из TOML файла. Путь может начинаться с ~/
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse разбирает конфигурацию из TOML данных
func Parse(data []byte) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse config file: unknown key %q", undecoded[0].String())
	}

	applyDefaults(&cfg)
	expandEnvVars(&cfg)

	return &cfg, nil
}

// LoadOptional загружает конфигурацию, если файл существует.
// Если файла нет, возвращает конфигурацию по умолчанию.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errs []error

	if c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errs = append(errs, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errs = append(errs, fmt.Errorf("logging.output is required"))
	}

	if c.Crontab.Binary == "" {
		errs = append(errs, fmt.Errorf("crontab.binary is required"))
	}
	if strings.ContainsAny(c.Crontab.User, " \t\n") {
		errs = append(errs, fmt.Errorf("crontab.user must not contain whitespace: %q", c.Crontab.User))
	}

	if c.Jobs.Interpreter == "" {
		errs = append(errs, fmt.Errorf("jobs.interpreter is required"))
	}

	if c.Metrics.Textfile != "" {
		if err := validatePath(c.Metrics.Textfile, "metrics.textfile"); err != nil {
			errs = append(errs, err)
		} else if !strings.HasSuffix(c.Metrics.Textfile, ".prom") {
			errs = append(errs, fmt.Errorf("metrics.textfile must end with .prom for the textfile collector: %s", c.Metrics.Textfile))
		}
		if c.Metrics.Namespace == "" {
			errs = append(errs, fmt.Errorf("metrics.namespace is required when metrics.textfile is set"))
		}
	}

	return errs
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
	}

	return nil
}

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}

	if c.Crontab.Binary == "" {
		c.Crontab.Binary = constants.CrontabBinary
	}

	if c.Jobs.Interpreter == "" {
		c.Jobs.Interpreter = job.DefaultInterpreter
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = constants.MetricsNamespace
	}
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) {
	c.Crontab.User = expandEnv(c.Crontab.User)
	c.Crontab.Binary = expandHome(expandEnv(c.Crontab.Binary))
	c.Jobs.Interpreter = expandEnv(c.Jobs.Interpreter)
	c.Logging.Output = expandHome(expandEnv(c.Logging.Output))
	c.Metrics.Textfile = expandHome(expandEnv(c.Metrics.Textfile))
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		key := parts[0]
		defaultVal := parts[1]
		if val := os.Getenv(key); val != "" {
			return val + s[end+1:]
		}
		return defaultVal + s[end+1:]
	}

	// Без значения по умолчанию
	return os.Getenv(content) + s[end+1:]
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
