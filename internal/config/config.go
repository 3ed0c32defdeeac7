package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ini "github.com/go-ini/ini"

	"hanobf/internal/rules"
)

const DefaultFileName = "hanobf.ini"

type Config struct {
	Enabled       []rules.ID
	Probabilities rules.Probabilities
	Normalize     bool
	// Seed fixes the random stream; zero draws a fresh one per run.
	Seed  uint64
	Color bool
}

type ConfigError struct {
	msg string
}

func (e ConfigError) Error() string { return e.msg }

func Default() Config {
	return Config{
		Enabled:       rules.AllIDs(),
		Probabilities: rules.DefaultProbabilities(),
		Color:         true,
	}
}

// Load reads an INI file on top of the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config: %s is a directory", path)
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if sec := file.Section("rules"); sec.HasKey("enabled") {
		ids, err := rules.ParseIDs(SplitList(sec.Key("enabled").String()))
		if err != nil {
			return cfg, ConfigError{msg: fmt.Sprintf("invalid [rules] enabled in %s: %v", path, err)}
		}
		cfg.Enabled = ids
	}

	probs := file.Section("probability")
	for key, dst := range map[string]*float64{
		"liaison":           &cfg.Probabilities.Liaison,
		"onset_duplication": &cfg.Probabilities.OnsetDuplication,
		"jamo_replacement":  &cfg.Probabilities.JamoReplacement,
		"filler_final":      &cfg.Probabilities.FillerFinal,
	} {
		if !probs.HasKey(key) {
			continue
		}
		value, err := probs.Key(key).Float64()
		if err != nil {
			return cfg, ConfigError{msg: fmt.Sprintf("invalid probability %s in %s: %v", key, path, err)}
		}
		*dst = value
	}

	if sec := file.Section("input"); sec.HasKey("normalize") {
		value, err := sec.Key("normalize").Bool()
		if err != nil {
			return cfg, ConfigError{msg: fmt.Sprintf("invalid [input] normalize in %s: %v", path, err)}
		}
		cfg.Normalize = value
	}

	if sec := file.Section("random"); sec.HasKey("seed") {
		value, err := sec.Key("seed").Uint64()
		if err != nil {
			return cfg, ConfigError{msg: fmt.Sprintf("invalid [random] seed in %s: %v", path, err)}
		}
		cfg.Seed = value
	}

	cfg.Color = file.Section("output").Key("color").MustBool(cfg.Color)

	if err := cfg.Validate(); err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("%s: %v", path, err)}
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Enabled) == 0 {
		return errors.New("no rules enabled")
	}
	for _, id := range c.Enabled {
		p := c.Probabilities.For(id)
		if p < 0 || p > 1 {
			return fmt.Errorf("probability for %s must be within [0, 1], got %v", id, p)
		}
	}
	return nil
}

// Resolve loads the file named on the command line, or hanobf.ini from the
// working directory when present, or the defaults.
func Resolve(cliPath string) (Config, error) {
	if cliPath != "" {
		if _, err := os.Stat(cliPath); err != nil {
			return Default(), ConfigError{msg: fmt.Sprintf("failed to open config: %v", err)}
		}
		return Load(cliPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(cwd, DefaultFileName))
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
