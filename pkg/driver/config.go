package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project file looked up by FindConfig.
const ConfigFileName = "cii.yml"

// Config represents the parsed contents of cii.yml.
type Config struct {
	Path        string
	Name        string
	Main        string
	Interpreter InterpreterConfig
	REPL        REPLConfig
}

// InterpreterConfig controls how programs are executed.
type InterpreterConfig struct {
	// Resolve runs the static resolver before execution. When false every
	// variable is looked up dynamically.
	Resolve      bool
	MaxCallDepth int
}

type REPLConfig struct {
	Prompt  string
	History string
}

// DefaultConfig is used when no cii.yml is present.
func DefaultConfig() *Config {
	return &Config{
		Interpreter: InterpreterConfig{Resolve: true},
		REPL:        REPLConfig{Prompt: "> ", History: "~/.cii_history"},
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses cii.yml from disk, returning a validated configuration.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	if err := raw.validate(); err != nil {
		return nil, err
	}
	return raw.toConfig(absPath), nil
}

// FindConfig searches start and its parents for cii.yml. It returns an error
// wrapping fs.ErrNotExist when no directory up to the root has one.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: no %s in %s or its parents: %w", ConfigFileName, start, fs.ErrNotExist)
		}
		dir = parent
	}
}

// MainPath returns the entry script resolved against the config's directory,
// or "" when none is configured.
func (c *Config) MainPath() string {
	if c.Main == "" {
		return ""
	}
	if filepath.IsAbs(c.Main) || c.Path == "" {
		return c.Main
	}
	return filepath.Join(filepath.Dir(c.Path), c.Main)
}

// HistoryPath expands a leading ~ in the REPL history setting.
func (c *Config) HistoryPath() string {
	history := c.REPL.History
	if history == "~" || strings.HasPrefix(history, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(history[1:], "/"))
	}
	return history
}

type configFile struct {
	Name        string           `yaml:"name"`
	Main        string           `yaml:"main"`
	Interpreter *interpreterYAML `yaml:"interpreter"`
	REPL        *replYAML        `yaml:"repl"`
}

type interpreterYAML struct {
	Resolve      *bool `yaml:"resolve"`
	MaxCallDepth *int  `yaml:"max_call_depth"`
}

type replYAML struct {
	Prompt  *string `yaml:"prompt"`
	History *string `yaml:"history"`
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Name = cf.Name
	cfg.Main = cf.Main
	if in := cf.Interpreter; in != nil {
		if in.Resolve != nil {
			cfg.Interpreter.Resolve = *in.Resolve
		}
		if in.MaxCallDepth != nil {
			cfg.Interpreter.MaxCallDepth = *in.MaxCallDepth
		}
	}
	if r := cf.REPL; r != nil {
		if r.Prompt != nil {
			cfg.REPL.Prompt = *r.Prompt
		}
		if r.History != nil {
			cfg.REPL.History = *r.History
		}
	}
	return cfg
}

func (cf configFile) validate() error {
	var errs ValidationError
	if strings.TrimSpace(cf.Name) == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if cf.Main != "" && filepath.Ext(cf.Main) != ".lox" {
		errs.Issues = append(errs.Issues, fmt.Sprintf("main %q must be a .lox file", cf.Main))
	}
	if in := cf.Interpreter; in != nil && in.MaxCallDepth != nil && *in.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("interpreter.max_call_depth must be >= 0, got %d", *in.MaxCallDepth))
	}
	if r := cf.REPL; r != nil && r.Prompt != nil && *r.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
