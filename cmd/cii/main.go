package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassejlv/cii/pkg/driver"
	"github.com/lassejlv/cii/pkg/runtime"
)

const cliToolVersion = "cii 0.1.0-dev"

// exitUsage is returned for malformed command lines.
const exitUsage = 64

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		cfg, err := loadConfigFrom(".")
		if err != nil {
			fmt.Fprintf(stderr, "failed to load config: %v\n", err)
			return 1
		}
		if cfg.MainPath() != "" {
			return executeScript(cfg.MainPath(), cfg)
		}
		return runREPL(cfg)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "repl":
		if len(args) > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
			return exitUsage
		}
		cfg, err := loadConfigFrom(".")
		if err != nil {
			fmt.Fprintf(stderr, "failed to load config: %v\n", err)
			return 1
		}
		return runREPL(cfg)
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitUsage
	}

	if len(args) == 0 {
		cfg, err := loadConfigFrom(".")
		if err != nil {
			fmt.Fprintf(stderr, "failed to load config: %v\n", err)
			return 1
		}
		if cfg.MainPath() == "" {
			fmt.Fprintf(stderr, "cii run requires a script path or a %s with main\n", driver.ConfigFileName)
			return exitUsage
		}
		return executeScript(cfg.MainPath(), cfg)
	}

	script := args[0]
	absScript, err := filepath.Abs(script)
	if err != nil {
		fmt.Fprintf(stderr, "failed to resolve %s: %v\n", script, err)
		return 1
	}
	cfg, err := loadConfigFrom(filepath.Dir(absScript))
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config for %s: %v\n", script, err)
		return 1
	}
	return executeScript(script, cfg)
}

// executeScript runs one file and maps the outcome to an exit code.
func executeScript(path string, cfg *driver.Config) (code int) {
	defer recoverInternalError(&code)

	if err := driver.RunFile(path, cfg, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return driver.ExitCode(err)
	}
	return driver.ExitOK
}

// recoverInternalError turns an interpreter invariant violation into a
// diagnostic and exit code. Any other panic is re-raised.
func recoverInternalError(code *int) {
	r := recover()
	if r == nil {
		return
	}
	violation, ok := r.(*runtime.ResolutionInvariantViolation)
	if !ok {
		panic(r)
	}
	fmt.Fprintf(stderr, "internal error: %v\n", violation)
	*code = driver.ExitSoftware
}

// loadConfigFrom loads the nearest cii.yml at or above dir, falling back to
// the defaults when there is none.
func loadConfigFrom(dir string) (*driver.Config, error) {
	path, err := driver.FindConfig(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cii [run] <script.lox>   execute a script")
	fmt.Fprintf(w, "  cii run                  execute main from %s\n", driver.ConfigFileName)
	fmt.Fprintln(w, "  cii repl                 start an interactive session")
	fmt.Fprintln(w, "  cii version              print the version")
	fmt.Fprintln(w, "  cii help                 show this message")
}
