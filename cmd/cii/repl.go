package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/lassejlv/cii/pkg/driver"
	"github.com/lassejlv/cii/pkg/parser"
)

const continuationPrompt = "... "

// lineReader is the part of *liner.State the REPL reads through.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func runREPL(cfg *driver.Config) (code int) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	historyPath := cfg.HistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(stdout, "%s (type :help for commands)\n", cliToolVersion)
	session := driver.NewSession(cfg, stdout)
	return repl(ln, session, cfg.REPL.Prompt, func(entry string) {
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	})
}

// repl reads chunks until EOF or :quit and runs each in session. Errors are
// reported and the loop continues; an internal error ends it.
func repl(in lineReader, session *driver.Session, prompt string, remember func(string)) (code int) {
	defer recoverInternalError(&code)

	for {
		chunk, ok := readChunk(in, prompt)
		if !ok {
			fmt.Fprintln(stdout)
			return driver.ExitOK
		}
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		if remember != nil {
			remember(chunk)
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := handleCommand(stdout, session, trimmed); quit {
				return driver.ExitOK
			}
			continue
		}
		if err := session.Run(chunk); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}
}

// readChunk collects lines until they form a complete program, switching to
// the continuation prompt while the parser reports incomplete input. Ctrl-C
// discards the pending chunk.
func readChunk(in lineReader, prompt string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = continuationPrompt
		}
		line, err := in.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseSource(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

func handleCommand(w io.Writer, session *driver.Session, command string) bool {
	switch strings.ToLower(command) {
	case ":quit", ":q", ":exit":
		return true
	case ":env":
		for _, name := range session.GlobalNames() {
			fmt.Fprintln(w, name)
		}
	case ":help":
		fmt.Fprintln(w, ":env   list global names")
		fmt.Fprintln(w, ":quit  leave the REPL")
	default:
		fmt.Fprintf(w, "unknown command %s. Type :help for commands.\n", command)
	}
	return false
}
