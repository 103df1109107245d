// Package report prints generator output for the CLI.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/broady/restahead/restaheadgen/ir"
)

// Options are the flags shared by gen and check.
type Options struct {
	Packages   []string `arg:"" optional:"" help:"Package patterns to scan." default:"."`
	Interfaces []string `help:"Only process these interfaces." short:"i" name:"interface"`
	Dir        string   `help:"Directory to load packages from." short:"C" default:"." type:"existingdir"`
	Suffix     string   `help:"Generated file suffix." default:"_restahead.go"`
	Runtime    string   `help:"Import path of the runtime package." hidden:""`
	Verbose    bool     `help:"Log progress." short:"v"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// Out returns the writers, defaulting to os.Stdout and os.Stderr.
func (o *Options) Out() (stdout, stderr io.Writer) {
	stdout, stderr = o.Stdout, o.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

// Logger logs to stderr at info level when verbose and warnings otherwise.
func (o *Options) Logger() *slog.Logger {
	_, stderr := o.Out()
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// Diagnostics writes one line per diagnostic, with file names relative to dir
// when possible.
func Diagnostics(w io.Writer, dir string, diags ir.Diagnostics) {
	abs, _ := filepath.Abs(dir)
	for _, d := range diags {
		if rel, err := filepath.Rel(abs, d.Source.Filename); err == nil && filepath.IsLocal(rel) {
			d.Source.Filename = rel
		}
		fmt.Fprintln(w, d.String())
	}
}
