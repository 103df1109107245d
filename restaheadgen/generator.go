// Package restaheadgen generates implementations of restahead client
// interfaces.
package restaheadgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/broady/restahead/restaheadgen/compiler"
	"github.com/broady/restahead/restaheadgen/ir"
	"github.com/broady/restahead/restaheadgen/provider"
	"github.com/broady/restahead/restaheadgen/sink"
	"golang.org/x/sync/errgroup"
)

// ErrDiagnostics is returned, wrapped, when any declaration has an error
// diagnostic. Complete units are still written.
var ErrDiagnostics = errors.New("client declarations have errors")

// Config holds the configuration for code generation.
type Config struct {
	// Packages are the package patterns to load, e.g. []string{"./api"}.
	Packages []string

	// Interfaces restricts generation to the named interfaces. Empty means
	// every interface marked //restahead:client.
	Interfaces []string

	// Dir is the directory packages are loaded from.
	// Default: "."
	Dir string

	// Root is the directory generated paths are relative to. Every loaded
	// package must be inside it.
	// Default: Dir
	Root string

	// Suffix names generated files: "api.go" becomes "api" + Suffix.
	// Default: "_restahead.go"
	Suffix string

	// RuntimePath is the import path of the runtime package.
	// Default: "github.com/broady/restahead"
	RuntimePath string

	// Logger receives progress messages.
	// Default: a logger that discards everything.
	Logger *slog.Logger

	// Sink receives generated files. Default: a filesystem sink at Root.
	Sink sink.OutputSink

	// DryRun compiles without writing anything.
	DryRun bool

	// CheckOnly compares generated files with the files under Root instead of
	// writing them.
	CheckOnly bool

	// Jobs limits concurrent writes.
	// Default: GOMAXPROCS
	Jobs int
}

// Result describes a generation run.
type Result struct {
	// Units holds one unit per service, complete or not.
	Units []*compiler.Unit

	// Diagnostics holds every problem found, sorted by position.
	Diagnostics ir.Diagnostics

	// Written lists the files handed to the sink, relative to Root.
	Written []string

	// Unchanged lists written files whose content was already up to date.
	Unchanged []string

	// Stale lists files that are missing or out of date. Set in check mode.
	Stale []string
}

// Generate loads the configured packages, compiles every client interface
// and writes the complete units. If any declaration has an error the result
// is returned along with an error wrapping ErrDiagnostics.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if len(cfg.Packages) == 0 {
		return nil, fmt.Errorf("packages is required")
	}
	log := cfg.Logger

	p := &provider.SourceProvider{Runtime: cfg.RuntimePath, Dir: cfg.Dir}
	services, err := p.Services(ctx, provider.SourceInputOptions{
		Packages:   cfg.Packages,
		Interfaces: cfg.Interfaces,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	log.Debug("loaded services", slog.Int("count", len(services)))

	c := &compiler.Compiler{Suffix: cfg.Suffix}
	units, diags := c.CompileAll(services)
	diags.Sort()
	result := &Result{Units: units, Diagnostics: diags}

	for _, u := range units {
		if !u.Complete {
			log.Warn("skipped service",
				slog.String("service", u.Service.Name),
				slog.String("file", u.Service.File))
		}
	}

	if !cfg.DryRun {
		if err := write(ctx, cfg, result); err != nil {
			return result, err
		}
	}

	if n := diags.ErrorCount(); n > 0 {
		return result, fmt.Errorf("%w: %d error(s)", ErrDiagnostics, n)
	}
	return result, nil
}

func write(ctx context.Context, cfg *Config, result *Result) error {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	out := cfg.Sink
	var (
		fsSink    *sink.FilesystemSink
		checkSink *sink.CheckSink
	)
	if out == nil {
		if cfg.CheckOnly {
			checkSink = sink.NewCheckSink(root)
			out = checkSink
		} else {
			fsSink = sink.NewFilesystemSink(root)
			out = fsSink
		}
	}

	type job struct {
		unit *compiler.Unit
		path string
	}
	var jobs []job
	for _, u := range result.Units {
		if !u.Complete {
			continue
		}
		rel, err := filepath.Rel(root, u.Path())
		if err != nil {
			return fmt.Errorf("failed to place %s: %w", u.Filename, err)
		}
		jobs = append(jobs, job{unit: u, path: filepath.ToSlash(rel)})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for _, j := range jobs {
		g.Go(func() error {
			if err := out.WriteFile(gctx, j.path, j.unit.Content); err != nil {
				return fmt.Errorf("failed to write %s: %w", j.path, err)
			}
			if !cfg.CheckOnly {
				cfg.Logger.Info("generated file",
					slog.String("path", j.path),
					slog.String("service", j.unit.Service.Name),
					slog.Int("methods", j.unit.Methods))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, j := range jobs {
		result.Written = append(result.Written, j.path)
	}
	if fsSink != nil {
		result.Unchanged = fsSink.Unchanged()
	}
	if checkSink != nil {
		result.Stale = checkSink.Stale()
		result.Written = nil
	}
	return nil
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Copy so the caller's Config is not modified.
	result := *cfg

	if result.Dir == "" {
		result.Dir = "."
	}
	if result.Root == "" {
		result.Root = result.Dir
	}
	if result.Suffix == "" {
		result.Suffix = compiler.DefaultSuffix
	}
	if result.RuntimePath == "" {
		result.RuntimePath = ir.RuntimePath
	}
	if result.Logger == nil {
		result.Logger = slog.New(slog.DiscardHandler)
	}
	if result.Jobs <= 0 {
		result.Jobs = runtime.GOMAXPROCS(0)
	}
	return &result
}
