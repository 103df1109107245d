package restaheadgen

import (
	"context"
	"log/slog"
)

// Generator provides a fluent API for code generation.
// Create with FromPackages and configure with method chaining.
//
// Example:
//
//	restaheadgen.FromPackages("./api").
//	    Logger(slog.Default()).
//	    ToDir(".")
type Generator struct {
	cfg Config
}

// FromPackages creates a Generator for the given package patterns.
// This is the entry point for the fluent API.
func FromPackages(pkgs ...string) *Generator {
	return &Generator{cfg: Config{Packages: pkgs}}
}

// Packages adds package patterns to load.
func (g *Generator) Packages(pkgs ...string) *Generator {
	g.cfg.Packages = append(g.cfg.Packages, pkgs...)
	return g
}

// Interfaces restricts generation to the named interfaces.
func (g *Generator) Interfaces(names ...string) *Generator {
	g.cfg.Interfaces = append(g.cfg.Interfaces, names...)
	return g
}

// Dir sets the directory packages are loaded from.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// Suffix sets the generated file suffix, e.g. "_client.go".
func (g *Generator) Suffix(suffix string) *Generator {
	g.cfg.Suffix = suffix
	return g
}

// Runtime sets the import path of the runtime package.
func (g *Generator) Runtime(path string) *Generator {
	g.cfg.RuntimePath = path
	return g
}

// Logger sets the progress logger.
func (g *Generator) Logger(logger *slog.Logger) *Generator {
	g.cfg.Logger = logger
	return g
}

// Jobs limits how many files are written concurrently.
func (g *Generator) Jobs(n int) *Generator {
	g.cfg.Jobs = n
	return g
}

// ToDir writes the generated files next to their sources. Paths are resolved
// against root, which must contain every loaded package. It defaults to the
// load directory.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(root string) (*Result, error) {
	cfg := g.cfg
	cfg.Root = root
	return Generate(context.Background(), &cfg)
}

// Check compares the generated files with the files on disk without writing.
// Result.Stale lists the files that are missing or out of date.
func (g *Generator) Check() (*Result, error) {
	cfg := g.cfg
	cfg.CheckOnly = true
	return Generate(context.Background(), &cfg)
}

// Generate returns the generated units in memory without writing to disk.
func (g *Generator) Generate() (*Result, error) {
	cfg := g.cfg
	cfg.DryRun = true
	return Generate(context.Background(), &cfg)
}
