package gen

import (
	"context"
	"errors"
	"fmt"

	"github.com/broady/restahead/cmd/restahead/internal/report"
	"github.com/broady/restahead/restaheadgen"
)

type Cmd struct {
	report.Options

	DryRun bool `help:"Compile without writing files." short:"n" name:"dry-run"`
}

func (c *Cmd) Run() error {
	stdout, stderr := c.Out()

	result, err := restaheadgen.Generate(context.Background(), &restaheadgen.Config{
		Packages:    c.Packages,
		Interfaces:  c.Interfaces,
		Dir:         c.Dir,
		Suffix:      c.Suffix,
		RuntimePath: c.Runtime,
		Logger:      c.Logger(),
		DryRun:      c.DryRun,
	})
	if result != nil {
		report.Diagnostics(stderr, c.Dir, result.Diagnostics)
	}
	if err != nil {
		if errors.Is(err, restaheadgen.ErrDiagnostics) {
			return fmt.Errorf("%d error(s) reported", result.Diagnostics.ErrorCount())
		}
		return err
	}

	if c.DryRun {
		for _, u := range result.Units {
			fmt.Fprintf(stdout, "%s: %s (%d methods)\n", u.Service.Name, u.Filename, u.Methods)
		}
		return nil
	}
	fmt.Fprintf(stdout, "✓ %d file(s) generated, %d unchanged\n", len(result.Written)-len(result.Unchanged), len(result.Unchanged))
	return nil
}
