package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/broady/restahead/cmd/restahead/internal/report"
	"github.com/broady/restahead/restaheadgen"
)

type Cmd struct {
	report.Options
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
		CheckOnly:   true,
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

	methods := 0
	for _, u := range result.Units {
		methods += u.Methods
	}
	fmt.Fprintf(stdout, "✓ %d services, %d methods\n", len(result.Units), methods)

	if len(result.Stale) > 0 {
		for _, path := range result.Stale {
			fmt.Fprintf(stderr, "%s: out of date\n", path)
		}
		return fmt.Errorf("%d generated file(s) out of date, run restahead gen", len(result.Stale))
	}
	fmt.Fprintln(stdout, "✓ Generated files up to date")
	return nil
}
