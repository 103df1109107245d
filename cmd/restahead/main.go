package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/broady/restahead/cmd/restahead/internal/check"
	"github.com/broady/restahead/cmd/restahead/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate implementations of //restahead:client interfaces."`
	Check   check.Cmd  `cmd:"" help:"Report diagnostics and stale generated files without writing."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("restahead"),
		kong.Description("Generates HTTP client implementations from annotated Go interfaces."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
