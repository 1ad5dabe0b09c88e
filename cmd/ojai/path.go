package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/go-ojai/fieldpath"
)

func path(cfg *PathConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Path.Parse(cc, args)
	if err != nil {
		cfg.Path.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: path requires at least one argument", cli.ErrUsage)
	}
	for _, arg := range args {
		p, err := fieldpath.Parse(arg)
		if err != nil {
			return err
		}
		var s string
		switch {
		case cfg.JSON:
			s = p.JSONString()
		default:
			s = p.PathString(cfg.Quote)
		}
		if _, err := fmt.Fprintln(cc.Out, s); err != nil {
			return err
		}
	}
	return nil
}
