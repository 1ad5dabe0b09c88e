package main

import (
	"github.com/scott-cotton/cli"
	"github.com/signadot/go-ojai/stream"
)

func canon(cfg *CanonConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Canon.Parse(cc, args)
	if err != nil {
		cfg.Canon.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return cfg.eachDocument(args, func(_ string, r *stream.Reader) error {
		return writeDocument(cfg.MainConfig, cc.Out, r)
	})
}
