package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"github.com/signadot/go-ojai/stream"
)

func ojaiMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Legacy && cfg.isSet("dialect") {
		return fmt.Errorf("%w: must specify at most one of -legacy -dialect", cli.ErrUsage)
	}
	if err := cfg.resolve(); err != nil {
		return err
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// eachDocument calls fn with a reader for every document in the named
// files, or in stdin when there are none. "-" also names stdin.
func (cfg *MainConfig) eachDocument(files []string, fn func(name string, r *stream.Reader) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		if err := cfg.eachInFile(file, fn); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *MainConfig) eachInFile(file string, fn func(string, *stream.Reader) error) error {
	var in io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", file, err)
		}
		defer f.Close()
		in = f
	}
	ds := stream.NewDocumentStream(in, cfg.readOpts()...)
	defer ds.Close()
	n := 0
	err := ds.ForEach(func(r *stream.Reader) error {
		n++
		theLog.Debug("document", "file", file, "n", n)
		return fn(file, r)
	})
	if err != nil {
		return fmt.Errorf("error reading %s: %w", file, err)
	}
	return nil
}
