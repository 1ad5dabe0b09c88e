package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "config",
			Description: "yaml file with default settings",
			Type:        cli.NamedFuncOpt(cfg.configOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "dialect",
			Description: "tag dialect for output: ojai, argonaut",
			Type:        cli.NamedFuncOpt(cfg.dialectOpt, "(dialect)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ojai").
		WithSynopsis("ojai [opts] command [opts]").
		WithDescription("ojai reads, writes and projects tagged json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ojaiMain(cfg, cc, args)
		}).
		WithSubs(
			EventsCommand(cfg),
			ProjectCommand(cfg),
			CanonCommand(cfg),
			DiffCommand(cfg),
			PathCommand(cfg))
}

func EventsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EventsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Events, "events").
		WithAliases("e", "ev").
		WithSynopsis("events [files]").
		WithDescription("list the reader events of documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return events(cfg, cc, args)
		})
}

func ProjectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ProjectConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		&cli.Opt{
			Name:        "f",
			Description: "field path to keep (repeatable)",
			Type:        cli.NamedFuncOpt(cfg.pathOpt, "(path)"),
		},
	}
	return cli.NewCommandAt(&cfg.Project, "project").
		WithAliases("p", "pr").
		WithSynopsis("project -f path [-f path2]... [files]").
		WithDescription("keep only the given field paths of documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return project(cfg, cc, args)
		})
}

func CanonCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CanonConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Canon, "canon").
		WithAliases("c").
		WithSynopsis("canon [files]").
		WithDescription("re-encode documents in canonical form").
		WithRun(func(cc *cli.Context, args []string) error {
			return canon(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-c n] a b").
		WithDescription("compare two documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PathCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PathConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Path, "path").
		WithSynopsis("path [-q] [-j] <path>...").
		WithDescription("parse and print field paths").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return path(cfg, cc, args)
		})
}
