package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/go-ojai/fieldpath"
	"github.com/signadot/go-ojai/projection"
	"github.com/signadot/go-ojai/stream"
)

func project(cfg *ProjectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Project.Parse(cc, args)
	if err != nil {
		cfg.Project.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	paths := cfg.Paths
	if len(paths) == 0 && cfg.File != nil {
		paths, err = fieldpath.ParseAll(cfg.File.Paths...)
		if err != nil {
			return fmt.Errorf("%w: config paths: %w", cli.ErrUsage, err)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: project requires at least one -f path", cli.ErrUsage)
	}
	tree := projection.NewTree(paths...)
	theLog.Debug("projection", "tree", tree.String())
	base := projection.NewProjector(tree)
	return cfg.eachDocument(args, func(_ string, r *stream.Reader) error {
		pr := projection.NewReader(r, base.CloneWithSharedTree())
		return writeDocument(cfg.MainConfig, cc.Out, pr)
	})
}

// writeDocument copies one document from src to w on its own line.
func writeDocument(cfg *MainConfig, w io.Writer, src stream.DocumentReader) error {
	b := stream.NewBuilder(w, cfg.writeOpts()...)
	if err := stream.Copy(b, src); err != nil {
		b.Close()
		return err
	}
	return b.Close()
}
