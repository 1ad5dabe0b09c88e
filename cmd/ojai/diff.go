package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/go-ojai/stream"
	"github.com/signadot/go-ojai/value"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := canonicalFile(args[0])
	if err != nil {
		return err
	}
	b, err := canonicalFile(args[1])
	if err != nil {
		return err
	}
	if value.JSONEqual(a, b) {
		return nil
	}
	lines := diffLines(string(a), string(b))
	colors := newEventColors(cfg.colors(cc.Out))
	if err := writeDiff(cc.Out, lines, cfg.Context, colors); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// canonicalFile reads the single document in file and re-encodes it
// indented, one field or element per line.
func canonicalFile(file string) ([]byte, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	m, err := stream.Unmarshal(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return stream.Marshal(m, stream.WithIndent("  "))
}

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

func diffLines(a, b string) []diffLine {
	dmp := diffmatchpatch.New()
	ca, cb, index := dmp.DiffLinesToChars(a+"\n", b+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), index)
	var res []diffLine
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			res = append(res, diffLine{op: d.Type, text: strings.TrimSuffix(line, "\n")})
		}
	}
	return res
}

// writeDiff writes lines with -/+ markers, keeping at most context
// unchanged lines around each change. A negative context keeps all of
// them.
func writeDiff(w io.Writer, lines []diffLine, context int, colors *eventColors) error {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			keep[i] = context < 0
			continue
		}
		keep[i] = true
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	gap := false
	for i, l := range lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap {
			if _, err := fmt.Fprintln(w, colors.event("...")); err != nil {
				return err
			}
			gap = false
		}
		var s string
		switch l.op {
		case diffmatchpatch.DiffDelete:
			s = colors.path("-%s", l.text)
		case diffmatchpatch.DiffInsert:
			s = colors.value("+%s", l.text)
		default:
			s = " " + l.text
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	if gap {
		_, err := fmt.Fprintln(w, colors.event("..."))
		return err
	}
	return nil
}
