package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/go-ojai/stream"
)

type eventColors struct {
	event, path, value func(string, ...any) string
}

func newEventColors(on bool) *eventColors {
	if !on {
		plain := fmt.Sprintf
		return &eventColors{event: plain, path: plain, value: plain}
	}
	ev := color.New(color.FgCyan)
	p := color.RGB(196, 168, 128)
	v := color.RGB(128, 216, 236)
	for _, c := range []*color.Color{ev, p, v} {
		c.EnableColor()
	}
	return &eventColors{
		event: ev.SprintfFunc(),
		path:  p.SprintfFunc(),
		value: v.SprintfFunc(),
	}
}

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		cfg.Events.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	colors := newEventColors(cfg.colors(cc.Out))
	i := 0
	return cfg.eachDocument(args, func(_ string, r *stream.Reader) error {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		i++
		return writeEvents(cc.Out, r, colors)
	})
}

func writeEvents(w io.Writer, r stream.DocumentReader, colors *eventColors) error {
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		indent := strings.Repeat("  ", eventIndent(ev, r.Depth()))
		line := indent + colors.event("%s", ev)
		if p := r.Path(); !p.IsEmpty() {
			line += " " + colors.path("%s", p)
		}
		if ev.IsScalar() {
			v, err := r.Value()
			if err != nil {
				return err
			}
			line += " " + colors.value("%v", v)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
}

// eventIndent is the nesting level at which ev is shown: a container's
// start and end line up with its siblings.
func eventIndent(ev stream.EventType, depth int) int {
	if ev.IsStart() {
		return depth - 1
	}
	return depth
}
