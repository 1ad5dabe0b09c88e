package debug

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Logf writes to stderr. Maps and slices are rendered as indented JSON.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, render(args)...)
}

func render(args []any) []any {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, []string:
			d, err := json.Marshal(a, jsontext.WithIndentPrefix("   |"), jsontext.WithIndent("  "))
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	return args
}
