package debug

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "string", in: "a.b", want: "a.b"},
		{name: "int", in: 3, want: 3},
		{name: "strings", in: []string{"a", "b.c"}, want: "[\n   |  \"a\",\n   |  \"b.c\"\n   |]"},
		{name: "empty strings", in: []string{}, want: "[]"},
		{name: "map", in: map[string]any{"a": 1}, want: "{\n   |  \"a\": 1\n   |}"},
		{name: "any slice", in: []any{true}, want: "[\n   |  true\n   |]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render([]any{tt.in})
			if diff := cmp.Diff(tt.want, got[0]); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
