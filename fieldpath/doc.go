// Package fieldpath provides parsed, immutable addresses into nested
// documents.
//
// A FieldPath is a chain of segments. A segment is either a field name or an
// array index:
//
//	a.b[3].`odd name`.c
//
// Names compare case-insensitively; quoting and escaping only affect how a
// path is printed. Parsed paths are cached by their source text, so parsing
// the same literal twice returns the same *FieldPath.
//
// # Usage
//
//	fp, err := fieldpath.Parse("users[0].name")
//	if err != nil {
//	    return err
//	}
//	email := fp.Parent().Child("email") // users[0].email
//	for seg := range fp.Segments() {
//	    ...
//	}
//
// # Grammar
//
//	path    = ( name | index ) { "." name | index }
//	name    = bare | "`" quoted "`" | `"` quoted `"`
//	index   = "[" [ digits ] "]"
//
// A bare name may contain any character except '.', '[', ']', quote
// characters, '\' and control characters; those may still appear escaped
// with a backslash. An empty index "[]" is an unspecified index: a
// placeholder used while building paths and by projections to mean "every
// element".
package fieldpath
