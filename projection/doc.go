// Package projection filters a stream of document events down to a set of
// wanted field paths in a single pass.
//
// A Tree holds the union of the wanted paths and is immutable, so one Tree
// can serve many readers at once. Each reader gets its own Projector, a
// small cursor into the Tree. Reader wraps a stream.DocumentReader and
// skips whatever the Projector rejects:
//
//	tree := projection.NewTree(fieldpath.MustParse("a.b"), fieldpath.MustParse("d"))
//	r := projection.NewReader(stream.NewReader(in), projection.NewProjector(tree))
//
// Array indexes in wanted paths do not select single elements: a[2].b
// wants b in every element of a.
package projection
