// Package token adapts github.com/go-json-experiment/json/jsontext to the
// needs of the streaming document reader and writer.
//
// A Source adds a small push-back buffer on top of a jsontext.Decoder so
// that the reader can look at an object's first member, decide it is not an
// extended type tag, and put the tokens back. A Sink owns a
// jsontext.Encoder and the byte sink below it.
package token
