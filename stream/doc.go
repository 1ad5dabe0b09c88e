// Package stream reads and writes documents as a sequence of events over
// tagged JSON.
//
// Reader turns tokens into events, folding an object such as
//
//	{"$numberLong": 42}
//
// into a single LONG event. Builder does the reverse, and checks that
// every Put happens inside a map and every Add inside an array. Both keep
// their position in a State, the stack of open containers.
//
// A document is always a map. DocumentStream reads several documents
// from one source, one Reader at a time.
package stream
