package fieldpath

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 1000

var cache = newCache(cacheSize)

func newCache(n int) *lru.Cache[string, *FieldPath] {
	c, err := lru.New[string, *FieldPath](n)
	if err != nil {
		panic(err)
	}
	return c
}
