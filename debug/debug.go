package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Decode  bool
	Encode  bool
	Project bool
	Stream  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("OJAI_DEBUG_DECODE")
	d.Encode = boolEnv("OJAI_DEBUG_ENCODE")
	d.Project = boolEnv("OJAI_DEBUG_PROJECT")
	d.Stream = boolEnv("OJAI_DEBUG_STREAM")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Project() bool {
	return d.Project
}
func Stream() bool {
	return d.Stream
}
