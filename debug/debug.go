// Package debug provides env-gated trace logging for the delta algorithms.
//
// Each gate is read once at init from a boolean environment variable:
//
//	DELTA_DEBUG_DIFF     trace Diff calls
//	DELTA_DEBUG_COMBINE  trace Combine calls
//	DELTA_DEBUG_APPLY    trace Apply calls
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Diff    bool
	Combine bool
	Apply   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("DELTA_DEBUG_DIFF")
	d.Combine = boolEnv("DELTA_DEBUG_COMBINE")
	d.Apply = boolEnv("DELTA_DEBUG_APPLY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Combine() bool {
	return d.Combine
}
func Apply() bool {
	return d.Apply
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
