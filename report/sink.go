// Package report renders decoded slide structure.
//
// A Sink receives key/value pairs and nested groups. TextSink prints the
// classic aligned dump; TreeSink builds a YAML document of the same shape.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sink accepts report entries.
type Sink interface {
	// Put adds one key/value pair to the current group.
	Put(key string, value any)
	// Child opens a nested group and returns the sink that writes into it.
	Child(name string) Sink
}

// FormatValue renders a scalar the way TextSink prints it.
// Finite floats always carry a fractional part, so 0 prints as "0.0".
func FormatValue(value any) string {
	switch v := value.(type) {
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsInf(v, 0) && !math.IsNaN(v) && !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
