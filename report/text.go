package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/arloliu/mirax/internal/options"
)

// keyWidth is the column width of keys, including the trailing colon.
const keyWidth = 30

// TextSink writes an indented text report, two spaces per nesting level.
//
//	Slide version:                 01.02
//	Associated images:
//	  macro:
//	    File:                        Data0000.dat
type TextSink struct {
	w      io.Writer
	indent string
	header *color.Color
	err    *error
}

// TextOption configures a TextSink.
type TextOption = options.Option[*TextSink]

// WithColor forces bold group headers on or off. By default color follows
// whether stdout is a terminal.
func WithColor(enabled bool) TextOption {
	return options.NoError(func(s *TextSink) {
		if enabled {
			s.header.EnableColor()
		} else {
			s.header.DisableColor()
		}
	})
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer, opts ...TextOption) *TextSink {
	s := &TextSink{
		w:      w,
		header: color.New(color.Bold),
		err:    new(error),
	}
	_ = options.Apply(s, opts...)

	return s
}

// Put writes "key: value" with the key padded to a fixed column.
func (s *TextSink) Put(key string, value any) {
	s.write(fmt.Sprintf("%s%-*s %s\n", s.indent, keyWidth, key+":", FormatValue(value)))
}

// Child writes a group header and returns a sink indented one level deeper.
func (s *TextSink) Child(name string) Sink {
	s.write(s.indent + s.header.Sprint(name+":") + "\n")

	return &TextSink{
		w:      s.w,
		indent: s.indent + strings.Repeat(" ", 2),
		header: s.header,
		err:    s.err,
	}
}

// Err returns the first write error of this sink or any of its children.
func (s *TextSink) Err() error {
	return *s.err
}

func (s *TextSink) write(line string) {
	if *s.err != nil {
		return
	}

	if _, err := io.WriteString(s.w, line); err != nil {
		*s.err = err
	}
}
