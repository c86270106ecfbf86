package index

import (
	"fmt"
	"io"

	"github.com/go-kit/log"

	"github.com/arloliu/mirax/internal/binary"
	"github.com/arloliu/mirax/internal/options"
	"github.com/arloliu/mirax/section"
)

// Reader decodes records from one index file stream.
//
// Note: a Reader moves the cursor of the underlying stream and is NOT safe for concurrent use.
type Reader struct {
	br     *binary.Reader
	logger log.Logger
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithLogger sets the logger used for debug tracing of record lookups.
func WithLogger(logger log.Logger) ReaderOption {
	return options.NoError(func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	})
}

// NewReader creates a Reader over an index file. The stream is not closed by the Reader.
func NewReader(rs io.ReadSeeker, opts ...ReaderOption) *Reader {
	r := &Reader{
		br:     binary.NewReader(rs),
		logger: log.NewNopLogger(),
	}
	_ = options.Apply(r, opts...)

	return r
}

// Header reads the index header; idLen is the length of the configured slide ID.
func (r *Reader) Header(idLen int) (section.IndexHeader, error) {
	if err := r.br.Seek(0); err != nil {
		return section.IndexHeader{}, err
	}

	data, err := r.br.ReadExact(section.IndexVersionSize + idLen)
	if err != nil {
		return section.IndexHeader{}, fmt.Errorf("read index header: %w", err)
	}

	return section.ParseIndexHeader(data, idLen)
}
