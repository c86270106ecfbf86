package mirax

import (
	"fmt"
	"path/filepath"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/index"
	"github.com/arloliu/mirax/internal/binary"
)

// Record is a decoded non-hierarchical record.
type Record struct {
	// Number is the record number in the non-hierarchical table.
	Number int
	// Empty is set when the section holds no data.
	Empty bool
	index.Entry
	// DataFile is the name of the data file holding the entry; empty when Empty.
	DataFile string
}

// decodeRecord reads one non-hierarchical record and resolves its data file.
func (s *Slide) decodeRecord(r *index.Reader, number int) (Record, error) {
	entry, ok, err := r.NonHier(s.header.NonHierRoot(), number)
	if err != nil {
		return Record{}, err
	}

	if !ok {
		return Record{Number: number, Empty: true}, nil
	}

	name, err := s.dataFile(entry.FileIndex)
	if err != nil {
		return Record{}, fmt.Errorf("non-hierarchical record %d: %w", number, err)
	}

	return Record{Number: number, Entry: entry, DataFile: name}, nil
}

func (s *Slide) dataFile(fileIndex int) (string, error) {
	if fileIndex < 0 || fileIndex >= len(s.dataFiles) {
		return "", fmt.Errorf("file index %d of %d data files: %w", fileIndex, len(s.dataFiles), errs.ErrFileIndexOutOfRange)
	}

	return s.dataFiles[fileIndex], nil
}

// ReadRange returns the bytes an entry refers to.
//
// Returns:
//   - []byte: exactly e.Length bytes
//   - error: errs.ErrFileIndexOutOfRange for an unknown data file,
//     *errs.TruncatedReadError if the range extends past the end of the file
func (s *Slide) ReadRange(e index.Entry) ([]byte, error) {
	name, err := s.dataFile(e.FileIndex)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat data file %s: %w", name, err)
	}

	if e.End() > info.Size() {
		got := max(info.Size()-int64(e.Position), 0)
		return nil, fmt.Errorf("data file %s: %w", name,
			&errs.TruncatedReadError{Offset: int64(e.Position), Want: int(e.Length), Got: int(got)})
	}

	br := binary.NewReader(f)
	if err := br.Seek(int64(e.Position)); err != nil {
		return nil, err
	}

	data, err := br.ReadExact(int(e.Length))
	if err != nil {
		return nil, fmt.Errorf("data file %s: %w", name, err)
	}

	if data == nil {
		data = []byte{}
	}

	return data, nil
}
