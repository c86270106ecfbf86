package index

import (
	"fmt"

	"github.com/arloliu/mirax/section"
)

// Entry is the byte range of one stored object in a data file.
type Entry struct {
	// FileIndex selects the data file from the DATAFILE list.
	FileIndex int
	// Position is the byte offset in the data file.
	Position uint32
	// Length is the byte length.
	Length uint32
}

// End returns the offset just past the entry.
func (e Entry) End() int64 {
	return int64(e.Position) + int64(e.Length)
}

// NonHier decodes a non-hierarchical record.
//
// Returns:
//   - Entry: the record's byte range
//   - bool: false if the section is empty (no further reads are made)
//   - error: structural errors; the record must not be trusted
func (r *Reader) NonHier(root int64, record int) (Entry, bool, error) {
	loc, err := r.Locate(root, record)
	if err != nil {
		return Entry{}, false, err
	}

	if loc.Empty {
		return Entry{}, false, nil
	}

	if err := r.br.Seek(loc.Page); err != nil {
		return Entry{}, false, fmt.Errorf("data page of record %d: %w", record, err)
	}

	if err := r.readNonHierPrologue(); err != nil {
		return Entry{}, false, fmt.Errorf("prologue of record %d at %d: %w", record, loc.Page, err)
	}

	position, err := r.br.ReadUint32()
	if err != nil {
		return Entry{}, false, fmt.Errorf("read position of record %d: %w", record, err)
	}

	length, err := r.br.ReadUint32()
	if err != nil {
		return Entry{}, false, fmt.Errorf("read length of record %d: %w", record, err)
	}

	fileIndex, err := r.br.ReadInt32()
	if err != nil {
		return Entry{}, false, fmt.Errorf("read file index of record %d: %w", record, err)
	}

	return Entry{FileIndex: int(fileIndex), Position: position, Length: length}, true, nil
}

// readNonHierPrologue checks count=1, skips the placeholder, checks two zero fields.
func (r *Reader) readNonHierPrologue() error {
	if err := r.br.ExpectInt32(section.NonHierPageCount); err != nil {
		return err
	}

	if _, err := r.br.ReadInt32(); err != nil {
		return err
	}

	if err := r.br.ExpectInt32(0); err != nil {
		return err
	}

	return r.br.ExpectInt32(0)
}
