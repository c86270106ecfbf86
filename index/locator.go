package index

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/section"
)

// Located is the outcome of resolving a record number.
type Located struct {
	// Empty is set when the list head carries EmptySectionMagic.
	Empty bool
	// Page is the position of the first data page; zero when Empty.
	Page int64
}

// Locate resolves a non-hierarchical record to its data page.
//
// It follows root → table base → list head. At the list head, EmptySectionMagic
// yields an Empty result without further reads; any other value than 0 is an
// *errs.UnexpectedValueError.
func (r *Reader) Locate(root int64, record int) (Located, error) {
	head, err := r.listHead(root, record)
	if err != nil {
		return Located{}, err
	}

	pageSize, err := r.br.ReadInt32()
	if err != nil {
		return Located{}, fmt.Errorf("read page size of record %d: %w", record, err)
	}

	if pageSize == section.EmptySectionMagic {
		level.Debug(r.logger).Log("msg", "record is empty", "root", root, "record", record)
		return Located{Empty: true}, nil
	}

	if pageSize != 0 {
		return Located{}, fmt.Errorf("page size of record %d: %w", record,
			&errs.UnexpectedValueError{Offset: head, Expected: 0, Actual: pageSize})
	}

	page, err := r.br.ReadInt32()
	if err != nil {
		return Located{}, fmt.Errorf("read page position of record %d: %w", record, err)
	}
	level.Debug(r.logger).Log("msg", "located record", "root", root, "record", record, "page", page)

	return Located{Page: int64(page)}, nil
}

// listHead seeks to the list head of record and returns its position.
// On return the cursor is at the list head.
func (r *Reader) listHead(root int64, record int) (int64, error) {
	if record < 0 {
		return 0, fmt.Errorf("negative record number %d: %w", record, errs.ErrUnexpectedValue)
	}

	if err := r.br.Seek(root); err != nil {
		return 0, err
	}

	tableBase, err := r.br.ReadInt32()
	if err != nil {
		return 0, fmt.Errorf("read table base at %d: %w", root, err)
	}

	if err := r.br.Seek(int64(tableBase) + int64(record)*section.TableEntrySize); err != nil {
		return 0, fmt.Errorf("record %d: %w", record, err)
	}

	head, err := r.br.ReadInt32()
	if err != nil {
		return 0, fmt.Errorf("read list head of record %d: %w", record, err)
	}

	if err := r.br.Seek(int64(head)); err != nil {
		return 0, fmt.Errorf("list head of record %d: %w", record, err)
	}

	return int64(head), nil
}
