package section

// NonHierPage is the single-record data page of a non-hierarchical section.
//
// The decoder checks the prologue field by field (Count must be 1, the two
// reserved fields must be 0) so a corrupt page reports the first bad offset.
type NonHierPage struct {
	Placeholder int32
	Position    uint32
	Length      uint32
	FileIndex   int32
}

// Bytes serializes the page including its fixed prologue.
func (p NonHierPage) Bytes() []byte {
	b := make([]byte, 0, NonHierPageSize)
	b = engine.AppendUint32(b, NonHierPageCount)
	b = engine.AppendUint32(b, uint32(p.Placeholder))
	b = engine.AppendUint32(b, 0)
	b = engine.AppendUint32(b, 0)
	b = engine.AppendUint32(b, p.Position)
	b = engine.AppendUint32(b, p.Length)
	b = engine.AppendUint32(b, uint32(p.FileIndex))

	return b
}
