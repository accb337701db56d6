package pydb

type PageIndex uint32

// Page is a cached page buffer. Only the first UsablePageSize bytes hold
// row slots, the tail of the buffer is never written to the file.
type Page struct {
	Index PageIndex
	Data  [PageSize]byte
}

func (p *Page) slot(offset uint32) []byte {
	return p.Data[offset : offset+RowSize]
}
