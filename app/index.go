package main

import "encoding/binary"

// IndexLeafCell and IndexInteriorCell are decoded only structurally;
// index cells are never consumed by query execution in this engine.
// They let tests inspect an index page's shape; nothing in Schema or
// the query layer calls them, and no lookup is ever planned through an
// index (see DESIGN.md).

type IndexLeafCell struct {
	Record Record // last value is conventionally the indexed rowid
}

type IndexInteriorCell struct {
	LeftChildPage uint32
	Record        Record
}

// IndexLeafCells decodes every cell on an index-leaf page: a varint
// payload length followed by a record (the indexed columns plus the
// trailing rowid).
func (p *Page) IndexLeafCells() ([]IndexLeafCell, error) {
	cells := make([]IndexLeafCell, 0, len(p.cellPointers))
	for _, ptr := range p.cellPointers {
		offset := int(ptr)
		payloadLen, n, err := readVarint(p.bytes, offset)
		if err != nil {
			return nil, err
		}
		offset += n
		if offset+int(payloadLen) > len(p.bytes) {
			return nil, newError("decode_index_leaf_cell", ErrTruncated, nil)
		}
		record, err := decodeRecord(p.bytes[offset : offset+int(payloadLen)])
		if err != nil {
			return nil, err
		}
		cells = append(cells, IndexLeafCell{Record: record})
	}
	return cells, nil
}

// IndexInteriorCells decodes every cell on an index-interior page: a
// 4-byte child page number, a varint payload length, then a record.
func (p *Page) IndexInteriorCells() ([]IndexInteriorCell, error) {
	cells := make([]IndexInteriorCell, 0, len(p.cellPointers))
	for _, ptr := range p.cellPointers {
		offset := int(ptr)
		if offset+4 > len(p.bytes) {
			return nil, newError("decode_index_interior_cell", ErrTruncated, nil)
		}
		child := binary.BigEndian.Uint32(p.bytes[offset : offset+4])
		offset += 4

		payloadLen, n, err := readVarint(p.bytes, offset)
		if err != nil {
			return nil, err
		}
		offset += n
		if offset+int(payloadLen) > len(p.bytes) {
			return nil, newError("decode_index_interior_cell", ErrTruncated, nil)
		}
		record, err := decodeRecord(p.bytes[offset : offset+int(payloadLen)])
		if err != nil {
			return nil, err
		}
		cells = append(cells, IndexInteriorCell{LeftChildPage: child, Record: record})
	}
	return cells, nil
}
