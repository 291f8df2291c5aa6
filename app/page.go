package main

import "encoding/binary"

// PageKind identifies the shape of a B-tree page.
type PageKind uint8

const (
	IndexInterior PageKind = 0x02
	TableInterior PageKind = 0x05
	IndexLeaf     PageKind = 0x0A
	TableLeaf     PageKind = 0x0D
)

func (k PageKind) IsInterior() bool { return k == IndexInterior || k == TableInterior }
func (k PageKind) IsLeaf() bool     { return k == IndexLeaf || k == TableLeaf }
func (k PageKind) IsTable() bool    { return k == TableInterior || k == TableLeaf }
func (k PageKind) IsIndex() bool    { return k == IndexInterior || k == IndexLeaf }

// PageHeader is the 8- or 12-byte B-tree page header.
type PageHeader struct {
	Kind                PageKind
	FreeBlock           uint16
	CellCount           uint16
	CellContentStart    int // 0 in the header means 65536
	FragmentedFreeBytes uint8
	RightChildPage      uint32 // interior pages only
}

func (h PageHeader) headerSize() int {
	if h.Kind.IsInterior() {
		return 12
	}
	return 8
}

// Page is a fully-read, lazily-decoded page buffer. bytes is the
// entire page (header-prefix included for page 1); prefix is how many
// bytes precede the B-tree header (100 for page 1, 0 otherwise).
type Page struct {
	bytes        []byte
	prefix       int
	Head         PageHeader
	cellPointers []uint16
}

// decodePage parses the page header and cell-pointer array out of a
// raw page buffer. headerPrefix is 100 for page 1 (which shares its
// budget with the 100-byte file header), 0 for every other page.
func decodePage(buf []byte, headerPrefix int) (*Page, error) {
	if len(buf) < headerPrefix+8 {
		return nil, newError("decode_page", ErrTruncated, map[string]any{"have": len(buf)})
	}

	h := buf[headerPrefix:]
	kind := PageKind(h[0])
	if !kind.IsInterior() && !kind.IsLeaf() {
		return nil, newError("decode_page", ErrMalformed, map[string]any{"kind": h[0]})
	}

	header := PageHeader{
		Kind:                kind,
		FreeBlock:           binary.BigEndian.Uint16(h[1:3]),
		CellCount:           binary.BigEndian.Uint16(h[3:5]),
		FragmentedFreeBytes: h[7],
	}
	contentStart := binary.BigEndian.Uint16(h[5:7])
	if contentStart == 0 {
		header.CellContentStart = 65536
	} else {
		header.CellContentStart = int(contentStart)
	}

	ptrOffset := headerPrefix + 8
	if kind.IsInterior() {
		if len(buf) < headerPrefix+12 {
			return nil, newError("decode_page", ErrTruncated, nil)
		}
		header.RightChildPage = binary.BigEndian.Uint32(buf[headerPrefix+8 : headerPrefix+12])
		ptrOffset = headerPrefix + 12
	}

	need := ptrOffset + int(header.CellCount)*2
	if len(buf) < need {
		return nil, newError("decode_page", ErrTruncated, map[string]any{"need": need, "have": len(buf)})
	}

	pointers := make([]uint16, header.CellCount)
	for i := range pointers {
		off := ptrOffset + i*2
		pointers[i] = binary.BigEndian.Uint16(buf[off : off+2])
	}

	return &Page{bytes: buf, prefix: headerPrefix, Head: header, cellPointers: pointers}, nil
}

// TableLeafCell is a table b-tree leaf cell: a row-id and its record.
type TableLeafCell struct {
	RowID  int64
	Record Record
}

// TableInteriorCell is a table b-tree interior cell: a child page
// pointer and the largest row-id reachable beneath it.
type TableInteriorCell struct {
	LeftChildPage uint32
	RowID         int64
}

// Record is a decoded row payload: one Value per serial-type code in
// record order.
type Record struct {
	Values []Value
}

// TableLeafCells decodes every cell pointer on a table-leaf page.
func (p *Page) TableLeafCells() ([]TableLeafCell, error) {
	cells := make([]TableLeafCell, 0, len(p.cellPointers))
	for _, ptr := range p.cellPointers {
		cell, err := p.decodeTableLeafCell(int(ptr))
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func (p *Page) decodeTableLeafCell(offset int) (TableLeafCell, error) {
	buf := p.bytes
	payloadLen, n, err := readVarint(buf, offset)
	if err != nil {
		return TableLeafCell{}, err
	}
	offset += n

	rowID, n, err := readVarint(buf, offset)
	if err != nil {
		return TableLeafCell{}, err
	}
	offset += n

	if offset+int(payloadLen) > len(buf) {
		return TableLeafCell{}, newError("decode_table_leaf_cell", ErrTruncated, map[string]any{
			"need": offset + int(payloadLen), "have": len(buf),
		})
	}
	payload := buf[offset : offset+int(payloadLen)]

	record, err := decodeRecord(payload)
	if err != nil {
		return TableLeafCell{}, err
	}

	return TableLeafCell{RowID: rowID, Record: record}, nil
}

// TableInteriorCells decodes every cell pointer on a table-interior page.
func (p *Page) TableInteriorCells() ([]TableInteriorCell, error) {
	cells := make([]TableInteriorCell, 0, len(p.cellPointers))
	for _, ptr := range p.cellPointers {
		offset := int(ptr)
		if offset+4 > len(p.bytes) {
			return nil, newError("decode_table_interior_cell", ErrTruncated, nil)
		}
		child := binary.BigEndian.Uint32(p.bytes[offset : offset+4])
		rowID, _, err := readVarint(p.bytes, offset+4)
		if err != nil {
			return nil, err
		}
		cells = append(cells, TableInteriorCell{LeftChildPage: child, RowID: rowID})
	}
	return cells, nil
}

// decodeRecord decodes the record format: a varint header_size,
// header_size - len(header_size) bytes of varint serial types, then
// the concatenated value payloads in the same order.
func decodeRecord(payload []byte) (Record, error) {
	headerSize, n, err := readVarint(payload, 0)
	if err != nil {
		return Record{}, err
	}

	offset := n
	headerEnd := int(headerSize)
	if headerEnd > len(payload) {
		return Record{}, newError("decode_record", ErrTruncated, nil)
	}

	var types []Type
	for offset < headerEnd {
		code, n, err := readVarint(payload, offset)
		if err != nil {
			return Record{}, err
		}
		types = append(types, typeFromSerial(code))
		offset += n
	}

	values := make([]Value, len(types))
	for i, t := range types {
		if offset+t.Payload > len(payload) {
			return Record{}, newError("decode_record", ErrTruncated, map[string]any{
				"value_index": i, "need": offset + t.Payload, "have": len(payload),
			})
		}
		v, err := decodeValue(payload[offset:offset+t.Payload], t)
		if err != nil {
			return Record{}, err
		}
		values[i] = v
		offset += t.Payload
	}

	return Record{Values: values}, nil
}
