package main

import (
	"math"
	"strings"
)

// readVarint decodes a SQLite-format big-endian varint starting at
// offset. Bytes 0..7 carry 7 payload bits under a continuation flag in
// the top bit; if the 9th byte is reached it contributes all 8 of its
// bits, with no continuation flag of its own — this is what lets a
// varint address the full 64-bit rowid space in exactly 9 bytes.
//
// Returns the decoded value and the number of bytes consumed. A
// zero byte count signals ErrTruncated: the buffer ended before a
// terminating byte was found.
func readVarint(data []byte, offset int) (value int64, n int, err error) {
	var result uint64
	for i := 0; i < 9; i++ {
		if offset+i >= len(data) {
			return 0, 0, newError("read_varint", ErrTruncated, map[string]any{
				"offset": offset, "byte_index": i,
			})
		}
		b := data[offset+i]
		if i == 8 {
			result = (result << 8) | uint64(b)
			return int64(result), i + 1, nil
		}
		result = (result << 7) | uint64(b&0x7F)
		if b&0x80 == 0 {
			return int64(result), i + 1, nil
		}
	}
	// unreachable: the loop above always returns by i==8
	return int64(result), 9, nil
}

// readBigEndianInt decodes a two's-complement big-endian integer of
// length 1, 2, 3, 4, 6, or 8 bytes, sign-extended to int64. A single
// byte is the one exception: it is taken as unsigned, per this
// format's own convention for the 1-byte serial type.
func readBigEndianInt(data []byte) int64 {
	if len(data) == 1 {
		return int64(data[0])
	}

	var buf [8]byte
	n := len(data)
	copy(buf[8-n:], data)

	// sign-extend: if the sign bit of the most significant payload
	// byte is set, fill the leading bytes with 0xFF.
	if n > 0 && data[0]&0x80 != 0 {
		for i := 0; i < 8-n; i++ {
			buf[i] = 0xFF
		}
	}

	var v uint64
	for _, b := range buf {
		v = (v << 8) | uint64(b)
	}
	return int64(v)
}

// readFloat64 decodes 8 big-endian bytes as an IEEE-754 double.
func readFloat64(data []byte) float64 {
	var bits uint64
	for _, b := range data {
		bits = (bits << 8) | uint64(b)
	}
	return math.Float64frombits(bits)
}

// extractColumnNames is a pragmatic, non-tokenizing approximation of a
// CREATE TABLE parser: find the first '(', take the substring up to
// its matching top-level ')', split on commas, and take the leading
// identifier run of each segment. It does not understand quoting, so a
// quoted comma inside a column constraint would be mis-split; this is
// adequate for the schema shapes this engine targets.
func extractColumnNames(createTableSQL string) []string {
	open := strings.IndexByte(createTableSQL, '(')
	if open < 0 {
		return nil
	}

	depth := 0
	close := -1
	for i := open; i < len(createTableSQL); i++ {
		switch createTableSQL[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				close = i
			}
		}
		if close >= 0 {
			break
		}
	}
	if close < 0 {
		return nil
	}

	body := createTableSQL[open+1 : close]
	segments := strings.Split(body, ",")
	names := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimLeft(seg, " \t\n\r")
		end := 0
		for end < len(seg) && seg[end] > ' ' && seg[end] < 0x7F {
			end++
		}
		if end == 0 {
			continue
		}
		names = append(names, seg[:end])
	}
	return names
}
