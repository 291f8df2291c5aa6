package main

import "testing"

func TestTypeFromSerial(t *testing.T) {
	tests := []struct {
		code       int64
		wantKind   Kind
		wantPayload int
	}{
		{0, KindNull, 0},
		{1, KindInt, 1},
		{2, KindInt, 2},
		{3, KindInt, 3},
		{4, KindInt, 4},
		{5, KindInt, 6},
		{6, KindInt, 8},
		{7, KindFloat64, 8},
		{8, KindZero, 0},
		{9, KindOne, 0},
		{10, KindReserved, 0},
		{11, KindReserved, 0},
		{12, KindBlob, 0},
		{14, KindBlob, 1},
		{13, KindText, 0},
		{15, KindText, 1},
	}
	for _, tt := range tests {
		got := typeFromSerial(tt.code)
		if got.Kind != tt.wantKind || got.Payload != tt.wantPayload {
			t.Errorf("typeFromSerial(%d) = %+v, want kind=%v payload=%d", tt.code, got, tt.wantKind, tt.wantPayload)
		}
	}
}

func TestDecodeValue(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		v, err := decodeValue(nil, Type{Kind: KindNull})
		if err != nil {
			t.Fatal(err)
		}
		if v.Tag != KindNull {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("zero and one are constant", func(t *testing.T) {
		v, err := decodeValue(nil, Type{Kind: KindZero})
		if err != nil || v.Int != 0 {
			t.Errorf("zero: %+v, %v", v, err)
		}
		v, err = decodeValue(nil, Type{Kind: KindOne})
		if err != nil || v.Int != 1 {
			t.Errorf("one: %+v, %v", v, err)
		}
	})

	t.Run("reserved is malformed", func(t *testing.T) {
		_, err := decodeValue(nil, Type{Kind: KindReserved})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("int", func(t *testing.T) {
		v, err := decodeValue([]byte{0x01, 0x02}, Type{Kind: KindInt, Payload: 2})
		if err != nil {
			t.Fatal(err)
		}
		if v.Int != 0x0102 {
			t.Errorf("got %d", v.Int)
		}
	})

	t.Run("float", func(t *testing.T) {
		v, err := decodeValue([]byte{0x3F, 0xF8, 0, 0, 0, 0, 0, 0}, Type{Kind: KindFloat64, Payload: 8})
		if err != nil {
			t.Fatal(err)
		}
		if v.F64 != 1.5 {
			t.Errorf("got %v", v.F64)
		}
	})

	t.Run("text", func(t *testing.T) {
		v, err := decodeValue([]byte("hi"), Type{Kind: KindText, Payload: 2})
		if err != nil {
			t.Fatal(err)
		}
		if v.Text != "hi" {
			t.Errorf("got %q", v.Text)
		}
	})

	t.Run("invalid utf8 text rejected", func(t *testing.T) {
		_, err := decodeValue([]byte{0xFF, 0xFE}, Type{Kind: KindText, Payload: 2})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("blob copies the input", func(t *testing.T) {
		src := []byte{1, 2, 3}
		v, err := decodeValue(src, Type{Kind: KindBlob, Payload: 3})
		if err != nil {
			t.Fatal(err)
		}
		src[0] = 0xFF
		if v.Blob[0] != 1 {
			t.Error("decodeValue did not copy the blob payload")
		}
	})
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", NullValue(), "null"},
		{"int", IntValue(42), "42"},
		{"float", FloatValue(1.5), "1.5"},
		{"text", TextValue("hello"), "hello"},
		{"blob", BlobValue([]byte{1, 2, 3}), "<blob 3 bytes>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same int", IntValue(5), IntValue(5), true},
		{"different int", IntValue(5), IntValue(6), false},
		{"int vs float not coerced", IntValue(5), FloatValue(5), false},
		{"same text", TextValue("a"), TextValue("a"), true},
		{"different text", TextValue("a"), TextValue("b"), false},
		{"same blob", BlobValue([]byte{1, 2}), BlobValue([]byte{1, 2}), true},
		{"different blob length", BlobValue([]byte{1, 2}), BlobValue([]byte{1}), false},
		{"different blob contents", BlobValue([]byte{1, 2}), BlobValue([]byte{1, 3}), false},
		{"null equals null", NullValue(), NullValue(), true},
		{"null vs int", NullValue(), IntValue(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"ascii", []byte("hello"), true},
		{"two byte", []byte{0xC3, 0xA9}, true},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, true},
		{"truncated multibyte", []byte{0xC3}, false},
		{"bad continuation", []byte{0xC3, 0x28}, false},
		{"stray continuation byte", []byte{0x80}, false},
		{"empty", []byte{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidUTF8(tt.data); got != tt.want {
				t.Errorf("isValidUTF8(% x) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
