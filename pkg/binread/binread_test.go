package binread

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestUint32(t *testing.T) {
	t.Run("LittleEndian", func(t *testing.T) {
		r := New([]byte{0x78, 0x56, 0x34, 0x12})
		if v := r.Uint32(); v != 0x12345678 {
			t.Errorf("expected 0x12345678, got 0x%x", v)
		}
		if !r.Exhausted() {
			t.Error("expected reader to be exhausted")
		}
	})

	t.Run("ShortReadReturnsZero", func(t *testing.T) {
		r := New([]byte{0x01, 0x02, 0x03})
		if v := r.Uint32(); v != 0 {
			t.Errorf("expected 0 on short read, got %d", v)
		}
	})
}

func TestString(t *testing.T) {
	t.Run("LengthPrefixed", func(t *testing.T) {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, uint32(5))
		buf.WriteString("hello")
		buf.WriteString("trailing")

		r := New(buf.Bytes())
		if s := r.String(); s != "hello" {
			t.Errorf("expected %q, got %q", "hello", s)
		}
		if r.Pos() != 9 {
			t.Errorf("expected position 9, got %d", r.Pos())
		}
	})

	t.Run("OverrunReturnsEmpty", func(t *testing.T) {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, uint32(100))
		buf.WriteString("short")

		r := New(buf.Bytes())
		if s := r.String(); s != "" {
			t.Errorf("expected empty string on overrun, got %q", s)
		}
	})

	t.Run("InvalidUTF8Replaced", func(t *testing.T) {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, uint32(3))
		buf.Write([]byte{'a', 0xff, 'b'})

		r := New(buf.Bytes())
		s := r.String()
		if s == "" {
			t.Fatal("expected lossy string, got empty")
		}
		if s[0] != 'a' || s[len(s)-1] != 'b' {
			t.Errorf("unexpected lossy conversion: %q", s)
		}
	})
}

func TestCString(t *testing.T) {
	t.Run("NulTerminated", func(t *testing.T) {
		r := New([]byte("TEXV0005\x00rest"))
		if s := r.CString(16); s != "TEXV0005" {
			t.Errorf("expected TEXV0005, got %q", s)
		}
		if r.Pos() != 9 {
			t.Errorf("expected position past terminator (9), got %d", r.Pos())
		}
	})

	t.Run("MaxLengthWithoutNul", func(t *testing.T) {
		r := New([]byte("abcdefgh"))
		if s := r.CString(4); s != "abcd" {
			t.Errorf("expected abcd, got %q", s)
		}
		if r.Pos() != 4 {
			t.Errorf("expected position 4, got %d", r.Pos())
		}
	})

	t.Run("UnboundedStopsAtNul", func(t *testing.T) {
		r := New([]byte("{}\x00after"))
		if s := r.CString(0); s != "{}" {
			t.Errorf("expected {}, got %q", s)
		}
	})
}

func TestBytes(t *testing.T) {
	r := New([]byte{1, 2, 3, 4})

	if b := r.Bytes(2); !bytes.Equal(b, []byte{1, 2}) {
		t.Errorf("expected [1 2], got %v", b)
	}
	if b := r.Bytes(3); b != nil {
		t.Errorf("expected nil on short read, got %v", b)
	}
	if r.Pos() != 2 {
		t.Errorf("position must not advance on failed read, got %d", r.Pos())
	}
	if b := r.Bytes(2); !bytes.Equal(b, []byte{3, 4}) {
		t.Errorf("expected [3 4], got %v", b)
	}
}
