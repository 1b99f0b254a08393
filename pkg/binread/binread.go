// Package binread provides a sequential little-endian reader over an
// in-memory byte buffer.
//
// The reader is deliberately tolerant: short reads degrade to zero values or
// empty strings instead of returning errors. Real PKG and TEX files carry
// trailing padding, and the formats have no checksum, so "read past the end"
// is not distinguishable from padding at this layer. Components that act on
// the values read (magic validation, entry bounds checks, payload reads) are
// the hard failure points.
package binread

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// Reader reads fixed-width integers and strings from a borrowed byte slice.
type Reader struct {
	buf []byte
	pos int
}

// New creates a reader positioned at the start of buf.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Exhausted reports whether the reader has consumed the whole buffer.
func (r *Reader) Exhausted() bool {
	return r.pos >= len(r.buf)
}

// Uint32 reads a little-endian uint32. Returns 0 if fewer than 4 bytes remain.
func (r *Reader) Uint32() uint32 {
	if r.pos+4 > len(r.buf) {
		r.pos = len(r.buf)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

// Int32 reads a little-endian int32. Returns 0 if fewer than 4 bytes remain.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// String reads a 4-byte little-endian length prefix followed by that many
// bytes of UTF-8. Invalid sequences are replaced, never panic. If the declared
// length overruns the buffer the position is left after the prefix and an
// empty string is returned.
func (r *Reader) String() string {
	n := int(r.Uint32())
	if n < 0 || r.pos+n > len(r.buf) {
		return ""
	}
	s := r.buf[r.pos : r.pos+n]
	r.pos += n
	if utf8.Valid(s) {
		return string(s)
	}
	return strings.ToValidUTF8(string(s), "�")
}

// CString reads bytes up to a NUL terminator, consuming the terminator.
// If max > 0, at most max bytes are read and the terminator is optional.
// Used for the fixed-size magic fields and the v4 condition blob.
func (r *Reader) CString(max int) string {
	rest := r.buf[r.pos:]
	if max > 0 && len(rest) > max {
		rest = rest[:max]
	}
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		r.pos += i + 1
		return string(rest[:i])
	}
	r.pos += len(rest)
	return string(rest)
}

// Bytes returns the next n bytes as a sub-slice of the underlying buffer,
// or nil if fewer than n bytes remain. The position only advances on success.
func (r *Reader) Bytes(n int) []byte {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil
	}
	s := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return s
}
