// Package repkg reads the flat PKG container format used by scene wallpapers.
//
// A PKG file is a version string, a uint32 entry count, then an entry table of
// (name, offset, size) triples, followed by the data region. Entry offsets are
// relative to the start of the data region. All integers are little-endian;
// strings carry a 4-byte length prefix. The format has no checksum and no
// redundant length field.
//
// Parsing and extraction are deliberately two separate phases: Parse never
// fails structurally (corrupt input yields garbage or short entries), and
// Extract is the single place where entry byte ranges are validated against
// the buffer. Callers that only want the entry table for preview never pay
// for bounds arithmetic or touch the filesystem.
package repkg

import "errors"

// ErrBounds is wrapped by Extract when an entry's byte range exceeds the
// container data.
var ErrBounds = errors.New("entry out of bounds")

// Info holds the parsed structure of a PKG container.
type Info struct {
	// Version is the container version string, e.g. "PKGV0001".
	Version string

	// FileCount is the entry count declared in the header. It can exceed
	// len(Entries) when the entry table is truncated.
	FileCount uint32

	// Entries lists the entries actually read from the table, in file order.
	Entries []Entry

	// DataStart is the byte offset of the data region, immediately after
	// the entry table.
	DataStart int
}

// Entry is one named file inside a PKG container.
type Entry struct {
	// Name is the entry path, used verbatim (including separators) as the
	// relative output path.
	Name string

	// Offset is relative to the data region start.
	Offset uint32

	// Size is the entry payload length in bytes.
	Size uint32
}

// ExtractedFile describes one file written by Extract.
type ExtractedFile struct {
	EntryName  string
	OutputPath string
	Size       uint32
}
