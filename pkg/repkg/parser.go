package repkg

import "github.com/WallTools/weFileTools/pkg/binread"

// Parse reads the PKG header and entry table from raw file bytes.
//
// Parse is structural only and always succeeds: a truncated or corrupt file
// produces garbage or fewer entries than declared, never an error. Extract
// performs the authoritative bounds checks. Entry reading stops early when
// the buffer is exhausted so that a hostile entry count cannot allocate
// unbounded memory; each real entry needs at least 12 bytes of table data.
func Parse(data []byte) *Info {
	r := binread.New(data)

	version := r.String()
	count := r.Uint32()

	capHint := r.Remaining() / 12
	if int(count) < capHint {
		capHint = int(count)
	}
	entries := make([]Entry, 0, capHint)

	for i := 0; i < int(count) && !r.Exhausted(); i++ {
		entries = append(entries, Entry{
			Name:   r.String(),
			Offset: r.Uint32(),
			Size:   r.Uint32(),
		})
	}

	return &Info{
		Version:   version,
		FileCount: count,
		Entries:   entries,
		DataStart: r.Pos(),
	}
}
