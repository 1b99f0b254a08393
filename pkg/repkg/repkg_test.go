package repkg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// buildPKG synthesizes a container with the given entries and payloads.
func buildPKG(t *testing.T, version string, entries []Entry, payloads [][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	writeString := func(s string) {
		binary.Write(&buf, binary.LittleEndian, uint32(len(s)))
		buf.WriteString(s)
	}

	writeString(version)
	binary.Write(&buf, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		writeString(e.Name)
		binary.Write(&buf, binary.LittleEndian, e.Offset)
		binary.Write(&buf, binary.LittleEndian, e.Size)
	}
	for _, p := range payloads {
		buf.Write(p)
	}

	return buf.Bytes()
}

func TestParse(t *testing.T) {
	payloads := [][]byte{
		[]byte("first payload"),
		[]byte("second"),
	}
	entries := []Entry{
		{Name: "scene.json", Offset: 0, Size: uint32(len(payloads[0]))},
		{Name: "materials/bg.tex", Offset: uint32(len(payloads[0])), Size: uint32(len(payloads[1]))},
	}
	data := buildPKG(t, "PKGV0001", entries, payloads)

	info := Parse(data)

	if info.Version != "PKGV0001" {
		t.Errorf("version: expected PKGV0001, got %q", info.Version)
	}
	if info.FileCount != 2 {
		t.Errorf("file count: expected 2, got %d", info.FileCount)
	}
	if len(info.Entries) != 2 {
		t.Fatalf("entries: expected 2, got %d", len(info.Entries))
	}
	for i, e := range entries {
		if info.Entries[i] != e {
			t.Errorf("entry %d: expected %+v, got %+v", i, e, info.Entries[i])
		}
	}

	wantStart := len(data) - len(payloads[0]) - len(payloads[1])
	if info.DataStart != wantStart {
		t.Errorf("data start: expected %d, got %d", wantStart, info.DataStart)
	}
}

func TestParseHostileCount(t *testing.T) {
	// A declared count far larger than the buffer must not allocate
	// billions of entries; the table just comes up short.
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("PKGV")
	binary.Write(&buf, binary.LittleEndian, uint32(0xffffffff))

	info := Parse(buf.Bytes())
	if info.FileCount != 0xffffffff {
		t.Errorf("declared count must be preserved, got %d", info.FileCount)
	}
	if len(info.Entries) != 0 {
		t.Errorf("expected no entries from empty table, got %d", len(info.Entries))
	}
}

func TestExtractRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("model data here"),
		[]byte{0x00, 0x01, 0x02, 0xff},
		[]byte("nested entry"),
	}
	entries := []Entry{
		{Name: "a.bin", Offset: 0, Size: uint32(len(payloads[0]))},
		{Name: "b.bin", Offset: uint32(len(payloads[0])), Size: uint32(len(payloads[1]))},
		{Name: "sub/dir/c.bin", Offset: uint32(len(payloads[0]) + len(payloads[1])), Size: uint32(len(payloads[2]))},
	}
	data := buildPKG(t, "PKGV0002", entries, payloads)

	outDir := t.TempDir()
	info := Parse(data)

	extracted, err := Extract(info, data, outDir)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(extracted) != 3 {
		t.Fatalf("expected 3 files, got %d", len(extracted))
	}

	for i, f := range extracted {
		if f.EntryName != entries[i].Name {
			t.Errorf("file %d: expected name %q, got %q", i, entries[i].Name, f.EntryName)
		}
		if f.Size != entries[i].Size {
			t.Errorf("file %d: expected size %d, got %d", i, entries[i].Size, f.Size)
		}
		content, err := os.ReadFile(f.OutputPath)
		if err != nil {
			t.Fatalf("read %s: %v", f.OutputPath, err)
		}
		if !bytes.Equal(content, payloads[i]) {
			t.Errorf("file %d: content mismatch: got %v, want %v", i, content, payloads[i])
		}
	}
}

func TestExtractBoundsRejection(t *testing.T) {
	payload := []byte("only payload")
	entries := []Entry{
		{Name: "good.bin", Offset: 0, Size: uint32(len(payload))},
		{Name: "overrun.bin", Offset: 4, Size: 1 << 20},
	}
	data := buildPKG(t, "PKGV0001", entries, [][]byte{payload})

	outDir := t.TempDir()
	info := Parse(data)

	extracted, err := Extract(info, data, outDir)
	if err == nil {
		t.Fatal("expected bounds error")
	}
	if !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}

	// The failing entry must not have been written.
	if _, statErr := os.Stat(filepath.Join(outDir, "overrun.bin")); !os.IsNotExist(statErr) {
		t.Error("out-of-bounds entry must not be written")
	}

	// The entry before the failure stays on disk, uncorrupted.
	if len(extracted) != 1 {
		t.Fatalf("expected 1 file before failure, got %d", len(extracted))
	}
	content, readErr := os.ReadFile(filepath.Join(outDir, "good.bin"))
	if readErr != nil {
		t.Fatalf("read good.bin: %v", readErr)
	}
	if !bytes.Equal(content, payload) {
		t.Error("previously written entry corrupted")
	}
}

func TestExtractEntrySelective(t *testing.T) {
	payload := []byte("selective")
	entries := []Entry{{Name: "only.bin", Offset: 0, Size: uint32(len(payload))}}
	data := buildPKG(t, "PKGV0001", entries, [][]byte{payload})

	info := Parse(data)
	outPath := filepath.Join(t.TempDir(), "renamed.bin")

	if err := ExtractEntry(data, info.DataStart, info.Entries[0], outPath); err != nil {
		t.Fatalf("extract entry: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(content, payload) {
		t.Error("content mismatch")
	}
}
