package pak

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

type testEntry struct {
	name  []byte
	flags byte
	data  []byte
}

func entry(name string, data ...byte) testEntry {
	return testEntry{name: []byte(name), data: data}
}

type tableEntryHeader struct {
	Flags      byte
	NameLength byte
}

type tableEntryTrailer struct {
	FileSize  uint32
	Timestamp uint64
}

func encodeEntryForTable(e testEntry) []byte {
	buffer := new(bytes.Buffer)
	binary.Write(buffer, binary.LittleEndian, tableEntryHeader{Flags: e.flags, NameLength: byte(len(e.name))})
	buffer.Write(e.name)
	binary.Write(buffer, binary.LittleEndian, tableEntryTrailer{
		FileSize:  uint32(len(e.data)),
		Timestamp: 0x01D9C3F1A2B3C4D5,
	})
	return buffer.Bytes()
}

// buildPak returns the decrypted bytes of a pak holding entries.
func buildPak(entries ...testEntry) []byte {
	buffer := new(bytes.Buffer)
	binary.Write(buffer, binary.LittleEndian, DefaultMagic)
	binary.Write(buffer, binary.LittleEndian, DefaultVersion)
	for _, e := range entries {
		buffer.Write(encodeEntryForTable(e))
	}
	buffer.WriteByte(FlagsEnd)
	for _, e := range entries {
		buffer.Write(e.data)
	}
	return buffer.Bytes()
}

// writePak encrypts plain with key and stores it in a fresh temp dir.
func writePak(t *testing.T, plain []byte, key byte) string {
	t.Helper()
	enc := append([]byte(nil), plain...)
	Decrypt(enc, key)
	path := filepath.Join(t.TempDir(), "test.pak")
	if err := os.WriteFile(path, enc, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
