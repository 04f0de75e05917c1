// Package pak reads the XOR-obfuscated pak container: a header, a table of
// file entries closed by a terminator flag, then the concatenated payloads.
//
// Layout after decryption, all integers little-endian:
//
//	u32 magic   (0xBAC04AC0)
//	u32 version (0)
//	entries:    u8 flags, u8 name_len, name, u32 size, u64 timestamp
//	terminator: u8 flags with bit 7 set
//	payloads in table order, each exactly size bytes
package pak

const (
	DefaultKey     byte   = 0xF7
	DefaultMagic   uint32 = 0xBAC04AC0
	DefaultVersion uint32 = 0
	FlagsEnd       byte   = 0x80
)

// Format holds the constants a pak is read with.
type Format struct {
	Key     byte
	Magic   uint32
	Version uint32
	EndFlag byte
}

var DefaultFormat = Format{
	Key:     DefaultKey,
	Magic:   DefaultMagic,
	Version: DefaultVersion,
	EndFlag: FlagsEnd,
}
