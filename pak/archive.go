package pak

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Record is one entry of the pak table. Path is the name as stored, which
// may use backslash separators. Offset is where the payload starts in the
// decrypted buffer.
type Record struct {
	Path   string
	Size   uint32
	Offset int64
}

// Name returns Path with backslashes turned into forward slashes.
func (r Record) Name() string {
	return strings.ReplaceAll(r.Path, `\`, "/")
}

// Archive is a parsed pak held in memory.
type Archive struct {
	Format  Format
	Records []Record

	buf       []byte
	dataStart int
}

type options struct {
	format Format
	names  transform.Transformer
}

// Option configures Open and Parse.
type Option func(*options)

// WithFormat overrides the key, magic, version and end flag.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithNameEncoding decodes record names from enc instead of UTF-8.
func WithNameEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		if enc == nil {
			o.names = nil
			return
		}
		o.names = enc.NewDecoder()
	}
}

func buildOptions(opts []Option) options {
	o := options{format: DefaultFormat}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Open loads, decrypts and parses the pak at path.
func Open(path string, opts ...Option) (*Archive, error) {
	o := buildOptions(opts)
	buf, err := Load(path, o.format.Key)
	if err != nil {
		return nil, err
	}
	return parse(buf, o)
}

// Parse validates the header of an already decrypted buffer and reads the
// record table. Payloads are not touched.
func Parse(buf []byte, opts ...Option) (*Archive, error) {
	return parse(buf, buildOptions(opts))
}

func parse(buf []byte, o options) (*Archive, error) {
	r := NewReader(buf)
	r.SetTextDecoder(o.names)

	if err := readHeader(r, o.format); err != nil {
		return nil, phaseError(PhaseHeader, "", err)
	}

	records, err := readTable(r, o.format)
	if err != nil {
		return nil, phaseError(PhaseTable, "", err)
	}

	offset := int64(r.Offset())
	for i := range records {
		records[i].Offset = offset
		offset += int64(records[i].Size)
	}

	return &Archive{
		Format:    o.format,
		Records:   records,
		buf:       buf,
		dataStart: r.Offset(),
	}, nil
}

func readHeader(r *Reader, f Format) error {
	magic, err := r.ReadU32()
	if err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if magic != f.Magic {
		return fmt.Errorf("%w: 0x%08X, want 0x%08X", ErrMagicMismatch, magic, f.Magic)
	}

	version, err := r.ReadU32()
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version != f.Version {
		return fmt.Errorf("%w: %d, want %d", ErrVersionMismatch, version, f.Version)
	}
	return nil
}

func readTable(r *Reader, f Format) ([]Record, error) {
	var records []Record
	for i := 0; ; i++ {
		flags, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("read flags %d: %w", i, err)
		}
		if flags&f.EndFlag != 0 {
			return records, nil
		}

		nameLen, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("read name length %d: %w", i, err)
		}
		name, err := r.ReadString(int(nameLen))
		if err != nil {
			return nil, fmt.Errorf("read name %d: %w", i, err)
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("read size %d: %w", i, err)
		}
		// windows timestamp, unused
		if _, err := r.ReadU64(); err != nil {
			return nil, fmt.Errorf("read timestamp %d: %w", i, err)
		}

		records = append(records, Record{Path: name, Size: size})
	}
}

// Payload returns the bytes of rec, located through its offset. The slice
// aliases the archive buffer and must not be modified.
func (a *Archive) Payload(rec Record) ([]byte, error) {
	end := rec.Offset + int64(rec.Size)
	if rec.Offset < int64(a.dataStart) || end > int64(len(a.buf)) {
		return nil, phaseError(PhasePayload, rec.Path,
			fmt.Errorf("%w: payload [%d, %d) outside archive of %d bytes", ErrEndOfStream, rec.Offset, end, len(a.buf)))
	}
	return a.buf[rec.Offset:end:end], nil
}

// payloads returns a cursor positioned on the first payload.
func (a *Archive) payloads() *Reader {
	return newReaderAt(a.buf, a.dataStart)
}
