package pak

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Reader is a forward-only cursor over a decrypted pak buffer. A read either
// consumes exactly the bytes it asked for or fails and leaves the offset
// untouched. After an error the Reader should not be used further.
type Reader struct {
	buf  []byte
	off  int
	text transform.Transformer
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, text: encoding.UTF8Validator}
}

func newReaderAt(buf []byte, off int) *Reader {
	return &Reader{buf: buf, off: off, text: encoding.UTF8Validator}
}

// SetTextDecoder replaces the transformer ReadString runs names through.
// The default rejects anything that is not valid UTF-8.
func (r *Reader) SetTextDecoder(t transform.Transformer) {
	if t == nil {
		t = encoding.UTF8Validator
	}
	r.text = t
}

func (r *Reader) Offset() int { return r.off }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d left", ErrEndOfStream, n, r.off, r.Len())
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadU8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBytes returns the next n bytes. The slice aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadString(n int) (string, error) {
	start := r.off
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	s, _, err := transform.Bytes(r.text, b)
	if err != nil {
		r.off = start
		return "", fmt.Errorf("%w at offset %d: %w", ErrInvalidText, start, err)
	}
	return string(s), nil
}
