package pak

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReader(t *testing.T) {
	t.Parallel()

	Convey("Reader", t, func() {
		Convey("integers are little-endian", func() {
			r := NewReader([]byte{0x01, 0x00, 0x00, 0x00, 1, 2, 3, 4, 5, 6, 7, 8, 0xAB})

			v32, err := r.ReadU32()
			So(err, ShouldBeNil)
			So(v32, ShouldEqual, uint32(1))

			v64, err := r.ReadU64()
			So(err, ShouldBeNil)
			So(v64, ShouldEqual, uint64(0x0807060504030201))

			b, err := r.ReadU8()
			So(err, ShouldBeNil)
			So(b, ShouldEqual, byte(0xAB))

			So(r.Offset(), ShouldEqual, 13)
			So(r.Len(), ShouldEqual, 0)
		})

		Convey("bytes", func() {
			r := NewReader([]byte{9, 8, 7})

			Convey("zero length", func() {
				b, err := r.ReadBytes(0)
				So(err, ShouldBeNil)
				So(b, ShouldBeEmpty)
				So(r.Offset(), ShouldEqual, 0)
			})

			Convey("exact", func() {
				b, err := r.ReadBytes(3)
				So(err, ShouldBeNil)
				So(b, ShouldResemble, []byte{9, 8, 7})
				So(r.Offset(), ShouldEqual, 3)
			})

			Convey("short read leaves the offset alone", func() {
				_, err := r.ReadU8()
				So(err, ShouldBeNil)

				_, err = r.ReadBytes(3)
				So(errors.Is(err, ErrEndOfStream), ShouldBeTrue)
				So(r.Offset(), ShouldEqual, 1)

				_, err = r.ReadU32()
				So(errors.Is(err, ErrEndOfStream), ShouldBeTrue)
				_, err = r.ReadU64()
				So(errors.Is(err, ErrEndOfStream), ShouldBeTrue)
				So(r.Offset(), ShouldEqual, 1)
			})

			Convey("negative length", func() {
				_, err := r.ReadBytes(-1)
				So(errors.Is(err, ErrEndOfStream), ShouldBeTrue)
			})
		})

		Convey("empty buffer", func() {
			_, err := NewReader(nil).ReadU8()
			So(errors.Is(err, ErrEndOfStream), ShouldBeTrue)
		})

		Convey("strings", func() {
			Convey("utf-8", func() {
				r := NewReader([]byte("data\\héllo.bin"))
				s, err := r.ReadString(len("data\\héllo.bin"))
				So(err, ShouldBeNil)
				So(s, ShouldEqual, "data\\héllo.bin")
			})

			Convey("invalid utf-8", func() {
				r := NewReader([]byte{'a', 0xFF, 0xFE})
				_, err := r.ReadString(3)
				So(errors.Is(err, ErrInvalidText), ShouldBeTrue)
				So(errors.Is(err, encoding.ErrInvalidUTF8), ShouldBeTrue)
				So(r.Offset(), ShouldEqual, 0)
			})

			Convey("euc-kr", func() {
				raw, err := korean.EUCKR.NewEncoder().Bytes([]byte("한글.txt"))
				So(err, ShouldBeNil)

				r := NewReader(raw)
				r.SetTextDecoder(korean.EUCKR.NewDecoder())
				s, err := r.ReadString(len(raw))
				So(err, ShouldBeNil)
				So(s, ShouldEqual, "한글.txt")
			})

			Convey("past the end", func() {
				_, err := NewReader([]byte("ab")).ReadString(3)
				So(errors.Is(err, ErrEndOfStream), ShouldBeTrue)
			})
		})
	})
}
