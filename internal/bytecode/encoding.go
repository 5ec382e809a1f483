package bytecode

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var ErrTruncated = errors.New("truncated bytecode")

// AppendLE appends exactly width bytes of v in little-endian order. Bytes
// beyond the size of T are zero, and bytes of v beyond width are dropped.
func AppendLE[T constraints.Integer](buf []byte, v T, width int) []byte {
	size := int(unsafe.Sizeof(v))
	u := uint64(v)

	for i := 0; i < width; i++ {
		if i < size {
			buf = append(buf, byte(u>>(8*i)))
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

// ReadLE decodes width little-endian bytes from the front of buf. Bytes
// that do not fit in T are ignored.
func ReadLE[T constraints.Integer](buf []byte, width int) (T, error) {
	if len(buf) < width {
		return 0, errors.Wrapf(ErrTruncated, "need %d bytes, have %d", width, len(buf))
	}

	var u uint64
	for i := 0; i < width && i < 8; i++ {
		u |= uint64(buf[i]) << (8 * i)
	}
	return T(u), nil
}
