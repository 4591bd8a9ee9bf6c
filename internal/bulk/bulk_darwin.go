package bulk

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dl/fdf/internal/attr"
)

// attrList matches struct attrlist from <sys/attr.h>.
type attrList struct {
	bitmapCount uint16
	reserved    uint16
	commonAttr  uint32
	volAttr     uint32
	dirAttr     uint32
	fileAttr    uint32
	forkAttr    uint32
}

var requested = attrList{
	bitmapCount: attr.BitmapCount,
	commonAttr:  attr.RequestedCommon,
}

type dirState struct{}

// fill calls getattrlistbulk(2). The kernel reports a record count, not a
// byte count, so buf is zeroed first: a record count larger than what was
// written then runs into a zero length field and fails to decode instead of
// replaying the previous batch.
func (d *Dir) fill(buf []byte) (int, int, error) {
	if len(buf) == 0 {
		return 0, 0, unix.EINVAL
	}
	clear(buf)
	al := requested
	r, _, errno := unix.Syscall6(unix.SYS_GETATTRLISTBULK,
		uintptr(d.fd),
		uintptr(unsafe.Pointer(&al)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0, 0)
	if errno != 0 {
		return 0, 0, errno
	}
	return int(r), len(buf), nil
}
