package bulk

import (
	"bytes"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dl/fdf/internal/attr"
)

// Linux has no bulk attribute call. getdents64 already returns name, type
// and inode per entry, so each dirent is re-encoded as an attr record and the
// rest of the pipeline runs unchanged.
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    /* 64-bit inode number */
//	    off64_t        d_off;    /* 64-bit offset to next structure */
//	    unsigned short d_reclen; /* Size of this dirent */
//	    unsigned char  d_type;   /* File type */
//	    char           d_name[]; /* Filename (null-terminated) */
//	};

const (
	direntBufSize = 32 * 1024
	direntHeader  = 19
)

const emulatedCommon = attr.CmnReturnedAttrs | attr.CmnName | attr.CmnObjType | attr.CmnFileID

// dirState holds getdents output not yet re-encoded. Entries that do not fit
// in one scratch buffer carry over to the next Refill.
type dirState struct {
	dbuf []byte
	doff int
	dn   int
}

func (d *Dir) fill(buf []byte) (int, int, error) {
	if d.dbuf == nil {
		d.dbuf = make([]byte, direntBufSize)
	}

	count, off := 0, 0
	for {
		if d.doff >= d.dn {
			if count > 0 {
				return count, off, nil
			}
			n, err := unix.Getdents(d.fd, d.dbuf)
			if err != nil {
				return 0, 0, err
			}
			if n == 0 {
				return 0, 0, nil
			}
			d.doff, d.dn = 0, n
		}

		rec := d.dbuf[d.doff:d.dn]
		if len(rec) < direntHeader {
			d.doff = d.dn
			continue
		}
		ino := *(*uint64)(unsafe.Pointer(&rec[0]))
		reclen := int(*(*uint16)(unsafe.Pointer(&rec[16])))
		dtype := rec[18]
		if reclen < direntHeader || reclen > len(rec) {
			d.doff = d.dn // malformed, drop the rest of this batch
			continue
		}

		name := rec[direntHeader:reclen]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		if ino == 0 {
			d.doff += reclen
			continue
		}

		r := attr.Record{
			Returned: attr.AttributeSet{Common: emulatedCommon},
			Name:     name,
			ObjType:  vtype(dtype),
			FileID:   ino,
		}
		size := attr.EncodedLen(&r)
		if off+size > len(buf) {
			if count == 0 {
				return 0, 0, unix.EINVAL
			}
			return count, off, nil
		}
		attr.Append(buf[:off:len(buf)], &r)
		off += size
		count++
		d.doff += reclen
	}
}

// vtype maps a dirent d_type to the vtype code the bulk call reports.
func vtype(dt uint8) uint32 {
	switch dt {
	case unix.DT_REG:
		return attr.VREG
	case unix.DT_DIR:
		return attr.VDIR
	case unix.DT_LNK:
		return attr.VLNK
	case unix.DT_BLK:
		return attr.VBLK
	case unix.DT_CHR:
		return attr.VCHR
	case unix.DT_SOCK:
		return attr.VSOCK
	case unix.DT_FIFO:
		return attr.VFIFO
	}
	return attr.VNON
}
