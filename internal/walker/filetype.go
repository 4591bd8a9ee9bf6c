package walker

import "github.com/dl/fdf/internal/attr"

// FileType is the classification of a directory entry.
type FileType uint8

const (
	Unknown FileType = iota
	RegularFile
	Directory
	Symlink
	BlockDevice
	CharDevice
	Socket // sockets and FIFOs
)

func (t FileType) String() string {
	switch t {
	case RegularFile:
		return "regular_file"
	case Directory:
		return "directory"
	case Symlink:
		return "symlink"
	case BlockDevice:
		return "block_device"
	case CharDevice:
		return "char_device"
	case Socket:
		return "socket"
	}
	return "unknown"
}

// fileTypeOf maps a vtype object type code. FIFOs share the Socket bucket.
func fileTypeOf(code uint32) FileType {
	switch code {
	case attr.VREG:
		return RegularFile
	case attr.VDIR:
		return Directory
	case attr.VBLK:
		return BlockDevice
	case attr.VCHR:
		return CharDevice
	case attr.VLNK:
		return Symlink
	case attr.VSOCK, attr.VFIFO:
		return Socket
	}
	return Unknown
}
