// Package attr decodes the variable-length records written by the bulk
// attribute-listing call (getattrlistbulk on darwin).
//
// Record layout, native byte order:
//
//	u32              length of the whole record
//	attribute_set_t  returned attributes (commonattr, volattr, dirattr, fileattr, forkattr)
//	u32              ATTR_CMN_ERROR     if returned
//	attrreference_t  ATTR_CMN_NAME      if returned (i32 offset from this slot, u32 length incl. NUL)
//	u32              ATTR_CMN_OBJTYPE   if returned
//	u64              ATTR_CMN_FILEID    if returned
//	...              name bytes, NUL terminated, padding
package attr

import "encoding/binary"

// Common attribute bits from <sys/attr.h>.
const (
	CmnName          uint32 = 0x00000001
	CmnObjType       uint32 = 0x00000008
	CmnFileID        uint32 = 0x02000000
	CmnError         uint32 = 0x20000000
	CmnReturnedAttrs uint32 = 0x80000000

	// BitmapCount is ATTR_BIT_MAP_COUNT.
	BitmapCount = 5
)

// RequestedCommon is the fixed common attribute set every refill asks for.
const RequestedCommon = CmnReturnedAttrs | CmnName | CmnError | CmnObjType | CmnFileID

// Object type codes (enum vtype).
const (
	VNON  uint32 = 0
	VREG  uint32 = 1
	VDIR  uint32 = 2
	VBLK  uint32 = 3
	VCHR  uint32 = 4
	VLNK  uint32 = 5
	VSOCK uint32 = 6
	VFIFO uint32 = 7
)

const (
	lengthSize  = 4
	attrSetSize = 4 * BitmapCount
	headerSize  = lengthSize + attrSetSize
	attrRefSize = 8
	u32Size     = 4
	u64Size     = 8
	recordAlign = 8
)

var order = binary.NativeEndian

// AttributeSet mirrors attribute_set_t.
type AttributeSet struct {
	Common uint32
	Vol    uint32
	Dir    uint32
	File   uint32
	Fork   uint32
}

// Has reports whether every bit of mask is set in the common attributes.
func (s AttributeSet) Has(mask uint32) bool {
	return s.Common&mask == mask
}
