package attr

import (
	"errors"
	"slices"
	"strconv"
)

// ErrBounds is wrapped by every BoundsError.
var ErrBounds = errors.New("attribute record out of bounds")

// BoundsError reports a record whose declared length or field layout would
// read past the valid region of the buffer. It indicates an ABI mismatch or a
// corrupted buffer and is not recoverable for the current scan.
type BoundsError struct {
	Offset int    // start of the offending record
	Field  string // field being read
	Need   int    // end offset the read required
	Limit  int    // end of the readable region
}

func (e *BoundsError) Error() string {
	return "attr: " + e.Field + " of record at offset " + strconv.Itoa(e.Offset) +
		" needs " + strconv.Itoa(e.Need) + " bytes, limit " + strconv.Itoa(e.Limit)
}

func (e *BoundsError) Unwrap() error {
	return ErrBounds
}

// Record is one decoded entry. Name aliases the scratch buffer and is only
// valid until the buffer is refilled.
type Record struct {
	Length   uint32
	Returned AttributeSet
	Name     []byte // without the NUL terminator
	Errno    uint32
	ObjType  uint32
	FileID   uint64
}

// HasName reports whether the kernel returned a name for this record.
func (r *Record) HasName() bool {
	return r.Returned.Common&CmnName != 0
}

// IsPseudo reports whether the record is the "." or ".." self/parent reference.
func (r *Record) IsPseudo() bool {
	n := r.Name
	return r.HasName() && (len(n) == 1 && n[0] == '.' || len(n) == 2 && n[0] == '.' && n[1] == '.')
}

// Failed reports whether the kernel attached a non-zero error to the record.
// Type and file id of a failed record must not be used.
func (r *Record) Failed() bool {
	return r.Returned.Common&CmnError != 0 && r.Errno != 0
}

// cursor reads fixed-size fields from one record. Reads never go past end.
type cursor struct {
	buf []byte
	rec int // record start
	pos int
	end int // record end
}

func (c *cursor) need(n int, field string) error {
	if c.pos+n > c.end {
		return &BoundsError{Offset: c.rec, Field: field, Need: c.pos + n, Limit: c.end}
	}
	return nil
}

func (c *cursor) u32(field string) (uint32, error) {
	if err := c.need(u32Size, field); err != nil {
		return 0, err
	}
	v := order.Uint32(c.buf[c.pos:])
	c.pos += u32Size
	return v, nil
}

func (c *cursor) u64(field string) (uint64, error) {
	if err := c.need(u64Size, field); err != nil {
		return 0, err
	}
	v := order.Uint64(c.buf[c.pos:])
	c.pos += u64Size
	return v, nil
}

// ref reads an attrreference_t and returns the absolute [start, end) of the
// data it points at. The offset is relative to the slot, not the record.
func (c *cursor) ref(field string) (int, int, error) {
	slot := c.pos
	if err := c.need(attrRefSize, field); err != nil {
		return 0, 0, err
	}
	off := int32(order.Uint32(c.buf[c.pos:]))
	n := order.Uint32(c.buf[c.pos+4:])
	c.pos += attrRefSize

	start := slot + int(off)
	end := start + int(n)
	if off < 0 || start > c.end || end > c.end || end < start {
		return 0, 0, &BoundsError{Offset: c.rec, Field: field, Need: end, Limit: c.end}
	}
	return start, end, nil
}

// Decode decodes the record starting at off. buf must be limited to the
// region filled by the last refill. It returns the record and the number of
// bytes to advance to reach the next one.
func Decode(buf []byte, off int) (Record, int, error) {
	var r Record
	if off < 0 || off+headerSize > len(buf) {
		return r, 0, &BoundsError{Offset: off, Field: "header", Need: off + headerSize, Limit: len(buf)}
	}
	length := int(order.Uint32(buf[off:]))
	if length < headerSize || length > len(buf)-off {
		return r, 0, &BoundsError{Offset: off, Field: "length", Need: off + length, Limit: len(buf)}
	}

	c := cursor{buf: buf, rec: off, pos: off + lengthSize, end: off + length}
	r.Length = uint32(length)

	var words [BitmapCount]uint32
	for i := range words {
		v, err := c.u32("returned attributes")
		if err != nil {
			return r, 0, err
		}
		words[i] = v
	}
	r.Returned = AttributeSet{Common: words[0], Vol: words[1], Dir: words[2], File: words[3], Fork: words[4]}
	common := r.Returned.Common

	var err error
	if common&CmnError != 0 {
		if r.Errno, err = c.u32("error"); err != nil {
			return r, 0, err
		}
	}
	if common&CmnName != 0 {
		start, end, err := c.ref("name")
		if err != nil {
			return r, 0, err
		}
		// Length includes the NUL terminator.
		if end > start && buf[end-1] == 0 {
			end--
		}
		r.Name = buf[start:end:end]
	}
	if common&CmnObjType != 0 {
		if r.ObjType, err = c.u32("object type"); err != nil {
			return r, 0, err
		}
	}
	if common&CmnFileID != 0 {
		if r.FileID, err = c.u64("file id"); err != nil {
			return r, 0, err
		}
	}
	return r, length, nil
}

// fixedLen is the size of the header plus every fixed slot present in common.
func fixedLen(common uint32) int {
	n := headerSize
	if common&CmnError != 0 {
		n += u32Size
	}
	if common&CmnName != 0 {
		n += attrRefSize
	}
	if common&CmnObjType != 0 {
		n += u32Size
	}
	if common&CmnFileID != 0 {
		n += u64Size
	}
	return n
}

// EncodedLen returns the number of bytes Append writes for r.
func EncodedLen(r *Record) int {
	n := fixedLen(r.Returned.Common)
	if r.HasName() {
		n += len(r.Name) + 1
	}
	return (n + recordAlign - 1) &^ (recordAlign - 1)
}

// Append encodes r in the kernel layout and appends it to dst. Length is
// recomputed; r.Length is ignored.
func Append(dst []byte, r *Record) []byte {
	size := EncodedLen(r)
	start := len(dst)
	dst = slices.Grow(dst, size)[:start+size]
	rec := dst[start:]
	clear(rec)

	common := r.Returned.Common
	order.PutUint32(rec, uint32(size))
	order.PutUint32(rec[4:], common)
	order.PutUint32(rec[8:], r.Returned.Vol)
	order.PutUint32(rec[12:], r.Returned.Dir)
	order.PutUint32(rec[16:], r.Returned.File)
	order.PutUint32(rec[20:], r.Returned.Fork)

	p := headerSize
	data := fixedLen(common)
	if common&CmnError != 0 {
		order.PutUint32(rec[p:], r.Errno)
		p += u32Size
	}
	if common&CmnName != 0 {
		order.PutUint32(rec[p:], uint32(data-p))
		order.PutUint32(rec[p+4:], uint32(len(r.Name)+1))
		copy(rec[data:], r.Name)
		p += attrRefSize
	}
	if common&CmnObjType != 0 {
		order.PutUint32(rec[p:], r.ObjType)
		p += u32Size
	}
	if common&CmnFileID != 0 {
		order.PutUint64(rec[p:], r.FileID)
	}
	return dst
}
