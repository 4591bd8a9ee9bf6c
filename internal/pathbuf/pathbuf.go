// Package pathbuf builds child paths in one reusable buffer.
package pathbuf

// NameMax is the platform's maximum file name length in bytes.
const NameMax = 255

// MaxNameLen is the headroom reserved for a single child name. Twice NameMax
// so that names the kernel hands back in decomposed form still fit.
const MaxNameLen = 2 * NameMax

// Builder holds "parent/" followed by the current child name and a NUL.
// Paths returned by Append alias the buffer and are overwritten by the next call.
type Builder struct {
	buf  []byte
	base int
}

// New seeds a builder with parent. A trailing NUL in parent is dropped, and a
// separator is only added when parent does not already end in one, so the
// root "/" yields "/name" rather than "//name".
func New(parent []byte) *Builder {
	if n := len(parent); n > 0 && parent[n-1] == 0 {
		parent = parent[:n-1]
	}

	buf := make([]byte, 0, len(parent)+1+MaxNameLen+1)
	buf = append(buf, parent...)
	if len(parent) == 0 || parent[len(parent)-1] != '/' {
		buf = append(buf, '/')
	}
	return &Builder{buf: buf, base: len(buf)}
}

// Base returns the offset at which child names are written.
func (b *Builder) Base() int {
	return b.base
}

// Append writes name and a NUL terminator after the parent prefix and returns
// the full path (terminator included) and the offset where name starts.
// name must not contain a NUL or a separator. Capacity is reserved once in
// New; names up to MaxNameLen never reallocate.
func (b *Builder) Append(name []byte) ([]byte, int) {
	b.buf = append(b.buf[:b.base], name...)
	b.buf = append(b.buf, 0)
	return b.buf, b.base
}
