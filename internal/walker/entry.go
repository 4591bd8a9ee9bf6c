package walker

import (
	"strings"

	"golang.org/x/sys/unix"
)

// Handle is a directory to list: a NUL-terminated path and its depth.
type Handle interface {
	Path() []byte
	Depth() int
}

// Root is a Handle for a user supplied starting directory (depth 0).
type Root struct {
	path []byte
}

// NewRoot returns a Root for path.
func NewRoot(path string) *Root {
	p := make([]byte, len(path)+1)
	copy(p, path)
	return &Root{path: p}
}

func (r *Root) Path() []byte { return r.path }
func (r *Root) Depth() int   { return 0 }

type memo uint8

const (
	memoUnset memo = iota
	memoFalse
	memoTrue
)

// Entry is one child yielded by an Iterator. Its path is a private copy and
// stays valid after the iterator advances. Entry is not safe for concurrent
// use because IsTraversable memoises into it.
type Entry struct {
	path        []byte // NUL terminated
	nameStart   int
	depth       int
	ino         uint64
	typ         FileType
	traversable memo
}

// NewEntry builds an Entry from a NUL-terminated path, copying it.
func NewEntry(full []byte, nameStart, depth int, typ FileType, ino uint64) *Entry {
	p := make([]byte, len(full))
	copy(p, full)
	return &Entry{path: p, nameStart: nameStart, depth: depth, ino: ino, typ: typ}
}

// Path returns the full path including its NUL terminator, ready for syscalls.
// An Entry is itself a Handle, so callers can open it for listing.
func (e *Entry) Path() []byte { return e.path }

// Bytes returns the full path without the terminator.
func (e *Entry) Bytes() []byte { return e.path[:len(e.path)-1] }

// String renders the path, replacing invalid UTF-8 with U+FFFD.
func (e *Entry) String() string {
	return strings.ToValidUTF8(string(e.Bytes()), "\uFFFD")
}

// Name returns the final path segment.
func (e *Entry) Name() []byte { return e.path[e.nameStart : len(e.path)-1] }

// NameStart is the offset in Path where Name begins.
func (e *Entry) NameStart() int { return e.nameStart }

func (e *Entry) Depth() int      { return e.depth }
func (e *Entry) Ino() uint64     { return e.ino }
func (e *Entry) Type() FileType  { return e.typ }
func (e *Entry) IsDir() bool     { return e.typ == Directory }
func (e *Entry) IsSymlink() bool { return e.typ == Symlink }

// IsTraversable reports whether the entry can be listed in turn: a directory,
// or a symlink to one, that the caller may read and search. The answer is
// computed on first call and cached.
func (e *Entry) IsTraversable() bool {
	if e.traversable == memoUnset {
		e.traversable = memoFalse
		if e.traversableNow() {
			e.traversable = memoTrue
		}
	}
	return e.traversable == memoTrue
}

func (e *Entry) traversableNow() bool {
	p := string(e.Bytes())
	switch e.typ {
	case Directory:
	case Symlink:
		var st unix.Stat_t
		if err := unix.Stat(p, &st); err != nil {
			return false
		}
		if st.Mode&unix.S_IFMT != unix.S_IFDIR {
			return false
		}
	default:
		return false
	}
	return unix.Access(p, unix.R_OK|unix.X_OK) == nil
}
