// Package walker lists the direct children of one directory using the bulk
// attribute-listing call. Each Iterator owns a scratch buffer the kernel
// fills with attr records and a path buffer that child names are written
// into; yielded entries get their own copy of the path.
package walker

import (
	"errors"
	"io"
	"iter"

	"golang.org/x/sys/unix"

	"github.com/dl/fdf/internal/attr"
	"github.com/dl/fdf/internal/bulk"
	"github.com/dl/fdf/internal/pathbuf"
)

// source is the bulk reader an Iterator drives.
type source interface {
	Refill(scratch []byte) (n, used int, err error)
	Close() error
}

type state uint8

const (
	needsRefill state = iota // no undecoded records in scratch
	hasRecords
	exhausted // terminal
)

// Iterator yields the children of one directory. It is single pass and not
// safe for concurrent use.
type Iterator struct {
	src       source
	dir       string
	depth     int // depth of yielded entries
	scratch   []byte
	path      *pathbuf.Builder
	state     state
	remaining int // records left in the current batch
	valid     int // bytes of scratch written by the last refill
	off       int // offset of the next record in scratch
	closeErr  error
}

// Open opens h for listing. Entries are yielded at h.Depth()+1.
func Open(h Handle) (*Iterator, error) {
	d, err := bulk.Open(h.Path())
	if err != nil {
		return nil, &WalkError{Kind: OpenFailed, Path: trimNul(h.Path()), Err: err}
	}
	return newIterator(d, h.Path(), h.Depth(), make([]byte, bulk.ScratchSize)), nil
}

func newIterator(src source, parent []byte, parentDepth int, scratch []byte) *Iterator {
	return &Iterator{
		src:     src,
		dir:     trimNul(parent),
		depth:   parentDepth + 1,
		scratch: scratch,
		path:    pathbuf.New(parent),
	}
}

// Next returns the next entry. It returns io.EOF once the directory is
// exhausted and on every call after that.
//
// A child the kernel could not stat comes back as a *WalkError with Kind
// EntryFailed and the scan continues. Read and decode failures are returned
// once, after which the iterator is exhausted and its descriptor closed.
func (it *Iterator) Next() (*Entry, error) {
	for {
		switch it.state {
		case exhausted:
			return nil, io.EOF

		case needsRefill:
			n, used, err := it.src.Refill(it.scratch)
			if err != nil {
				it.finish()
				return nil, &WalkError{Kind: ReadFailed, Path: it.dir, Err: err}
			}
			if n == 0 {
				it.finish()
				return nil, io.EOF
			}
			it.remaining, it.valid, it.off, it.state = n, min(used, len(it.scratch)), 0, hasRecords

		case hasRecords:
			e, err := it.nextInBatch()
			if e != nil || err != nil {
				return e, err
			}
			it.state = needsRefill
		}
	}
}

// nextInBatch decodes records until one is worth returning or the batch is
// spent, in which case it returns nil, nil. Records without a usable name are
// skipped; a failed one is reported against the directory itself.
func (it *Iterator) nextInBatch() (*Entry, error) {
	for it.remaining > 0 {
		r, n, err := attr.Decode(it.scratch[:it.valid], it.off)
		if err != nil {
			it.finish()
			return nil, &WalkError{Kind: DecodeBounds, Path: it.dir, Err: err}
		}
		it.off += n
		it.remaining--

		named := r.HasName() && len(r.Name) > 0
		if r.Failed() && !named {
			return nil, &WalkError{Kind: EntryFailed, Path: it.dir, Err: unix.Errno(r.Errno)}
		}
		if !named || r.IsPseudo() {
			continue
		}
		full, start := it.path.Append(r.Name)
		if r.Failed() {
			return nil, &WalkError{Kind: EntryFailed, Path: trimNul(full), Err: unix.Errno(r.Errno)}
		}
		return NewEntry(full, start, it.depth, fileTypeOf(r.ObjType), r.FileID), nil
	}
	return nil, nil
}

// finish moves to the terminal state and releases the descriptor.
func (it *Iterator) finish() {
	it.state = exhausted
	it.closeErr = it.Close()
}

// Close releases the directory descriptor. It is safe to call more than once
// and after the iterator has been exhausted; the descriptor is closed once.
func (it *Iterator) Close() error {
	it.state = exhausted
	if it.src == nil {
		return it.closeErr
	}
	err := it.src.Close()
	it.src = nil
	return err
}

// All returns the remaining entries as a sequence. The iterator is closed
// when the sequence ends or the consumer stops early.
func (it *Iterator) All() iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		defer it.Close()
		for {
			e, err := it.Next()
			if err == io.EOF {
				return
			}
			if !yield(e, err) {
				return
			}
		}
	}
}

// Kind classifies a WalkError.
type Kind uint8

const (
	OpenFailed   Kind = iota // directory could not be opened
	ReadFailed               // the bulk call failed after open
	EntryFailed              // one child could not be stat'ed; the scan goes on
	DecodeBounds             // a record ran past the filled buffer
)

func (k Kind) String() string {
	switch k {
	case OpenFailed:
		return "open"
	case ReadFailed:
		return "read"
	case EntryFailed:
		return "entry"
	case DecodeBounds:
		return "decode"
	}
	return "unknown"
}

// WalkError represents an error during directory listing.
type WalkError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	switch e.Kind {
	case OpenFailed, ReadFailed:
		return e.Err.Error()
	case EntryFailed:
		return "cannot access '" + e.Path + "': " + e.Err.Error()
	}
	return "walk " + e.Path + ": " + e.Err.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err ends the listing. Only per-entry failures are
// not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var we *WalkError
	if errors.As(err, &we) {
		return we.Kind != EntryFailed
	}
	return true
}

func trimNul(p []byte) string {
	if n := len(p); n > 0 && p[n-1] == 0 {
		p = p[:n-1]
	}
	return string(p)
}
