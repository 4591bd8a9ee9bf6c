//go:build darwin || linux

package bulk

import "golang.org/x/sys/unix"

const openFlags = unix.O_RDONLY | unix.O_NONBLOCK | unix.O_CLOEXEC | unix.O_DIRECTORY

// Dir owns one open directory descriptor.
// It is not safe for concurrent use.
type Dir struct {
	fd   int
	path string
	dirState
}

// Open opens path (optionally NUL terminated) for bulk listing.
func Open(path []byte) (*Dir, error) {
	p := trimNul(path)
	fd, err := unix.Open(p, openFlags, 0)
	for err == unix.EINTR {
		fd, err = unix.Open(p, openFlags, 0)
	}
	if err != nil {
		return nil, &OpenError{Path: p, Reason: openReason(err), Err: err}
	}
	return &Dir{fd: fd, path: p}, nil
}

func openReason(err error) error {
	switch err {
	case unix.ENOENT:
		return ErrNotFound
	case unix.EACCES, unix.EPERM:
		return ErrPermission
	case unix.ENOTDIR:
		return ErrNotDir
	}
	return ErrAccess
}

// Path returns the directory path without a terminator.
func (d *Dir) Path() string {
	return d.path
}

// Refill issues one bulk call into scratch and returns the number of records
// written and the length of the prefix of scratch they occupy. Records must
// be decoded from scratch[:used] only. Zero records means the directory is
// exhausted. Each call advances the kernel's directory offset.
func (d *Dir) Refill(scratch []byte) (n, used int, err error) {
	if d.fd < 0 {
		return 0, 0, &ReadError{Path: d.path, Err: unix.EBADF}
	}
	for {
		n, used, err = d.fill(scratch)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, 0, &ReadError{Path: d.path, Err: err}
		}
		return n, min(used, len(scratch)), nil
	}
}

// Close closes the descriptor. Only the first call has an effect.
func (d *Dir) Close() error {
	if d.fd < 0 {
		return nil
	}
	fd := d.fd
	d.fd = -1
	return unix.Close(fd)
}
