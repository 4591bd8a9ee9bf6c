//go:build !darwin && !linux

package bulk

// Dir is a stub on platforms without a bulk listing backend.
type Dir struct {
	path string
}

// Open always fails with ErrUnsupported.
func Open(path []byte) (*Dir, error) {
	p := trimNul(path)
	return nil, &OpenError{Path: p, Reason: ErrAccess, Err: ErrUnsupported}
}

func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) Refill(scratch []byte) (n, used int, err error) {
	return 0, 0, &ReadError{Path: d.path, Err: ErrUnsupported}
}

func (d *Dir) Close() error {
	return nil
}
