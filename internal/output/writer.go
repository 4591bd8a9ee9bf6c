package output

import (
	"os"

	"golang.org/x/sys/unix"
)

// Writer writes formatted output straight to a file descriptor, bypassing
// os.File's poller since stdout is always blocking here.
type Writer struct {
	fd int
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{fd: int(os.Stdout.Fd())}
}

// Write writes all of data, retrying short writes and EINTR.
func (w *Writer) Write(data []byte) (int, error) {
	total := 0
	for len(data) > 0 {
		n, err := unix.Write(w.fd, data)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return total, err
		}
		total += n
		data = data[n:]
	}
	return total, nil
}

// Fd returns the descriptor, so IsTerminal can inspect a Writer.
func (w *Writer) Fd() uintptr {
	return uintptr(w.fd)
}
