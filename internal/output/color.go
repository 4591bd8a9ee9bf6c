package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/dl/fdf/internal/walker"
)

// Styles holds the lipgloss styles for output formatting.
type Styles struct {
	Directory lipgloss.Style
	Symlink   lipgloss.Style
	Socket    lipgloss.Style
	Device    lipgloss.Style
	Regular   lipgloss.Style
	Unknown   lipgloss.Style
	Type      lipgloss.Style
	Inode     lipgloss.Style
}

// NewStyles creates the default color styles, rendering ANSI escapes to w
// whether or not w is a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return Styles{
		Directory: r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true), // bold blue
		Symlink:   r.NewStyle().Foreground(lipgloss.Color("6")),            // cyan
		Socket:    r.NewStyle().Foreground(lipgloss.Color("5")),            // magenta
		Device:    r.NewStyle().Foreground(lipgloss.Color("3")),            // yellow
		Regular:   r.NewStyle(),
		Unknown:   r.NewStyle().Foreground(lipgloss.Color("1")), // red
		Type:      r.NewStyle().Faint(true),
		Inode:     r.NewStyle().Foreground(lipgloss.Color("2")), // green
	}
}

// ForType returns the path style for t.
func (s *Styles) ForType(t walker.FileType) lipgloss.Style {
	switch t {
	case walker.Directory:
		return s.Directory
	case walker.Symlink:
		return s.Symlink
	case walker.Socket:
		return s.Socket
	case walker.BlockDevice, walker.CharDevice:
		return s.Device
	case walker.RegularFile:
		return s.Regular
	}
	return s.Unknown
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
