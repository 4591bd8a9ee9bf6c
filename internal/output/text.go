package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/dl/fdf/internal/walker"
)

// Column widths of the long listing: path, type, inode.
const (
	pathWidth = 60
	typeWidth = 15
)

// TextFormatter formats entries as one path per line, optionally followed by
// type and inode columns.
type TextFormatter struct {
	styles    Styles
	showType  bool
	showInode bool
	useColor  bool
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(styles Styles, showType bool, showInode bool, useColor bool) *TextFormatter {
	return &TextFormatter{
		styles:    styles,
		showType:  showType,
		showInode: showInode,
		useColor:  useColor,
	}
}

func (f *TextFormatter) Format(buf []byte, e *walker.Entry) []byte {
	path := e.String()
	more := f.showType || f.showInode
	if f.useColor {
		buf = append(buf, f.styles.ForType(e.Type()).Render(path)...)
	} else {
		buf = append(buf, path...)
	}
	if more {
		buf = pad(buf, lipgloss.Width(path), pathWidth)
	}

	if f.showType {
		typ := e.Type().String()
		if f.useColor {
			buf = append(buf, f.styles.Type.Render(typ)...)
		} else {
			buf = append(buf, typ...)
		}
		if f.showInode {
			buf = pad(buf, len(typ), typeWidth)
		}
	}

	if f.showInode {
		if f.useColor {
			buf = append(buf, f.styles.Inode.Render(strconv.FormatUint(e.Ino(), 10))...)
		} else {
			buf = strconv.AppendUint(buf, e.Ino(), 10)
		}
	}

	buf = append(buf, '\n')
	return buf
}

// pad fills a column of width with spaces, then appends the separator.
func pad(buf []byte, used, width int) []byte {
	for ; used < width; used++ {
		buf = append(buf, ' ')
	}
	return append(buf, ' ')
}

// Ensure TextFormatter implements Formatter.
var _ Formatter = (*TextFormatter)(nil)
