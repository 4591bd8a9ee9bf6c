package output

import (
	"encoding/json"
	"strings"

	"github.com/dl/fdf/internal/walker"
)

// JSONFormatter formats entries as JSON Lines (one JSON object per entry).
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonEntry is the JSON serialization format for an entry.
type jsonEntry struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	FileType string `json:"file_type"`
	Inode    uint64 `json:"inode"`
	Depth    int    `json:"depth"`
}

func (f *JSONFormatter) Format(buf []byte, e *walker.Entry) []byte {
	je := jsonEntry{
		Path:     e.String(),
		Name:     strings.ToValidUTF8(string(e.Name()), "\uFFFD"),
		FileType: e.Type().String(),
		Inode:    e.Ino(),
		Depth:    e.Depth(),
	}
	data, _ := json.Marshal(je)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	return buf
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
