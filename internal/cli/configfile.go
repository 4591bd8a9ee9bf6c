package cli

import (
	"bytes"
	"os"
	"path/filepath"
)

// configPath returns $FDF_CONFIG_PATH, falling back to ~/.fdf, or "" when
// neither can be resolved.
func configPath() string {
	if p := os.Getenv("FDF_CONFIG_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fdf")
}

// LoadConfigArgs returns the default flags stored in the config file, to be
// placed ahead of the command line. A missing or unreadable file yields nil.
func LoadConfigArgs() []string {
	path := configPath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return parseConfigArgs(data)
}

// parseConfigArgs splits data on whitespace. A # starts a comment that runs
// to the end of its line, so values cannot contain one.
func parseConfigArgs(data []byte) []string {
	var args []string
	for line := range bytes.Lines(data) {
		if i := bytes.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, f := range bytes.Fields(line) {
			args = append(args, string(f))
		}
	}
	return args
}
