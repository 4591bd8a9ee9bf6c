package cli

import "fmt"

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return "auto"
}

// Set parses s into m, so a ColorMode can back a pflag value.
func (m *ColorMode) Set(s string) error {
	v, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *ColorMode) Type() string { return "when" }

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Config holds all configuration for an fdf listing.
type Config struct {
	Paths     []string
	JSON      bool
	Color     ColorMode
	ShowType  bool
	ShowInode bool
	Verbose   bool
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("no directory specified")
	}
	for _, p := range c.Paths {
		if p == "" {
			return fmt.Errorf("empty directory path")
		}
	}
	if c.Color < ColorAuto || c.Color > ColorNever {
		return fmt.Errorf("invalid color mode: %d", c.Color)
	}
	return nil
}
