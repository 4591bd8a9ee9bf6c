package cli

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dl/fdf/internal/bulk"
	"github.com/dl/fdf/internal/output"
	"github.com/dl/fdf/internal/walker"
)

// flushThreshold is how much formatted output accumulates before a write.
const flushThreshold = 64 * 1024

// Run lists every directory in cfg.Paths to stdout.
// Returns exit code: 0 = success, 1 = a directory could not be listed.
func Run(cfg Config) int {
	return run(cfg, output.NewWriter(), os.Stderr)
}

func run(cfg Config, stdout, stderr io.Writer) int {
	level := log.WarnLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  level,
		Prefix: "fdf",
	})

	// Determine color mode
	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.IsTerminal(stdout)
	}

	var formatter output.Formatter
	if cfg.JSON {
		formatter = output.NewJSONFormatter()
	} else {
		var styles output.Styles
		if useColor {
			styles = output.NewStyles(stdout)
		}
		formatter = output.NewTextFormatter(styles, cfg.ShowType, cfg.ShowInode, useColor)
	}

	l := &lister{
		formatter: formatter,
		w:         stdout,
		logger:    logger,
		buf:       make([]byte, 0, flushThreshold+4096),
	}

	status := 0
	for _, path := range cfg.Paths {
		if err := l.list(path); err != nil {
			status = 1
			if errors.Is(err, errOutput) {
				return status
			}
		}
	}
	if err := l.flush(); err != nil {
		logger.Error("write failed", "err", err)
		return 1
	}
	return status
}

var errOutput = errors.New("output write failed")

// lister streams the children of each directory through one formatter and
// one output buffer.
type lister struct {
	formatter output.Formatter
	w         io.Writer
	logger    *log.Logger
	buf       []byte
}

// list prints the children of path. Per-entry failures are logged and
// skipped; an open or read failure is logged and returned.
func (l *lister) list(path string) error {
	it, err := walker.Open(walker.NewRoot(path))
	if err != nil {
		l.logger.Error("cannot open directory", "path", path, "err", cause(err))
		return err
	}

	n, failed := 0, 0
	var fatal error
	for e, err := range it.All() {
		if err != nil {
			var we *walker.WalkError
			if !errors.As(err, &we) || walker.IsFatal(err) {
				l.logger.Error("cannot read directory", "path", path, "err", cause(err))
				fatal = err
				continue
			}
			failed++
			l.logger.Warn("cannot access", "path", we.Path, "err", we.Err)
			continue
		}
		n++
		l.buf = l.formatter.Format(l.buf, e)
		if len(l.buf) >= flushThreshold {
			if werr := l.flush(); werr != nil {
				l.logger.Error("write failed", "err", werr)
				return errOutput
			}
		}
	}
	l.logger.Debug("listed", "path", path, "entries", n, "failed", failed)
	return fatal
}

func (l *lister) flush() error {
	if len(l.buf) == 0 {
		return nil
	}
	_, err := l.w.Write(l.buf)
	l.buf = l.buf[:0]
	return err
}

// cause strips the path context the walker and reader errors carry, since the
// log line already names the path.
func cause(err error) error {
	var oe *bulk.OpenError
	if errors.As(err, &oe) {
		return oe.Reason
	}
	var re *bulk.ReadError
	if errors.As(err, &re) {
		return re.Err
	}
	var we *walker.WalkError
	if errors.As(err, &we) {
		return we.Err
	}
	return err
}
