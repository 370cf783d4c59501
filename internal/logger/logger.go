// Package logger gives every component of tickshare a named logger that
// writes through one shared handler on stderr.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/cenkalti/log"
)

// DefaultLevel is the handler level until the config says otherwise.
const DefaultLevel = "info"

var levels = map[string]log.Level{
	"debug":   log.DEBUG,
	"info":    log.INFO,
	"warning": log.WARNING,
	"error":   log.ERROR,
}

var handler = log.NewFileHandler(os.Stderr)

func init() {
	handler.SetFormatter(lineFormatter{})
	handler.SetLevel(levels[DefaultLevel])
}

// Logger is a named logger writing through the shared handler.
type Logger log.Logger

// New returns a Logger whose lines are tagged with name.
func New(name string) Logger {
	l := log.NewLogger(name)
	l.SetLevel(log.DEBUG) // filtering happens on the handler
	l.SetHandler(handler)
	return l
}

// SetLevel sets the shared handler level by name: debug, info, warning or error.
func SetLevel(name string) error {
	l, ok := levels[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown log level %q", name)
	}
	handler.SetLevel(l)
	return nil
}

// lineFormatter writes "15:04:05.000 ticker   DEBUG   tick 3/5".
type lineFormatter struct{}

func (lineFormatter) Format(rec *log.Record) string {
	return fmt.Sprintf("%s %-8s %-7s %s",
		rec.Time.Format("15:04:05.000"),
		rec.LoggerName,
		strings.ToUpper(levelName(rec.Level)),
		rec.Message)
}

func levelName(l log.Level) string {
	for name, v := range levels {
		if v == l {
			return name
		}
	}
	return fmt.Sprint(l)
}
