// Package log is the host-side structured logger, a thin layer over logrus
// so callers never import it directly.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields is an alias so callers need not import logrus.
type Fields = logrus.Fields

var std = logrus.New()

func init() {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	std.SetLevel(logrus.InfoLevel)
}

// SetLevel changes the level by name (case-insensitive). Unknown names
// leave the level unchanged and return false.
func SetLevel(name string) bool {
	lvl, err := logrus.ParseLevel(strings.ToLower(name))
	if err != nil {
		return false
	}
	std.SetLevel(lvl)
	return true
}

// GetLevel returns the current level.
func GetLevel() logrus.Level { return std.GetLevel() }

// SetOutput redirects log output. A nil writer is ignored.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	std.SetOutput(w)
}

// SetJSON switches between JSON and text formatting.
func SetJSON(on bool) {
	if on {
		std.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func Debug(args ...any)                 { std.Debug(args...) }
func Info(args ...any)                  { std.Info(args...) }
func Warn(args ...any)                  { std.Warn(args...) }
func Error(args ...any)                 { std.Error(args...) }
func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Warnf(format string, args ...any)  { std.Warnf(format, args...) }
func Errorf(format string, args ...any) { std.Errorf(format, args...) }

func WithField(key string, value any) *logrus.Entry { return std.WithField(key, value) }
func WithFields(f Fields) *logrus.Entry             { return std.WithFields(f) }
func WithError(err error) *logrus.Entry             { return std.WithError(err) }
