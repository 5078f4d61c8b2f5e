// Package obslog wires github.com/go-kit/log the way the teacher's
// pkg/util/log does: a package-level Logger, a leveled wrapper, and a
// constructor that never returns an error for a bad level — it degrades to
// info rather than making every caller of cmd/fsactl handle a config typo.
package obslog

import (
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the process-wide sink. It defaults to a no-op logger so a
// caller that never calls Init pays nothing.
var Logger kitlog.Logger = kitlog.NewNopLogger()

// Init installs a leveled, timestamped logger writing to w, in the shape
// of the teacher's util_log.Config: one of "debug", "info", "warn",
// "error" gates what level.Debug/Info/Warn/Error actually emit. An
// unrecognized name falls back to "info".
func Init(w io.Writer, levelName string) {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	base = kitlog.With(base, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)

	var opt level.Option
	switch strings.ToLower(levelName) {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	Logger = level.NewFilter(base, opt)
}

// With returns a logger with keyvals appended to every subsequent line,
// mirroring log.With in the teacher.
func With(keyvals ...interface{}) kitlog.Logger {
	return kitlog.With(Logger, keyvals...)
}

// Debug, Info, Warn, and Error are shorthand for the equivalent
// go-kit/log/level helper bound to the package logger.
func Debug() kitlog.Logger { return level.Debug(Logger) }
func Info() kitlog.Logger  { return level.Info(Logger) }
func Warn() kitlog.Logger  { return level.Warn(Logger) }
func Error() kitlog.Logger { return level.Error(Logger) }
