package fsa

import kitlog "github.com/go-kit/log"

// Logger is the sink installed with WithLogger. It is exactly
// github.com/go-kit/log.Logger, aliased so callers of this package don't
// need their own import to satisfy WithLogger's signature.
type Logger = kitlog.Logger

// NopLogger discards everything logged to it, the default when no logger
// is installed.
func NopLogger() Logger {
	return kitlog.NewNopLogger()
}
