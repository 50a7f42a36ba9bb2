// Package log provides a leveled structured logger built on [log/slog].
//
// A [Logger] is constructed with [Make] and configured with functional
// options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// Every method takes typed [slog.Attr] values rather than alternating
// key/value arguments:
//
//	logger.Info("bsp created", slog.String("dir", out))
//
// The zero Logger discards everything, so engine components embed a Logger
// field that callers may leave unset.
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and is
// used for per-line diagnostics of template expansion.
//
// When pretty printing is enabled (the default) records are colorized; the
// text format prints one key=value line per record and the JSON format prints
// an indented object.
//
// The package-level functions ([Info], [DebugContext], ...) log through a
// default Logger writing to standard error, reconfigured with [Config].
package log
