// Package log is a small leveled logger over [log/slog].
//
// A [Logger] is configured once, at construction, with functional options
// and is then immutable:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
//	logger.Info("compiled", slog.Int("constants", 3))
//
// Every level has a context-aware variant (InfoContext, ...). The plain
// variants use [DefaultContextProvider].
//
// The package-level functions write through a default logger on stderr,
// which [Config] reconfigures. Command output goes to stdout and log
// output never mixes with it.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for compiler internals.
// Messages below the configured level are discarded.
//
// # Formats
//
// [FormatText] (default) and [FormatJSON]. Text output is styled with
// lipgloss when [WithPretty] is enabled and the output is a terminal.
//
// # Time Formatting
//
// [WithTimeLayout] accepts a named layout from the [time] package, such as
// "RFC3339" or "Kitchen", or a custom layout. "none" omits timestamps.
package log
