// Package cli contains the command line interface for cfglang.
//
// # Usage
//
//	cfglang [flags] [<source>]            compile (the default command)
//	cfglang compile -F json app.cfg
//	cfglang tokens app.cfg
//	cfglang query 'port + 1' -s app.cfg
//	cfglang repl [<source>]
//	cfglang init [--force]
//
// A source of "-" reads stdin.
//
// # Configuration File
//
// Flag defaults are read from a cfglang document in the user configuration
// directory (for example ~/.config/cfglang/config), and from config.json in
// the same directory. Each constant configures the flag of the same name,
// with '-' written as '_':
//
//	% cfglang configuration
//	log_level: 'debug'
//	log_pretty: 'false'
//
// A configuration file that fails to compile is reported and ignored.
// [cmd.Init] writes a file containing the current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Style text output for a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o cfglang .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/cfglang/pprof)
package cli
