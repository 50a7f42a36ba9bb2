// Package cli contains the command line interface for bspgen.
//
// # Usage
//
//	bspgen [flags] create <machine> <arch> [-o DIR] [-c] [-i FILE]
//	bspgen [flags] list karch
//	bspgen [flags] list properties <arch> [-o FILE]
//	bspgen [flags] list property <arch> <property> [-o FILE]
//	bspgen init [--force]
//	bspgen version
//
// The template layout is found below --scripts-path, which may also be set
// with the BSPGEN_SCRIPTS_PATH environment variable.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/bspgen/config.yaml), or from a JSON
// sibling with the same name plus ".json". The init command writes the
// current flag values to that file. Keys are flag names:
//
//	scripts-path: /opt/poky/scripts
//	log:
//	  level: debug
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (see package profile)
//   - --pprof-dir: Set profile output directory
package cli
