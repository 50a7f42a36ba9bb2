// Package cmd implements the bspgen subcommands: create, list, init and
// version.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the configuration file.
	ConfigIdentifier = "config"

	// CodedumpIdentifier is the kong variable identifier containing the file
	// name of the program dump.
	CodedumpIdentifier = "codedump"
)
