//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the bspgen module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It appears in help
	// text, default config paths, and the environment variable prefix.
	Name = "bspgen"
	// Description is a short summary used in help output.
	Description = "Board support package generator"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// EnvPrefix returns the prefix of environment variables recognized by the
// command line, for example "BSPGEN_".
func EnvPrefix() string {
	return strings.ToUpper(Prefix()) + "_"
}
