package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	input := `
log-level: debug
log:
  format: json
scripts_path: /opt/poky/scripts
count: 3
`

	r, err := resolve(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"scripts-path", "/opt/poky/scripts"},
		{"count", "3"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	r, err := resolve(strings.NewReader("- not\n- a mapping\n"))
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "not"}}); got != nil {
		t.Errorf("Resolve() = %#v, want nil", got)
	}
}

func TestConfigFile(t *testing.T) {
	var cli struct {
		Name  string `default:"x"`
		Level string `default:"info" name:"log-level"`
	}

	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("name: from-config\nlog-level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Configuration(resolve, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--name=from-flag"}); err != nil {
		t.Fatal(err)
	}

	if cli.Name != "from-flag" {
		t.Errorf("Name = %q, want flag to override config", cli.Name)
	}

	if cli.Level != "warn" {
		t.Errorf("Level = %q, want value from config", cli.Level)
	}
}
