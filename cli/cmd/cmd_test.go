package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/bspgen/pkg"
	"github.com/ardnew/bspgen/substrate"
)

var layout = map[string]string{
	"common/conf/layer.conf": "BBFILE_COLLECTIONS += \"{{=machine}}\"\n",
	"arm/conf/machine/{{=machine}}.conf": `{{ input type:"boolean" name:"smp" msg:"SMP?" default:"y" }}
{{ input type:"choicelist" name:"tune" msg:"Tune" default:"armv7a" }}
{{ input type:"choice" val:"armv5" msg:"ARMv5" }}
{{ input type:"choice" val:"armv7a" msg:"ARMv7-A" }}
DEFAULTTUNE = "{{=tune}}"
`,
	"mips/conf/machine/{{=machine}}.conf": "TUNE = \"mips32r2\"\n",
}

// setup writes a template layout below a temporary scripts root and returns
// a context carrying it and a kong context writing to the returned buffer.
func setup(t *testing.T, vars kong.Vars) (context.Context, *bytes.Buffer) {
	t.Helper()

	scripts := t.TempDir()

	for rel, content := range layout {
		path := filepath.Join(scripts, substrate.ArchRel, rel)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var (
		cli struct{}
		out bytes.Buffer
	)

	parser, err := kong.New(&cli, kong.Writers(&out, &out), vars)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(t.Context(), ktx)
	ctx = WithScriptsPath(ctx, scripts)

	return ctx, &out
}

func TestListKarch(t *testing.T) {
	ctx, out := setup(t, kong.Vars{})

	if err := (ListKarch{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), "arm\nmips\n"; got != want {
		t.Errorf("list karch = %q, want %q", got, want)
	}
}

func TestListProperties(t *testing.T) {
	ctx, out := setup(t, kong.Vars{})

	if err := (&ListProperties{Arch: "arm"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"smp:", "tune:", "type: choicelist"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list properties output missing %q:\n%s", want, out.String())
		}
	}

	file := filepath.Join(t.TempDir(), "props.json")

	if err := (&ListProperties{Arch: "arm", Outfile: file}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), `"type": "boolean"`) {
		t.Errorf("JSON schema missing boolean type:\n%s", data)
	}
}

func TestListProperty(t *testing.T) {
	ctx, out := setup(t, kong.Vars{})

	if err := (&ListProperty{Arch: "arm", Property: "tune"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), "armv5\tARMv5\narmv7a\tARMv7-A\n"; got != want {
		t.Errorf("list property = %q, want %q", got, want)
	}

	err := (&ListProperty{Arch: "arm", Property: "tun"}).Run(ctx)
	if !errors.Is(err, ErrList) {
		t.Errorf("unknown property error = %v, want %v", err, ErrList)
	}
}

func TestCreate(t *testing.T) {
	ctx, _ := setup(t, kong.Vars{})

	dir := t.TempDir()
	props := filepath.Join(dir, "props.yaml")
	outdir := filepath.Join(dir, "meta-bbb")

	if err := os.WriteFile(props, []byte("smp: \"n\"\ntune: armv5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := &Create{Machine: "bbb", Arch: "arm", Outdir: outdir, Properties: props}
	if err := c.Run(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(outdir, "conf", "machine", "bbb.conf"))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "DEFAULTTUNE = \"armv5\"\n"; got != want {
		t.Errorf("machine conf = %q, want %q", got, want)
	}

	// The output directory now exists.
	if err := c.Run(ctx); !errors.Is(err, ErrCreate) {
		t.Errorf("second create error = %v, want %v", err, ErrCreate)
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr bool
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Verbose bool   `help:"Enable verbose output"`
				Output  string `help:"Output file"`
				Count   int    `help:"Number of items"`
				Empty   string `help:"Unset"`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse([]string{"--verbose", "--output=test.txt", "--count=5"})
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(t.Context(), ktx))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, ErrWriteConfig)
				}

				return
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			content := string(data)

			for _, want := range []string{"verbose: true", "output: test.txt", "count: 5"} {
				if !strings.Contains(content, want) {
					t.Errorf("config missing %q:\n%s", want, content)
				}
			}

			for _, unwanted := range []string{"help", "empty"} {
				if strings.Contains(content, unwanted) {
					t.Errorf("config contains %q:\n%s", unwanted, content)
				}
			}
		})
	}
}

func TestVersion(t *testing.T) {
	ctx, out := setup(t, kong.Vars{})

	if err := (Version{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), pkg.Name+" "+pkg.Version+"\n"; got != want {
		t.Errorf("version = %q, want %q", got, want)
	}
}
