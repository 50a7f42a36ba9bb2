package substrate

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/lang"
)

// Location of the template trees below the scripts root.
const (
	ArchRel = "lib/bsp/substrate/target/arch"

	// CommonArch is the tree expanded for every architecture. It is not
	// itself an architecture.
	CommonArch = "common"
)

// ErrUnknownArch is returned for an architecture without a template tree.
var ErrUnknownArch = lang.NewError("invalid architecture")

// ArchDir returns the directory holding the template tree of arch.
func ArchDir(scriptsPath, arch string) string {
	return filepath.Join(scriptsPath, ArchRel, arch)
}

// Archs returns the sorted names of the architectures with a template tree
// below scriptsPath.
func Archs(fs afero.Fs, scriptsPath string) ([]string, error) {
	root := filepath.Join(scriptsPath, ArchRel)

	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, ErrWalk.With(slog.String("dir", root)).Wrap(err)
	}

	var archs []string

	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != CommonArch {
			archs = append(archs, entry.Name())
		}
	}

	slices.Sort(archs)

	return archs, nil
}

// ValidateArch returns [ErrUnknownArch] unless arch is one of [Archs].
func ValidateArch(fs afero.Fs, scriptsPath, arch string) error {
	archs, err := Archs(fs, scriptsPath)
	if err != nil {
		return err
	}

	if !slices.Contains(archs, arch) {
		return ErrUnknownArch.With(
			slog.String("arch", arch),
			slog.Any("valid", archs),
		)
	}

	return nil
}

// Trees returns the template roots expanded for arch, in order.
func Trees(scriptsPath, arch string) []string {
	return []string{
		ArchDir(scriptsPath, CommonArch),
		ArchDir(scriptsPath, arch),
	}
}
