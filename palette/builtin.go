package palette

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultName is the builtin palette used when none is given.
const DefaultName = "gruvbox-light"

//go:embed builtin/*.txt
var builtinFS embed.FS

// Names returns the names of the builtin palettes, sorted.
func Names() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		// The directory is embedded, so this can't happen
		panic(err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is the name of a builtin palette.
func IsBuiltin(name string) bool {
	_, err := fs.Stat(builtinFS, builtinPath(name))
	return err == nil
}

// Builtin returns the builtin palette with the given name.
func Builtin(name string) (Palette, error) {
	f, err := builtinFS.Open(builtinPath(name))
	if err != nil {
		return nil, fmt.Errorf("%w: no builtin palette named %q", ErrUnavailable, name)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("builtin palette %q: %w", name, err)
	}
	return p, nil
}

// Resolve finds the palette a user asked for. An empty name selects the
// default builtin palette, a builtin name selects that palette, and anything
// else is loaded as a palette file path.
func Resolve(name string) (Palette, error) {
	if name == "" {
		return Builtin(DefaultName)
	}
	if IsBuiltin(name) {
		return Builtin(name)
	}
	return Load(name)
}

func builtinPath(name string) string {
	return path.Join("builtin", name+".txt")
}
