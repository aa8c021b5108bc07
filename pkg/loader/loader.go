// Package loader resolves the input source for a query and decodes its
// content into the in-memory document tree.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// PyprojectFile is the manifest looked up by the --pyproject flag.
	PyprojectFile = "pyproject.toml"
	// MesonSourceRootEnv overrides the pyproject lookup directory.
	MesonSourceRootEnv = "MESON_SOURCE_ROOT"
	// StdinPath is the conventional file argument meaning standard input.
	StdinPath = "-"
)

// Source describes where the document bytes come from.
type Source struct {
	Path  string
	Stdin bool
}

// Name returns a human-readable label for messages.
func (s Source) Name() string {
	if s.Stdin {
		return "stdin"
	}
	return s.Path
}

// ResolveSource maps the --file/--pyproject flags to a concrete source.
// An empty file argument defaults to stdin, matching pipeline usage
// (`cat pyproject.toml | tomlraider project.version`).
func ResolveSource(file string, pyproject bool) (Source, error) {
	if pyproject {
		path, err := FindPyproject()
		if err != nil {
			return Source{}, err
		}
		return Source{Path: path}, nil
	}
	if file == "" || file == StdinPath {
		return Source{Stdin: true}, nil
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Source{}, fmt.Errorf("file not found: %s", file)
		}
		return Source{}, fmt.Errorf("cannot access %s: %w", file, err)
	}
	return Source{Path: file}, nil
}

// FindPyproject locates pyproject.toml in $MESON_SOURCE_ROOT when set,
// otherwise in the current directory.
func FindPyproject() (string, error) {
	root := os.Getenv(MesonSourceRootEnv)
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = cwd
	}
	path := filepath.Join(root, PyprojectFile)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("<%s> file not found in %s", PyprojectFile, root)
	}
	return path, nil
}

// Load reads the source and decodes it as a TOML document.
func Load(src Source) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if src.Stdin {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Name(), err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes TOML bytes into the document tree. The root of a
// TOML document is always a table.
func LoadBytes(data []byte) (map[string]any, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("decoding TOML at row %d, column %d: %s", row, col, derr.Error())
		}
		return nil, fmt.Errorf("decoding TOML: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	return root, nil
}

// LoadFile reads a file (or stdin for "-") and decodes it.
func LoadFile(path string) (map[string]any, error) {
	if path == StdinPath {
		return Load(Source{Stdin: true})
	}
	return Load(Source{Path: path})
}
