package pathutils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
)

// Module describes the Go module enclosing a directory.
type Module struct {
	// Root is the absolute path of the directory holding go.mod.
	Root string
	// Path is the module path declared in go.mod.
	Path string
}

// FindModule searches dir and its parents for the nearest go.mod file
// and returns the module it declares.
// An empty dir means the current working directory.
func FindModule(dir string) (Module, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Module{}, errors.Wrap(err, "failed to get current working directory")
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Module{}, errors.Wrapf(err, "failed to resolve %s", dir)
	}
	for {
		goModPath := filepath.Join(dir, "go.mod")
		fi, err := os.Stat(goModPath)
		switch {
		case err != nil && !os.IsNotExist(err):
			return Module{}, errors.Wrapf(err, "failed to stat %s", goModPath)
		case err == nil && !fi.IsDir():
			return readModule(dir, goModPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Module{}, errors.New("go.mod not found in directory tree")
}

func readModule(root, goModPath string) (Module, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return Module{}, errors.Wrapf(err, "failed to read %s", goModPath)
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return Module{}, errors.Errorf("%s does not declare a module path", goModPath)
	}
	return Module{Root: root, Path: modulePath}, nil
}
