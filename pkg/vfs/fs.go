package vfs

import (
	"errors"
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// Dir returns a filesystem rooted at root on the OS filesystem. The
// directory is created when mkdir is set, otherwise it must already exist.
func Dir(root string, mkdir bool) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, root); err != nil {
		return nil, err
	} else if !exists {
		if !mkdir {
			return nil, errors.New("dir not exists")
		}
		if err := fs.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("create dir failed: %w", err)
		}
	}
	return afero.NewBasePathFs(fs, root), nil
}

// WriteFile writes bs to name, creating the parent directories when needed.
func WriteFile(fs afero.Fs, name string, bs []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if exists, err := afero.DirExists(fs, dir); err != nil {
			return err
		} else if !exists {
			if err2 := fs.MkdirAll(dir, 0755); err2 != nil {
				return err2
			}
		}
	}

	return afero.WriteFile(fs, name, bs, 0644)
}
