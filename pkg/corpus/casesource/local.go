package casesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Local reads case folders from a directory tree.
type Local struct {
	root string
}

// NewLocal returns a Source rooted at dir
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Folders walks the tree in lexical order and returns every directory
// holding a details.yaml.
func (l *Local) Folders(ctx context.Context) ([]Folder, error) {
	var folders []Folder
	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || d.Name() != DetailsFile {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		dir := filepath.Dir(p)
		folders = append(folders, Folder{
			Source:   filepath.Base(filepath.Dir(dir)),
			Name:     filepath.Base(dir),
			Location: filepath.ToSlash(dir),
			Created:  info.ModTime(),
			Modified: info.ModTime(),
			b:        l,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.root, err)
	}
	return folders, nil
}

func (l *Local) read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.FromSlash(key))
}

func (l *Local) list(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.FromSlash(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
