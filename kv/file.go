package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// File is a Store keeping one file per key under a directory. It is the
// default backend: the data stays plain JSON on disk, readable and
// version-controllable.
type File struct {
	dir string
}

// keys must stay safe as file names.
var safeKeyRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// OpenFile opens (and creates if needed) a directory-backed store.
func OpenFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if !safeKeyRe.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(key string) (string, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read %q: %w", path, err)
	}
	return string(content), true, nil
}

func (f *File) Set(key, value string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	// write-then-rename keeps the previous blob intact if the write fails midway.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot rename %q: %w", tmp, err)
	}
	return nil
}

func (f *File) Delete(key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove %q: %w", path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
