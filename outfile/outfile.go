// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package outfile implements output files
// that are only visible once they are completely written.
//
// Data is written into a temporary file
// in the destination directory,
// and the file is renamed to its final name on Commit.
package outfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
)

// A File is a pending output file.
type File struct {
	name string
	tmp  *os.File
	done bool
}

// Create creates a pending output file
// that will be named name on commit.
// The destination directory is created if it does not exist.
func Create(name string) (*File, error) {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+"-*.tmp")
	if err != nil {
		return nil, err
	}
	return &File{
		name: name,
		tmp:  tmp,
	}, nil
}

// Name returns the final name of the file.
func (f *File) Name() string {
	return f.name
}

// Write implements the io.Writer interface.
func (f *File) Write(p []byte) (int, error) {
	if f.done {
		return 0, fmt.Errorf("file %q: already closed", f.name)
	}
	return f.tmp.Write(p)
}

// Commit closes the temporary file
// and moves it to its final name.
func (f *File) Commit() error {
	if f.done {
		return fmt.Errorf("file %q: already closed", f.name)
	}
	f.done = true
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Rename(f.tmp.Name(), f.name); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return nil
}

// Discard closes and removes the temporary file.
// It is a no-op if the file was already committed,
// so it can be deferred.
func (f *File) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}

// Write writes a file using the given function.
// If the function fails,
// no file is created.
func Write(name string, fn func(w io.Writer) error) error {
	f, err := Create(name)
	if err != nil {
		return err
	}
	defer f.Discard()

	if err := fn(f); err != nil {
		return err
	}
	return f.Commit()
}

// WriteAll writes a set of files
// (a map of names to writing functions)
// and commits them only if all of them are written.
//
// Files are committed in name order.
// A file that already exists is moved aside before the commit.
// If a commit fails,
// the files already committed are removed
// and the previous files are restored.
func WriteAll(files map[string]func(w io.Writer) error) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	var pending []*File
	defer func() {
		for _, f := range pending {
			f.Discard()
		}
	}()

	for _, name := range names {
		f, err := Create(name)
		if err != nil {
			return err
		}
		pending = append(pending, f)
		if err := files[name](f); err != nil {
			return fmt.Errorf("while writing %q: %v", name, err)
		}
	}

	var done []committed
	for _, f := range pending {
		bak, err := moveAside(f.name)
		if err != nil {
			return rollback(done, err)
		}
		if err := f.Commit(); err != nil {
			if bak != "" {
				if e := os.Rename(bak, f.name); e != nil {
					err = errors.Join(err, e)
				}
			}
			return rollback(done, err)
		}
		done = append(done, committed{name: f.name, backup: bak})
	}

	for _, c := range done {
		if c.backup != "" {
			os.Remove(c.backup)
		}
	}
	return nil
}

// Committed is a file committed by WriteAll.
type committed struct {
	name   string
	backup string
}

// MoveAside renames an existing file
// to a temporary name in the same directory,
// and returns the temporary name.
// If the file does not exist,
// it returns an empty string.
func moveAside(name string) (string, error) {
	if _, err := os.Lstat(name); errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	bak, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+"-*.bak")
	if err != nil {
		return "", err
	}
	bak.Close()
	if err := os.Rename(name, bak.Name()); err != nil {
		os.Remove(bak.Name())
		return "", err
	}
	return bak.Name(), nil
}

func rollback(done []committed, err error) error {
	errs := []error{err}
	for _, c := range done {
		if e := os.Remove(c.name); e != nil {
			errs = append(errs, e)
		}
		if c.backup == "" {
			continue
		}
		if e := os.Rename(c.backup, c.name); e != nil {
			errs = append(errs, e)
		}
	}
	return errors.Join(errs...)
}
