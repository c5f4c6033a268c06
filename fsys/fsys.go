// Package fsys is the filesystem access used while resolving and emitting
// modules.
package fsys

import (
	"io"
	"os"

	"github.com/hashicorp/golang-lru/v2"
)

// FS answers existence checks and reads files.
type FS interface {
	IsFile(path string) bool
	IsDir(path string) bool
	ReadFile(path string) ([]byte, error)
	Open(path string) (io.ReadCloser, error)
}

// OS is the host filesystem.
type OS struct{}

func (OS) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

type kind uint8

const (
	kindMissing kind = iota
	kindFile
	kindDir
)

// Cached memoizes existence checks of an underlying FS. Reads are passed
// through unchanged.
type Cached struct {
	FS
	kinds *lru.Cache[string, kind]
}

// NewCached wraps fs with an existence cache of the given size.
func NewCached(fs FS, size int) (*Cached, error) {
	kinds, err := lru.New[string, kind](size)
	if err != nil {
		return nil, err
	}
	return &Cached{FS: fs, kinds: kinds}, nil
}

func (c *Cached) kind(path string) kind {
	if k, ok := c.kinds.Get(path); ok {
		return k
	}
	k := kindMissing
	switch {
	case c.FS.IsFile(path):
		k = kindFile
	case c.FS.IsDir(path):
		k = kindDir
	}
	c.kinds.Add(path, k)
	return k
}

func (c *Cached) IsFile(path string) bool {
	return c.kind(path) == kindFile
}

func (c *Cached) IsDir(path string) bool {
	return c.kind(path) == kindDir
}
