package kv

import (
	"errors"
	"io/fs"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Disk is the default on-disk Store, one file per key under the data
// directory.
type Disk struct {
	d *diskv.Diskv
}

// NewDisk creates a diskv-backed store rooted at basePath. The directory is
// created on first write.
func NewDisk(basePath string) *Disk {
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *Disk) Get(key string) ([]byte, bool) {
	val, err := s.d.Read(key)
	if err != nil {
		// Missing keys surface as fs.ErrNotExist from the filesystem.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, false
		}
		return nil, false
	}
	return val, true
}

func (s *Disk) Set(key string, value []byte) error {
	return s.d.Write(key, value)
}

func (s *Disk) Remove(key string) error {
	err := s.d.Erase(key)
	if err != nil && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist)) {
		return nil
	}
	return err
}
