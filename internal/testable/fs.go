// Package testable provides interfaces for abstracting OS-level operations,
// enabling mock injection in tests without modifying production behavior.
package testable

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem abstracts the file operations tally performs on inputs and
// outputs. The production implementation (OsFileSystem) delegates to the
// standard library.
type FileSystem interface {
	// Abs returns an absolute representation of path.
	Abs(path string) (string, error)

	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads the named directory, returning its entries sorted by name.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Create creates or truncates the named file.
	Create(name string) (*os.File, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// Rename moves oldpath to newpath, replacing newpath if it exists.
	Rename(oldpath, newpath string) error
}

// OsFileSystem is the production implementation of FileSystem.
type OsFileSystem struct{}

// Abs wraps filepath.Abs.
func (OsFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile wraps os.ReadFile.
func (OsFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // caller controls path
}

// ReadDir wraps os.ReadDir.
func (OsFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Create wraps os.Create.
func (OsFileSystem) Create(name string) (*os.File, error) {
	return os.Create(name) //nolint:gosec // caller controls path
}

// WriteFile wraps os.WriteFile.
func (OsFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm) //nolint:gosec // caller controls path and perms
}

// Rename wraps os.Rename.
func (OsFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// DefaultFS is the production FileSystem used when none is injected.
var DefaultFS FileSystem = OsFileSystem{}
