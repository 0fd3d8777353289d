// Package fs provides the filesystem backend used by the shell verbs.
// The real operating system is reached through afero so the same verbs
// can run against an in-memory MockFS in unit tests.
package fs

import (
	"os"

	"github.com/spf13/afero"
)

// FS is the backend every shell verb operates on.
type FS = afero.Fs

// New returns a backend over the real operating system.
func New() FS {
	return afero.NewOsFs()
}

// Default is the default OS backend for convenience.
var Default = New()

// Symlink creates newname as a symbolic link to oldname.
// Backends that cannot create links return an *os.LinkError wrapping
// afero.ErrNoSymlink.
func Symlink(fsys FS, oldname, newname string) error {
	linker, ok := fsys.(afero.Linker)
	if !ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
	}
	return linker.SymlinkIfPossible(oldname, newname)
}

// Exists reports whether path exists. Stat errors other than
// "not found" are treated as existing.
func Exists(fsys FS, path string) bool {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return true
	}
	return ok
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys FS, path string) bool {
	ok, err := afero.IsDir(fsys, path)
	return err == nil && ok
}

// Lstat describes path without following a final symlink, on backends
// that support it, and falls back to Stat otherwise.
func Lstat(fsys FS, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// IsSymlink reports whether path itself is a symbolic link.
func IsSymlink(fsys FS, path string) bool {
	info, err := Lstat(fsys, path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
