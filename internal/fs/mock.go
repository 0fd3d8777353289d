package fs

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Operation names accepted by MockFS.FailOn.
const (
	OpOpenFile  = "openfile"
	OpMkdir     = "mkdir"
	OpMkdirAll  = "mkdirall"
	OpRemove    = "remove"
	OpRemoveAll = "removeall"
	OpRename    = "rename"
	OpChtimes   = "chtimes"
)

type fault struct {
	op    string
	path  string
	err   error
	times int
}

// MockFS implements FS using an in-memory afero.MemMapFs for testing.
// Individual operations can be made to fail with FailOn, and every
// intercepted call is recorded in Calls.
type MockFS struct {
	afero.Fs

	mu     sync.Mutex
	faults []*fault
	calls  []string
}

// NewMockFS creates a new MockFS with empty storage.
func NewMockFS() *MockFS {
	return &MockFS{Fs: afero.NewMemMapFs()}
}

// FailOn makes the next n calls of op on path return err.
// n <= 0 fails every call until Reset.
func (m *MockFS) FailOn(op, path string, err error, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = append(m.faults, &fault{op: op, path: filepath.Clean(path), err: err, times: n})
}

// Calls returns the intercepted operations in order, formatted as "op path".
func (m *MockFS) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockFS) intercept(op, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleanPath := filepath.Clean(path)
	m.calls = append(m.calls, op+" "+cleanPath)

	for i, f := range m.faults {
		if f.op != op || f.path != cleanPath {
			continue
		}
		if f.times > 0 {
			f.times--
			if f.times == 0 {
				m.faults = append(m.faults[:i], m.faults[i+1:]...)
			}
		}
		return f.err
	}
	return nil
}

// OpenFile opens the named in-memory file.
func (m *MockFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := m.intercept(OpOpenFile, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return m.Fs.OpenFile(name, flag, perm)
}

// Mkdir creates a single directory.
func (m *MockFS) Mkdir(name string, perm os.FileMode) error {
	if err := m.intercept(OpMkdir, name); err != nil {
		return &os.PathError{Op: "mkdir", Path: name, Err: err}
	}
	return m.Fs.Mkdir(name, perm)
}

// MkdirAll creates all directories in the path.
func (m *MockFS) MkdirAll(path string, perm os.FileMode) error {
	if err := m.intercept(OpMkdirAll, path); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return m.Fs.MkdirAll(path, perm)
}

// Remove removes the file or empty directory at name.
func (m *MockFS) Remove(name string) error {
	if err := m.intercept(OpRemove, name); err != nil {
		return &os.PathError{Op: "remove", Path: name, Err: err}
	}
	return m.Fs.Remove(name)
}

// RemoveAll removes path and any children it contains.
func (m *MockFS) RemoveAll(path string) error {
	if err := m.intercept(OpRemoveAll, path); err != nil {
		return &os.PathError{Op: "removeall", Path: path, Err: err}
	}
	return m.Fs.RemoveAll(path)
}

// Rename renames oldname to newname. Faults are keyed on oldname.
func (m *MockFS) Rename(oldname, newname string) error {
	if err := m.intercept(OpRename, oldname); err != nil {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: err}
	}
	return m.Fs.Rename(oldname, newname)
}

// Chtimes changes the access and modification times of name.
func (m *MockFS) Chtimes(name string, atime, mtime time.Time) error {
	if err := m.intercept(OpChtimes, name); err != nil {
		return &os.PathError{Op: "chtimes", Path: name, Err: err}
	}
	return m.Fs.Chtimes(name, atime, mtime)
}

// AddFile adds a file with content to the mock FS for testing.
// Parent directories are created as needed.
func (m *MockFS) AddFile(path string, content []byte, perm os.FileMode) {
	_ = m.Fs.MkdirAll(filepath.Dir(path), 0o755)
	_ = afero.WriteFile(m.Fs, path, content, perm)
}

// AddDir adds a directory to the mock FS for testing.
func (m *MockFS) AddDir(path string) {
	_ = m.Fs.MkdirAll(path, 0o755)
}

// FileExists checks if a regular file exists in the mock FS.
func (m *MockFS) FileExists(path string) bool {
	info, err := m.Fs.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists checks if a directory exists in the mock FS.
func (m *MockFS) DirExists(path string) bool {
	return IsDir(m.Fs, path)
}

// Reset clears all files, faults and recorded calls. It replaces the
// backing store, so it must not race with other calls on m.
func (m *MockFS) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fs = afero.NewMemMapFs()
	m.faults = nil
	m.calls = nil
}
