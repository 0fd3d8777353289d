// Package shell gives filesystem-watcher tests short verbs for the file,
// directory and mount operations they perform: Mkfile, Mkdir, Rm, Touch,
// Mv, Msize, MountTmpfs and friends.
//
// Each verb performs one OS-level side effect and returns the OS error
// unchanged, with two deliberate exceptions: Mkdir with parents ignores
// "already exists", and Rm refuses directories unless recursive. Rm also
// refuses to recurse through a symlink, and Mv never deletes a directory.
//
// Cd and Pwd act on the process working directory, which is shared by
// every goroutine; callers serialize their use.
package shell

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/michaeldyrynda/fsshell/internal/fs"
	"github.com/michaeldyrynda/fsshell/internal/logging"
	"github.com/michaeldyrynda/fsshell/internal/privileged"
)

// Epoch is the timestamp Msize pins a file to.
var Epoch = time.Unix(0, 0)

// ErrSymlinkTree is returned by Rm for a recursive removal of a symlink
// that points at a directory.
var ErrSymlinkTree = errors.New("cannot remove a symbolic link recursively")

const (
	// DefaultMsizeDelay covers the coarsest timestamp resolution of the
	// filesystems the watcher tests run on.
	DefaultMsizeDelay = 400 * time.Millisecond
	DefaultTempPrefix = "fsshell-"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Times holds explicit timestamps for Touch.
type Times struct {
	Atime time.Time
	Mtime time.Time
}

// Mounter performs privileged mounts.
type Mounter interface {
	MountTmpfs(ctx context.Context, path string) error
	Unmount(ctx context.Context, path string) error
}

// Shell runs the verbs against one filesystem backend.
type Shell struct {
	fs         fs.FS
	mounter    Mounter
	logger     *log.Logger
	msizeDelay time.Duration
	tempPrefix string
	sleep      func(time.Duration)
	now        func() time.Time
}

// Option configures a Shell.
type Option func(*Shell)

// WithFS sets the filesystem backend.
func WithFS(fsys fs.FS) Option {
	return func(s *Shell) { s.fs = fsys }
}

// WithMounter sets the privileged mounter.
func WithMounter(m Mounter) Option {
	return func(s *Shell) { s.mounter = m }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithMsizeDelay sets the pause between the two writes of Msize.
func WithMsizeDelay(d time.Duration) Option {
	return func(s *Shell) { s.msizeDelay = d }
}

// WithTempPrefix sets the name prefix used by Mkdtemp.
func WithTempPrefix(prefix string) Option {
	return func(s *Shell) { s.tempPrefix = prefix }
}

// WithSleep replaces time.Sleep in Msize.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Shell) { s.sleep = sleep }
}

// WithClock replaces time.Now for Touch and Truncate.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// New creates a Shell over the real OS unless options say otherwise.
func New(opts ...Option) *Shell {
	s := &Shell{
		fs:         fs.Default,
		msizeDelay: DefaultMsizeDelay,
		tempPrefix: DefaultTempPrefix,
		sleep:      time.Sleep,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.mounter == nil {
		s.mounter = privileged.NewMounter(privileged.ExecRunner{}, privileged.DefaultSudo, privileged.PolicyWarn, s.logger)
	}
	return s
}

// FS returns the backend the shell operates on.
func (s *Shell) FS() fs.FS {
	return s.fs
}

// Cd changes the process working directory.
func (s *Shell) Cd(path string) error {
	s.logger.Debug("cd", "path", path)
	return os.Chdir(path)
}

// Pwd returns the process working directory.
func (s *Shell) Pwd() (string, error) {
	return os.Getwd()
}

// Mkfile creates an empty file, leaving an existing file's content alone.
func (s *Shell) Mkfile(path string) error {
	s.logger.Debug("mkfile", "path", path)
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
	if err != nil {
		return err
	}
	return f.Close()
}

// Mkdir creates a directory. With parents, missing ancestors are created
// and anything already at the target, file or directory, is not an error.
func (s *Shell) Mkdir(path string, parents bool) error {
	s.logger.Debug("mkdir", "path", path, "parents", parents)
	if !parents {
		return s.fs.Mkdir(path, dirPerm)
	}
	err := s.fs.MkdirAll(path, dirPerm)
	if err == nil || errors.Is(err, iofs.ErrExist) {
		return nil
	}
	// MkdirAll reports ENOTDIR for a file at the target itself.
	if _, statErr := s.fs.Stat(path); statErr == nil {
		return nil
	}
	return err
}

// Symlink creates destination pointing at source. targetIsDir only
// matters on platforms with distinct directory links; os.Symlink detects
// that itself, so the hint is recorded and otherwise unused.
func (s *Shell) Symlink(source, destination string, targetIsDir bool) error {
	s.logger.Debug("symlink", "source", source, "destination", destination, "dir", targetIsDir)
	return fs.Symlink(s.fs, source, destination)
}

// Rm deletes a file, or a directory tree when recursive is set.
// A directory without recursive always fails with EISDIR. A symlink to a
// directory is never removed recursively.
func (s *Shell) Rm(path string, recursive bool) error {
	s.logger.Debug("rm", "path", path, "recursive", recursive)
	if fs.IsDir(s.fs, path) {
		if !recursive {
			return &iofs.PathError{Op: "rm", Path: path, Err: syscall.EISDIR}
		}
		if fs.IsSymlink(s.fs, path) {
			return &iofs.PathError{Op: "rm", Path: path, Err: ErrSymlinkTree}
		}
		return s.fs.RemoveAll(path)
	}
	return s.fs.Remove(path)
}

// Touch sets the access and modification times of path, creating an empty
// file if nothing exists there. A nil times means now.
func (s *Shell) Touch(path string, times *Times) error {
	s.logger.Debug("touch", "path", path)
	if !fs.IsDir(s.fs, path) {
		if err := s.Mkfile(path); err != nil {
			return err
		}
	}
	if times == nil {
		now := s.now()
		return s.fs.Chtimes(path, now, now)
	}
	return s.fs.Chtimes(path, times.Atime, times.Mtime)
}

// Truncate empties path, creating it if absent, and sets its times to now.
func (s *Shell) Truncate(path string) error {
	s.logger.Debug("truncate", "path", path)
	if err := s.write(path, nil); err != nil {
		return err
	}
	now := s.now()
	return s.fs.Chtimes(path, now, now)
}

// Mv renames src to dst. If the rename fails, dst is removed and the
// rename retried. That fallback is not atomic: an error between the two
// steps can leave neither path present.
//
// The fallback only removes a non-directory dst, and is skipped entirely
// when src does not exist; in both cases the rename error is returned and
// dst is left in place.
func (s *Shell) Mv(src, dst string) error {
	s.logger.Debug("mv", "src", src, "dst", dst)
	err := s.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !fs.Exists(s.fs, src) || fs.IsDir(s.fs, dst) {
		return err
	}

	s.logger.Warn("rename failed, replacing destination", "src", src, "dst", dst, "err", err)
	if err := s.fs.Remove(dst); err != nil {
		return err
	}
	return s.fs.Rename(src, dst)
}

// Mkdtemp creates a uniquely named directory under the OS temp root.
// The caller removes it.
func (s *Shell) Mkdtemp() (string, error) {
	return afero.TempDir(s.fs, "", s.tempPrefix)
}

// Ls lists the names directly inside path in the order the backend
// reports them. An empty path means ".".
func (s *Shell) Ls(path string) ([]string, error) {
	if path == "" {
		path = "."
	}
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Msize changes the size of path without changing its reported mtime.
// The file is emptied and pinned to Epoch, then after the configured
// delay rewritten with one byte and pinned to Epoch again.
func (s *Shell) Msize(path string) error {
	s.logger.Debug("msize", "path", path, "delay", s.msizeDelay)
	if err := s.writeAtEpoch(path, nil); err != nil {
		return err
	}
	s.sleep(s.msizeDelay)
	return s.writeAtEpoch(path, []byte("0"))
}

// MountTmpfs mounts an in-memory filesystem at path.
func (s *Shell) MountTmpfs(path string) error {
	return s.MountTmpfsContext(context.Background(), path)
}

// MountTmpfsContext is MountTmpfs with a context.
func (s *Shell) MountTmpfsContext(ctx context.Context, path string) error {
	s.logger.Debug("mount tmpfs", "path", path)
	return s.mounter.MountTmpfs(ctx, path)
}

// Unmount unmounts path.
func (s *Shell) Unmount(path string) error {
	return s.UnmountContext(context.Background(), path)
}

// UnmountContext is Unmount with a context.
func (s *Shell) UnmountContext(ctx context.Context, path string) error {
	s.logger.Debug("unmount", "path", path)
	return s.mounter.Unmount(ctx, path)
}

func (s *Shell) write(path string, data []byte) error {
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := f.Write(data); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func (s *Shell) writeAtEpoch(path string, data []byte) error {
	if err := s.write(path, data); err != nil {
		return err
	}
	return s.fs.Chtimes(path, Epoch, Epoch)
}
