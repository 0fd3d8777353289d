package shell

// Default is the Shell behind the package-level verbs. Tests may replace
// it, e.g. with one built over fs.NewMockFS().
var Default = New()

func Cd(path string) error { return Default.Cd(path) }

func Pwd() (string, error) { return Default.Pwd() }

func Mkfile(path string) error { return Default.Mkfile(path) }

func Mkdir(path string, parents bool) error { return Default.Mkdir(path, parents) }

func Symlink(source, destination string, targetIsDir bool) error {
	return Default.Symlink(source, destination, targetIsDir)
}

func Rm(path string, recursive bool) error { return Default.Rm(path, recursive) }

func Touch(path string, times *Times) error { return Default.Touch(path, times) }

func Truncate(path string) error { return Default.Truncate(path) }

func Mv(src, dst string) error { return Default.Mv(src, dst) }

func Mkdtemp() (string, error) { return Default.Mkdtemp() }

func Ls(path string) ([]string, error) { return Default.Ls(path) }

func Msize(path string) error { return Default.Msize(path) }

func MountTmpfs(path string) error { return Default.MountTmpfs(path) }

func Unmount(path string) error { return Default.Unmount(path) }
