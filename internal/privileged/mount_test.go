package privileged

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []recordedCall
	stderr string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, dir string) ([]byte, []byte, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	return nil, []byte(f.stderr), f.err
}

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want FailurePolicy
	}{
		{"warn", PolicyWarn},
		{"WARN", PolicyWarn},
		{" fail ", PolicyFail},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParsePolicy("ignore")
		assert.ErrorIs(t, err, ErrUnknownPolicy)
	})
}

func TestMounter_MountTmpfs(t *testing.T) {
	t.Run("runs mount through sudo", func(t *testing.T) {
		runner := &fakeRunner{}
		m := NewMounter(runner, DefaultSudo, PolicyFail, log.New(&bytes.Buffer{}))

		require.NoError(t, m.MountTmpfs(context.Background(), "/mnt/watch"))

		require.Len(t, runner.calls, 1)
		assert.Equal(t, "sudo", runner.calls[0].name)
		assert.Equal(t, []string{"mount", "-t", "tmpfs", "none", "/mnt/watch"}, runner.calls[0].args)
	})

	t.Run("runs mount directly without sudo", func(t *testing.T) {
		runner := &fakeRunner{}
		m := NewMounter(runner, "", PolicyFail, log.New(&bytes.Buffer{}))

		require.NoError(t, m.MountTmpfs(context.Background(), "/mnt/watch"))

		require.Len(t, runner.calls, 1)
		assert.Equal(t, "mount", runner.calls[0].name)
		assert.Equal(t, []string{"-t", "tmpfs", "none", "/mnt/watch"}, runner.calls[0].args)
	})

	t.Run("fail policy surfaces the exit status", func(t *testing.T) {
		exitErr := errors.New("exit status 32")
		runner := &fakeRunner{err: exitErr, stderr: "mount: only root can do that\n"}
		m := NewMounter(runner, DefaultSudo, PolicyFail, log.New(&bytes.Buffer{}))

		err := m.MountTmpfs(context.Background(), "/mnt/watch")
		require.Error(t, err)
		assert.ErrorIs(t, err, exitErr)

		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "sudo mount -t tmpfs none /mnt/watch", cmdErr.Command)
		assert.Equal(t, "mount: only root can do that", cmdErr.Stderr)
		assert.Contains(t, err.Error(), "only root")
	})

	t.Run("warn policy logs and returns nil", func(t *testing.T) {
		var buf bytes.Buffer
		runner := &fakeRunner{err: errors.New("exit status 1")}
		m := NewMounter(runner, DefaultSudo, PolicyWarn, newTestLogger(&buf))

		assert.NoError(t, m.MountTmpfs(context.Background(), "/mnt/watch"))
		assert.Contains(t, buf.String(), "privileged command failed")
		assert.Contains(t, buf.String(), "sudo mount -t tmpfs none /mnt/watch")
	})

	t.Run("cancellation is returned under warn policy", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		runner := &fakeRunner{err: errors.New("signal: killed")}
		m := NewMounter(runner, DefaultSudo, PolicyWarn, log.New(&bytes.Buffer{}))

		err := m.MountTmpfs(ctx, "/mnt/watch")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMounter_Unmount(t *testing.T) {
	runner := &fakeRunner{}
	m := NewMounter(runner, DefaultSudo, "", nil)

	require.NoError(t, m.Unmount(context.Background(), "/mnt/watch"))

	assert.Equal(t, PolicyWarn, m.Policy(), "empty policy defaults to warn")
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "sudo", runner.calls[0].name)
	assert.Equal(t, []string{"umount", "/mnt/watch"}, runner.calls[0].args)
}

func TestExecRunner(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		stdout, _, err := ExecRunner{}.Run(context.Background(), "sh", []string{"-c", "echo hello"}, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(stdout))
	})

	t.Run("captures stderr and exit status", func(t *testing.T) {
		_, stderr, err := ExecRunner{}.Run(context.Background(), "sh", []string{"-c", "echo oops >&2; exit 3"}, "")
		require.Error(t, err)
		assert.Equal(t, "oops\n", string(stderr))
	})
}
