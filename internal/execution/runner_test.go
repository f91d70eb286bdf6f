package execution

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"allurectl/internal/config"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	runner := NewRunner(cfg, zaptest.NewLogger(t))
	var out bytes.Buffer
	runner.SetOutput(&out, &out)
	return runner, &out
}

func TestInvocation_String(t *testing.T) {
	inv := Invocation{Name: "allure", Args: []string{"generate", "allure-results", "--clean"}}
	assert.Equal(t, "allure generate allure-results --clean", inv.String())
}

func TestRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	t.Run("missing executable wraps ErrNotFound", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := runner.Run(context.Background(), Invocation{Name: "allurectl-definitely-missing"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})

	t.Run("zero exit", func(t *testing.T) {
		runner, out := newTestRunner(t)
		err := runner.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "echo rendered"}})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "rendered")
	})

	t.Run("quiet captures output", func(t *testing.T) {
		runner, out := newTestRunner(t)
		err := runner.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "echo 2.30.0"}, Quiet: true})
		require.NoError(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("non-zero exit", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := runner.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "exit 3"}})
		require.Error(t, err)

		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 3, exitErr.ExitCode())
	})

	t.Run("cancel interrupts the child", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		time.AfterFunc(200*time.Millisecond, cancel)

		start := time.Now()
		err := runner.Run(ctx, Invocation{
			Name:  "sh",
			Args:  []string{"-c", `trap "exit 130" INT; sleep 5 >/dev/null 2>&1 & wait`},
			Quiet: true,
		})

		assert.Less(t, time.Since(start), 4*time.Second, "child must exit on interrupt, not run to completion")
		require.Error(t, err)
		require.Error(t, ctx.Err())

		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 130, exitErr.ExitCode())
	})
}
