package dispatch

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error) {
	ret := m.Called(ctx, name, args, stdin)
	out, _ := ret.Get(0).([]byte)
	errOut, _ := ret.Get(1).([]byte)
	return out, errOut, ret.Error(2)
}

type exitError int

func (e exitError) Error() string { return "exit status" }
func (e exitError) ExitCode() int { return int(e) }

func probeArgs(pkg string) []string {
	return []string{"--vanilla", "-e", `quit(status = if (requireNamespace("` + pkg + `", quietly = TRUE)) 0 else 3)`}
}

func TestRscriptChecker_Installed(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, "/usr/bin/Rscript", probeArgs("glmnet"), nil).Return(nil, nil, nil).Once()
	runner.On("Run", mock.Anything, "/usr/bin/Rscript", probeArgs("ranger"), nil).Return(nil, nil, exitError(3)).Once()

	c := NewRscriptCheckerWithRunner("/usr/bin/Rscript", time.Second, runner)
	ctx := context.Background()

	ok, err := c.Installed(ctx, "glmnet")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Installed(ctx, "ranger")
	require.NoError(t, err)
	assert.False(t, ok)

	// Cached answers do not run the interpreter again.
	ok, err = c.Installed(ctx, "glmnet")
	require.NoError(t, err)
	assert.True(t, ok)

	runner.AssertExpectations(t)
}

func TestRscriptChecker_Failure(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", mock.Anything, "Rscript", probeArgs("stats"), nil).
		Return(nil, []byte("Fatal error: cannot open R_HOME\n"), exitError(2)).Twice()

	c := NewRscriptCheckerWithRunner("Rscript", time.Second, runner)

	_, err := c.Installed(context.Background(), "stats")
	assert.ErrorContains(t, err, "cannot open R_HOME")

	// Failures are not cached.
	_, err = c.Installed(context.Background(), "stats")
	assert.True(t, errors.As(err, new(exitError)))

	runner.AssertExpectations(t)
}

func TestNewRscriptChecker_MissingBinary(t *testing.T) {
	_, err := NewRscriptChecker("modelcap-no-such-rscript", time.Second)
	assert.ErrorContains(t, err, "binary not found")
}
