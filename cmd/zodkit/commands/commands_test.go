package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcacomacaco/zodkit-sub002/cmd/zodkit/commands"
	"github.com/mrcacomacaco/zodkit-sub002/internal/app"
)

// fakeApp records the options each command passed through.
type fakeApp struct {
	loadOpts  *app.LoadOptions
	watchOpts *app.WatchOptions
	cleaned   bool
	err       error
}

func (f *fakeApp) Load(_ context.Context, opts app.LoadOptions) error {
	f.loadOpts = &opts
	return f.err
}

func (f *fakeApp) Watch(_ context.Context, opts app.WatchOptions) error {
	f.watchOpts = &opts
	return f.err
}

func (f *fakeApp) Clean() error {
	f.cleaned = true
	return f.err
}

func run(t *testing.T, a *fakeApp, args ...string) (string, string, error) {
	t.Helper()

	cli := commands.New(a)
	var stdout, stderr bytes.Buffer
	cli.SetOutput(&stdout, &stderr)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestLoadCommand_DefaultsToCurrentDirectory(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "load")
	require.NoError(t, err)

	require.NotNil(t, a.loadOpts)
	assert.Equal(t, ".", a.loadOpts.Root)
	assert.False(t, a.loadOpts.NoCache)
}

func TestLoadCommand_RootArgumentAndNoCacheFlag(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "load", "./schemas", "--no-cache")
	require.NoError(t, err)

	require.NotNil(t, a.loadOpts)
	assert.Equal(t, "./schemas", a.loadOpts.Root)
	assert.True(t, a.loadOpts.NoCache)
}

func TestLoadCommand_RejectsExtraArguments(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "load", "one", "two")
	require.Error(t, err)
	assert.Nil(t, a.loadOpts)
}

func TestLoadCommand_PropagatesErrors(t *testing.T) {
	boom := errors.New("load failed")
	a := &fakeApp{err: boom}

	_, _, err := run(t, a, "load")
	assert.ErrorIs(t, err, boom)
}

func TestWatchCommand_PassesRoot(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "watch", "./src")
	require.NoError(t, err)

	require.NotNil(t, a.watchOpts)
	assert.Equal(t, "./src", a.watchOpts.Root)
}

func TestCleanCommand(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "clean")
	require.NoError(t, err)
	assert.True(t, a.cleaned)
}

func TestCleanCommand_RejectsArguments(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "clean", "extra")
	require.Error(t, err)
	assert.False(t, a.cleaned)
}

func TestVersionCommand(t *testing.T) {
	a := &fakeApp{}

	stdout, _, err := run(t, a, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "zodkit version")
}

func TestUnknownCommand(t *testing.T) {
	a := &fakeApp{}

	_, _, err := run(t, a, "frobnicate")
	require.Error(t, err)
}
