package shader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.vs")
	src := "#version 330 core\nvoid main() {}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	got, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestReadSourceMissing(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.fs"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadSourceEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fs")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := ReadSource(path)
	assert.ErrorContains(t, err, "is empty")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "VERTEX", Vertex.String())
	assert.Equal(t, "FRAGMENT", Fragment.String())
	assert.Equal(t, "Stage(0x1)", Stage(1).String())
}

func TestErrors(t *testing.T) {
	err := error(&CompileError{Stage: Fragment, Path: "shaders/mixValue.fs", Log: "0:3: syntax error"})
	assert.Equal(t, "failed to compile fragment shader shaders/mixValue.fs: 0:3: syntax error", err.Error())

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Fragment, ce.Stage)

	err = &CompileError{Stage: Vertex, Log: "bad"}
	assert.Equal(t, "failed to compile vertex shader: bad", err.Error())

	err = &LinkError{Log: "missing main"}
	assert.Equal(t, "failed to link shader program: missing main", err.Error())
}

func TestTrimLog(t *testing.T) {
	assert.Equal(t, "error", trimLog([]uint8("error\n\x00\x00")))
	assert.Equal(t, "", trimLog(make([]uint8, 4)))
}

func TestReloadFromSourceFails(t *testing.T) {
	s := &Shader{ID: 3}
	assert.Error(t, s.Reload())
	assert.Equal(t, uint32(3), s.ID)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	vs := filepath.Join(dir, "shader.vs")
	frag := filepath.Join(dir, "shader.fs")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{vs, frag, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	w, err := Watch(vs, frag)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("void main() {}"), 0o644))

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	// Let any trailing events for the same write arrive.
	time.Sleep(50 * time.Millisecond)
	abs, err := filepath.Abs(frag)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, w.Drain())
	assert.Empty(t, w.Drain())
}
