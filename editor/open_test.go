package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEditorPreferred(t *testing.T) {
	t.Setenv("VISUAL", "emacs")
	t.Setenv("EDITOR", "nano")

	ed, err := DetectEditor("code")
	require.NoError(t, err)
	assert.Equal(t, EditorCode, ed)
}

func TestDetectEditorFromEnv(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nvim")

	ed, err := DetectEditor("  ")
	require.NoError(t, err)
	assert.Equal(t, Editor("nvim"), ed)

	t.Setenv("VISUAL", "hx")
	ed, err = DetectEditor("")
	require.NoError(t, err)
	assert.Equal(t, Editor("hx"), ed)
}

func TestDetectEditorNothingAvailable(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	t.Setenv("PATH", t.TempDir())

	_, err := DetectEditor("")
	assert.Error(t, err)
}

func TestIsGUI(t *testing.T) {
	assert.True(t, EditorCursor.IsGUI())
	assert.True(t, Editor("/usr/local/bin/code --wait").IsGUI())
	assert.False(t, Editor("vim").IsGUI())
	assert.False(t, Editor("").IsGUI())
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"code", "--reuse-window", "--goto", "poem.txt:3"},
		EditorCode.Args("poem.txt", 3))
	assert.Equal(t,
		[]string{"vim", "+12", "poem.txt"},
		Editor("vim").Args("poem.txt", 12))
	assert.Equal(t,
		[]string{"emacs", "-nw", "+1", "a.txt"},
		Editor("emacs -nw").Args("a.txt", 1))
	assert.Nil(t, Editor("").Args("a.txt", 1))
}

func TestOpenFileNoEditor(t *testing.T) {
	assert.Error(t, OpenFile("", "a.txt", 1))
}
