package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Editor represents an editor command, e.g. "code" or "vim"
type Editor string

const (
	EditorCursor Editor = "cursor"
	EditorCode   Editor = "code"
)

// fallbacks are tried in order when nothing is configured
var fallbacks = []Editor{EditorCursor, EditorCode, "vim", "vi", "nano"}

// DetectEditor picks the editor to use.
// preferred (from settings) wins, then $VISUAL, $EDITOR, then the first
// fallback found in PATH.
func DetectEditor(preferred string) (Editor, error) {
	for _, name := range []string{preferred, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if name = strings.TrimSpace(name); name != "" {
			return Editor(name), nil
		}
	}

	for _, ed := range fallbacks {
		if _, err := exec.LookPath(string(ed)); err == nil {
			return ed, nil
		}
	}

	return "", fmt.Errorf("no editor found (set $EDITOR or editor in config.yaml)")
}

// IsGUI reports whether the editor opens its own window
func (e Editor) IsGUI() bool {
	switch e.base() {
	case "cursor", "code", "code-insiders", "codium":
		return true
	}
	return false
}

// Args returns the command line that opens file at line
func (e Editor) Args(file string, line int) []string {
	fields := strings.Fields(string(e))
	if len(fields) == 0 {
		return nil
	}

	if e.IsGUI() {
		return append(fields, "--reuse-window", "--goto", fmt.Sprintf("%s:%d", file, line))
	}

	// vi, vim, nvim, nano, emacs and friends all understand +LINE
	return append(fields, "+"+strconv.Itoa(line), file)
}

// OpenFile opens a file in the editor at the given line.
// GUI editors are started in the background; terminal editors take over
// the terminal until they exit.
func OpenFile(e Editor, file string, line int) error {
	args := e.Args(file, line)
	if len(args) == 0 {
		return fmt.Errorf("no editor configured")
	}

	cmd := exec.Command(args[0], args[1:]...)

	if e.IsGUI() {
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start %s: %w", args[0], err)
		}
		// Don't wait, the window outlives us
		go cmd.Wait()
		return nil
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return nil
}

// base returns the executable name without directory or arguments
func (e Editor) base() string {
	fields := strings.Fields(string(e))
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}
