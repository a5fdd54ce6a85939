package preview

import (
	"fmt"

	"github.com/takaishi/minigrep/config"
	"github.com/takaishi/minigrep/search"
)

// Build returns up to before lines above and after lines below lineNum.
// Lines are views into text. before and after are clamped to
// [0, config.MaxPreviewContext].
func Build(file, text string, lineNum, before, after int) (*Preview, error) {
	if lineNum < 1 {
		return nil, fmt.Errorf("invalid line number: %d", lineNum)
	}

	before = min(max(before, 0), config.MaxPreviewContext)
	after = min(max(after, 0), config.MaxPreviewContext)

	startLine := max(lineNum-before, 1)
	endLine := lineNum + after

	lines := make([]string, 0, before+after+1)
	current := 0
	for _, line := range search.Lines(text) {
		current++
		if current < startLine {
			continue
		}
		if current > endLine {
			break
		}
		lines = append(lines, line)
	}

	if current < lineNum {
		return nil, fmt.Errorf("line %d is past the end of %s (%d lines)", lineNum, file, current)
	}

	return &Preview{
		File:      file,
		StartLine: startLine,
		Lines:     lines,
		HitLine:   lineNum - startLine + 1,
	}, nil
}
