package search

import (
	"context"
	"iter"
	"strings"

	"github.com/takaishi/minigrep/config"
)

// Matcher reports whether a line should be part of the result
type Matcher func(line string) bool

// CaseSensitive returns a Matcher for exact substring containment
func CaseSensitive(query string) Matcher {
	return func(line string) bool {
		return strings.Contains(line, query)
	}
}

// CaseInsensitive returns a Matcher that lowercases the query once and each
// line as it is tested.
func CaseInsensitive(query string) Matcher {
	query = strings.ToLower(query)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), query)
	}
}

// MatcherFor picks the Matcher for cfg
func MatcherFor(cfg config.Config) Matcher {
	if cfg.CaseSensitive {
		return CaseSensitive(cfg.Query)
	}
	return CaseInsensitive(cfg.Query)
}

// Lines yields each line of text with the byte offset where it starts.
// The '\n' terminator, and a '\r' right before it, are not part of the line.
// A final line without terminator is still yielded; empty text yields nothing.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		offset := 0
		for offset < len(text) {
			end := strings.IndexByte(text[offset:], '\n')
			next := len(text)
			if end < 0 {
				end = len(text)
			} else {
				end += offset
				next = end + 1
			}

			line := text[offset:end]
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}

			if !yield(offset, line) {
				return
			}
			offset = next
		}
	}
}

// Filter returns the lines of text accepted by match, in order.
// The returned strings point into text's memory; nothing is copied.
func Filter(text string, match Matcher) []string {
	var lines []string
	for _, line := range Lines(text) {
		if match(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// Search returns every line of text that contains cfg.Query, honouring
// cfg.CaseSensitive. It never fails: an empty query matches every line and
// empty text has no lines.
//
// The result aliases text, so text stays reachable for as long as any
// returned line is in use.
func Search(cfg config.Config, text string) []string {
	return Filter(text, MatcherFor(cfg))
}

// Results is like Filter but records where each line came from
func Results(source, text string, match Matcher) []*SearchResult {
	results, _ := collect(context.Background(), source, text, match)
	return results
}

func collect(ctx context.Context, source, text string, match Matcher) ([]*SearchResult, error) {
	results := make([]*SearchResult, 0)
	lineNum := 0
	for offset, line := range Lines(text) {
		// Check if context was cancelled
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lineNum++
		if !match(line) {
			continue
		}
		results = append(results, &SearchResult{
			File:   source,
			Line:   lineNum,
			Offset: offset,
			Text:   line,
		})
	}
	return results, nil
}
