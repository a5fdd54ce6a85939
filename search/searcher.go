package search

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/takaishi/minigrep/config"
)

const resultCacheSize = 128

// Searcher runs searches over one loaded buffer in the background
type Searcher struct {
	searchID atomic.Int64
	source   string
	text     string
	cache    *lru.Cache[cacheKey, []*SearchResult]
	log      *zap.Logger
}

type cacheKey struct {
	query         string
	caseSensitive bool
}

// NewSearcher creates a new Searcher for text, loaded from source.
// text must not be modified while the Searcher or any result is in use.
func NewSearcher(source, text string, log *zap.Logger) (*Searcher, error) {
	cache, err := lru.New[cacheKey, []*SearchResult](resultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{
		source: source,
		text:   text,
		cache:  cache,
		log:    log,
	}, nil
}

// SearchResultMsg is sent when search results are available
type SearchResultMsg struct {
	SearchID int64
	Results  []*SearchResult
	Error    error
}

// Search scans the buffer for query on its own goroutine.
// The returned channel receives exactly one message and is then closed;
// a cancelled search reports ctx.Err().
func (s *Searcher) Search(ctx context.Context, query string, caseSensitive bool) <-chan SearchResultMsg {
	currentID := s.searchID.Add(1)
	resultChan := make(chan SearchResultMsg, 1)

	go func() {
		defer close(resultChan)

		key := cacheKey{query: query, caseSensitive: caseSensitive}
		if results, ok := s.cache.Get(key); ok {
			s.log.Debug("search cache hit",
				zap.Int64("search_id", currentID),
				zap.String("query", query),
				zap.Int("results", len(results)))
			resultChan <- SearchResultMsg{SearchID: currentID, Results: results}
			return
		}

		match := MatcherFor(config.Config{Query: query, SourceName: s.source, CaseSensitive: caseSensitive})
		results, err := collect(ctx, s.source, s.text, match)
		if err != nil {
			s.log.Debug("search cancelled", zap.Int64("search_id", currentID), zap.Error(err))
			resultChan <- SearchResultMsg{SearchID: currentID, Error: err}
			return
		}

		s.cache.Add(key, results)
		s.log.Debug("search finished",
			zap.Int64("search_id", currentID),
			zap.String("query", query),
			zap.Bool("case_sensitive", caseSensitive),
			zap.Int("results", len(results)))
		resultChan <- SearchResultMsg{SearchID: currentID, Results: results}
	}()

	return resultChan
}

// LastID returns the ID of the most recently started search
func (s *Searcher) LastID() int64 {
	return s.searchID.Load()
}
