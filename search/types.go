package search

// SearchResult represents a single matching line
type SearchResult struct {
	File   string // source name, as given on the command line
	Line   int    // 1-based
	Offset int    // byte offset of the line start within the buffer
	Text   string // the line, sharing memory with the searched buffer
}
