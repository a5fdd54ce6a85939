package config

import (
	"errors"
	"iter"
	"os"
)

// IgnoreCaseEnv is the environment variable that switches searches to
// case-insensitive mode. Only its presence matters, not its value.
const IgnoreCaseEnv = "CASE_INSENSITIVE"

var (
	// ErrMissingQuery is returned when no query argument is given
	ErrMissingQuery = errors.New("didn't get a query string")
	// ErrMissingSource is returned when a query is given but no file name
	ErrMissingSource = errors.New("didn't get a file name")
)

// Config holds a validated search configuration
type Config struct {
	Query         string
	SourceName    string
	CaseSensitive bool
}

// Build validates positional arguments and returns configuration.
// args is [program, query, source, ...]; only the first three values are
// pulled from the sequence.
func Build(args iter.Seq[string], ignoreCase bool) (Config, error) {
	next, stop := iter.Pull(args)
	defer stop()

	// Skip the program name
	if _, ok := next(); !ok {
		return Config{}, ErrMissingQuery
	}

	query, ok := next()
	if !ok {
		return Config{}, ErrMissingQuery
	}

	source, ok := next()
	if !ok {
		return Config{}, ErrMissingSource
	}

	return Config{
		Query:         query,
		SourceName:    source,
		CaseSensitive: !ignoreCase,
	}, nil
}

// IgnoreCaseFromEnv reports whether CASE_INSENSITIVE is set
func IgnoreCaseFromEnv() bool {
	_, ok := os.LookupEnv(IgnoreCaseEnv)
	return ok
}
