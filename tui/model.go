package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/takaishi/minigrep/config"
	"github.com/takaishi/minigrep/preview"
	"github.com/takaishi/minigrep/search"
)

const (
	debounceDuration = 250 * time.Millisecond
	visibleResults   = 5
)

// Options configures a Model
type Options struct {
	Config   config.Config
	Text     string // contents of Config.SourceName
	Settings config.Settings
	Logger   *zap.Logger
}

// Model represents the application state
type Model struct {
	// Input
	query         string
	caseSensitive bool

	// Source
	source string
	text   string

	// Search state
	searcher      *search.Searcher
	searchCancel  context.CancelFunc
	searchResults []*search.SearchResult
	selectedIndex int
	resultsOffset int // Scroll offset for results list
	isSearching   bool
	searchError   error

	// Preview state
	preview       *preview.Preview
	previewError  error
	previewBefore int
	previewAfter  int

	// Set when the user picks a result with enter
	selected *search.SearchResult

	log *zap.Logger

	// UI dimensions
	width  int
	height int
}

// New creates a new Model instance
func New(opts Options) (*Model, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	searcher, err := search.NewSearcher(opts.Config.SourceName, opts.Text, log.Named("search"))
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	return &Model{
		query:         opts.Config.Query,
		caseSensitive: opts.Config.CaseSensitive,
		source:        opts.Config.SourceName,
		text:          opts.Text,
		searcher:      searcher,
		selectedIndex: -1,
		previewBefore: opts.Settings.Preview.Before,
		previewAfter:  opts.Settings.Preview.After,
		log:           log,
	}, nil
}

// Selected returns the result chosen with enter, or nil
func (m *Model) Selected() *search.SearchResult {
	return m.selected
}

// Init runs the initial search for the query given on the command line
func (m *Model) Init() tea.Cmd {
	query, caseSensitive := m.query, m.caseSensitive
	return func() tea.Msg {
		return startSearchMsg{Query: query, CaseSensitive: caseSensitive}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case search.SearchResultMsg:
		return m.handleSearchResult(msg)

	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)

	case startSearchMsg:
		return m.handleStartSearch(msg)

	default:
		return m, nil
	}
}

// View renders the UI
func (m *Model) View() string {
	return renderView(m)
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.searchCancel != nil {
			m.searchCancel()
		}
		return m, tea.Quit

	case tea.KeyCtrlT:
		m.caseSensitive = !m.caseSensitive
		m.log.Debug("toggled case sensitivity", zap.Bool("case_sensitive", m.caseSensitive))
		return m, m.triggerSearch()

	case tea.KeyUp, tea.KeyCtrlP:
		if m.selectedIndex > 0 {
			m.selectedIndex--
			m.adjustScroll()
			return m, m.loadPreview()
		}
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.selectedIndex < len(m.searchResults)-1 {
			m.selectedIndex++
			m.adjustScroll()
			return m, m.loadPreview()
		}
		return m, nil

	case tea.KeyEnter:
		if m.selectedIndex >= 0 && m.selectedIndex < len(m.searchResults) {
			m.selected = m.searchResults[m.selectedIndex]
			if m.searchCancel != nil {
				m.searchCancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			return m, m.triggerSearch()
		}
		return m, nil

	case tea.KeySpace:
		m.query += " "
		return m, m.triggerSearch()

	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		m.query += string(msg.Runes)
		return m, m.triggerSearch()
	}

	return m, nil
}

// triggerSearch starts a new search with debounce
func (m *Model) triggerSearch() tea.Cmd {
	// Cancel previous search if any
	if m.searchCancel != nil {
		m.searchCancel()
		m.searchCancel = nil
	}

	// Reset selection and scroll
	m.selectedIndex = -1
	m.resultsOffset = 0
	m.preview = nil
	m.previewError = nil

	query := m.query
	caseSensitive := m.caseSensitive
	return tea.Tick(debounceDuration, func(time.Time) tea.Msg {
		return startSearchMsg{Query: query, CaseSensitive: caseSensitive}
	})
}

// startSearchMsg is sent after debounce to start the actual search
type startSearchMsg struct {
	Query         string
	CaseSensitive bool
}

// handleStartSearch starts the actual search
func (m *Model) handleStartSearch(msg startSearchMsg) (tea.Model, tea.Cmd) {
	// Only start if input hasn't changed during the debounce
	if m.query != msg.Query || m.caseSensitive != msg.CaseSensitive {
		return m, nil
	}

	if m.searchCancel != nil {
		m.searchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.searchCancel = cancel
	m.isSearching = true
	m.searchError = nil

	searcher := m.searcher
	return m, func() tea.Msg {
		return <-searcher.Search(ctx, msg.Query, msg.CaseSensitive)
	}
}

// handleSearchResult processes search results
func (m *Model) handleSearchResult(msg search.SearchResultMsg) (tea.Model, tea.Cmd) {
	// Drop results of searches that were superseded
	if msg.SearchID < m.searcher.LastID() || errors.Is(msg.Error, context.Canceled) {
		return m, nil
	}

	m.isSearching = false
	m.searchCancel = nil

	if msg.Error != nil {
		m.log.Warn("search failed", zap.Error(msg.Error))
		m.searchError = msg.Error
		m.searchResults = nil
		return m, nil
	}

	m.searchResults = msg.Results
	m.searchError = nil

	// Auto-select first result if available
	if len(m.searchResults) > 0 && m.selectedIndex < 0 {
		m.selectedIndex = 0
		m.resultsOffset = 0
		return m, m.loadPreview()
	}

	return m, nil
}

// adjustScroll keeps the selected item visible
func (m *Model) adjustScroll() {
	if len(m.searchResults) <= visibleResults {
		m.resultsOffset = 0
		return
	}

	if m.selectedIndex < m.resultsOffset {
		m.resultsOffset = m.selectedIndex
	}
	if m.selectedIndex >= m.resultsOffset+visibleResults {
		m.resultsOffset = m.selectedIndex - visibleResults + 1
	}

	m.resultsOffset = max(m.resultsOffset, 0)
	m.resultsOffset = min(m.resultsOffset, len(m.searchResults)-visibleResults)
}

// loadPreview loads preview for the currently selected result
func (m *Model) loadPreview() tea.Cmd {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.searchResults) {
		return nil
	}

	result := m.searchResults[m.selectedIndex]
	text, before, after := m.text, m.previewBefore, m.previewAfter
	return func() tea.Msg {
		p, err := preview.Build(result.File, text, result.Line, before, after)
		return previewLoadedMsg{Preview: p, Error: err}
	}
}

// previewLoadedMsg is sent when preview is loaded
type previewLoadedMsg struct {
	Preview *preview.Preview
	Error   error
}

// handlePreviewLoaded processes loaded preview
func (m *Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		m.previewError = msg.Error
		m.preview = nil
	} else {
		m.preview = msg.Preview
		m.previewError = nil
	}
	return m, nil
}
