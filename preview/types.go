package preview

// Preview represents lines surrounding a hit
type Preview struct {
	File      string
	StartLine int
	Lines     []string
	HitLine   int // 1-based, relative to StartLine
}
