package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"

	"rowedit/highlight"
	"rowedit/internal/grapheme"
)

const tabWidth = 2

// Line is one row of text stored as grapheme clusters, with a highlight
// overlay holding one Kind per cluster. The overlay is stale after any edit
// until Highlight runs again.
type Line struct {
	clusters   []string
	width      int
	highlights []highlight.Kind
}

// NewLine segments s into clusters. The overlay starts empty.
func NewLine(s string) *Line {
	l := &Line{clusters: grapheme.Split(s)}
	l.updateWidth()
	return l
}

func newLineFromClusters(clusters []string) *Line {
	l := &Line{clusters: clusters}
	l.updateWidth()
	return l
}

// Len returns the number of grapheme clusters.
func (l *Line) Len() int { return len(l.clusters) }

// DisplayLen returns the on-screen length with tabs counted as two columns.
func (l *Line) DisplayLen() int { return l.width }

func (l *Line) IsEmpty() bool { return len(l.clusters) == 0 }

func (l *Line) String() string { return grapheme.Join(l.clusters) }

func (l *Line) Clusters() []string { return slices.Clone(l.clusters) }

func (l *Line) Highlights() []highlight.Kind { return slices.Clone(l.highlights) }

// Insert places ch before the cluster at index at, or appends it when at is
// at or past the end.
func (l *Line) Insert(at int, ch rune) {
	s := string(ch)
	if at >= len(l.clusters) {
		l.clusters = append(l.clusters, s)
	} else {
		l.clusters = slices.Insert(l.clusters, max(at, 0), s)
	}
	l.updateWidth()
}

// Delete removes the cluster at index at. Out-of-range indices are ignored.
func (l *Line) Delete(at int) {
	if at < 0 || at >= len(l.clusters) {
		return
	}
	l.clusters = slices.Delete(l.clusters, at, at+1)
	l.updateWidth()
}

// Append concatenates other onto the end of l.
func (l *Line) Append(other *Line) {
	l.clusters = append(l.clusters, other.clusters...)
	l.width += other.width
}

// Split truncates l to its first at clusters and returns the remainder as a
// new Line.
func (l *Line) Split(at int) *Line {
	at = min(max(at, 0), len(l.clusters))
	tail := newLineFromClusters(slices.Clone(l.clusters[at:]))
	l.clusters = slices.Clip(l.clusters[:at])
	l.highlights = nil
	l.updateWidth()
	return tail
}

// Render returns the clusters in [start, end) with tabs expanded, using the
// default palette for colour markers.
func (l *Line) Render(start, end int) string {
	return l.RenderWith(start, end, highlight.DefaultPalette)
}

// RenderWith is Render with an explicit palette. A marker is written whenever
// the classification changes and the result always ends with a reset.
func (l *Line) RenderWith(start, end int, p highlight.Palette) string {
	end = max(min(end, len(l.clusters)), 0)
	start = max(min(start, end), 0)

	var sb strings.Builder
	var current highlight.Kind
	for i := start; i < end; i++ {
		k := l.kindAt(i)
		if i == start || k != current {
			sb.WriteString(p.Marker(k))
			current = k
		}
		if l.clusters[i] == "\t" {
			sb.WriteString(strings.Repeat(" ", tabWidth))
		} else {
			sb.WriteString(l.clusters[i])
		}
	}
	sb.WriteString(p.Reset())
	return sb.String()
}

// Find returns the cluster index of query within this line. Forward searches
// look for the first match lying in [from, Len()), backward searches for the
// last match lying in [0, from). Byte matches that do not begin on a cluster
// boundary are skipped.
func (l *Line) Find(query string, from int, dir Direction) (int, bool) {
	if query == "" {
		return 0, false
	}
	from = min(max(from, 0), len(l.clusters))

	lo, hi := from, len(l.clusters)
	if dir == Backward {
		lo, hi = 0, from
	}
	if lo >= hi {
		return 0, false
	}

	sub := l.clusters[lo:hi]
	text := grapheme.Join(sub)
	bounds := grapheme.Boundaries(sub)

	if dir == Forward {
		for off := 0; off <= len(text); {
			j := strings.Index(text[off:], query)
			if j < 0 {
				return 0, false
			}
			j += off
			if idx, ok := grapheme.IndexOfOffset(bounds, j); ok {
				return lo + idx, true
			}
			off = j + 1
		}
		return 0, false
	}

	for limit := len(text); limit > 0; {
		j := strings.LastIndex(text[:limit], query)
		if j < 0 {
			return 0, false
		}
		if idx, ok := grapheme.IndexOfOffset(bounds, j); ok {
			return lo + idx, true
		}
		limit = j + len(query) - 1
	}
	return 0, false
}

// Highlight recomputes the overlay. The scanner classifies runes; each
// cluster takes the Kind of its first rune.
func (l *Line) Highlight(p highlight.Profile, term string) {
	kinds := highlight.Scan(l.String(), p, term)
	hl := make([]highlight.Kind, len(l.clusters))
	r := 0
	for i, c := range l.clusters {
		if r < len(kinds) {
			hl[i] = kinds[r]
		}
		r += utf8.RuneCountInString(c)
	}
	l.highlights = hl
}

func (l *Line) kindAt(i int) highlight.Kind {
	if i < len(l.highlights) {
		return l.highlights[i]
	}
	return highlight.None
}

func (l *Line) updateWidth() {
	w := 0
	for _, c := range l.clusters {
		if c == "\t" {
			w += tabWidth
		} else {
			w++
		}
	}
	l.width = w
}
