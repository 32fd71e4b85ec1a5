// Package grapheme wraps uniseg for the cluster operations the buffer needs.
package grapheme

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates clusters into a single string.
func Join(clusters []string) string {
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return clusters[0]
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Boundaries returns the byte offset at which each cluster starts, plus a
// final entry equal to the total byte length.
func Boundaries(clusters []string) []int {
	out := make([]int, 0, len(clusters)+1)
	off := 0
	for _, c := range clusters {
		out = append(out, off)
		off += len(c)
	}
	return append(out, off)
}

// IndexOfOffset maps a byte offset onto a cluster index. ok is false when the
// offset falls inside a cluster rather than on its first byte.
func IndexOfOffset(bounds []int, off int) (int, bool) {
	lo, hi := 0, len(bounds)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case bounds[mid] == off:
			return mid, true
		case bounds[mid] < off:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0, false
}
