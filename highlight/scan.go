package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

// Scan classifies every rune of text, one Kind per rune. Classification is
// line-local: strings and comments never carry over between calls. A
// non-empty term marks its non-overlapping occurrences as Match, overriding
// every other category.
func Scan(text string, p Profile, term string) []Kind {
	chars := []rune(text)
	hl := make([]Kind, len(chars))
	if len(chars) == 0 {
		return hl
	}

	matches := matchStarts(text, term)
	termLen := utf8.RuneCountInString(term)
	opts := p.opts
	keywords := p.HasKeywords()

	prevSep := true
	inString := false
	escaped := false
	i := 0
	for i < len(chars) {
		c := chars[i]

		if matches[i] {
			end := min(i+termLen, len(chars))
			fill(hl, i, end, Match)
			prevSep = isSeparator(chars[end-1])
			escaped = false
			i = end
			continue
		}

		if opts.Strings {
			if inString {
				hl[i] = String
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				prevSep = isSeparator(c)
				i++
				continue
			}
			if c == '"' {
				inString = true
				hl[i] = String
				prevSep = true
				i++
				continue
			}
		}

		if opts.Characters && c == '\'' {
			if end, ok := charLiteralEnd(chars, i); ok {
				fill(hl, i, end, Character)
				prevSep = true
				i = end
				continue
			}
		}

		if opts.Comments && c == '/' && at(chars, i+1) == '/' {
			fill(hl, i, len(chars), Comment)
			break
		}

		if keywords && prevSep {
			if n := matchKeyword(chars, i, p.primary); n > 0 {
				fill(hl, i, i+n, PrimaryKeyword)
				prevSep = false
				i += n
				continue
			}
			if n := matchKeyword(chars, i, p.secondary); n > 0 {
				fill(hl, i, i+n, SecondaryKeyword)
				prevSep = false
				i += n
				continue
			}
		}

		if opts.Numbers {
			prevNumber := i > 0 && hl[i-1] == Number
			if (isDigit(c) && (prevSep || prevNumber)) || ((c == '.' || c == '_') && prevNumber) {
				hl[i] = Number
				prevSep = isSeparator(c)
				i++
				continue
			}
		}

		hl[i] = None
		prevSep = isSeparator(c)
		i++
	}
	return hl
}

// matchStarts returns the rune indices where non-overlapping occurrences of
// term begin, scanning forward.
func matchStarts(text, term string) map[int]bool {
	if term == "" {
		return nil
	}
	starts := make(map[int]bool)
	runeIdx, byteOff := 0, 0
	for {
		j := strings.Index(text[byteOff:], term)
		if j < 0 {
			return starts
		}
		runeIdx += utf8.RuneCountInString(text[byteOff : byteOff+j])
		starts[runeIdx] = true
		runeIdx += utf8.RuneCountInString(term)
		byteOff += j + len(term)
	}
}

// charLiteralEnd recognises 'x' and '\x' starting at i and returns the index
// just past the closing quote.
func charLiteralEnd(chars []rune, i int) (int, bool) {
	if at(chars, i+1) != '\\' && at(chars, i+2) == '\'' {
		return i + 3, true
	}
	if at(chars, i+1) == '\\' && at(chars, i+3) == '\'' {
		return i + 4, true
	}
	return 0, false
}

// matchKeyword returns the rune length of the first word in words found at
// i and not followed by a letter or digit, or 0.
func matchKeyword(chars []rune, i int, words []string) int {
	for _, w := range words {
		n := 0
		ok := true
		for _, r := range w {
			if at(chars, i+n) != r {
				ok = false
				break
			}
			n++
		}
		if !ok || n == 0 {
			continue
		}
		if i+n < len(chars) {
			next := chars[i+n]
			if unicode.IsLetter(next) || unicode.IsDigit(next) {
				continue
			}
		}
		return n
	}
	return 0
}

// at returns the rune at i, or 0 when i is out of range.
func at(chars []rune, i int) rune {
	if i < 0 || i >= len(chars) {
		return 0
	}
	return chars[i]
}

func fill(hl []Kind, from, to int, k Kind) {
	for j := from; j < to; j++ {
		hl[j] = k
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return r < utf8.RuneSelf && r != '_' && strings.ContainsRune(asciiPunct, r)
}
