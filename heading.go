package zerosource

import (
	"strconv"
	"strings"
	"unicode"
)

const maxHeadingLevel = 6

// Heading is one entry of a document outline.
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// parseHeading reports the level and text of an ATX heading line. A heading
// starts at column 0 with one to six '#' followed by a single space. The text
// may be empty.
func parseHeading(line string) (level int, text string, ok bool) {
	for level < len(line) && level <= maxHeadingLevel && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level+1:]), true
}

// fence tracks fenced code blocks opened with ``` or ~~~.
type fence struct {
	char byte
	size int
}

// open reports whether the scanner is inside a fenced block.
func (f *fence) open() bool {
	return f.size > 0
}

// toggle consumes line and reports whether it was a fence delimiter.
// A closing fence uses the opening character at least as many times and
// carries no info string.
func (f *fence) toggle(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return false
	}
	if !f.open() {
		f.char, f.size = c, n
		return true
	}
	if c == f.char && n >= f.size && strings.TrimSpace(trimmed[n:]) == "" {
		f.char, f.size = 0, 0
		return true
	}
	return false
}

// ExtractHeadings returns the outline of a markdown document, H1 through H6.
// Headings follow the same column-0 rule as ExtractSections, but lines inside
// fenced code blocks are skipped and an unclosed fence runs to the end of the
// document. Headings with no text are left out. A repeated anchor gets a
// numeric suffix.
func ExtractHeadings(document string) []Heading {
	var (
		headings []Heading
		f        fence
		seen     = make(map[string]int)
	)

	for _, line := range strings.Split(document, "\n") {
		if f.toggle(line) || f.open() {
			continue
		}
		level, text, ok := parseHeading(line)
		if !ok || text == "" {
			continue
		}

		anchor := slugify(text)
		if n := seen[anchor]; n > 0 {
			seen[anchor] = n + 1
			anchor += "-" + strconv.Itoa(n)
		} else {
			seen[anchor] = 1
		}

		headings = append(headings, Heading{Level: level, Title: text, Anchor: anchor})
	}

	return headings
}

// slugify lowercases text, turns runs of spaces and hyphens into a single
// hyphen and drops punctuation.
func slugify(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	for i, w := range words {
		words[i] = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, w)
	}
	return strings.Join(nonEmpty(words), "-")
}

func nonEmpty(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
