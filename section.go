package zerosource

import (
	"encoding/json"
	"strings"
)

// DefaultProjectTitle is the placeholder callers substitute when a document
// has no level-1 heading.
const DefaultProjectTitle = "Unnamed Project"

// Section is a named region of a document bounded by level-2 headings.
type Section struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// SectionMap maps section names to bodies. Lookup is by name; enumeration
// follows the order in which each distinct name was first seen.
// The zero value is an empty map ready to use.
type SectionMap struct {
	names  []string
	bodies map[string]string
}

// Get returns the body of the named section.
func (m SectionMap) Get(name string) (string, bool) {
	body, ok := m.bodies[name]
	return body, ok
}

// Has reports whether a section with the exact name exists.
func (m SectionMap) Has(name string) bool {
	_, ok := m.bodies[name]
	return ok
}

// Len returns the number of distinct sections.
func (m SectionMap) Len() int {
	return len(m.names)
}

// Names returns section names in first-insertion order.
func (m SectionMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Sections returns the sections in first-insertion order.
func (m SectionMap) Sections() []Section {
	sections := make([]Section, 0, len(m.names))
	for _, name := range m.names {
		sections = append(sections, Section{Name: name, Body: m.bodies[name]})
	}
	return sections
}

// MarshalJSON encodes the map as an ordered list of sections.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Sections())
}

// set stores body under name. A repeated name keeps its original position
// but takes the new body.
func (m *SectionMap) set(name, body string) {
	if m.bodies == nil {
		m.bodies = make(map[string]string)
	}
	if _, ok := m.bodies[name]; !ok {
		m.names = append(m.names, name)
	}
	m.bodies[name] = body
}

// ExtractSections splits a markdown document into its level-2 sections.
//
// A level-2 heading is a line starting with "## " at column 0. Its body runs
// until the next level-2 heading or the end of the document and is trimmed of
// surrounding whitespace. Deeper and shallower headings stay inside bodies,
// text before the first level-2 heading is dropped, and fenced code blocks
// get no special treatment. When a name repeats, the last body wins.
func ExtractSections(document string) SectionMap {
	var (
		m    SectionMap
		open bool
		name string
		body []string
	)

	flush := func() {
		if open {
			m.set(name, strings.TrimSpace(strings.Join(body, "\n")))
		}
	}

	for _, line := range strings.Split(document, "\n") {
		if level, text, ok := parseHeading(line); ok && level == 2 {
			flush()
			open = true
			name = text
			body = body[:0]
			continue
		}
		if open {
			body = append(body, line)
		}
	}
	flush()

	return m
}

// ExtractTitle returns the text of the first level-1 heading with a
// non-blank name. The second result is false when the document has none.
func ExtractTitle(document string) (string, bool) {
	for _, line := range strings.Split(document, "\n") {
		if level, title, ok := parseHeading(line); ok && level == 1 && title != "" {
			return title, true
		}
	}
	return "", false
}
