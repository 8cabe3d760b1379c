package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/zerosource"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	if c.Outline && c.Format == "html" {
		return report(deps.Stderr, zerosource.Errorf(zerosource.EINVALID, "--outline supports text and json formats"))
	}
	if c.Outline && c.Name != "" {
		return report(deps.Stderr, zerosource.Errorf(zerosource.EINVALID, "--outline and --name cannot be combined"))
	}

	doc, err := deps.Source.Load(deps.Ctx, c.Location)
	if err != nil {
		return report(deps.Stderr, err)
	}

	if c.Outline {
		return c.writeOutline(deps.Stdout, zerosource.ExtractHeadings(doc.Content))
	}

	sections := zerosource.ExtractSections(doc.Content).Sections()
	if c.Name != "" {
		sections = filterSection(sections, c.Name)
		if len(sections) == 0 {
			return report(deps.Stderr, zerosource.Errorf(zerosource.ENOTFOUND, "section %q not found", c.Name))
		}
	}

	switch c.Format {
	case "json":
		return writeJSON(deps.Stdout, sections)
	case "html":
		html, err := deps.Renderer.Render(sectionsMarkdown(sections))
		if err != nil {
			return report(deps.Stderr, err)
		}
		fmt.Fprint(deps.Stdout, html)
		return nil
	}

	if c.Name != "" {
		fmt.Fprintln(deps.Stdout, sections[0].Body)
		return nil
	}
	fmt.Fprint(deps.Stdout, sectionsMarkdown(sections))
	return nil
}

func (c *SectionsCmd) writeOutline(w io.Writer, headings []zerosource.Heading) error {
	if c.Format == "json" {
		if headings == nil {
			headings = []zerosource.Heading{}
		}
		return writeJSON(w, headings)
	}
	for _, h := range headings {
		fmt.Fprintf(w, "%s- %s (#%s)\n", strings.Repeat("  ", h.Level-1), h.Title, h.Anchor)
	}
	return nil
}

func filterSection(sections []zerosource.Section, name string) []zerosource.Section {
	for _, s := range sections {
		if s.Name == name {
			return []zerosource.Section{s}
		}
	}
	return nil
}

// sectionsMarkdown reassembles sections as level-2 markdown blocks.
func sectionsMarkdown(sections []zerosource.Section) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n", s.Name)
		if s.Body != "" {
			fmt.Fprintf(&sb, "\n%s\n", s.Body)
		}
	}
	return sb.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
