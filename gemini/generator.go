package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/zerosource"
	"google.golang.org/genai"
)

// Ensure Generator implements zerosource.Generator at compile time.
var _ zerosource.Generator = (*Generator)(nil)

// Generator implements zerosource.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	return &Generator{client: client, model: modelOrDefault(model)}
}

// Generate returns source code for component, written in language.
func (g *Generator) Generate(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
	if err := component.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(language) == "" {
		return "", zerosource.Errorf(zerosource.EINVALID, "language required")
	}
	if strings.TrimSpace(document) == "" {
		return "", zerosource.Errorf(zerosource.EINVALID, "document required")
	}

	model := g.model
	if opts.Model != "" {
		model = opts.Model
	}

	text, err := generate(ctx, g.client, model, BuildGeneratePrompt(document, component, language), BuildGenerateConfig(language))
	if err != nil {
		return "", err
	}

	return StripCodeFence(text), nil
}

// BuildGenerateConfig returns the GenerateContentConfig for generation calls.
func BuildGenerateConfig(language string) *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are an expert %s engineer implementing software from its README. "+
					"Respond with a single source file and nothing else. Follow the document exactly; do not invent features.", language),
			}},
		},
		Temperature: &temp,
	}
}

// BuildGeneratePrompt builds the user prompt for one component.
func BuildGeneratePrompt(document string, component zerosource.ComponentSpec, language string) string {
	sections := zerosource.ExtractSections(document)

	title, ok := zerosource.ExtractTitle(document)
	if !ok {
		title = zerosource.DefaultProjectTitle
	}

	var sb strings.Builder
	sb.WriteString("<document>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	for _, s := range sections.Sections() {
		fmt.Fprintf(&sb, "<section name=%q>\n%s\n</section>\n", s.Name, s.Body)
	}
	sb.WriteString("</document>\n\n")
	fmt.Fprintf(&sb, "Component: %s\n", component.Name)
	if component.Description != "" {
		fmt.Fprintf(&sb, "Component description: %s\n", component.Description)
	}
	fmt.Fprintf(&sb, "Language: %s", language)
	return sb.String()
}
