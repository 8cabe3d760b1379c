package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/zerosource"
	"google.golang.org/genai"
)

// Ensure Analyzer implements zerosource.Analyzer at compile time.
var _ zerosource.Analyzer = (*Analyzer)(nil)

// Analyzer implements zerosource.Analyzer using Google Gemini.
type Analyzer struct {
	client *genai.Client
	model  string
}

// NewAnalyzer creates a new Analyzer. An empty model selects DefaultModel.
func NewAnalyzer(client *genai.Client, model string) *Analyzer {
	return &Analyzer{client: client, model: modelOrDefault(model)}
}

// Analyze reviews a document for consistency and completeness.
func (a *Analyzer) Analyze(ctx context.Context, document string, opts zerosource.AnalyzeOptions) (*zerosource.Analysis, error) {
	if strings.TrimSpace(document) == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "document required")
	}

	model := a.model
	if opts.Model != "" {
		model = opts.Model
	}

	text, err := generate(ctx, a.client, model, BuildAnalyzePrompt(document), BuildAnalyzeConfig())
	if err != nil {
		return nil, err
	}

	return ParseAnalysis(text)
}

// BuildAnalyzeConfig returns the GenerateContentConfig for analysis calls.
// The response is constrained to the Analysis JSON shape.
func BuildAnalyzeConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You review Zero Source documents: READMEs detailed enough that a complete implementation can be generated from them. " +
					"Judge whether the document is internally consistent, unambiguous, and specific enough to implement. " +
					"Report contradictions, missing details, and vague requirements as short issues.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"valid":   {Type: genai.TypeBoolean},
				"details": {Type: genai.TypeString},
				"issues": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"valid", "details", "issues"},
		},
	}
}

// BuildAnalyzePrompt builds the user prompt containing the document and the
// required structure.
func BuildAnalyzePrompt(document string) string {
	var sb strings.Builder
	sb.WriteString("Required sections: ")
	sb.WriteString(strings.Join(zerosource.RequiredSections(), ", "))
	sb.WriteString("\n\n<document>\n")
	sb.WriteString(document)
	sb.WriteString("\n</document>\n\n")
	sb.WriteString("Return valid=true only if the document could be implemented without further questions.")
	return sb.String()
}

// ParseAnalysis decodes a JSON analysis response, tolerating a surrounding
// code fence.
func ParseAnalysis(text string) (*zerosource.Analysis, error) {
	var analysis zerosource.Analysis
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &analysis); err != nil {
		return nil, zerosource.Errorf(zerosource.EINTERNAL, "malformed analysis response: %v", err)
	}
	if analysis.Issues == nil {
		analysis.Issues = []string{}
	}
	return &analysis, nil
}

// FormatAnalysis renders an analysis for terminal output.
func FormatAnalysis(a *zerosource.Analysis) string {
	var sb strings.Builder
	if a.Valid {
		sb.WriteString("Analysis: no blocking issues\n")
	} else {
		sb.WriteString("Analysis: document needs work\n")
	}
	if a.Details != "" {
		fmt.Fprintf(&sb, "\n%s\n", a.Details)
	}
	if len(a.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range a.Issues {
			fmt.Fprintf(&sb, "  - %s\n", issue)
		}
	}
	return sb.String()
}
