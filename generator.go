package zerosource

import (
	"context"
	"strings"
)

// ComponentSpec names a unit of code to generate from a document.
type ComponentSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate returns an error if the component contains invalid fields.
func (c *ComponentSpec) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Errorf(EINVALID, "component name required")
	}
	return nil
}

// ParseComponentSpec parses "name" or "name:description".
func ParseComponentSpec(s string) (ComponentSpec, error) {
	name, desc, _ := strings.Cut(s, ":")
	c := ComponentSpec{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(desc),
	}
	if err := c.Validate(); err != nil {
		return ComponentSpec{}, err
	}
	return c, nil
}

// GenerateOptions configures code generation.
type GenerateOptions struct {
	// Model overrides the implementation's default model when set.
	Model string `json:"model,omitempty"`
}

// Generator produces source code for a component described by a document.
// It is an external collaborator; implementations may call an LLM, a rule
// engine, or return canned output.
type Generator interface {
	// Generate returns source text for component in language.
	// Returns EINVALID if the component or language is missing.
	Generate(ctx context.Context, document string, component ComponentSpec, language string, opts GenerateOptions) (string, error)
}
