package zerosource_test

import (
	"testing"

	"github.com/fwojciec/zerosource"
	"github.com/stretchr/testify/assert"
)

func TestValidateStructure(t *testing.T) {
	t.Parallel()

	t.Run("valid when all required sections are present", func(t *testing.T) {
		t.Parallel()

		doc := "## Technical Implementation\n\n## Functionality\nx\n## Description\ny"

		result := zerosource.ValidateStructure(doc)

		assert.Equal(t, zerosource.ValidationResult{Valid: true, MissingSections: []string{}}, result)
	})

	t.Run("empty document misses everything in fixed order", func(t *testing.T) {
		t.Parallel()

		result := zerosource.ValidateStructure("")

		assert.False(t, result.Valid)
		assert.Equal(t, []string{"Description", "Functionality", "Technical Implementation"}, result.MissingSections)
	})

	t.Run("reports missing technical implementation", func(t *testing.T) {
		t.Parallel()

		result := zerosource.ValidateStructure(myApp)

		assert.False(t, result.Valid)
		assert.Equal(t, []string{"Technical Implementation"}, result.MissingSections)
	})

	t.Run("matches names exactly", func(t *testing.T) {
		t.Parallel()

		doc := "## description\n## Functionality\n## Technical implementation"

		result := zerosource.ValidateStructure(doc)

		assert.Equal(t, []string{"Description", "Technical Implementation"}, result.MissingSections)
	})

	t.Run("ignores deeper headings with required names", func(t *testing.T) {
		t.Parallel()

		doc := "### Description\n## Functionality\n## Technical Implementation"

		result := zerosource.ValidateStructure(doc)

		assert.Equal(t, []string{"Description"}, result.MissingSections)
	})
}

func TestRequiredSections_ReturnsCopy(t *testing.T) {
	t.Parallel()

	sections := zerosource.RequiredSections()
	sections[0] = "Changed"

	assert.Equal(t, "Description", zerosource.RequiredSections()[0])
}
