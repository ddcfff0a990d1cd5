package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokiteck/dspagent/core"
)

func TestTemplateRender(t *testing.T) {
	tmpl := NewTemplate("greeting", "Hello {name}")

	out, err := tmpl.Render(map[string]string{"name": "Dana"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Dana", out)
}

func TestTemplateRenderMissingPlaceholder(t *testing.T) {
	tmpl := NewTemplate("greeting", "Hello {name}")

	_, err := tmpl.Render(map[string]string{})
	assert.ErrorIs(t, err, core.ErrMissingPlaceholder)
}

func TestTemplateRenderUnknownPlaceholder(t *testing.T) {
	tmpl := NewTemplate("greeting", "Hello {name}")

	_, err := tmpl.Render(map[string]string{"name": "Dana", "age": "4"})
	assert.ErrorIs(t, err, core.ErrUnknownPlaceholder)
}

func TestTemplateRenderValueHoldingPlaceholderToken(t *testing.T) {
	tmpl := NewTemplate("coaching", "Name: {employee_name}\nHistory: {coaching_history}")
	bindings := map[string]string{
		"employee_name":    "{coaching_history}",
		"coaching_history": "prior speeding warning",
	}

	// Binding values pass through literally, never re-substituted, no matter
	// how often the render is repeated.
	for i := 0; i < 100; i++ {
		out, err := tmpl.Render(bindings)
		require.NoError(t, err)
		assert.Equal(t, "Name: {coaching_history}\nHistory: prior speeding warning", out)
	}
}

func TestTemplatePlaceholderDerivation(t *testing.T) {
	tmpl := NewTemplate("multi", "{first} and {second} and {first} again")
	assert.Equal(t, []string{"first", "second"}, tmpl.Placeholders())
}

func TestTemplateIgnoresNonPlaceholderBraces(t *testing.T) {
	tmpl := NewTemplate("json", `Example: { "company_id": "COMPANY123" } for {code}`)
	require.Equal(t, []string{"code"}, tmpl.Placeholders())

	out, err := tmpl.Render(map[string]string{"code": "DSP1"})
	require.NoError(t, err)
	assert.Contains(t, out, `"COMPANY123"`)
	assert.Contains(t, out, "DSP1")
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, core.ErrTemplateNotFound)
}

func TestPlatformRegistry(t *testing.T) {
	r := NewPlatformRegistry()

	for _, name := range []string{
		DriverScreeningTemplate,
		CompanyAdminTemplate,
		ContentGeneratorTemplate,
		PerformanceAnalyzerTemplate,
		CoachingHistoryTemplate,
	} {
		tmpl, err := r.Get(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, tmpl.Text(), name)
	}

	screening, err := r.Get(DriverScreeningTemplate)
	require.NoError(t, err)
	assert.Equal(t, []string{"company_specific_questions"}, screening.Placeholders())

	admin, err := r.Get(CompanyAdminTemplate)
	require.NoError(t, err)
	assert.Empty(t, admin.Placeholders())
}
