package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/lokiteck/dspagent/core"
)

// placeholderPattern matches {snake_case} placeholders. Literal braces that do
// not form a placeholder (JSON examples inside prompt text) are left alone.
var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Template is an immutable named prompt string with a declared placeholder
// set. Construct via NewTemplate; never mutated after definition.
type Template struct {
	name         string
	text         string
	placeholders map[string]struct{}
}

// NewTemplate creates a template, deriving its placeholder set from the text.
func NewTemplate(name, text string) Template {
	t := Template{name: name, text: text, placeholders: map[string]struct{}{}}
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		t.placeholders[m[1]] = struct{}{}
	}
	return t
}

// Name returns the registry key for this template.
func (t Template) Name() string { return t.name }

// Text returns the raw template text.
func (t Template) Text() string { return t.text }

// Placeholders returns the declared placeholder names in sorted order.
func (t Template) Placeholders() []string {
	names := make([]string, 0, len(t.placeholders))
	for name := range t.placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render substitutes bindings into the template. Every declared placeholder
// must be bound (core.ErrMissingPlaceholder) and every binding must name a
// declared placeholder (core.ErrUnknownPlaceholder). Pure function of inputs.
func (t Template) Render(bindings map[string]string) (string, error) {
	for name := range bindings {
		if _, ok := t.placeholders[name]; !ok {
			return "", fmt.Errorf("%w: %q in template %q", core.ErrUnknownPlaceholder, name, t.name)
		}
	}
	for name := range t.placeholders {
		if _, ok := bindings[name]; !ok {
			return "", fmt.Errorf("%w: %q in template %q", core.ErrMissingPlaceholder, name, t.name)
		}
	}
	// Single pass over the original text: replaced text is never rescanned,
	// so binding values containing placeholder tokens pass through literally.
	rendered := placeholderPattern.ReplaceAllStringFunc(t.text, func(m string) string {
		return bindings[m[1:len(m)-1]]
	})
	return rendered, nil
}

// Registry is a static mapping from template name to Template. Registration
// happens at construction; lookups afterwards are read-only and safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: map[string]Template{}}
}

// Register adds a template, replacing any previous entry with the same name.
func (r *Registry) Register(t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name()] = t
}

// Get returns the template registered under name or core.ErrTemplateNotFound.
func (r *Registry) Get(name string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", core.ErrTemplateNotFound, name)
	}
	return t, nil
}

// Names returns all registered template names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
