package core

import (
	"encoding/json"
	"strings"
)

// SystemPrompt fixes the extractor's output discipline for every request.
const SystemPrompt = "You are an ATS parser. Return ONLY valid JSON. Do not include explanations."

// TemplateField is one entry of the extraction template. Example is either a
// description string for singular fields or a []string of examples for list
// fields.
type TemplateField struct {
	Name    string
	Example any
}

// ExtractionTemplate is the fixed, ordered schema sent to the extractor so
// the output shape stays consistent across requests. It is rendered once at
// construction and immutable afterwards.
type ExtractionTemplate struct {
	fields   []TemplateField
	rendered string
}

func NewExtractionTemplate(fields []TemplateField) *ExtractionTemplate {
	t := &ExtractionTemplate{fields: fields}
	t.rendered = t.render()
	return t
}

// Render returns the canonical textual form of the template. Identical on
// every call within a process lifetime.
func (t *ExtractionTemplate) Render() string { return t.rendered }

// Fields returns a copy of the ordered field list.
func (t *ExtractionTemplate) Fields() []TemplateField {
	out := make([]TemplateField, len(t.fields))
	copy(out, t.fields)
	return out
}

// Prompt combines the template with the resume text into the single
// instruction payload used as the user message.
func (t *ExtractionTemplate) Prompt(resumeText string) string {
	return t.rendered + "\n\nResume data:\n" + resumeText
}

func (t *ExtractionTemplate) render() string {
	var b strings.Builder
	b.WriteString("Extract the following ATS fields as JSON:\n{\n")
	for i, f := range t.fields {
		name, _ := json.Marshal(f.Name)
		example, _ := json.Marshal(f.Example)
		b.Write(name)
		b.WriteString(": ")
		b.Write(example)
		if i < len(t.fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

var defaultTemplate = NewExtractionTemplate([]TemplateField{
	{Name: "name", Example: "Full name"},
	{Name: "email", Example: "Email address"},
	{Name: "linkedin", Example: "LinkedIn profile URL"},
	{Name: "phone", Example: "Phone number"},
	{Name: "github", Example: "GitHub profile URL"},
	{Name: "behance", Example: "Behance profile URL"},
	{Name: "skills", Example: []string{"list", "of", "skills"}},
	{Name: "experience", Example: []string{"Position details"}},
	{Name: "education", Example: []string{"Degree details"}},
})

// DefaultTemplate returns the canonical resume extraction template.
func DefaultTemplate() *ExtractionTemplate { return defaultTemplate }
