package application

import (
	"strings"
	"text/template"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

var (
	styleRewriteTemplate = template.Must(template.New("style").Parse(
		`You are an AI assistant that rewrites a user's message so it reads as if it was written by the author of an example.
Do not change the meaning or contents of the message. Take this message: "{{.Text}}"
and style it like this example: "{{.Example}}".
Use a {{.Tone}} tone. Replicate the example's tone, typing style, and any other factors so the new message appears to be written by the same person who wrote the example.
Respond with only the rewritten message. Do not include commentary, explanations, or a preamble.`))

	formalizeTemplate = template.Must(template.New("formalize").Parse(
		`You are an AI assistant that refines a user's message to make it sound formal and professional.
Do not change the meaning or contents of the message, just make it sound better and appealing to recruiters.
Respond with only the refined message.
User message: "{{.Text}}"`))
)

// promptData is the value the templates are executed against.
type promptData struct {
	Text    string
	Example string
	Tone    string
}

// PromptBuilder turns a GenerationRequest into the prompt sent to the model.
// It holds no mutable state: the same request always yields the same prompt.
type PromptBuilder struct {
	mode model.PromptMode
	tmpl *template.Template
}

// NewStyleRewriteBuilder returns a builder that rewrites text in the style and
// tone of an example, falling back to model.DefaultExample and
// model.DefaultTone when those are blank.
func NewStyleRewriteBuilder() *PromptBuilder {
	return &PromptBuilder{mode: model.PromptModeStyleRewrite, tmpl: styleRewriteTemplate}
}

// NewFormalizeBuilder returns a builder that formalizes text for a recruiting
// audience. Example and tone are ignored.
func NewFormalizeBuilder() *PromptBuilder {
	return &PromptBuilder{mode: model.PromptModeFormalize, tmpl: formalizeTemplate}
}

// BuilderFor returns the builder for mode. Unknown modes get the style
// rewrite builder; callers validate modes with model.ParsePromptMode.
func BuilderFor(mode model.PromptMode) *PromptBuilder {
	if mode == model.PromptModeFormalize {
		return NewFormalizeBuilder()
	}
	return NewStyleRewriteBuilder()
}

// Mode returns the template mode this builder was constructed with.
func (b *PromptBuilder) Mode() model.PromptMode {
	return b.mode
}

// Build renders the prompt for req.
func (b *PromptBuilder) Build(req model.GenerationRequest) string {
	data := promptData{Text: strings.TrimSpace(req.Text)}
	if b.mode == model.PromptModeStyleRewrite {
		data.Example = req.ExampleOrDefault()
		data.Tone = req.ToneOrDefault()
	}

	var sb strings.Builder
	// Execute only fails on writer errors or missing fields; strings.Builder
	// never errors and promptData has every field the templates reference.
	_ = b.tmpl.Execute(&sb, data)
	return sb.String()
}
