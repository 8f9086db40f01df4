package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/professionalaize/internal/adapter/driving/web/viewmodel"
)

// Popup renders the rewrite form and, when present, the last result.
func Popup(m vm.PopupViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder

		sb.WriteString("<h1>Rewrite a message</h1>\n")
		if !m.CredentialConfigured {
			sb.WriteString(`<p class="status status-error">No Gemini API key is configured. <a href="/settings">Add one in settings</a>.</p>` + "\n")
		}

		sb.WriteString(`<form method="post" action="/app/process">`)
		csrfField(&sb, m.CSRFToken)

		sb.WriteString(`<label for="text">Message</label>`)
		sb.WriteString(`<textarea id="text" name="text" required placeholder="Type your message...">`)
		sb.WriteString(templ.EscapeString(m.Text))
		sb.WriteString("</textarea>\n")

		sb.WriteString(`<label for="example">Example</label>`)
		sb.WriteString(`<p class="hint">Your message is rewritten in the style of this example. Leave blank to use the default.</p>`)
		sb.WriteString(`<textarea id="example" name="example" placeholder="`)
		sb.WriteString(templ.EscapeString(m.DefaultExample))
		sb.WriteString(`">`)
		sb.WriteString(templ.EscapeString(m.Example))
		sb.WriteString("</textarea>\n")

		sb.WriteString(`<label for="tone">Tone</label>`)
		sb.WriteString(`<input type="text" id="tone" name="tone" placeholder="`)
		sb.WriteString(templ.EscapeString(m.DefaultTone))
		sb.WriteString(`" value="`)
		sb.WriteString(templ.EscapeString(m.Tone))
		sb.WriteString(`">` + "\n")

		sb.WriteString(`<label for="mode">Mode</label><select id="mode" name="mode">`)
		for _, opt := range m.Modes {
			sb.WriteString(`<option value="`)
			sb.WriteString(templ.EscapeString(opt.Value))
			sb.WriteString(`"`)
			if opt.Selected {
				sb.WriteString(" selected")
			}
			sb.WriteString(`>`)
			sb.WriteString(templ.EscapeString(opt.Label))
			sb.WriteString("</option>")
		}
		sb.WriteString("</select>\n")

		sb.WriteString(`<button type="submit">Professionalize</button>`)
		sb.WriteString("</form>\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if m.Result == nil {
			return nil
		}
		return result(*m.Result).Render(ctx, w)
	})
}

func result(r vm.ResultViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder

		if !r.Success {
			sb.WriteString(`<div class="result status status-error" data-code="`)
			sb.WriteString(templ.EscapeString(r.Code))
			sb.WriteString(`">❌ `)
			sb.WriteString(templ.EscapeString(r.Error))
			sb.WriteString("</div>\n")
			_, err := io.WriteString(w, sb.String())
			return err
		}

		sb.WriteString(`<section class="result"><h2>AI Reply</h2><div class="preview">`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		// PreviewHTML is produced by the sanitizing markdown renderer.
		if err := templ.Raw(r.PreviewHTML).Render(ctx, w); err != nil {
			return err
		}

		sb.Reset()
		sb.WriteString(`</div><label for="reply">Plain text</label><textarea id="reply" readonly>`)
		sb.WriteString(templ.EscapeString(r.Text))
		sb.WriteString(`</textarea><button type="button" class="secondary" data-copy-target="reply">Copy</button></section>` + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}
