package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/professionalaize/internal/adapter/driving/web/viewmodel"
)

const removeConfirm = "⚠️ Are you sure you want to remove the API key?\n\nThis will disable rewriting until you enter a new API key."

// Settings renders the API key management page.
func Settings(m vm.SettingsViewModel) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder

		sb.WriteString("<h1>Settings</h1>\n")
		statusBanner(&sb, m.Status)

		if m.Configured {
			sb.WriteString(`<p>Current key: <span class="masked">`)
			sb.WriteString(templ.EscapeString(m.Masked))
			sb.WriteString("</span></p>\n")
		} else {
			sb.WriteString("<p>No API key is stored.</p>\n")
		}

		sb.WriteString(`<form id="settingsForm" method="post" action="/settings">`)
		csrfField(&sb, m.CSRFToken)
		sb.WriteString(`<label for="apiKey">Gemini API key</label>`)
		sb.WriteString(`<input type="password" id="apiKey" name="api_key" autocomplete="off" placeholder="AIza...">`)
		sb.WriteString(`<p class="hint">Get a key from Google AI Studio. It starts with "AIza".</p>`)
		sb.WriteString(`<button type="submit" id="saveBtn">Save</button>`)
		sb.WriteString("</form>\n")

		if m.Configured {
			sb.WriteString(`<form method="post" action="/settings/remove" data-confirm="`)
			sb.WriteString(templ.EscapeString(removeConfirm))
			sb.WriteString(`">`)
			csrfField(&sb, m.CSRFToken)
			sb.WriteString(`<button type="submit" id="removeBtn" class="danger">Remove key</button>`)
			sb.WriteString("</form>\n")
		}

		_, err := io.WriteString(w, sb.String())
		return err
	})
}
