// Package pages holds the page-level templ components of the web GUI.
package pages

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/professionalaize/internal/adapter/driving/web/viewmodel"
)

// csrfField renders the hidden form input carrying the CSRF token.
func csrfField(sb *strings.Builder, token string) {
	sb.WriteString(`<input type="hidden" name="csrf_token" value="`)
	sb.WriteString(templ.EscapeString(token))
	sb.WriteString(`">`)
}

// statusBanner renders a status message, or nothing when s is nil.
func statusBanner(sb *strings.Builder, s *vm.StatusViewModel) {
	if s == nil || s.Message == "" {
		return
	}
	icon := "✅"
	if s.Kind == vm.StatusError {
		icon = "❌"
	}
	sb.WriteString(`<div id="status" role="status" class="status status-`)
	sb.WriteString(templ.EscapeString(s.Kind))
	sb.WriteString(`"`)
	if s.AutoClearMillis > 0 {
		sb.WriteString(` data-autoclear="`)
		sb.WriteString(strconv.Itoa(s.AutoClearMillis))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(icon)
	sb.WriteString(" ")
	sb.WriteString(templ.EscapeString(s.Message))
	sb.WriteString("</div>\n")
}
