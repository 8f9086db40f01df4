// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// Status kinds shown in a StatusViewModel.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusViewModel is a transient banner message. AutoClearMillis > 0 hides it
// after that many milliseconds.
type StatusViewModel struct {
	Kind            string
	Message         string
	AutoClearMillis int
}

// ModeOption is one entry of the prompt mode selector.
type ModeOption struct {
	Value    string
	Label    string
	Selected bool
}

// ResultViewModel holds the outcome of one relay request.
type ResultViewModel struct {
	Success     bool
	Text        string
	PreviewHTML string // sanitized HTML rendering of Text
	Error       string
	Code        string
}

// PopupViewModel holds everything the rewrite page needs.
type PopupViewModel struct {
	CSRFToken            string
	CredentialConfigured bool

	Text           string
	Example        string
	Tone           string
	DefaultExample string
	DefaultTone    string
	Modes          []ModeOption

	Result *ResultViewModel
}

// SettingsViewModel holds everything the settings page needs. The stored key
// is only ever shown masked.
type SettingsViewModel struct {
	CSRFToken  string
	Configured bool
	Masked     string
	Status     *StatusViewModel
}
