package web

import (
	vm "github.com/ericfisherdev/professionalaize/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

// statusAutoClearMillis matches how long the browser extension kept its
// options status visible.
const statusAutoClearMillis = 3000

// Settings page status messages.
const (
	msgKeySaved     = "API key saved successfully!"
	msgKeyRemoved   = "API key removed successfully!"
	msgSaveFailed   = "Error saving API key. Please try again."
	msgRemoveFailed = "Error removing API key. Please try again."
)

// toPopupViewModel builds the rewrite page from the submitted form values.
func toPopupViewModel(req model.RelayRequest, csrf string, configured bool) vm.PopupViewModel {
	return vm.PopupViewModel{
		CSRFToken:            csrf,
		CredentialConfigured: configured,
		Text:                 req.Text,
		Example:              req.Example,
		Tone:                 req.Tone,
		DefaultExample:       model.DefaultExample,
		DefaultTone:          model.DefaultTone,
		Modes:                modeOptions(req.Mode),
	}
}

func modeOptions(selected string) []vm.ModeOption {
	mode, err := model.ParsePromptMode(selected)
	if err != nil {
		mode = model.PromptModeStyleRewrite
	}
	return []vm.ModeOption{
		{Value: string(model.PromptModeStyleRewrite), Label: "Match example style", Selected: mode == model.PromptModeStyleRewrite},
		{Value: string(model.PromptModeFormalize), Label: "Formalize for recruiters", Selected: mode == model.PromptModeFormalize},
	}
}

// toResultViewModel converts a relay envelope for display.
func toResultViewModel(resp model.RelayResponse) *vm.ResultViewModel {
	if !resp.Success {
		return &vm.ResultViewModel{Error: resp.Error, Code: resp.Code}
	}
	return &vm.ResultViewModel{
		Success:     true,
		Text:        resp.Data,
		PreviewHTML: RenderMarkdown(resp.Data),
	}
}

// toSettingsViewModel converts the credential status for display.
func toSettingsViewModel(status application.CredentialStatus, csrf string, banner *vm.StatusViewModel) vm.SettingsViewModel {
	return vm.SettingsViewModel{
		CSRFToken:  csrf,
		Configured: status.Configured,
		Masked:     status.Masked,
		Status:     banner,
	}
}

func successStatus(message string) *vm.StatusViewModel {
	return &vm.StatusViewModel{Kind: vm.StatusSuccess, Message: message, AutoClearMillis: statusAutoClearMillis}
}

func errorStatus(message string) *vm.StatusViewModel {
	return &vm.StatusViewModel{Kind: vm.StatusError, Message: message, AutoClearMillis: statusAutoClearMillis}
}

// statusFromQuery maps the ?status= value set by a post-redirect-get back to
// its banner. Unknown values show nothing.
func statusFromQuery(v string) *vm.StatusViewModel {
	switch v {
	case "saved":
		return successStatus(msgKeySaved)
	case "removed":
		return successStatus(msgKeyRemoved)
	default:
		return nil
	}
}
