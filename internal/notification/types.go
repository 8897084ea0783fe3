package notification

import (
	"github.com/slipstream/tautulli-notify/internal/notification/render"
	"github.com/slipstream/tautulli-notify/internal/notification/types"
)

// Re-export types from the types sub-package
type (
	NotifierType = types.NotifierType
	Notifier     = types.Notifier
	Request      = types.Request
	Message      = types.Message
	MediaType    = types.MediaType
)

// Re-export constants
const (
	NotifierWhatsApp = types.NotifierWhatsApp
	NotifierTelegram = types.NotifierTelegram
)

// Channel is an enabled notifier together with how its message is built.
type Channel struct {
	Notifier Notifier
	Flavor   render.Flavor
	// UploadPoster downloads the poster and attaches it instead of sending the URL.
	UploadPoster bool
}

// OutcomeStatus is the result of one channel dispatch
type OutcomeStatus string

const (
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeFailed  OutcomeStatus = "failed"
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome records what happened on one channel during a run.
type Outcome struct {
	Channel NotifierType
	Name    string
	Status  OutcomeStatus
	Err     error
}
