package models

// ActionType classifies an interactive element found on a page.
type ActionType string

const (
	ActionJobApplication ActionType = "job_application"
	ActionContact        ActionType = "contact"
	ActionRegister       ActionType = "register"
	ActionFormSubmit     ActionType = "form_submit"
	ActionOther          ActionType = "other"
)

// Action is a button, action-like link or submit input found in the markup.
type Action struct {
	// Label is the visible text of the control, or its value attribute
	// for submit inputs.
	Label string `json:"label"`

	// URL is the absolute link target, or the page URL for controls that
	// do not navigate.
	URL string `json:"url"`

	Type ActionType `json:"type"`
}
