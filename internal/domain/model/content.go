// Package model contains the value records passed between the assistant layers.
// Every record is transient: it is created by one call and returned to the caller.
package model

// ContentItem is a piece of published content, e.g. a press release.
type ContentItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
	// Status is carried as-is; the assistant never interprets it.
	Status string `json:"status"`
}

// RecipientProfile is a journalist or media contact considered for outreach.
type RecipientProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	SocialHandle string `json:"social_handle,omitempty"`
}
