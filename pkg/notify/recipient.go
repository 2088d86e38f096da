package notify

import "context"

// Recipient is the minimal user view the dispatch engine needs. It is owned
// by the identity collaborator; the engine only reads it.
type Recipient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Identity resolves user profiles and broadcast audiences. Implementations
// live with the platform's user service; the engine treats them as a black box.
type Identity interface {
	// PublicProfile returns the recipient profile for a user id, or
	// ErrRecipientNotFound when no such user exists.
	PublicProfile(ctx context.Context, userID string) (*Recipient, error)

	// ListByRoles returns every user holding one of the given roles,
	// excluding excludeUserID when non-empty. Used for broadcast audience
	// resolution.
	ListByRoles(ctx context.Context, roles []string, excludeUserID string) ([]Recipient, error)
}
