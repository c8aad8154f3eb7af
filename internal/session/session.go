package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session not found")

// Data is the server-held state behind one browser client's cookie.
// Error and Success are one-shot flash fields: PopFlash clears them, and the
// middleware persists the cleared state after the request.
type Data struct {
	UserID      string `json:"userId,omitempty"`
	AnalyticsID string `json:"analyticsId"`
	CSRFToken   string `json:"csrfToken,omitempty"`
	Error       string `json:"error,omitempty"`
	Success     string `json:"success,omitempty"`
}

// PopFlash returns and clears the flash fields.
func (d *Data) PopFlash() (errMsg, successMsg string) {
	errMsg, successMsg = d.Error, d.Success
	d.Error, d.Success = "", ""
	return errMsg, successMsg
}

// Store maps opaque session identifiers to session state. Implementations
// own expiry; Save on an existing id resets the TTL.
type Store interface {
	Get(ctx context.Context, id string) (Data, error)
	Save(ctx context.Context, id string, data Data) error
	Delete(ctx context.Context, id string) error
}
