package domain

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
)

// StorageTarget identifies the document collection a user's video records live in.
// It is user-supplied free text and is not checked for reachability until first use.
type StorageTarget struct {
	Endpoint   string // Connection URI, e.g. mongodb://host:27017
	Database   string // Database name inside the endpoint
	Collection string // Collection (or partition) holding the records
}

// Validate reports ErrInvalidTarget when any of the three parts is blank.
func (t StorageTarget) Validate() error {
	var missing []string

	if strings.TrimSpace(t.Endpoint) == "" {
		missing = append(missing, "endpoint")
	}

	if strings.TrimSpace(t.Database) == "" {
		missing = append(missing, "database")
	}

	if strings.TrimSpace(t.Collection) == "" {
		missing = append(missing, "collection")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperrors.ErrInvalidTarget, strings.Join(missing, ", "))
	}

	return nil
}

// Scheme returns the lower-cased URI scheme of the endpoint, or "" when there is none.
func (t StorageTarget) Scheme() string {
	scheme, _, ok := strings.Cut(t.Endpoint, "://")
	if !ok {
		return ""
	}

	return strings.ToLower(scheme)
}

// RedactedEndpoint returns the endpoint with any password replaced, safe for logs and replies.
func (t StorageTarget) RedactedEndpoint() string {
	u, err := url.Parse(t.Endpoint)
	if err != nil || u.User == nil {
		return t.Endpoint
	}

	return u.Redacted()
}

// String implements fmt.Stringer without leaking credentials.
func (t StorageTarget) String() string {
	return fmt.Sprintf("%s/%s.%s", t.RedactedEndpoint(), t.Database, t.Collection)
}

// UserBinding is a user's configured storage target and optional channel.
type UserBinding struct {
	UserID    int64         // Chat identity of the requesting user
	Storage   StorageTarget // Where the user's catalog lives
	ChannelID string        // Optional channel attached to new records, empty when unset
}

// HasChannel reports whether a channel has been bound.
func (b UserBinding) HasChannel() bool {
	return b.ChannelID != ""
}
