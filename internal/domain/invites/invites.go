package invites

import (
	"sync"
	"time"
)

// Invite is a pending assessment invitation issued through the share-link
// endpoint. The label optionally names the provider the assessment is
// meant for; a chat opening the bot with the invite token gets that value
// pre-filled.
type Invite struct {
	Label     string
	CreatedAt time.Time
}

// Registry holds issued invite tokens until a chat claims one. Tokens are
// single use: Claim removes the invite.
type Registry struct {
	mu      sync.Mutex
	invites map[string]Invite
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{invites: make(map[string]Invite)}
}

// Add records a new invite under its token.
func (r *Registry) Add(token, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invites[token] = Invite{Label: label, CreatedAt: time.Now()}
}

// Claim consumes the invite for a token. The second return reports
// whether the token was known.
func (r *Registry) Claim(token string) (Invite, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invite, ok := r.invites[token]
	if ok {
		delete(r.invites, token)
	}
	return invite, ok
}
