package state

import (
	"sync"

	"doralyzer/internal/i18n"
)

// Chats is the explicit per-chat session state shared between the
// telegram handlers: the active draft, the chat locale and the question
// that an incoming free-text observation applies to. Passed by reference
// into every handler that needs it.
type Chats struct {
	mu            sync.RWMutex
	defaultLocale i18n.Locale
	drafts        map[int64]int64
	locales       map[int64]i18n.Locale
	lastAnswered  map[int64]int
}

// NewChats creates an empty state holder with the given default locale.
func NewChats(defaultLocale i18n.Locale) *Chats {
	return &Chats{
		defaultLocale: defaultLocale,
		drafts:        make(map[int64]int64),
		locales:       make(map[int64]i18n.Locale),
		lastAnswered:  make(map[int64]int),
	}
}

// Draft returns the active draft key of a chat.
func (c *Chats) Draft(chatID int64) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.drafts[chatID]
	return key, ok
}

// SetDraft marks a draft as the chat's active one.
func (c *Chats) SetDraft(chatID, draftKey int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[chatID] = draftKey
}

// ClearDraft drops the chat's active draft together with its
// last-answered marker.
func (c *Chats) ClearDraft(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, chatID)
	delete(c.lastAnswered, chatID)
}

// Locale returns the chat locale, falling back to the default.
func (c *Chats) Locale(chatID int64) i18n.Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if loc, ok := c.locales[chatID]; ok {
		return loc
	}
	return c.defaultLocale
}

// SetLocale pins a locale for the chat.
func (c *Chats) SetLocale(chatID int64, loc i18n.Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locales[chatID] = loc
}

// LastAnswered returns the id of the question the chat answered last.
func (c *Chats) LastAnswered(chatID int64) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.lastAnswered[chatID]
	return id, ok
}

// SetLastAnswered records the question an observation text would apply to.
func (c *Chats) SetLastAnswered(chatID int64, questionID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAnswered[chatID] = questionID
}
