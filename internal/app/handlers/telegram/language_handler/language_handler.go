package language_handler

import (
	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/handlers/telegram/flow"
	"doralyzer/internal/app/state"
	"doralyzer/internal/i18n"
)

// LanguageHandler toggles the chat between the two supported locales.
type LanguageHandler struct {
	chats *state.Chats
}

// NewLanguageHandler returns the handler structure.
func NewLanguageHandler(chats *state.Chats) *LanguageHandler {
	return &LanguageHandler{chats: chats}
}

func (h *LanguageHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := i18n.Toggle(h.chats.Locale(chatID))
	h.chats.SetLocale(chatID, loc)
	return c.Send(i18n.T(i18n.MsgLanguageSet, loc), flow.MainMenu(loc))
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *LanguageHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
