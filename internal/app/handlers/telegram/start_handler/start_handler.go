package start_handler

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/handlers/telegram/flow"
	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/invites"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// Deep-link payload prefix produced by the share-link endpoint.
const invitePrefix = "assess_"

// StartHandler handles the /start command: the welcome text with the main
// menu, or, when the payload carries a share-link invite token, a draft
// started right away with the invite's provider pre-filled.
type StartHandler struct {
	submissionService *service.SubmissionService
	invites           *invites.Registry
	chats             *state.Chats
}

// NewStartHandler returns the handler structure.
func NewStartHandler(submissionService *service.SubmissionService, inviteRegistry *invites.Registry, chats *state.Chats) *StartHandler {
	return &StartHandler{
		submissionService: submissionService,
		invites:           inviteRegistry,
		chats:             chats,
	}
}

func (h *StartHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := h.chats.Locale(chatID)

	if msg := c.Message(); msg != nil && strings.HasPrefix(msg.Payload, invitePrefix) {
		token := strings.TrimPrefix(msg.Payload, invitePrefix)
		if invite, ok := h.invites.Claim(token); ok {
			return h.startInvited(c, chatID, loc, invite)
		}
		// Unknown or already claimed token: plain welcome.
	}
	return c.Send(i18n.T(i18n.MsgWelcome, loc), flow.MainMenu(loc))
}

// startInvited begins a draft for a claimed invite. A labelled invite
// skips the provider prompt.
func (h *StartHandler) startInvited(c telebot.Context, chatID int64, loc i18n.Locale, invite invites.Invite) error {
	store := h.submissionService.Store()
	if oldKey, ok := h.chats.Draft(chatID); ok {
		if _, err := store.DeleteDraft(oldKey); err != nil {
			return fmt.Errorf("failed to drop stale draft: %w", err)
		}
		h.chats.ClearDraft(chatID)
	}

	userName := ""
	if sender := c.Sender(); sender != nil {
		userName = sender.FirstName
		if sender.Username != "" {
			userName = sender.Username
		}
	}

	draft := model.NewDraft(time.Now(), userName)
	next := i18n.MsgAskProvider
	if invite.Label != "" {
		draft.Provider = invite.Label
		draft.Stage = model.StageEntity
		next = i18n.MsgAskEntity
	}
	if err := store.AddDraft(draft); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	h.chats.SetDraft(chatID, draft.Key())

	return c.Send(i18n.T(next, loc))
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
