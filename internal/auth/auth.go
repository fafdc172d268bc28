// Package auth gates inbound events on a static chat allow-list.
package auth

import (
	"github.com/rs/zerolog"

	"lingobot/internal/config"
)

// Authorizer answers whether a chat may talk to the bot. The allow-list is
// built once at construction and never mutated, so lookups need no locking.
type Authorizer struct {
	allowed map[int64]config.AllowedChat
	log     *zerolog.Logger
}

// New builds an Authorizer from the configured allow-list.
func New(chats []config.AllowedChat, logger *zerolog.Logger) *Authorizer {
	allowed := make(map[int64]config.AllowedChat, len(chats))
	for _, chat := range chats {
		allowed[chat.ID] = chat
	}
	return &Authorizer{allowed: allowed, log: logger}
}

// IsAuthorized reports whether the chat is on the allow-list. Rejections are
// logged with the chat id only; message content never reaches the log.
func (a *Authorizer) IsAuthorized(chatID int64) bool {
	_, ok := a.allowed[chatID]
	if !ok {
		a.log.Warn().Int64("chat_id", chatID).Msg("chat is not authorized")
	}
	return ok
}

// ChatName returns the configured display name for a chat. Observability
// only; authorization decisions never depend on it.
func (a *Authorizer) ChatName(chatID int64) (string, bool) {
	chat, ok := a.allowed[chatID]
	return chat.Name, ok
}
