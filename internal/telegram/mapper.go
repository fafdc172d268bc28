package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lingobot/internal/core"
)

// MapUpdate converts a platform update into the normalized inbound event.
// Updates that carry no message (edits, member changes, and the like) are
// reported as not ok and skipped by both transports.
func MapUpdate(u tgbotapi.Update) (core.InboundEvent, bool) {
	msg := u.Message
	if msg == nil || msg.Chat == nil {
		return core.InboundEvent{}, false
	}

	ev := core.InboundEvent{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}
	if msg.ReplyToMessage != nil {
		ev.ReplyTo = &core.ReplyRef{
			MessageID: msg.ReplyToMessage.MessageID,
			Text:      msg.ReplyToMessage.Text,
		}
	}
	return ev, true
}
