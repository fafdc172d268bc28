package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestMapUpdate(t *testing.T) {
	u := tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: -100500},
			Text:      "/t en Hallo",
			ReplyToMessage: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: -100500},
				Text:      "Bonjour",
			},
		},
	}

	ev, ok := MapUpdate(u)
	if !ok {
		t.Fatal("expected update to map")
	}
	if ev.ChatID != -100500 || ev.MessageID != 42 || ev.Text != "/t en Hallo" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.ReplyTo == nil || ev.ReplyTo.MessageID != 7 || ev.ReplyTo.Text != "Bonjour" {
		t.Errorf("unexpected reply ref: %+v", ev.ReplyTo)
	}
}

func TestMapUpdateWithoutReply(t *testing.T) {
	u := tgbotapi.Update{
		UpdateID: 2,
		Message: &tgbotapi.Message{
			MessageID: 9,
			Chat:      &tgbotapi.Chat{ID: 5},
			Text:      "hello",
		},
	}

	ev, ok := MapUpdate(u)
	if !ok {
		t.Fatal("expected update to map")
	}
	if ev.ReplyTo != nil {
		t.Errorf("reply ref should be nil, got %+v", ev.ReplyTo)
	}
}

func TestMapUpdateSkipsMessageless(t *testing.T) {
	if _, ok := MapUpdate(tgbotapi.Update{UpdateID: 3}); ok {
		t.Error("message-less update should not map")
	}
}
