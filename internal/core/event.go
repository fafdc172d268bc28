package core

// InboundEvent is one normalized platform update: the same shape regardless
// of whether it arrived via long-poll or the webhook bridge. Consumed exactly
// once by the Dispatcher and never retained afterwards.
type InboundEvent struct {
	ChatID    int64
	MessageID int
	Text      string
	// ReplyTo is set when the triggering message references an earlier
	// message in the chat.
	ReplyTo *ReplyRef
}

// ReplyRef points at the earlier message a triggering message replied to.
type ReplyRef struct {
	MessageID int
	Text      string
}

// Translation is the result of one gateway call.
type Translation struct {
	TranslatedText string
	// DetectedSourceLanguage is empty when the gateway did not detect one.
	DetectedSourceLanguage string
}
