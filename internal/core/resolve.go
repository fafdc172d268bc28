package core

import (
	"strings"

	"lingobot/internal/lang"
)

// ResolvedRequest is a fully validated translation request. QueryText is
// never empty and Target always comes from the supported table; emptiness
// and unknown codes are rejected before construction.
type ResolvedRequest struct {
	Target        lang.Language
	QueryText     string
	ReplyTargetID int
}

// Resolve turns a raw translate payload plus the event's reply-chain context
// into a request, or a *UserError describing what the user got wrong.
//
// The target code is read from the first three characters of the trimmed
// payload. Text referenced through a reply-chain always wins over inline
// text: a bare "/t en" replying to a message translates that message, and
// stale inline text attached to a forwarded command never shadows it.
func Resolve(payload string, ev InboundEvent) (ResolvedRequest, error) {
	trimmed := strings.TrimSpace(payload)

	head := trimmed
	if len(head) > 3 {
		head = head[:3]
	}
	target, ok := lang.Parse(strings.TrimSpace(head))
	if !ok {
		return ResolvedRequest{}, ErrInvalidLanguage
	}

	inline := ""
	if len(trimmed) > 3 {
		inline = trimmed[3:]
	}

	query := inline
	if ev.ReplyTo != nil && ev.ReplyTo.Text != "" {
		query = ev.ReplyTo.Text
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return ResolvedRequest{}, ErrMissingText
	}

	return ResolvedRequest{
		Target:        target,
		QueryText:     query,
		ReplyTargetID: replyTargetID(ev),
	}, nil
}

// replyTargetID picks the message the bot's reply is threaded under: the
// replied-to message when one exists, else the triggering message itself.
func replyTargetID(ev InboundEvent) int {
	if ev.ReplyTo != nil {
		return ev.ReplyTo.MessageID
	}
	return ev.MessageID
}
