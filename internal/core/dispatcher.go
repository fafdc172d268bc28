package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lingobot/internal/auth"
	"lingobot/internal/lang"
)

// ErrSourceClosed signals orderly end-of-stream from an UpdateSource.
var ErrSourceClosed = errors.New("update source closed")

// UpdateSource abstracts the two ingestion transports behind one ordered
// event stream. Next blocks until an event is available and returns
// ErrSourceClosed once the stream has drained after shutdown.
type UpdateSource interface {
	Next(ctx context.Context) (InboundEvent, error)
}

// Translator is the external translation gateway. An empty source code asks
// the gateway to detect the source language.
type Translator interface {
	Translate(ctx context.Context, query, target, source string) (Translation, error)
}

// Sender posts a message to a chat. A zero replyTo sends unthreaded.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, replyTo int) error
}

// Dispatcher is the single consumer of the inbound event stream. Each event
// is processed to completion, including the outbound calls, before the next
// one is pulled; there is never more than one in-flight translation.
type Dispatcher struct {
	source     UpdateSource
	auth       *auth.Authorizer
	translator Translator
	sender     Sender
	botName    string
	log        *zerolog.Logger
}

// NewDispatcher wires the dispatch loop's collaborators together.
func NewDispatcher(source UpdateSource, authorizer *auth.Authorizer, translator Translator, sender Sender, botName string, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		source:     source,
		auth:       authorizer,
		translator: translator,
		sender:     sender,
		botName:    botName,
		log:        logger,
	}
}

// Run consumes events until the source reports end-of-stream. Cancelling ctx
// stops the intake of new events; events already pulled finish processing,
// so outbound calls run on a detached context.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		ev, err := d.source.Next(ctx)
		if errors.Is(err, ErrSourceClosed) {
			d.log.Info().Msg("dispatcher stopped")
			return nil
		}
		if err != nil {
			return fmt.Errorf("next update: %w", err)
		}
		d.handle(context.WithoutCancel(ctx), ev)
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev InboundEvent) {
	if !d.auth.IsAuthorized(ev.ChatID) {
		return
	}

	cmd := ParseCommand(ev.Text, d.botName)
	if cmd.Kind == CommandNone {
		return
	}

	logger := d.log.With().
		Str("event_id", uuid.NewString()).
		Int64("chat_id", ev.ChatID).
		Logger()
	if name, ok := d.auth.ChatName(ev.ChatID); ok && name != "" {
		logger = logger.With().Str("chat", name).Logger()
	}

	switch cmd.Kind {
	case CommandHelp:
		if err := d.sender.Send(ctx, ev.ChatID, HelpReply, 0); err != nil {
			logger.Error().Err(err).Msg("failed to send help reply")
		}
	case CommandTranslate:
		d.translate(ctx, &logger, ev, cmd.Payload)
	}
}

func (d *Dispatcher) translate(ctx context.Context, logger *zerolog.Logger, ev InboundEvent, payload string) {
	req, err := Resolve(payload, ev)
	if err != nil {
		var uerr *UserError
		if errors.As(err, &uerr) {
			logger.Debug().Str("code", uerr.Code).Msg("command rejected")
			if sendErr := d.sender.Send(ctx, ev.ChatID, uerr.Reply, replyTargetID(ev)); sendErr != nil {
				logger.Error().Err(sendErr).Msg("failed to send error reply")
			}
		}
		return
	}

	logger.Info().Str("target", req.Target.Code).Msg("translating")

	result, err := d.translator.Translate(ctx, req.QueryText, req.Target.Code, "")
	if err != nil {
		// No chat-visible feedback for gateway failures; the failure is
		// surfaced once in the log and the request is abandoned.
		logger.Error().Err(err).Str("code", ErrCodeGateway).Msg("translation failed")
		return
	}

	if err := d.sender.Send(ctx, ev.ChatID, formatReply(req.Target, result), req.ReplyTargetID); err != nil {
		logger.Error().Err(err).Msg("failed to send translation reply")
	}
}

// formatReply renders "{sourceFlag}➡️{targetFlag}\n{text}". The source flag
// is omitted when the gateway detected nothing or an unsupported language.
func formatReply(target lang.Language, tr Translation) string {
	prefix := ""
	if src, ok := lang.Parse(tr.DetectedSourceLanguage); ok {
		prefix = src.Emoji
	}
	return fmt.Sprintf("%s➡️%s\n%s", prefix, target.Emoji, tr.TranslatedText)
}
