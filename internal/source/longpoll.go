// Package source provides the two ingestion transports behind the
// core.UpdateSource contract: a long-poll pull loop and the FIFO queue fed
// by the webhook bridge.
package source

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"lingobot/internal/core"
	"lingobot/internal/store"
	"lingobot/internal/telegram"
)

const errorBackoff = 5 * time.Second

// Puller issues one blocking long-poll request against the platform.
type Puller interface {
	Pull(offset, timeout int) ([]tgbotapi.Update, error)
}

// LongPoll pulls updates from the platform and hands them out one at a time
// in the order the platform returned them. Single-consumer only.
type LongPoll struct {
	puller  Puller
	offsets store.OffsetStore // nil keeps the offset in memory only
	timeout int
	backoff time.Duration
	log     *zerolog.Logger

	offset  int
	pending []core.InboundEvent
}

// NewLongPoll builds the long-poll source, restoring the last persisted
// offset when an offset store is configured.
func NewLongPoll(puller Puller, offsets store.OffsetStore, timeout int, logger *zerolog.Logger) (*LongPoll, error) {
	s := &LongPoll{
		puller:  puller,
		offsets: offsets,
		timeout: timeout,
		backoff: errorBackoff,
		log:     logger,
	}
	if offsets != nil {
		offset, err := offsets.LoadOffset(context.Background())
		if err != nil {
			return nil, err
		}
		s.offset = offset
	}
	return s, nil
}

// Next returns the next buffered event, pulling a fresh batch from the
// platform when the buffer is empty. Cancelling ctx stops the loop between
// pulls and reports end-of-stream.
func (s *LongPoll) Next(ctx context.Context) (core.InboundEvent, error) {
	for {
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, nil
		}

		if ctx.Err() != nil {
			s.log.Info().Msg("long-poll source stopped")
			return core.InboundEvent{}, core.ErrSourceClosed
		}

		updates, err := s.puller.Pull(s.offset, s.timeout)
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info().Msg("long-poll source stopped")
				return core.InboundEvent{}, core.ErrSourceClosed
			}
			s.log.Error().Err(err).Msg("poll failed")
			select {
			case <-time.After(s.backoff):
			case <-ctx.Done():
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= s.offset {
				s.offset = u.UpdateID + 1
			}
			if ev, ok := telegram.MapUpdate(u); ok {
				s.pending = append(s.pending, ev)
			}
		}

		if s.offsets != nil && len(updates) > 0 {
			if err := s.offsets.SaveOffset(ctx, s.offset); err != nil {
				s.log.Warn().Err(err).Msg("failed to persist offset")
			}
		}
	}
}
