package source

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"lingobot/internal/core"
)

// fakePuller replays fixed batches, recording the offsets it was asked for.
type fakePuller struct {
	batches [][]tgbotapi.Update
	errs    []error
	call    int
	offsets []int
}

func (f *fakePuller) Pull(offset, _ int) ([]tgbotapi.Update, error) {
	f.offsets = append(f.offsets, offset)
	i := f.call
	f.call++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.batches) {
		return f.batches[i], nil
	}
	return nil, nil
}

type memOffsets struct {
	offset int
	saves  int
}

func (m *memOffsets) LoadOffset(context.Context) (int, error) { return m.offset, nil }
func (m *memOffsets) SaveOffset(_ context.Context, offset int) error {
	m.offset = offset
	m.saves++
	return nil
}
func (m *memOffsets) Close() error { return nil }

func textUpdate(updateID, messageID int, chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			MessageID: messageID,
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
		},
	}
}

func newTestLongPoll(t *testing.T, puller Puller, offsets *memOffsets) *LongPoll {
	t.Helper()
	nop := zerolog.Nop()
	var lp *LongPoll
	var err error
	if offsets != nil {
		lp, err = NewLongPoll(puller, offsets, 30, &nop)
	} else {
		lp, err = NewLongPoll(puller, nil, 30, &nop)
	}
	if err != nil {
		t.Fatalf("failed to create long-poll source: %v", err)
	}
	lp.backoff = time.Millisecond
	return lp
}

func TestLongPollDeliversBatchInOrder(t *testing.T) {
	puller := &fakePuller{batches: [][]tgbotapi.Update{{
		textUpdate(100, 1, 5, "one"),
		textUpdate(101, 2, 5, "two"),
	}}}
	lp := newTestLongPoll(t, puller, nil)

	ctx := context.Background()
	for i, want := range []string{"one", "two"} {
		ev, err := lp.Next(ctx)
		if err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
		if ev.Text != want {
			t.Fatalf("event %d text = %q, want %q", i, ev.Text, want)
		}
	}

	if puller.offsets[0] != 0 {
		t.Errorf("first pull offset = %d, want 0", puller.offsets[0])
	}
}

func TestLongPollAdvancesOffsetPastSkippedUpdates(t *testing.T) {
	// A message-less update (e.g. an edit) still advances the offset.
	puller := &fakePuller{batches: [][]tgbotapi.Update{
		{
			{UpdateID: 200},
			textUpdate(201, 1, 5, "hello"),
		},
		{textUpdate(202, 2, 5, "again")},
	}}
	lp := newTestLongPoll(t, puller, nil)

	ctx := context.Background()
	if ev, err := lp.Next(ctx); err != nil || ev.Text != "hello" {
		t.Fatalf("got (%+v, %v), want the hello event", ev, err)
	}
	if ev, err := lp.Next(ctx); err != nil || ev.Text != "again" {
		t.Fatalf("got (%+v, %v), want the again event", ev, err)
	}

	if len(puller.offsets) < 2 || puller.offsets[1] != 202 {
		t.Fatalf("second pull offset = %v, want 202", puller.offsets)
	}
}

func TestLongPollPersistsOffset(t *testing.T) {
	offsets := &memOffsets{}
	puller := &fakePuller{batches: [][]tgbotapi.Update{{textUpdate(300, 1, 5, "hi")}}}
	lp := newTestLongPoll(t, puller, offsets)

	if _, err := lp.Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offsets.offset != 301 {
		t.Fatalf("persisted offset = %d, want 301", offsets.offset)
	}
	if offsets.saves != 1 {
		t.Fatalf("saves = %d, want 1", offsets.saves)
	}
}

func TestLongPollRestoresPersistedOffset(t *testing.T) {
	offsets := &memOffsets{offset: 500}
	puller := &fakePuller{batches: [][]tgbotapi.Update{{textUpdate(500, 1, 5, "hi")}}}
	lp := newTestLongPoll(t, puller, offsets)

	if _, err := lp.Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if puller.offsets[0] != 500 {
		t.Fatalf("first pull offset = %d, want restored 500", puller.offsets[0])
	}
}

func TestLongPollRetriesAfterPullError(t *testing.T) {
	puller := &fakePuller{
		errs:    []error{errors.New("api status: 502")},
		batches: [][]tgbotapi.Update{nil, {textUpdate(400, 1, 5, "after retry")}},
	}
	lp := newTestLongPoll(t, puller, nil)

	ev, err := lp.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Text != "after retry" {
		t.Fatalf("text = %q, want %q", ev.Text, "after retry")
	}
}

func TestLongPollStopsOnContextCancel(t *testing.T) {
	puller := &fakePuller{}
	lp := newTestLongPoll(t, puller, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := lp.Next(ctx); !errors.Is(err, core.ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed, got %v", err)
	}
	if len(puller.offsets) != 0 {
		t.Fatalf("expected no pulls after cancel, got %d", len(puller.offsets))
	}
}
