package roundservice

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
)

// PayloadSink delivers a round.completed payload, by queue or directly.
type PayloadSink func(ctx context.Context, payload eventbus.RoundCompletedPayload) error

// EventNotifier announces completed rounds on the event bus.
type EventNotifier struct {
	sink PayloadSink
}

var _ Notifier = (*EventNotifier)(nil)

// NewEventNotifier creates a notifier that hands payloads to sink.
func NewEventNotifier(sink PayloadSink) *EventNotifier {
	return &EventNotifier{sink: sink}
}

// RoundCompleted builds the payload for round and delivers it.
func (n *EventNotifier) RoundCompleted(ctx context.Context, round rounddomain.Round) error {
	return n.sink(ctx, CompletedPayload(round))
}

// CompletedPayload summarises round for the round.completed event.
func CompletedPayload(round rounddomain.Round) eventbus.RoundCompletedPayload {
	card := round.Scorecard()
	p := eventbus.RoundCompletedPayload{
		RoundID:     round.ID.String(),
		PlayerID:    round.PlayerID,
		CourseName:  round.CourseName,
		LoopName:    round.Loop.Name,
		TeeColor:    round.TeeColor,
		HolesPlayed: card.HolesPlayed,
		TotalScore:  card.TotalScore,
		ToPar:       card.ToPar,
	}
	if card.HasStableford {
		pts := card.Stableford
		p.Stableford = &pts
	}
	if round.CompletedAt != nil {
		p.CompletedAt = round.CompletedAt.UTC()
	} else {
		p.CompletedAt = time.Now().UTC()
	}
	return p
}
