// Package service serves moves over HTTP, websockets and SMS commands.
package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/twipi/pubsub"
	"github.com/twipi/tateti/game"
	"github.com/twipi/tateti/journal"
	"github.com/twipi/twipi/proto/out/twismsproto"
	"golang.org/x/sync/errgroup"
)

// Move sources.
const (
	SourceHTTP      = "http"
	SourceWebsocket = "ws"
	SourceSMS       = "sms"
)

// MoveEvent is published every time a move is chosen.
type MoveEvent struct {
	ID       uuid.UUID
	Time     time.Time
	Source   string
	Board    game.Board
	Decision game.Decision
}

type statKey struct {
	size   int
	stage  game.Stage
	reason game.Reason
}

// Stat counts the decisions taken for one board size, stage and reason.
type Stat struct {
	Size   int    `json:"size"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// Service chooses moves and fans them out to its subscribers.
type Service struct {
	sendCh   chan *twismsproto.Message
	sendSub  pubsub.Subscriber[*twismsproto.Message]
	eventCh  chan MoveEvent
	eventSub pubsub.Subscriber[MoveEvent]
	stats    *xsync.MapOf[statKey, *xsync.Counter]
	journal  *journal.Journal
	logger   *slog.Logger
}

// Option configures a [Service].
type Option func(*Service)

// WithJournal records every move into j.
func WithJournal(j *journal.Journal) Option {
	return func(s *Service) {
		s.journal = j
	}
}

const eventBuffer = 64

func NewService(logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		sendCh:  make(chan *twismsproto.Message),
		eventCh: make(chan MoveEvent, eventBuffer),
		stats:   xsync.NewMapOf[statKey, *xsync.Counter](),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Move chooses the move for the given board. The board must hold 9 or 25
// known symbols and at least one of them must be empty.
func (s *Service) Move(ctx context.Context, source string, board game.Board) (game.Decision, error) {
	selector, ok := game.SelectorFor(len(board))
	if !ok {
		return game.Decision{}, ErrBoardSize
	}

	if i := slices.IndexFunc(board, func(c game.Symbol) bool { return !c.IsValid() }); i != -1 {
		return game.Decision{}, fmt.Errorf("%w: %d at position %d", ErrBoardValues, int(board[i]), i)
	}

	empty := board.EmptyPositions()
	decision, ok := selector.Decide(board, empty)
	if !ok {
		return game.Decision{}, ErrNoEmptyPositions
	}

	s.logger.Debug(
		"chose move",
		"source", source,
		"size", len(board),
		"empty", len(empty),
		"symbol", decision.Symbol,
		"position", decision.Position,
		"stage", decision.Stage,
		"reason", decision.Reason)

	counter, _ := s.stats.LoadOrCompute(
		statKey{len(board), decision.Stage, decision.Reason},
		xsync.NewCounter)
	counter.Inc()

	s.publish(MoveEvent{
		ID:       uuid.New(),
		Time:     time.Now(),
		Source:   source,
		Board:    board.Clone(),
		Decision: decision,
	})

	return decision, nil
}

func (s *Service) publish(ev MoveEvent) {
	select {
	case s.eventCh <- ev:
	default:
		s.logger.Warn(
			"move event buffer full, dropping event",
			"id", ev.ID)
	}
}

// Stats returns the decision counters sorted by size, stage and reason.
func (s *Service) Stats() []Stat {
	var stats []Stat
	s.stats.Range(func(key statKey, counter *xsync.Counter) bool {
		stats = append(stats, Stat{
			Size:   key.size,
			Stage:  key.stage.String(),
			Reason: key.reason.String(),
			Count:  counter.Value(),
		})
		return true
	})
	slices.SortFunc(stats, func(a, b Stat) int {
		return cmp.Or(
			cmp.Compare(a.Size, b.Size),
			cmp.Compare(a.Stage, b.Stage),
			cmp.Compare(a.Reason, b.Reason),
		)
	})
	return stats
}

// SubscribeMoves subscribes ch to every chosen move.
func (s *Service) SubscribeMoves(ch chan<- MoveEvent) {
	s.eventSub.Subscribe(ch, func(MoveEvent) bool { return true })
}

// UnsubscribeMoves undoes [Service.SubscribeMoves].
func (s *Service) UnsubscribeMoves(ch chan<- MoveEvent) {
	s.eventSub.Unsubscribe(ch)
}

// Start runs the fan-out loops until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)

	// The journal subscribes before any event is fanned out so that moves
	// chosen before Start are still recorded.
	if s.journal != nil {
		ch := make(chan MoveEvent, eventBuffer)
		s.SubscribeMoves(ch)

		errg.Go(func() error {
			defer s.UnsubscribeMoves(ch)
			return s.recordMoves(ctx, ch)
		})
	}

	errg.Go(func() error {
		return s.sendSub.Listen(ctx, s.sendCh)
	})

	errg.Go(func() error {
		return s.eventSub.Listen(ctx, s.eventCh)
	})

	return errg.Wait()
}

func (s *Service) recordMoves(ctx context.Context, ch <-chan MoveEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-ch:
			err := s.journal.Record(ctx, journal.Entry{
				ID:        ev.ID,
				CreatedAt: ev.Time,
				Source:    ev.Source,
				Board:     formatCompactBoard(ev.Board),
				Position:  int(ev.Decision.Position),
				Stage:     ev.Decision.Stage.String(),
				Reason:    ev.Decision.Reason.String(),
			})
			if err != nil {
				s.logger.Error(
					"failed to record move",
					"id", ev.ID,
					"err", err)
			}
		}
	}
}

// RecentMoves returns up to limit journaled moves, newest first. It returns
// false if the service has no journal.
func (s *Service) RecentMoves(ctx context.Context, limit int) ([]journal.Entry, bool, error) {
	if s.journal == nil {
		return nil, false, nil
	}
	entries, err := s.journal.Recent(ctx, limit)
	return entries, true, err
}
