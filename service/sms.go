package service

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/twipi/tateti/game"
	"github.com/twipi/twipi/proto/out/twicmdproto"
	"github.com/twipi/twipi/proto/out/twismsproto"
	"github.com/twipi/twipi/twicmd"
	"github.com/twipi/twipi/twisms"
	"google.golang.org/protobuf/encoding/prototext"
)

//go:embed service.txtpb
var servicePrototext []byte

var service = (func() *twicmdproto.Service {
	service := new(twicmdproto.Service)
	if err := prototext.Unmarshal(servicePrototext, service); err != nil {
		panic(fmt.Sprintf("failed to unmarshal service proto: %v", err))
	}
	return service
})()

var (
	_ twicmd.Service           = (*Service)(nil)
	_ twisms.MessageSubscriber = (*Service)(nil)
)

// Name implements [twicmd.Service].
func (s *Service) Name() string {
	return service.Name
}

// Service implements [twicmd.Service].
func (s *Service) Service(ctx context.Context) (*twicmdproto.Service, error) {
	return service, nil
}

// Execute implements [twicmd.Service].
func (s *Service) Execute(ctx context.Context, req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	switch req.Command.Command {
	case "move":
		args := twicmd.MapArguments(req.Command.Arguments)
		s.logger.Debug(
			"choosing move",
			"phone_number", req.Message.From,
			"board", args["board"])

		board, err := ParseCompactBoard(args["board"])
		if err != nil {
			return twicmd.StatusResponse(smsErrorMessage(err)), nil
		}

		if winner := game.Winner(board, boardConfig(board).Lines); winner != game.Empty {
			return twicmd.TextResponse(fmt.Sprintf("The game is over. %s wins!", playerUnicode[winner])), nil
		}

		decision, err := s.Move(ctx, SourceSMS, board)
		if err != nil {
			return twicmd.StatusResponse(smsErrorMessage(err)), nil
		}

		played := board.Clone()
		played[decision.Position] = decision.Symbol
		s.reply(ctx, twisms.NewReplyingMessage(req.Message, drawBoardMessage(
			fmt.Sprintf("%s plays at %d:", playerUnicode[decision.Symbol], decision.Position),
			played)))

		return twicmd.TextResponse(fmt.Sprintf("movimiento: %d", decision.Position)), nil

	default:
		return nil, fmt.Errorf("unknown command: %q", req.Command.Command)
	}
}

// reply queues msg for the message subscribers unless ctx is done first.
func (s *Service) reply(ctx context.Context, msg *twismsproto.Message) {
	select {
	case s.sendCh <- msg:
	case <-ctx.Done():
		s.logger.Debug(
			"dropping reply, context done",
			"err", ctx.Err())
	}
}

func smsErrorMessage(err error) string {
	if isClientError(err) {
		return errorMessage(err) + ". Send the board as 9 or 25 digits: 0 empty, 1 X, 2 O."
	}
	return "Something went wrong. Please try again."
}

func boardConfig(b game.Board) *game.Config {
	cfg, _ := game.ConfigFor(len(b))
	return cfg
}

var playerUnicode = map[game.Symbol]string{
	game.PlayerX: "❌",
	game.PlayerO: "⚫",
	game.Empty:   "⬜",
}

func drawBoardMessage(prefix string, board game.Board) *twismsproto.MessageBody {
	var s strings.Builder
	if prefix != "" {
		s.WriteString(prefix)
		s.WriteString("\n\n")
	}
	side := game.Side(len(board))
	for r := range side {
		for c := range side {
			s.WriteString(playerUnicode[board.At(game.PositionAt(r, c, side))])
		}
		s.WriteString("\n")
	}
	return &twismsproto.MessageBody{
		Text: &twismsproto.TextBody{
			Text: strings.TrimSuffix(s.String(), "\n"),
		},
	}
}

// SubscribeMessages implements [twisms.MessageSubscriber].
func (s *Service) SubscribeMessages(ch chan<- *twismsproto.Message, filters *twismsproto.MessageFilters) {
	s.sendSub.Subscribe(ch, func(msg *twismsproto.Message) bool {
		return twisms.FilterMessage(filters, msg)
	})
}

// UnsubscribeMessages implements [twisms.MessageSubscriber].
func (s *Service) UnsubscribeMessages(ch chan<- *twismsproto.Message) {
	s.sendSub.Unsubscribe(ch)
}
