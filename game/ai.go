package game

// Stage is the phase of the game a decision was taken in. Stages are keyed on
// the number of empty cells.
type Stage uint8

const (
	// StageFallback is used when the empty count does not fit the board.
	StageFallback Stage = iota
	// StageOpening is the very first move of the game.
	StageOpening
	// StageEarly is the reply to the first stone.
	StageEarly
	// StageTactical is the third move.
	StageTactical
	// StageGeneral covers every later move.
	StageGeneral
)

var stageNames = [...]string{
	StageFallback: "fallback",
	StageOpening:  "opening",
	StageEarly:    "early",
	StageTactical: "tactical",
	StageGeneral:  "general",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Reason explains why a position was chosen.
type Reason uint8

const (
	ReasonFirstAvailable Reason = iota
	ReasonCenter
	ReasonWin
	ReasonBlock
	ReasonExtend
	ReasonBlockExtend
	ReasonRespond
	ReasonPositional
)

var reasonNames = [...]string{
	ReasonFirstAvailable: "first-available",
	ReasonCenter:         "center",
	ReasonWin:            "win",
	ReasonBlock:          "block",
	ReasonExtend:         "extend",
	ReasonBlockExtend:    "block-extend",
	ReasonRespond:        "respond",
	ReasonPositional:     "positional",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Decision is a chosen move along with how it was reached.
type Decision struct {
	Position Position
	Symbol   Symbol
	Stage    Stage
	Reason   Reason
}

// Strategy holds every step the selector takes. Each field can be replaced on
// its own; nil fields use the package defaults.
type Strategy struct {
	// Symbols decides who is moving from the number of empty cells.
	Symbols func(emptyCount int) (self, opponent Symbol)
	// FindWin finds a cell completing a line for the given symbol. It is
	// used for blocking too, probed with the opponent's symbol.
	FindWin func(board Board, empty []Position, s Symbol, lines []Line) (Position, bool)
	// FindCompletion finds a cell completing a two-in-line.
	FindCompletion func(board Board, empty []Position, s Symbol, lines []Line) (Position, bool)
	// Positional is the center, corner, edge fallback.
	Positional func(empty []Position, cfg *Config) (Position, bool)
	// OpponentPositions lists the cells held by the opponent.
	OpponentPositions func(board Board, s Symbol) []Position
	// Respond answers a single opponent stone on the third move.
	Respond func(opp Position, empty []Position, cfg *Config) (Position, bool)
}

// DefaultStrategy returns the strategy built from the package functions.
func DefaultStrategy() Strategy {
	return Strategy{
		Symbols:           SymbolToMove,
		FindWin:           FindImmediateWin,
		FindCompletion:    FindStrategicCompletion,
		Positional:        SelectPositionalMove,
		OpponentPositions: OpponentPositions,
		Respond:           RespondToOpponentAt,
	}
}

// merge returns s with its nil fields taken from base.
func (s Strategy) merge(base Strategy) Strategy {
	if s.Symbols == nil {
		s.Symbols = base.Symbols
	}
	if s.FindWin == nil {
		s.FindWin = base.FindWin
	}
	if s.FindCompletion == nil {
		s.FindCompletion = base.FindCompletion
	}
	if s.Positional == nil {
		s.Positional = base.Positional
	}
	if s.OpponentPositions == nil {
		s.OpponentPositions = base.OpponentPositions
	}
	if s.Respond == nil {
		s.Respond = base.Respond
	}
	return s
}

// Selector chooses moves for one board size.
// A Selector holds no mutable state and is safe for concurrent use.
type Selector struct {
	config   *Config
	strategy Strategy
}

// SelectorOption configures a [Selector].
type SelectorOption func(*Selector)

// WithStrategy overrides the non-nil steps of the selector's strategy.
func WithStrategy(strategy Strategy) SelectorOption {
	return func(s *Selector) {
		s.strategy = strategy.merge(s.strategy)
	}
}

// NewSelector creates a selector for the given board config.
func NewSelector(cfg *Config, opts ...SelectorOption) *Selector {
	s := &Selector{
		config:   cfg,
		strategy: DefaultStrategy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	// Tres selects moves on the 3x3 board.
	Tres = NewSelector(ThreeByThree)
	// Cinco selects moves on the 5x5 board.
	Cinco = NewSelector(FiveByFive)
)

// SelectorFor returns the selector for a board with the given number of
// cells.
func SelectorFor(length int) (*Selector, bool) {
	switch length {
	case ThreeByThree.Size:
		return Tres, true
	case FiveByFive.Size:
		return Cinco, true
	default:
		return nil, false
	}
}

// Config returns the board config the selector plays on.
func (s *Selector) Config() *Config {
	return s.config
}

// With returns a copy of the selector whose non-nil strategy steps are
// replaced by the given ones.
func (s *Selector) With(strategy Strategy) *Selector {
	return &Selector{
		config:   s.config,
		strategy: strategy.merge(s.strategy),
	}
}

// SelectMove returns the position to play given the board and its empty
// positions. It returns false if there is no empty position.
//
// The board is only read. A nil board is tolerated and still yields a
// position from empty.
func (s *Selector) SelectMove(board Board, empty []Position) (Position, bool) {
	d, ok := s.Decide(board, empty)
	return d.Position, ok
}

// Decide is like [Selector.SelectMove] but also reports the stage and the
// reason behind the move.
func (s *Selector) Decide(board Board, empty []Position) (Decision, bool) {
	if len(empty) == 0 {
		return Decision{}, false
	}

	cfg := s.config
	st := s.strategy
	self, opponent := st.Symbols(len(empty))

	decide := func(p Position, stage Stage, reason Reason) (Decision, bool) {
		return Decision{Position: p, Symbol: self, Stage: stage, Reason: reason}, true
	}

	switch n := len(empty); {
	case n == cfg.Size:
		return decide(cfg.Center, StageOpening, ReasonCenter)

	case n == cfg.Size-1:
		if p, ok := st.Positional(empty, cfg); ok {
			return decide(p, StageEarly, ReasonPositional)
		}
		return decide(empty[0], StageEarly, ReasonFirstAvailable)

	case n == cfg.Size-2:
		if p, ok := st.FindWin(board, empty, self, cfg.Lines); ok {
			return decide(p, StageTactical, ReasonWin)
		}
		if p, ok := st.FindWin(board, empty, opponent, cfg.Lines); ok {
			return decide(p, StageTactical, ReasonBlock)
		}
		// Only the first opponent stone is considered.
		if opps := st.OpponentPositions(board, opponent); len(opps) > 0 {
			if p, ok := st.Respond(opps[0], empty, cfg); ok {
				return decide(p, StageTactical, ReasonRespond)
			}
		}
		return decide(empty[0], StageTactical, ReasonFirstAvailable)

	case n <= cfg.Size-3:
		if p, ok := st.FindWin(board, empty, self, cfg.Lines); ok {
			return decide(p, StageGeneral, ReasonWin)
		}
		if p, ok := st.FindWin(board, empty, opponent, cfg.Lines); ok {
			return decide(p, StageGeneral, ReasonBlock)
		}
		if p, ok := st.FindCompletion(board, empty, self, cfg.Lines); ok {
			return decide(p, StageGeneral, ReasonExtend)
		}
		if p, ok := st.FindCompletion(board, empty, opponent, cfg.Lines); ok {
			return decide(p, StageGeneral, ReasonBlockExtend)
		}
		if p, ok := st.Positional(empty, cfg); ok {
			return decide(p, StageGeneral, ReasonPositional)
		}
		return decide(empty[0], StageGeneral, ReasonFirstAvailable)

	default:
		return decide(empty[0], StageFallback, ReasonFirstAvailable)
	}
}
