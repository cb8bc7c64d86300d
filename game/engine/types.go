package engine

// Position represents a player's seat position at the table
type Position string

const (
	PositionButton   Position = "button"
	PositionBigBlind Position = "big_blind"
	PositionNone     Position = "none"
)

// Round represents the current betting round
type Round string

const (
	RoundPreflop  Round = "preflop"
	RoundFlop     Round = "flop"
	RoundTurn     Round = "turn"
	RoundRiver    Round = "river"
	RoundShowdown Round = "showdown"
)

// GameStatus represents the lifecycle state of a table
type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished"
)

// Action is a betting action submitted by a player
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

const (
	// Validation constants
	MinSeats = 2
	MaxSeats = 9

	// TurnTimeMillis is the fixed per-turn clock reported in snapshots.
	TurnTimeMillis = 30000
)

// Player represents a seated player. Owned exclusively by the Table;
// never mutated outside an applied action.
type Player struct {
	ID         string   `json:"id"`
	ChipStack  int      `json:"chip_stack"`
	HoleCards  []string `json:"hole_cards"`
	CurrentBet int      `json:"current_bet"`
	IsFolded   bool     `json:"is_folded"`
	IsAllIn    bool     `json:"is_all_in"`
	Position   Position `json:"position"`
}

// TableState represents the complete authoritative game state
type TableState struct {
	Players        []Player   `json:"players"`
	CommunityCards []string   `json:"community_cards"`
	Pot            int        `json:"pot"`
	CurrentPlayer  string     `json:"current_player"`
	Round          Round      `json:"round"`
	MinBet         int        `json:"min_bet"`
	MaxBet         int        `json:"max_bet"`
	GameStatus     GameStatus `json:"game_status"`
}
