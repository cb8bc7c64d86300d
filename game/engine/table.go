package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrUnknownAction = errors.New("unknown action")
	ErrGameNotActive = errors.New("game is not active")
)

// Table owns one table's authoritative game state. It is pure state
// transition logic: no sessions, no transport, no locks. Callers are
// responsible for serializing access.
type Table struct {
	state  TableState
	config *TableConfig
}

// NewTable creates a table from the provided configuration and seats
// players p1..pN in fixed order. Seat 0 holds the button, seat 1 the
// big blind. The table starts active with seat 0 to act.
func NewTable(config *TableConfig) (*Table, error) {
	if config == nil {
		config = DefaultTableConfig()
	}
	if err := ValidateTableConfig(config); err != nil {
		return nil, err
	}

	players := make([]Player, config.Seats)
	for i := range players {
		players[i] = Player{
			ID:        fmt.Sprintf("p%d", i+1),
			ChipStack: config.StartingStack,
			HoleCards: []string{},
			Position:  PositionNone,
		}
	}
	players[0].Position = PositionButton
	players[1].Position = PositionBigBlind

	return &Table{
		config: config,
		state: TableState{
			Players:        players,
			CommunityCards: []string{},
			CurrentPlayer:  players[0].ID,
			Round:          RoundPreflop,
			MinBet:         config.MinBet,
			MaxBet:         config.MaxBet,
			GameStatus:     StatusActive,
		},
	}, nil
}

// Config returns the configuration the table was created from
func (t *Table) Config() *TableConfig {
	return t.config
}

// PlayerIDs returns the seated player ids in seat order
func (t *Table) PlayerIDs() []string {
	ids := make([]string, len(t.state.Players))
	for i, p := range t.state.Players {
		ids[i] = p.ID
	}
	return ids
}

// ApplyAction validates and applies a betting action for the acting
// player, advances the turn, and returns a full snapshot of the
// resulting state. On any error the state is left unchanged.
//
// Amount handling for raise follows the clamp policy: amounts outside
// [MinBet, stack] are clamped rather than rejected, so the applied
// amount is visible to clients in the broadcast snapshot. A call that
// exceeds the player's stack puts the player all-in for the remainder;
// stacks never go negative.
func (t *Table) ApplyAction(playerID string, action Action, amount int) (*Snapshot, error) {
	if t.state.GameStatus != StatusActive {
		return nil, ErrGameNotActive
	}
	if playerID != t.state.CurrentPlayer {
		return nil, fmt.Errorf("%w: %s acted while %s is up", ErrNotYourTurn, playerID, t.state.CurrentPlayer)
	}

	seat := t.seatOf(playerID)
	if seat < 0 {
		// CurrentPlayer always names a seated player; guard anyway.
		return nil, fmt.Errorf("%w: %s is not seated", ErrNotYourTurn, playerID)
	}
	player := &t.state.Players[seat]

	switch action {
	case ActionFold:
		player.IsFolded = true

	case ActionCheck:
		// No chip movement.

	case ActionCall:
		amt := t.state.MinBet
		if amt >= player.ChipStack {
			amt = player.ChipStack
			player.IsAllIn = true
		}
		player.ChipStack -= amt
		player.CurrentBet += amt
		t.state.Pot += amt

	case ActionRaise:
		amt := amount
		if amt < t.state.MinBet {
			amt = t.state.MinBet
		}
		// The stack caps the raise even when it is below MinBet.
		if amt >= player.ChipStack {
			amt = player.ChipStack
			player.IsAllIn = true
		}
		player.ChipStack -= amt
		player.CurrentBet += amt
		t.state.Pot += amt

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	t.advanceTurn(seat)
	return t.Snapshot(), nil
}

// advanceTurn moves CurrentPlayer to the next seat that can act,
// skipping folded and all-in seats and wrapping around. When fewer
// than two non-folded seats remain, or nobody can act, the hand is
// over: the round moves to showdown and the table finishes.
func (t *Table) advanceTurn(from int) {
	nonFolded := 0
	for _, p := range t.state.Players {
		if !p.IsFolded {
			nonFolded++
		}
	}
	if nonFolded <= 1 {
		t.finish()
		return
	}

	n := len(t.state.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		p := &t.state.Players[i]
		if p.IsFolded || p.IsAllIn {
			continue
		}
		t.state.CurrentPlayer = p.ID
		return
	}

	// Everyone left is all-in; nothing more to act on.
	t.finish()
}

func (t *Table) finish() {
	t.state.Round = RoundShowdown
	t.state.GameStatus = StatusFinished
	t.state.CurrentPlayer = ""
}

func (t *Table) seatOf(playerID string) int {
	for i, p := range t.state.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
