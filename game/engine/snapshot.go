package engine

// PlayerSnapshot is the wire representation of a seated player.
// IsActive is derived as the negation of IsFolded.
type PlayerSnapshot struct {
	PlayerID      string   `json:"player_id"`
	ChipStack     int      `json:"chip_stack"`
	HoleCards     []string `json:"hole_cards"`
	CurrentBet    int      `json:"current_bet"`
	IsActive      bool     `json:"is_active"`
	IsFolded      bool     `json:"is_folded"`
	IsAllIn       bool     `json:"is_all_in"`
	Position      Position `json:"position"`
	TimeRemaining int      `json:"time_remaining"`
}

// Snapshot is an immutable, fully-populated copy of table state
// emitted after every successful action. The table never emits
// partial diffs.
type Snapshot struct {
	Players        []PlayerSnapshot `json:"players"`
	CommunityCards []string         `json:"community_cards"`
	Pot            int              `json:"pot"`
	CurrentPlayer  string           `json:"current_player"`
	TimeRemaining  int              `json:"time_remaining"`
	Round          Round            `json:"round"`
	MinBet         int              `json:"min_bet"`
	MaxBet         int              `json:"max_bet"`
	GameStatus     GameStatus       `json:"game_status"`
}

// Snapshot returns a deep copy of the current state suitable for
// serialization and broadcast. It does not mutate the table.
func (t *Table) Snapshot() *Snapshot {
	players := make([]PlayerSnapshot, len(t.state.Players))
	for i, p := range t.state.Players {
		cards := make([]string, len(p.HoleCards))
		copy(cards, p.HoleCards)
		players[i] = PlayerSnapshot{
			PlayerID:      p.ID,
			ChipStack:     p.ChipStack,
			HoleCards:     cards,
			CurrentBet:    p.CurrentBet,
			IsActive:      !p.IsFolded,
			IsFolded:      p.IsFolded,
			IsAllIn:       p.IsAllIn,
			Position:      p.Position,
			TimeRemaining: TurnTimeMillis,
		}
	}

	community := make([]string, len(t.state.CommunityCards))
	copy(community, t.state.CommunityCards)

	return &Snapshot{
		Players:        players,
		CommunityCards: community,
		Pot:            t.state.Pot,
		CurrentPlayer:  t.state.CurrentPlayer,
		TimeRemaining:  TurnTimeMillis,
		Round:          t.state.Round,
		MinBet:         t.state.MinBet,
		MaxBet:         t.state.MaxBet,
		GameStatus:     t.state.GameStatus,
	}
}
