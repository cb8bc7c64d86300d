package engine

import (
	"errors"
	"reflect"
	"testing"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(DefaultTableConfig())
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return table
}

func TestNewTable(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		table := newTestTable(t)
		snap := table.Snapshot()

		if len(snap.Players) != 2 {
			t.Fatalf("Expected 2 players, got %d", len(snap.Players))
		}
		if snap.GameStatus != StatusActive {
			t.Errorf("Expected status %q, got %q", StatusActive, snap.GameStatus)
		}
		if snap.CurrentPlayer != "p1" {
			t.Errorf("Expected p1 to act first, got %q", snap.CurrentPlayer)
		}
		if snap.Round != RoundPreflop {
			t.Errorf("Expected preflop round, got %q", snap.Round)
		}
		for _, p := range snap.Players {
			if p.ChipStack != DefaultStartingStack {
				t.Errorf("Player %s: expected stack %d, got %d", p.PlayerID, DefaultStartingStack, p.ChipStack)
			}
			if !p.IsActive {
				t.Errorf("Player %s should start active", p.PlayerID)
			}
		}
		if snap.Players[0].Position != PositionButton {
			t.Errorf("Expected seat 0 on the button, got %q", snap.Players[0].Position)
		}
		if snap.Players[1].Position != PositionBigBlind {
			t.Errorf("Expected seat 1 in the big blind, got %q", snap.Players[1].Position)
		}
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		table, err := NewTable(nil)
		if err != nil {
			t.Fatalf("Failed to create table with nil config: %v", err)
		}
		if table.Config().StartingStack != DefaultStartingStack {
			t.Errorf("Expected default stack, got %d", table.Config().StartingStack)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultTableConfig()
		cfg.Seats = 1
		if _, err := NewTable(cfg); err == nil {
			t.Error("Expected error for single-seat config")
		}
	})
}

func TestValidateTableConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TableConfig)
	}{
		{"empty name", func(c *TableConfig) { c.Name = "" }},
		{"too few seats", func(c *TableConfig) { c.Seats = 1 }},
		{"too many seats", func(c *TableConfig) { c.Seats = 10 }},
		{"zero stack", func(c *TableConfig) { c.StartingStack = 0 }},
		{"zero min bet", func(c *TableConfig) { c.MinBet = 0 }},
		{"max below min", func(c *TableConfig) { c.MaxBet = 10 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTableConfig()
			tc.mutate(cfg)
			if err := ValidateTableConfig(cfg); err == nil {
				t.Error("Expected validation error")
			}
		})
	}

	if err := ValidateTableConfig(DefaultTableConfig()); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestApplyAction_TurnEnforcement(t *testing.T) {
	table := newTestTable(t)

	_, err := table.ApplyAction("p2", ActionCheck, 0)
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("Expected ErrNotYourTurn, got %v", err)
	}

	// State must be unchanged after the rejection.
	snap := table.Snapshot()
	if snap.CurrentPlayer != "p1" {
		t.Errorf("Turn owner changed after rejected action: %q", snap.CurrentPlayer)
	}
	if snap.Pot != 0 {
		t.Errorf("Pot changed after rejected action: %d", snap.Pot)
	}
}

func TestApplyAction_UnknownAction(t *testing.T) {
	table := newTestTable(t)

	_, err := table.ApplyAction("p1", Action("allin"), 0)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("Expected ErrUnknownAction, got %v", err)
	}
	if table.Snapshot().CurrentPlayer != "p1" {
		t.Error("Turn owner changed after unknown action")
	}
}

func TestApplyAction_Check(t *testing.T) {
	table := newTestTable(t)

	snap, err := table.ApplyAction("p1", ActionCheck, 0)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if snap.CurrentPlayer != "p2" {
		t.Errorf("Expected turn to pass to p2, got %q", snap.CurrentPlayer)
	}
	if snap.Pot != 0 {
		t.Errorf("Check should not move chips, pot is %d", snap.Pot)
	}
}

func TestApplyAction_Call(t *testing.T) {
	t.Run("deducts min bet", func(t *testing.T) {
		table := newTestTable(t)

		snap, err := table.ApplyAction("p1", ActionCall, 0)
		if err != nil {
			t.Fatalf("Call failed: %v", err)
		}
		if snap.Players[0].ChipStack != DefaultStartingStack-DefaultMinBet {
			t.Errorf("Expected stack %d, got %d", DefaultStartingStack-DefaultMinBet, snap.Players[0].ChipStack)
		}
		if snap.Pot != DefaultMinBet {
			t.Errorf("Expected pot %d, got %d", DefaultMinBet, snap.Pot)
		}
		if snap.CurrentPlayer != "p2" {
			t.Errorf("Expected turn to pass to p2, got %q", snap.CurrentPlayer)
		}
	})

	t.Run("short stack goes all-in, never negative", func(t *testing.T) {
		cfg := DefaultTableConfig()
		cfg.StartingStack = 30 // below min bet of 50
		table, err := NewTable(cfg)
		if err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}

		snap, err := table.ApplyAction("p1", ActionCall, 0)
		if err != nil {
			t.Fatalf("Call failed: %v", err)
		}
		if snap.Players[0].ChipStack != 0 {
			t.Errorf("Expected empty stack, got %d", snap.Players[0].ChipStack)
		}
		if !snap.Players[0].IsAllIn {
			t.Error("Expected player to be all-in")
		}
		if snap.Pot != 30 {
			t.Errorf("Expected pot 30, got %d", snap.Pot)
		}
	})
}

func TestApplyAction_Raise(t *testing.T) {
	t.Run("raise within bounds", func(t *testing.T) {
		table := newTestTable(t)

		snap, err := table.ApplyAction("p1", ActionRaise, 100)
		if err != nil {
			t.Fatalf("Raise failed: %v", err)
		}
		if snap.Players[0].ChipStack != 1400 {
			t.Errorf("Expected stack 1400, got %d", snap.Players[0].ChipStack)
		}
		if snap.Pot != 100 {
			t.Errorf("Expected pot 100, got %d", snap.Pot)
		}
		if snap.CurrentPlayer != "p2" {
			t.Errorf("Expected turn to pass to p2, got %q", snap.CurrentPlayer)
		}
	})

	t.Run("raise above stack clamps to all-in", func(t *testing.T) {
		table := newTestTable(t)

		snap, err := table.ApplyAction("p1", ActionRaise, 5000)
		if err != nil {
			t.Fatalf("Raise failed: %v", err)
		}
		if snap.Players[0].ChipStack != 0 {
			t.Errorf("Expected empty stack, got %d", snap.Players[0].ChipStack)
		}
		if !snap.Players[0].IsAllIn {
			t.Error("Expected player to be all-in")
		}
		if snap.Pot != 1500 {
			t.Errorf("Expected pot 1500, got %d", snap.Pot)
		}
	})

	t.Run("raise below min bet clamps up", func(t *testing.T) {
		table := newTestTable(t)

		snap, err := table.ApplyAction("p1", ActionRaise, 10)
		if err != nil {
			t.Fatalf("Raise failed: %v", err)
		}
		if snap.Pot != DefaultMinBet {
			t.Errorf("Expected pot clamped to %d, got %d", DefaultMinBet, snap.Pot)
		}
	})

	t.Run("short stack raise caps at stack", func(t *testing.T) {
		cfg := DefaultTableConfig()
		cfg.StartingStack = 20 // below min bet
		table, err := NewTable(cfg)
		if err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}

		snap, err := table.ApplyAction("p1", ActionRaise, 10)
		if err != nil {
			t.Fatalf("Raise failed: %v", err)
		}
		if snap.Players[0].ChipStack != 0 {
			t.Errorf("Expected empty stack, got %d", snap.Players[0].ChipStack)
		}
		if snap.Pot != 20 {
			t.Errorf("Expected pot 20, got %d", snap.Pot)
		}
	})
}

func TestApplyAction_Fold(t *testing.T) {
	table := newTestTable(t)

	snap, err := table.ApplyAction("p1", ActionFold, 0)
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	if !snap.Players[0].IsFolded {
		t.Error("Expected p1 to be folded")
	}
	if snap.Players[0].IsActive {
		t.Error("Folded player should not be active")
	}

	// Heads-up fold leaves one player: hand is over.
	if snap.GameStatus != StatusFinished {
		t.Errorf("Expected finished status, got %q", snap.GameStatus)
	}
	if snap.Round != RoundShowdown {
		t.Errorf("Expected showdown round, got %q", snap.Round)
	}
	if snap.CurrentPlayer != "" {
		t.Errorf("Expected no turn owner after the hand, got %q", snap.CurrentPlayer)
	}

	// No further actions are accepted.
	if _, err := table.ApplyAction("p2", ActionCheck, 0); !errors.Is(err, ErrGameNotActive) {
		t.Errorf("Expected ErrGameNotActive, got %v", err)
	}
}

func TestApplyAction_PotConservation(t *testing.T) {
	table := newTestTable(t)

	actions := []struct {
		player string
		action Action
		amount int
	}{
		{"p1", ActionRaise, 100},
		{"p2", ActionCall, 0},
		{"p1", ActionCall, 0},
		{"p2", ActionRaise, 200},
	}

	for _, a := range actions {
		before := table.Snapshot()
		var stackBefore int
		for _, p := range before.Players {
			if p.PlayerID == a.player {
				stackBefore = p.ChipStack
			}
		}

		after, err := table.ApplyAction(a.player, a.action, a.amount)
		if err != nil {
			t.Fatalf("%s %s failed: %v", a.player, a.action, err)
		}

		var stackAfter int
		for _, p := range after.Players {
			if p.PlayerID == a.player {
				stackAfter = p.ChipStack
			}
		}

		if after.Pot-before.Pot != stackBefore-stackAfter {
			t.Errorf("%s %s: pot moved %d but stack moved %d",
				a.player, a.action, after.Pot-before.Pot, stackBefore-stackAfter)
		}
	}
}

func TestApplyAction_TurnAlternation(t *testing.T) {
	table := newTestTable(t)

	actor := "p1"
	for i := 0; i < 6; i++ {
		snap, err := table.ApplyAction(actor, ActionCheck, 0)
		if err != nil {
			t.Fatalf("Check %d failed: %v", i, err)
		}
		if snap.CurrentPlayer == actor {
			t.Fatalf("Turn did not alternate away from %s", actor)
		}
		actor = snap.CurrentPlayer
	}
}

func TestApplyAction_Determinism(t *testing.T) {
	run := func() *Snapshot {
		table, err := NewTable(DefaultTableConfig())
		if err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
		table.ApplyAction("p1", ActionRaise, 100)
		table.ApplyAction("p2", ActionCall, 0)
		snap, err := table.ApplyAction("p1", ActionCheck, 0)
		if err != nil {
			t.Fatalf("Sequence failed: %v", err)
		}
		return snap
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Identical inputs produced different snapshots:\n%+v\n%+v", first, second)
	}
}

func TestAdvanceTurn_SkipsFoldedAndAllIn(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Seats = 4
	table, err := NewTable(cfg)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	// p1 folds: turn passes to p2.
	snap, err := table.ApplyAction("p1", ActionFold, 0)
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	if snap.CurrentPlayer != "p2" {
		t.Fatalf("Expected p2 to act, got %q", snap.CurrentPlayer)
	}

	// p2 goes all-in: turn passes to p3.
	snap, err = table.ApplyAction("p2", ActionRaise, cfg.StartingStack)
	if err != nil {
		t.Fatalf("All-in raise failed: %v", err)
	}
	if snap.CurrentPlayer != "p3" {
		t.Fatalf("Expected p3 to act, got %q", snap.CurrentPlayer)
	}

	// p3 checks: p4 acts, and the wrap after p4 must skip the folded
	// p1 and the all-in p2 back to p3.
	snap, err = table.ApplyAction("p3", ActionCheck, 0)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if snap.CurrentPlayer != "p4" {
		t.Fatalf("Expected p4 to act, got %q", snap.CurrentPlayer)
	}

	snap, err = table.ApplyAction("p4", ActionCheck, 0)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if snap.CurrentPlayer != "p3" {
		t.Errorf("Expected wrap back to p3, got %q", snap.CurrentPlayer)
	}
}

func TestSnapshot_Isolation(t *testing.T) {
	table := newTestTable(t)

	snap := table.Snapshot()
	snap.Players[0].ChipStack = 0
	snap.Pot = 9999

	fresh := table.Snapshot()
	if fresh.Players[0].ChipStack != DefaultStartingStack {
		t.Error("Mutating a snapshot leaked into table state")
	}
	if fresh.Pot != 0 {
		t.Error("Mutating a snapshot leaked into the pot")
	}
}
