package service

import (
	"errors"
	"math"
	"testing"
)

func TestAwardXPAccumulates(t *testing.T) {
	stack := newQuestStack(t)

	if err := stack.progress.AwardXP(stack.db, 1, 300); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if err := stack.progress.AwardXP(stack.db, 1, 450); err != nil {
		t.Fatalf("second award failed: %v", err)
	}

	progress, err := stack.progress.GetProgress(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if progress.TotalXP != 750 {
		t.Fatalf("expected 750 total xp, got %d", progress.TotalXP)
	}
	if progress.Level != 1 {
		t.Fatalf("expected level 1 below 1000 xp, got %d", progress.Level)
	}
}

func TestAwardXPAdvancesLevel(t *testing.T) {
	stack := newQuestStack(t)

	if err := stack.progress.AwardXP(stack.db, 1, 2100); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	progress, err := stack.progress.GetProgress(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if progress.Level != 3 {
		t.Fatalf("expected level 3 at 2100 xp, got %d", progress.Level)
	}
}

func TestAwardXPRejectsOversizedAmount(t *testing.T) {
	stack := newQuestStack(t)

	err := stack.progress.AwardXP(stack.db, 1, math.MaxUint32)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	progress, err := stack.progress.GetProgress(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if progress.TotalXP != 0 {
		t.Fatalf("rejected award still credited %d xp", progress.TotalXP)
	}
}

func TestGetProgressDefaultsForNewUser(t *testing.T) {
	stack := newQuestStack(t)

	progress, err := stack.progress.GetProgress(404)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if progress.TotalXP != 0 || progress.Level != 1 {
		t.Fatalf("expected fresh ledger state, got %+v", progress)
	}
}

func TestAwardZeroXPIsValid(t *testing.T) {
	stack := newQuestStack(t)

	if err := stack.progress.AwardXP(stack.db, 1, 0); err != nil {
		t.Fatalf("zero award failed: %v", err)
	}
	progress, err := stack.progress.GetProgress(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if progress.TotalXP != 0 {
		t.Fatalf("expected 0 xp, got %d", progress.TotalXP)
	}
}
