package valueobject_test

import (
	"testing"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
)

func TestNewBudget(t *testing.T) {
	budget, err := valueobject.NewBudget(100, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if budget.Min.Amount != 100 || budget.Max.Amount != 500 {
		t.Errorf("expected 100-500, got %v-%v", budget.Min.Amount, budget.Max.Amount)
	}
}

func TestNewBudgetMinAboveMax(t *testing.T) {
	if _, err := valueobject.NewBudget(500, 100); err == nil {
		t.Error("expected error when min exceeds max")
	}
}

func TestNewBudgetNegative(t *testing.T) {
	if _, err := valueobject.NewBudget(-1, 100); err == nil {
		t.Error("expected error for negative budget")
	}
}

func TestBudgetIsInRange(t *testing.T) {
	budget, err := valueobject.NewBudget(100, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		amount float64
		in     bool
	}{
		{100, true},
		{500, true},
		{300, true},
		{99.99, false},
		{500.01, false},
	}
	for _, tc := range cases {
		if got := budget.IsInRange(tc.amount); got != tc.in {
			t.Errorf("IsInRange(%v): expected %v, got %v", tc.amount, tc.in, got)
		}
	}
}
