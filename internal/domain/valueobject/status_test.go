package valueobject_test

import (
	"testing"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
)

func TestProjectStatusTransitions(t *testing.T) {
	cases := []struct {
		from    valueobject.ProjectStatus
		to      valueobject.ProjectStatus
		allowed bool
	}{
		{valueobject.ProjectStatusDraft, valueobject.ProjectStatusOpen, true},
		{valueobject.ProjectStatusDraft, valueobject.ProjectStatusCancelled, true},
		{valueobject.ProjectStatusDraft, valueobject.ProjectStatusInProgress, false},
		{valueobject.ProjectStatusDraft, valueobject.ProjectStatusCompleted, false},
		{valueobject.ProjectStatusOpen, valueobject.ProjectStatusInProgress, true},
		{valueobject.ProjectStatusOpen, valueobject.ProjectStatusCancelled, true},
		{valueobject.ProjectStatusOpen, valueobject.ProjectStatusCompleted, false},
		{valueobject.ProjectStatusOpen, valueobject.ProjectStatusDraft, false},
		{valueobject.ProjectStatusInProgress, valueobject.ProjectStatusCompleted, true},
		{valueobject.ProjectStatusInProgress, valueobject.ProjectStatusCancelled, false},
		{valueobject.ProjectStatusCompleted, valueobject.ProjectStatusOpen, false},
		{valueobject.ProjectStatusCancelled, valueobject.ProjectStatusOpen, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestProjectStatusTerminal(t *testing.T) {
	if !valueobject.ProjectStatusCompleted.IsTerminal() {
		t.Error("completed should be terminal")
	}
	if !valueobject.ProjectStatusCancelled.IsTerminal() {
		t.Error("cancelled should be terminal")
	}
	if valueobject.ProjectStatusOpen.IsTerminal() {
		t.Error("open should not be terminal")
	}
}

func TestProposalStatusTransitions(t *testing.T) {
	cases := []struct {
		from    valueobject.ProposalStatus
		to      valueobject.ProposalStatus
		allowed bool
	}{
		{valueobject.ProposalStatusDraft, valueobject.ProposalStatusSubmitted, true},
		{valueobject.ProposalStatusDraft, valueobject.ProposalStatusAccepted, false},
		{valueobject.ProposalStatusSubmitted, valueobject.ProposalStatusUnderReview, true},
		{valueobject.ProposalStatusSubmitted, valueobject.ProposalStatusAccepted, true},
		{valueobject.ProposalStatusSubmitted, valueobject.ProposalStatusRejected, true},
		{valueobject.ProposalStatusSubmitted, valueobject.ProposalStatusWithdrawn, true},
		{valueobject.ProposalStatusUnderReview, valueobject.ProposalStatusAccepted, true},
		{valueobject.ProposalStatusUnderReview, valueobject.ProposalStatusSubmitted, false},
		{valueobject.ProposalStatusAccepted, valueobject.ProposalStatusRejected, false},
		{valueobject.ProposalStatusAccepted, valueobject.ProposalStatusWithdrawn, false},
		{valueobject.ProposalStatusRejected, valueobject.ProposalStatusSubmitted, false},
		{valueobject.ProposalStatusWithdrawn, valueobject.ProposalStatusSubmitted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestProposalStatusIsLive(t *testing.T) {
	live := []valueobject.ProposalStatus{
		valueobject.ProposalStatusDraft,
		valueobject.ProposalStatusSubmitted,
		valueobject.ProposalStatusUnderReview,
		valueobject.ProposalStatusAccepted,
	}
	for _, s := range live {
		if !s.IsLive() {
			t.Errorf("%s should be live", s)
		}
	}

	dead := []valueobject.ProposalStatus{
		valueobject.ProposalStatusRejected,
		valueobject.ProposalStatusWithdrawn,
	}
	for _, s := range dead {
		if s.IsLive() {
			t.Errorf("%s should not be live", s)
		}
	}
}

func TestProposalStatusIsAwaitingDecision(t *testing.T) {
	if !valueobject.ProposalStatusSubmitted.IsAwaitingDecision() {
		t.Error("submitted should await decision")
	}
	if !valueobject.ProposalStatusUnderReview.IsAwaitingDecision() {
		t.Error("under_review should await decision")
	}
	if valueobject.ProposalStatusAccepted.IsAwaitingDecision() {
		t.Error("accepted should not await decision")
	}
	if valueobject.ProposalStatusDraft.IsAwaitingDecision() {
		t.Error("draft should not await decision")
	}
}

func TestDisputeStatusTransitions(t *testing.T) {
	cases := []struct {
		from    valueobject.DisputeStatus
		to      valueobject.DisputeStatus
		allowed bool
	}{
		{valueobject.DisputeStatusOpen, valueobject.DisputeStatusAssigned, true},
		{valueobject.DisputeStatusOpen, valueobject.DisputeStatusEscalated, true},
		{valueobject.DisputeStatusOpen, valueobject.DisputeStatusResolved, false},
		{valueobject.DisputeStatusAssigned, valueobject.DisputeStatusAwaitingResponse, true},
		{valueobject.DisputeStatusAssigned, valueobject.DisputeStatusResolved, true},
		{valueobject.DisputeStatusAssigned, valueobject.DisputeStatusEscalated, true},
		{valueobject.DisputeStatusAwaitingResponse, valueobject.DisputeStatusAssigned, true},
		{valueobject.DisputeStatusAwaitingResponse, valueobject.DisputeStatusResolved, true},
		{valueobject.DisputeStatusAwaitingResponse, valueobject.DisputeStatusEscalated, true},
		{valueobject.DisputeStatusEscalated, valueobject.DisputeStatusResolved, true},
		{valueobject.DisputeStatusEscalated, valueobject.DisputeStatusClosed, true},
		{valueobject.DisputeStatusResolved, valueobject.DisputeStatusClosed, true},
		{valueobject.DisputeStatusResolved, valueobject.DisputeStatusAssigned, false},
		{valueobject.DisputeStatusClosed, valueobject.DisputeStatusResolved, false},
		{valueobject.DisputeStatusClosed, valueobject.DisputeStatusEscalated, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestDisputeStatusIsActive(t *testing.T) {
	active := []valueobject.DisputeStatus{
		valueobject.DisputeStatusOpen,
		valueobject.DisputeStatusAssigned,
		valueobject.DisputeStatusAwaitingResponse,
		valueobject.DisputeStatusEscalated,
	}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s should be active", s)
		}
		if !s.AllowsEvidence() {
			t.Errorf("%s should allow evidence", s)
		}
	}

	inactive := []valueobject.DisputeStatus{
		valueobject.DisputeStatusResolved,
		valueobject.DisputeStatusClosed,
	}
	for _, s := range inactive {
		if s.IsActive() {
			t.Errorf("%s should not be active", s)
		}
		if s.AllowsEvidence() {
			t.Errorf("%s should not allow evidence", s)
		}
	}
}

func TestNewProjectStatusRejectsUnknown(t *testing.T) {
	if _, err := valueobject.NewProjectStatus("archived"); err == nil {
		t.Error("expected error for unknown project status")
	}
	if _, err := valueobject.NewProjectStatus("open"); err != nil {
		t.Errorf("unexpected error for valid status: %v", err)
	}
}
