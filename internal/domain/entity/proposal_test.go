package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
)

func newSubmittedProposal(t *testing.T) *entity.Proposal {
	t.Helper()
	proposal, err := entity.NewProposal(uuid.New(), uuid.New(), "I can do this", 1500, 14, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := proposal.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return proposal
}

func TestNewProposalValidation(t *testing.T) {
	if _, err := entity.NewProposal(uuid.New(), uuid.New(), "", 100, 7, nil); err == nil {
		t.Error("expected error for empty cover letter")
	}
	if _, err := entity.NewProposal(uuid.New(), uuid.New(), "letter", 0, 7, nil); err == nil {
		t.Error("expected error for non-positive amount")
	}
	if _, err := entity.NewProposal(uuid.New(), uuid.New(), "letter", 100, 0, nil); err == nil {
		t.Error("expected error for non-positive duration")
	}

	past := time.Now().Add(-time.Hour)
	if _, err := entity.NewProposal(uuid.New(), uuid.New(), "letter", 100, 7, &past); err == nil {
		t.Error("expected error for past delivery date")
	}
}

func TestProposalSubmit(t *testing.T) {
	proposal := newSubmittedProposal(t)
	if proposal.Status != valueobject.ProposalStatusSubmitted {
		t.Errorf("expected submitted, got %s", proposal.Status)
	}
	if proposal.SubmittedAt == nil {
		t.Error("expected submitted_at to be set")
	}
	if err := proposal.Submit(); err == nil {
		t.Error("expected error on double submit")
	}
}

func TestProposalAcceptSetsReviewedAt(t *testing.T) {
	proposal := newSubmittedProposal(t)
	if err := proposal.Accept(); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if proposal.Status != valueobject.ProposalStatusAccepted {
		t.Errorf("expected accepted, got %s", proposal.Status)
	}
	if proposal.ReviewedAt == nil {
		t.Error("expected reviewed_at to be set")
	}
}

func TestProposalRejectKeepsReason(t *testing.T) {
	proposal := newSubmittedProposal(t)
	if err := proposal.Reject("budget mismatch"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if proposal.RejectionReason == nil || *proposal.RejectionReason != "budget mismatch" {
		t.Error("expected rejection reason to be stored")
	}
	if proposal.IsLive() {
		t.Error("rejected proposal should not be live")
	}
}

func TestProposalAcceptedIsFinal(t *testing.T) {
	proposal := newSubmittedProposal(t)
	if err := proposal.Accept(); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := proposal.Withdraw(); err == nil {
		t.Error("expected error withdrawing an accepted proposal")
	}
	if err := proposal.Reject("late"); err == nil {
		t.Error("expected error rejecting an accepted proposal")
	}
}

func TestProposalWithdrawFromUnderReview(t *testing.T) {
	proposal := newSubmittedProposal(t)
	if err := proposal.MarkUnderReview(); err != nil {
		t.Fatalf("mark under review: %v", err)
	}
	if err := proposal.Withdraw(); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if proposal.IsLive() {
		t.Error("withdrawn proposal should not be live")
	}
}
