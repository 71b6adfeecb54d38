package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
)

func newOpenDispute(t *testing.T) *entity.Dispute {
	t.Helper()
	dispute, err := entity.NewDispute(uuid.New(), uuid.New(), uuid.New(), "work not delivered")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dispute
}

func TestNewDisputeValidation(t *testing.T) {
	party := uuid.New()
	if _, err := entity.NewDispute(uuid.New(), party, uuid.New(), ""); err == nil {
		t.Error("expected error for empty reason")
	}
	if _, err := entity.NewDispute(uuid.New(), party, party, "reason"); err == nil {
		t.Error("expected error when opener equals responder")
	}
}

func TestDisputeAssignAndRequestResponse(t *testing.T) {
	dispute := newOpenDispute(t)
	admin := uuid.New()

	if err := dispute.Assign(admin); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if dispute.AssignedAdminID == nil || *dispute.AssignedAdminID != admin {
		t.Error("expected assigned admin to be recorded")
	}

	deadline := time.Now().Add(48 * time.Hour)
	if err := dispute.RequestResponse(&deadline); err != nil {
		t.Fatalf("request response: %v", err)
	}
	if dispute.Status != valueobject.DisputeStatusAwaitingResponse {
		t.Errorf("expected awaiting_response, got %s", dispute.Status)
	}
	if dispute.ResponseDeadline == nil {
		t.Error("expected response deadline to be set")
	}
}

func TestDisputeAcknowledgeClearsDeadline(t *testing.T) {
	dispute := newOpenDispute(t)
	if err := dispute.Assign(uuid.New()); err != nil {
		t.Fatalf("assign: %v", err)
	}
	deadline := time.Now().Add(time.Hour)
	if err := dispute.RequestResponse(&deadline); err != nil {
		t.Fatalf("request response: %v", err)
	}

	if err := dispute.AcknowledgeResponse(); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if dispute.Status != valueobject.DisputeStatusAssigned {
		t.Errorf("expected assigned, got %s", dispute.Status)
	}
	if dispute.ResponseDeadline != nil {
		t.Error("expected deadline to be cleared")
	}
}

func TestDisputeResolveAndClose(t *testing.T) {
	dispute := newOpenDispute(t)
	admin := uuid.New()
	if err := dispute.Assign(admin); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := dispute.Resolve(admin, ""); err == nil {
		t.Error("expected error for empty resolution")
	}
	if err := dispute.Resolve(admin, "refund issued"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dispute.Resolution == nil || *dispute.Resolution != "refund issued" {
		t.Error("expected resolution to be stored")
	}
	if dispute.ResolvedBy == nil || *dispute.ResolvedBy != admin {
		t.Error("expected resolver to be recorded")
	}

	if err := dispute.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if dispute.ClosedAt == nil {
		t.Error("expected closed_at to be set")
	}
}

func TestDisputeEscalateFromAnyActiveStatus(t *testing.T) {
	dispute := newOpenDispute(t)
	if err := dispute.Escalate(); err != nil {
		t.Fatalf("escalate from open: %v", err)
	}
	if dispute.Status != valueobject.DisputeStatusEscalated {
		t.Errorf("expected escalated, got %s", dispute.Status)
	}

	if err := dispute.Close(); err != nil {
		t.Fatalf("close escalated: %v", err)
	}
	if err := dispute.Escalate(); err == nil {
		t.Error("expected error escalating a closed dispute")
	}
}

func TestDisputeDeadlineBreached(t *testing.T) {
	dispute := newOpenDispute(t)
	if err := dispute.Assign(uuid.New()); err != nil {
		t.Fatalf("assign: %v", err)
	}
	deadline := time.Now().Add(-time.Minute)
	if err := dispute.RequestResponse(&deadline); err != nil {
		t.Fatalf("request response: %v", err)
	}

	if !dispute.DeadlineBreached(time.Now()) {
		t.Error("expected deadline to be breached")
	}
	if dispute.DeadlineBreached(deadline.Add(-time.Hour)) {
		t.Error("deadline should not be breached before it passes")
	}
}

func TestDisputeMessagesAfterClose(t *testing.T) {
	dispute := newOpenDispute(t)
	if err := dispute.Escalate(); err != nil {
		t.Fatalf("escalate: %v", err)
	}
	if err := dispute.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := dispute.AppendMessage(dispute.OpenerID, "hello", valueobject.VisibilityParty); err == nil {
		t.Error("expected error appending message to a closed dispute")
	}
	if _, err := dispute.AppendMessage(uuid.New(), "note", valueobject.VisibilityInternal); err == nil {
		t.Error("expected error appending internal note to a closed dispute")
	}
}

func TestDisputeInternalNoteOnResolved(t *testing.T) {
	dispute := newOpenDispute(t)
	admin := uuid.New()
	if err := dispute.Assign(admin); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := dispute.Resolve(admin, "settled"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Party messages stop at resolution, admin notes continue until close.
	if _, err := dispute.AppendMessage(dispute.OpenerID, "but wait", valueobject.VisibilityParty); err == nil {
		t.Error("expected error for party message on resolved dispute")
	}
	if _, err := dispute.AppendMessage(admin, "follow-up note", valueobject.VisibilityInternal); err != nil {
		t.Errorf("unexpected error for internal note: %v", err)
	}
}

func TestDisputeEvidenceOnlyWhileActive(t *testing.T) {
	dispute := newOpenDispute(t)
	if _, err := dispute.AttachEvidence(dispute.OpenerID, "contract.pdf", "/x/contract.pdf", "application/pdf"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	admin := uuid.New()
	if err := dispute.Assign(admin); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := dispute.Resolve(admin, "settled"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if _, err := dispute.AttachEvidence(dispute.OpenerID, "late.pdf", "/x/late.pdf", "application/pdf"); err == nil {
		t.Error("expected error attaching evidence to a resolved dispute")
	}
}

func TestDisputeVisibleMessages(t *testing.T) {
	dispute := newOpenDispute(t)
	admin := uuid.New()

	if _, err := dispute.AppendMessage(dispute.OpenerID, "party message", valueobject.VisibilityParty); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := dispute.AppendMessage(admin, "internal note", valueobject.VisibilityInternal); err != nil {
		t.Fatalf("append internal: %v", err)
	}

	party := valueobject.Actor{ID: dispute.OpenerID, Role: valueobject.RoleClient}
	if got := len(dispute.VisibleMessages(party)); got != 1 {
		t.Errorf("party should see 1 message, got %d", got)
	}

	adminActor := valueobject.Actor{ID: admin, Role: valueobject.RoleAdmin}
	if got := len(dispute.VisibleMessages(adminActor)); got != 2 {
		t.Errorf("admin should see 2 messages, got %d", got)
	}
}
