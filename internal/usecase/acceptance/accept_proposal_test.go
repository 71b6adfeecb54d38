package acceptance_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/usecase/acceptance"
)

// fakeAcceptanceStore serializes acceptance attempts with a mutex, the way
// the real store serializes them with a row lock. Writes are buffered and
// applied only when fn succeeds, so a failed attempt leaves no traces.
type fakeAcceptanceStore struct {
	mu        sync.Mutex
	projects  map[uuid.UUID]*entity.Project
	proposals map[uuid.UUID]*entity.Proposal
}

func newFakeAcceptanceStore() *fakeAcceptanceStore {
	return &fakeAcceptanceStore{
		projects:  make(map[uuid.UUID]*entity.Project),
		proposals: make(map[uuid.UUID]*entity.Proposal),
	}
}

func (s *fakeAcceptanceStore) WithProjectLock(ctx context.Context, projectID uuid.UUID, fn func(tx repository.AcceptanceTx, project *entity.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.projects[projectID]
	if !ok {
		return apperror.ErrProjectNotFound
	}

	// The use case receives a fresh read, like a SELECT ... FOR UPDATE.
	working := *stored
	tx := &fakeAcceptanceTx{store: s}

	if err := fn(tx, &working); err != nil {
		return err
	}

	for _, p := range tx.proposalWrites {
		copied := *p
		s.proposals[p.ID] = &copied
	}
	if tx.projectWrite != nil {
		*stored = *tx.projectWrite
	}
	return nil
}

type fakeAcceptanceTx struct {
	store          *fakeAcceptanceStore
	projectWrite   *entity.Project
	proposalWrites []*entity.Proposal
}

func (tx *fakeAcceptanceTx) LiveProposals(ctx context.Context, projectID uuid.UUID) ([]*entity.Proposal, error) {
	var result []*entity.Proposal
	for _, p := range tx.store.proposals {
		if p.ProjectID == projectID && p.IsLive() {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (tx *fakeAcceptanceTx) UpdateProject(ctx context.Context, project *entity.Project) error {
	tx.projectWrite = project
	return nil
}

func (tx *fakeAcceptanceTx) UpdateProposal(ctx context.Context, proposal *entity.Proposal) error {
	tx.proposalWrites = append(tx.proposalWrites, proposal)
	return nil
}

// projectReader adapts the fake store to the ProjectRepository reads used by
// the preliminary ownership check.
type projectReader struct {
	store *fakeAcceptanceStore
}

func (r *projectReader) Create(ctx context.Context, p *entity.Project) error {
	r.store.projects[p.ID] = p
	return nil
}

func (r *projectReader) Update(ctx context.Context, p *entity.Project, expectedStatus string) error {
	r.store.projects[p.ID] = p
	return nil
}

func (r *projectReader) SoftDelete(ctx context.Context, id, clientID uuid.UUID) error {
	delete(r.store.projects, id)
	return nil
}

func (r *projectReader) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperror.ErrProjectNotFound
}

func (r *projectReader) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Project, error) {
	return nil, nil
}

func (r *projectReader) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int, error) {
	return nil, 0, nil
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []event.Event
}

func (e *recordingEmitter) Emit(ctx context.Context, ev event.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *recordingEmitter) byType(t event.Type) []event.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var result []event.Event
	for _, ev := range e.events {
		if ev.Type == t {
			result = append(result, ev)
		}
	}
	return result
}

type fixture struct {
	store   *fakeAcceptanceStore
	emitter *recordingEmitter
	uc      *acceptance.AcceptProposalUseCase
	owner   valueobject.Actor
	project *entity.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeAcceptanceStore()
	emitter := &recordingEmitter{}
	reader := &projectReader{store: store}
	uc := acceptance.NewAcceptProposalUseCase(store, reader, emitter)

	owner := valueobject.Actor{ID: uuid.New(), Role: valueobject.RoleClient}
	project, err := entity.NewProject(owner.ID, "Substation design review", "Review electrical drawings", "electrical", 1000, 10000, nil)
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	if err := project.Publish(); err != nil {
		t.Fatalf("publish: %v", err)
	}
	store.projects[project.ID] = project

	return &fixture{store: store, emitter: emitter, uc: uc, owner: owner, project: project}
}

func (f *fixture) addSubmittedProposal(t *testing.T) *entity.Proposal {
	t.Helper()
	p, err := entity.NewProposal(f.project.ID, uuid.New(), "ready to start", 2000, 21, nil)
	if err != nil {
		t.Fatalf("new proposal: %v", err)
	}
	if err := p.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.store.proposals[p.ID] = p
	return p
}

func TestAcceptProposalUseCase_Success(t *testing.T) {
	f := newFixture(t)
	winner := f.addSubmittedProposal(t)
	loserA := f.addSubmittedProposal(t)
	loserB := f.addSubmittedProposal(t)

	result, err := f.uc.Execute(context.Background(), acceptance.AcceptProposalInput{
		Actor:      f.owner,
		ProjectID:  f.project.ID,
		ProposalID: winner.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Accepted.ID != winner.ID {
		t.Errorf("expected %s accepted, got %s", winner.ID, result.Accepted.ID)
	}
	if result.Project.Status != valueobject.ProjectStatusInProgress {
		t.Errorf("expected project in_progress, got %s", result.Project.Status)
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("expected 2 rejected proposals, got %d", len(result.Rejected))
	}

	// Persisted state matches the result.
	if f.store.proposals[winner.ID].Status != valueobject.ProposalStatusAccepted {
		t.Error("expected winner to be persisted as accepted")
	}
	for _, id := range []uuid.UUID{loserA.ID, loserB.ID} {
		stored := f.store.proposals[id]
		if stored.Status != valueobject.ProposalStatusRejected {
			t.Errorf("expected loser %s to be rejected, got %s", id, stored.Status)
		}
		if stored.RejectionReason == nil || *stored.RejectionReason == "" {
			t.Errorf("expected loser %s to carry a rejection reason", id)
		}
	}

	if got := len(f.emitter.byType(event.TypeProposalAccepted)); got != 1 {
		t.Errorf("expected 1 accepted event, got %d", got)
	}
	if got := len(f.emitter.byType(event.TypeProposalRejected)); got != 2 {
		t.Errorf("expected 2 rejected events, got %d", got)
	}
}

func TestAcceptProposalUseCase_NotOwner(t *testing.T) {
	f := newFixture(t)
	target := f.addSubmittedProposal(t)

	stranger := valueobject.Actor{ID: uuid.New(), Role: valueobject.RoleClient}
	_, err := f.uc.Execute(context.Background(), acceptance.AcceptProposalInput{
		Actor:      stranger,
		ProjectID:  f.project.ID,
		ProposalID: target.ID,
	})
	if !apperror.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAcceptProposalUseCase_ProjectNotOpen(t *testing.T) {
	f := newFixture(t)
	target := f.addSubmittedProposal(t)

	if err := f.project.StartWork(); err != nil {
		t.Fatalf("start work: %v", err)
	}

	// A late accept call observes "already accepted" as a conflict, so the
	// caller can distinguish a lost race from a broken request.
	_, err := f.uc.Execute(context.Background(), acceptance.AcceptProposalInput{
		Actor:      f.owner,
		ProjectID:  f.project.ID,
		ProposalID: target.ID,
	})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAcceptProposalUseCase_WithdrawnTarget(t *testing.T) {
	f := newFixture(t)
	target := f.addSubmittedProposal(t)
	if err := target.Withdraw(); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	_, err := f.uc.Execute(context.Background(), acceptance.AcceptProposalInput{
		Actor:      f.owner,
		ProjectID:  f.project.ID,
		ProposalID: target.ID,
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found for withdrawn target, got %v", err)
	}
}

func TestAcceptProposalUseCase_FailedAttemptLeavesNoTraces(t *testing.T) {
	f := newFixture(t)
	target := f.addSubmittedProposal(t)
	other := f.addSubmittedProposal(t)
	if err := other.Withdraw(); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// Accepting an unknown proposal fails inside the transaction.
	_, err := f.uc.Execute(context.Background(), acceptance.AcceptProposalInput{
		Actor:      f.owner,
		ProjectID:  f.project.ID,
		ProposalID: uuid.New(),
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if f.store.projects[f.project.ID].Status != valueobject.ProjectStatusOpen {
		t.Error("failed acceptance must not change project status")
	}
	if f.store.proposals[target.ID].Status != valueobject.ProposalStatusSubmitted {
		t.Error("failed acceptance must not touch other proposals")
	}
}

func TestAcceptProposalUseCase_ConcurrentAcceptsExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	first := f.addSubmittedProposal(t)
	second := f.addSubmittedProposal(t)

	type attempt struct {
		result *acceptance.AcceptProposalResult
		err    error
	}
	results := make([]attempt, 2)

	var wg sync.WaitGroup
	for i, target := range []uuid.UUID{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, proposalID uuid.UUID) {
			defer wg.Done()
			res, err := f.uc.Execute(context.Background(), acceptance.AcceptProposalInput{
				Actor:      f.owner,
				ProjectID:  f.project.ID,
				ProposalID: proposalID,
			})
			results[i] = attempt{result: res, err: err}
		}(i, target)
	}
	wg.Wait()

	var wins, losses int
	for _, a := range results {
		if a.err == nil {
			wins++
			continue
		}
		losses++
		if !apperror.IsConflict(a.err) {
			t.Errorf("loser should fail with conflict (project no longer open), got %v", a.err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner, got %d wins and %d losses", wins, losses)
	}

	// Exactly one accepted proposal is persisted either way.
	accepted := 0
	for _, p := range f.store.proposals {
		if p.IsAccepted() {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("expected exactly one accepted proposal, got %d", accepted)
	}
	if f.store.projects[f.project.ID].Status != valueobject.ProjectStatusInProgress {
		t.Error("expected project to end up in_progress")
	}
}
