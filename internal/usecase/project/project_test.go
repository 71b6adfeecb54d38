package project_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/usecase/project"
)

type mockProjectRepository struct {
	projects map[uuid.UUID]*entity.Project
	// statuses tracks the last persisted status to enforce the
	// expectedStatus precondition of Update.
	statuses map[uuid.UUID]string
	deleted  map[uuid.UUID]bool
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[uuid.UUID]*entity.Project),
		statuses: make(map[uuid.UUID]string),
		deleted:  make(map[uuid.UUID]bool),
	}
}

func (m *mockProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	m.projects[p.ID] = p
	m.statuses[p.ID] = string(p.Status)
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *entity.Project, expectedStatus string) error {
	if _, ok := m.projects[p.ID]; !ok {
		return apperror.ErrProjectNotFound
	}
	if m.statuses[p.ID] != expectedStatus {
		return apperror.New(apperror.ErrCodeConflict, "status changed by another operation")
	}
	m.projects[p.ID] = p
	m.statuses[p.ID] = string(p.Status)
	return nil
}

func (m *mockProjectRepository) SoftDelete(ctx context.Context, id, clientID uuid.UUID) error {
	if _, ok := m.projects[id]; !ok {
		return apperror.ErrProjectNotFound
	}
	m.deleted[id] = true
	return nil
}

func (m *mockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	if p, ok := m.projects[id]; ok && !m.deleted[id] {
		return p, nil
	}
	return nil, apperror.ErrProjectNotFound
}

func (m *mockProjectRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Project, error) {
	var result []*entity.Project
	for id, p := range m.projects {
		if p.ClientID == clientID && !m.deleted[id] {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProjectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int, error) {
	var result []*entity.Project
	for id, p := range m.projects {
		if !m.deleted[id] {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

type mockProposalRepository struct {
	proposals map[uuid.UUID]*entity.Proposal
	statuses  map[uuid.UUID]string
}

func newMockProposalRepository() *mockProposalRepository {
	return &mockProposalRepository{
		proposals: make(map[uuid.UUID]*entity.Proposal),
		statuses:  make(map[uuid.UUID]string),
	}
}

func (m *mockProposalRepository) Create(ctx context.Context, p *entity.Proposal) error {
	m.proposals[p.ID] = p
	m.statuses[p.ID] = string(p.Status)
	return nil
}

func (m *mockProposalRepository) Update(ctx context.Context, p *entity.Proposal, expectedStatus string) error {
	if m.statuses[p.ID] != expectedStatus {
		return apperror.New(apperror.ErrCodeConflict, "status changed by another operation")
	}
	m.proposals[p.ID] = p
	m.statuses[p.ID] = string(p.Status)
	return nil
}

func (m *mockProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	if p, ok := m.proposals[id]; ok {
		return p, nil
	}
	return nil, apperror.ErrProposalNotFound
}

func (m *mockProposalRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entity.Proposal, error) {
	var result []*entity.Proposal
	for _, p := range m.proposals {
		if p.ProjectID == projectID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProposalRepository) FindByConsultantID(ctx context.Context, consultantID uuid.UUID) ([]*entity.Proposal, error) {
	var result []*entity.Proposal
	for _, p := range m.proposals {
		if p.ConsultantID == consultantID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProposalRepository) FindLiveByProjectAndConsultant(ctx context.Context, projectID, consultantID uuid.UUID) (*entity.Proposal, error) {
	for _, p := range m.proposals {
		if p.ProjectID == projectID && p.ConsultantID == consultantID && p.IsLive() {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProposalRepository) CountAccepted(ctx context.Context, projectID uuid.UUID) (int, error) {
	count := 0
	for _, p := range m.proposals {
		if p.ProjectID == projectID && p.IsAccepted() {
			count++
		}
	}
	return count, nil
}

type recordingEmitter struct {
	events []event.Event
}

func (e *recordingEmitter) Emit(ctx context.Context, ev event.Event) {
	e.events = append(e.events, ev)
}

func clientActor() valueobject.Actor {
	return valueobject.Actor{ID: uuid.New(), Role: valueobject.RoleClient}
}

func seedProject(t *testing.T, repo *mockProjectRepository, clientID uuid.UUID, status valueobject.ProjectStatus) *entity.Project {
	t.Helper()
	p, err := entity.NewProject(clientID, "HVAC system design", "Design ventilation for a warehouse", "mechanical", 1000, 3000, nil)
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	p.Status = status
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	return p
}

func TestCreateProjectUseCase_Success(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewCreateProjectUseCase(repo)
	actor := clientActor()

	result, err := uc.Execute(context.Background(), project.CreateProjectInput{
		Actor:       actor,
		Title:       "Structural audit",
		Description: "Audit of a production facility",
		Category:    "civil",
		BudgetMin:   500,
		BudgetMax:   2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != valueobject.ProjectStatusDraft {
		t.Errorf("expected draft, got %s", result.Status)
	}
	if result.ClientID != actor.ID {
		t.Error("expected project owner to be the actor")
	}
	if _, ok := repo.projects[result.ID]; !ok {
		t.Error("expected project to be persisted")
	}
}

func TestCreateProjectUseCase_ConsultantForbidden(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewCreateProjectUseCase(repo)

	_, err := uc.Execute(context.Background(), project.CreateProjectInput{
		Actor:       valueobject.Actor{ID: uuid.New(), Role: valueobject.RoleConsultant},
		Title:       "Structural audit",
		Description: "Audit of a production facility",
		BudgetMin:   500,
		BudgetMax:   2000,
	})
	if !apperror.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestPublishProjectUseCase_Success(t *testing.T) {
	repo := newMockProjectRepository()
	emitter := &recordingEmitter{}
	uc := project.NewPublishProjectUseCase(repo, emitter)

	actor := clientActor()
	p := seedProject(t, repo, actor.ID, valueobject.ProjectStatusDraft)

	result, err := uc.Execute(context.Background(), project.PublishProjectInput{Actor: actor, ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != valueobject.ProjectStatusOpen {
		t.Errorf("expected open, got %s", result.Status)
	}
	if len(emitter.events) != 1 || emitter.events[0].Type != event.TypeProjectPublished {
		t.Errorf("expected one project.published event, got %v", emitter.events)
	}
}

func TestPublishProjectUseCase_NotOwner(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewPublishProjectUseCase(repo, &recordingEmitter{})

	p := seedProject(t, repo, uuid.New(), valueobject.ProjectStatusDraft)

	_, err := uc.Execute(context.Background(), project.PublishProjectInput{Actor: clientActor(), ProjectID: p.ID})
	if !apperror.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestPublishProjectUseCase_AlreadyOpen(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewPublishProjectUseCase(repo, &recordingEmitter{})

	actor := clientActor()
	p := seedProject(t, repo, actor.ID, valueobject.ProjectStatusOpen)

	_, err := uc.Execute(context.Background(), project.PublishProjectInput{Actor: actor, ProjectID: p.ID})
	if !apperror.IsInvalidTransition(err) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestCancelProjectUseCase_NotifiesLiveProposals(t *testing.T) {
	repo := newMockProjectRepository()
	proposalRepo := newMockProposalRepository()
	emitter := &recordingEmitter{}
	uc := project.NewCancelProjectUseCase(repo, proposalRepo, emitter)

	actor := clientActor()
	p := seedProject(t, repo, actor.ID, valueobject.ProjectStatusOpen)

	live, _ := entity.NewProposal(p.ID, uuid.New(), "pick me", 1500, 10, nil)
	_ = live.Submit()
	_ = proposalRepo.Create(context.Background(), live)

	withdrawn, _ := entity.NewProposal(p.ID, uuid.New(), "me too", 1200, 10, nil)
	_ = withdrawn.Submit()
	_ = withdrawn.Withdraw()
	_ = proposalRepo.Create(context.Background(), withdrawn)

	result, err := uc.Execute(context.Background(), project.CancelProjectInput{Actor: actor, ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != valueobject.ProjectStatusCancelled {
		t.Errorf("expected cancelled, got %s", result.Status)
	}

	if len(emitter.events) != 1 {
		t.Fatalf("expected one event, got %d", len(emitter.events))
	}
	recipients := emitter.events[0].Recipients
	if len(recipients) != 1 || recipients[0] != live.ConsultantID {
		t.Errorf("expected only the live proposal consultant to be notified, got %v", recipients)
	}
}

func TestCancelProjectUseCase_InProgressForbidden(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewCancelProjectUseCase(repo, newMockProposalRepository(), &recordingEmitter{})

	actor := clientActor()
	p := seedProject(t, repo, actor.ID, valueobject.ProjectStatusInProgress)

	_, err := uc.Execute(context.Background(), project.CancelProjectInput{Actor: actor, ProjectID: p.ID})
	if !apperror.IsInvalidTransition(err) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestCompleteProjectUseCase_NotifiesAcceptedConsultant(t *testing.T) {
	repo := newMockProjectRepository()
	proposalRepo := newMockProposalRepository()
	emitter := &recordingEmitter{}
	uc := project.NewCompleteProjectUseCase(repo, proposalRepo, emitter)

	actor := clientActor()
	p := seedProject(t, repo, actor.ID, valueobject.ProjectStatusInProgress)

	accepted, _ := entity.NewProposal(p.ID, uuid.New(), "winner", 1500, 10, nil)
	_ = accepted.Submit()
	_ = accepted.Accept()
	_ = proposalRepo.Create(context.Background(), accepted)

	result, err := uc.Execute(context.Background(), project.CompleteProjectInput{Actor: actor, ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != valueobject.ProjectStatusCompleted {
		t.Errorf("expected completed, got %s", result.Status)
	}

	if len(emitter.events) != 1 {
		t.Fatalf("expected one event, got %d", len(emitter.events))
	}
	recipients := emitter.events[0].Recipients
	if len(recipients) != 1 || recipients[0] != accepted.ConsultantID {
		t.Errorf("expected accepted consultant to be notified, got %v", recipients)
	}
}

func TestDeleteProjectUseCase_OnlyDraftOrCancelled(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewDeleteProjectUseCase(repo)
	actor := clientActor()

	draft := seedProject(t, repo, actor.ID, valueobject.ProjectStatusDraft)
	if err := uc.Execute(context.Background(), project.DeleteProjectInput{Actor: actor, ProjectID: draft.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.deleted[draft.ID] {
		t.Error("expected draft to be soft-deleted")
	}

	open := seedProject(t, repo, actor.ID, valueobject.ProjectStatusOpen)
	err := uc.Execute(context.Background(), project.DeleteProjectInput{Actor: actor, ProjectID: open.ID})
	if !apperror.IsBusinessRule(err) {
		t.Fatalf("expected business rule violation, got %v", err)
	}
}

func TestGetProjectUseCase_DraftHiddenFromStrangers(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewGetProjectUseCase(repo)

	owner := clientActor()
	p := seedProject(t, repo, owner.ID, valueobject.ProjectStatusDraft)

	if _, err := uc.Execute(context.Background(), owner, p.ID); err != nil {
		t.Fatalf("owner should see own draft: %v", err)
	}

	stranger := valueobject.Actor{ID: uuid.New(), Role: valueobject.RoleConsultant}
	if _, err := uc.Execute(context.Background(), stranger, p.ID); !apperror.IsNotFound(err) {
		t.Fatalf("expected not found for stranger, got %v", err)
	}

	admin := valueobject.Actor{ID: uuid.New(), Role: valueobject.RoleAdmin}
	if _, err := uc.Execute(context.Background(), admin, p.ID); err != nil {
		t.Fatalf("admin should see any draft: %v", err)
	}
}

func TestUpdateProjectUseCase_StatusUnchanged(t *testing.T) {
	repo := newMockProjectRepository()
	uc := project.NewUpdateProjectUseCase(repo)

	actor := clientActor()
	p := seedProject(t, repo, actor.ID, valueobject.ProjectStatusOpen)

	result, err := uc.Execute(context.Background(), project.UpdateProjectInput{
		Actor:     actor,
		ProjectID: p.ID,
		Title:     "Updated title",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "Updated title" {
		t.Errorf("expected title to change, got %s", result.Title)
	}
	if result.Status != valueobject.ProjectStatusOpen {
		t.Errorf("update must not change status, got %s", result.Status)
	}
}
