package service

import (
	"context"
	"testing"
	"time"

	"fitconnect-backend/internal/events"
	"fitconnect-backend/internal/requests/domain"
	"fitconnect-backend/internal/requests/ports"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	requests     map[uuid.UUID]*domain.ServiceRequest
	appointments map[uuid.UUID]*domain.Appointment
	byRequest    map[uuid.UUID]uuid.UUID // service_request_id -> appointment id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests:     make(map[uuid.UUID]*domain.ServiceRequest),
		appointments: make(map[uuid.UUID]*domain.Appointment),
		byRequest:    make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeStore) CreateRequest(_ context.Context, clientID uuid.UUID, category, description, budget string) (domain.ServiceRequest, error) {
	request := domain.ServiceRequest{
		ID:          uuid.New(),
		ClientID:    clientID,
		Category:    category,
		Description: description,
		Budget:      budget,
		Status:      domain.RequestOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.requests[request.ID] = &request
	return request, nil
}

func (f *fakeStore) GetRequest(_ context.Context, requestID uuid.UUID) (domain.ServiceRequest, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return domain.ServiceRequest{}, apperr.NotFound("service request not found")
	}
	return *request, nil
}

func (f *fakeStore) ListByClient(_ context.Context, clientID uuid.UUID) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	for _, r := range f.requests {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOpenExcluding(_ context.Context, userID uuid.UUID) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	for _, r := range f.requests {
		if r.Status == domain.RequestOpen && r.ClientID != userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) SetMatched(_ context.Context, requestID uuid.UUID, explanation string) (domain.ServiceRequest, error) {
	request, ok := f.requests[requestID]
	if !ok || request.Status != domain.RequestOpen {
		return domain.ServiceRequest{}, apperr.Conflict("matches can only be requested for an open request")
	}
	request.Status = domain.RequestMatched
	request.MatchingExplanation = &explanation
	return *request, nil
}

func (f *fakeStore) SetStatus(_ context.Context, requestID uuid.UUID, status domain.RequestStatus) error {
	request, ok := f.requests[requestID]
	if !ok {
		return apperr.NotFound("service request not found")
	}
	request.Status = status
	return nil
}

func (f *fakeStore) SelectProfessional(_ context.Context, requestID, professionalID uuid.UUID) (domain.Appointment, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return domain.Appointment{}, apperr.NotFound("service request not found")
	}
	if request.Status != domain.RequestMatched {
		return domain.Appointment{}, apperr.Conflict("a professional can only be selected for a matched request")
	}
	if _, exists := f.byRequest[requestID]; exists {
		return domain.Appointment{}, apperr.Conflict("a professional was already selected for this request")
	}
	appointment := domain.Appointment{
		ID:               uuid.New(),
		ServiceRequestID: requestID,
		ClientID:         request.ClientID,
		ProfessionalID:   professionalID,
		Status:           domain.AppointmentRequested,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	f.appointments[appointment.ID] = &appointment
	f.byRequest[requestID] = appointment.ID
	request.Status = domain.RequestPendingContact
	return appointment, nil
}

func (f *fakeStore) GetAppointment(_ context.Context, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return domain.Appointment{}, apperr.NotFound("appointment not found")
	}
	return *appointment, nil
}

func (f *fakeStore) GetAppointmentByRequest(_ context.Context, requestID uuid.UUID) (domain.Appointment, error) {
	id, ok := f.byRequest[requestID]
	if !ok {
		return domain.Appointment{}, apperr.NotFound("appointment not found")
	}
	return *f.appointments[id], nil
}

func (f *fakeStore) ListAppointmentsByClient(_ context.Context, clientID uuid.UUID) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range f.appointments {
		if a.ClientID == clientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAppointmentsByProfessional(_ context.Context, professionalID uuid.UUID) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range f.appointments {
		if a.ProfessionalID == professionalID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) SetAppointmentStatus(_ context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus, communicationDetails *string) error {
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return apperr.NotFound("appointment not found")
	}
	appointment.Status = status
	if communicationDetails != nil {
		appointment.CommunicationDetails = communicationDetails
	}
	return nil
}

type fakeMatcher struct {
	outcome   ports.MatchOutcome
	gotBudget string
}

func (f *fakeMatcher) FindMatches(_ context.Context, _, _, budget string) (ports.MatchOutcome, error) {
	f.gotBudget = budget
	return f.outcome, nil
}

type fakeProfessionals struct {
	verified map[uuid.UUID]bool
}

func (f *fakeProfessionals) IsVerified(_ context.Context, professionalID uuid.UUID) (bool, error) {
	return f.verified[professionalID], nil
}

type fakeUsers struct {
	contacts map[uuid.UUID]ports.Contact
}

func (f *fakeUsers) GetContact(_ context.Context, userID uuid.UUID) (ports.Contact, error) {
	contact, ok := f.contacts[userID]
	if !ok {
		return ports.Contact{}, apperr.NotFound("user not found")
	}
	return contact, nil
}

type fixture struct {
	svc            *Service
	store          *fakeStore
	matcher        *fakeMatcher
	professionals  *fakeProfessionals
	clientID       uuid.UUID
	professionalID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	clientID := uuid.New()
	professionalID := uuid.New()
	matcher := &fakeMatcher{outcome: ports.MatchOutcome{
		Explanation: "ranked by fit",
		Candidates: []ports.MatchCandidate{
			{ProfessionalID: professionalID, DisplayName: "Ann", Profession: "Plumber", Rank: 1},
		},
	}}
	professionals := &fakeProfessionals{verified: map[uuid.UUID]bool{professionalID: true}}
	users := &fakeUsers{contacts: map[uuid.UUID]ports.Contact{
		clientID:       {Email: "client@example.com", DisplayName: "Carol"},
		professionalID: {Email: "pro@example.com", DisplayName: "Ann"},
	}}
	log := logger.New("test")
	svc := New(store, matcher, professionals, users, events.NewInMemoryBus(log), log)
	return &fixture{
		svc:            svc,
		store:          store,
		matcher:        matcher,
		professionals:  professionals,
		clientID:       clientID,
		professionalID: professionalID,
	}
}

func (fx *fixture) openRequest(t *testing.T) domain.ServiceRequest {
	t.Helper()
	request, err := fx.svc.Create(context.Background(), fx.clientID, "plumbing", "kitchen sink leaks badly", "50-100 EUR")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return request
}

func (fx *fixture) matchedRequest(t *testing.T) domain.ServiceRequest {
	t.Helper()
	request := fx.openRequest(t)
	outcome, err := fx.svc.RequestMatches(context.Background(), fx.clientID, request.ID)
	if err != nil {
		t.Fatalf("RequestMatches: %v", err)
	}
	return outcome.Request
}

func (fx *fixture) appointment(t *testing.T) domain.Appointment {
	t.Helper()
	request := fx.matchedRequest(t)
	appointment, err := fx.svc.SelectProfessional(context.Background(), fx.clientID, request.ID, fx.professionalID)
	if err != nil {
		t.Fatalf("SelectProfessional: %v", err)
	}
	return appointment
}

func TestCreateKeepsBudget(t *testing.T) {
	fx := newFixture(t)
	request, err := fx.svc.Create(context.Background(), fx.clientID, "Yoga", "need a yoga coach soon", "about 50 EUR/h")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if request.Budget != "about 50 EUR/h" {
		t.Errorf("budget = %q, want %q", request.Budget, "about 50 EUR/h")
	}
}

func TestRequestMatchesForwardsBudget(t *testing.T) {
	fx := newFixture(t)
	request := fx.openRequest(t)

	if _, err := fx.svc.RequestMatches(context.Background(), fx.clientID, request.ID); err != nil {
		t.Fatalf("RequestMatches: %v", err)
	}
	if fx.matcher.gotBudget != "50-100 EUR" {
		t.Errorf("matcher budget = %q, want %q", fx.matcher.gotBudget, "50-100 EUR")
	}
}

func TestCreateUnknownClient(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.svc.Create(context.Background(), uuid.New(), "plumbing", "kitchen sink leaks badly", "")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown client: got %v, want NotFound", err)
	}
}

func TestRequestMatchesPersistsOutcome(t *testing.T) {
	fx := newFixture(t)
	request := fx.openRequest(t)

	outcome, err := fx.svc.RequestMatches(context.Background(), fx.clientID, request.ID)
	if err != nil {
		t.Fatalf("RequestMatches: %v", err)
	}
	if outcome.Request.Status != domain.RequestMatched {
		t.Errorf("status = %s, want MATCHED", outcome.Request.Status)
	}
	if outcome.Request.MatchingExplanation == nil || *outcome.Request.MatchingExplanation != "ranked by fit" {
		t.Errorf("explanation not persisted")
	}
	if len(outcome.Candidates) != 1 {
		t.Errorf("candidates = %d, want 1", len(outcome.Candidates))
	}
}

func TestRequestMatchesEmptyShortlistStillMatches(t *testing.T) {
	fx := newFixture(t)
	fx.matcher.outcome = ports.MatchOutcome{Explanation: "No verified professionals available."}
	request := fx.openRequest(t)

	outcome, err := fx.svc.RequestMatches(context.Background(), fx.clientID, request.ID)
	if err != nil {
		t.Fatalf("RequestMatches: %v", err)
	}
	if outcome.Request.Status != domain.RequestMatched {
		t.Errorf("status = %s, want MATCHED even with empty shortlist", outcome.Request.Status)
	}
	if *outcome.Request.MatchingExplanation != "No verified professionals available." {
		t.Errorf("explanation = %q", *outcome.Request.MatchingExplanation)
	}
}

func TestRequestMatchesOwnershipAndState(t *testing.T) {
	fx := newFixture(t)
	request := fx.openRequest(t)

	if _, err := fx.svc.RequestMatches(context.Background(), uuid.New(), request.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("stranger: got %v, want Forbidden", err)
	}

	if _, err := fx.svc.RequestMatches(context.Background(), fx.clientID, request.ID); err != nil {
		t.Fatalf("first match: %v", err)
	}
	// Already MATCHED; a second run is a state conflict.
	if _, err := fx.svc.RequestMatches(context.Background(), fx.clientID, request.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("re-match: got %v, want Conflict", err)
	}
}

func TestSelectProfessionalHappyPath(t *testing.T) {
	fx := newFixture(t)
	request := fx.matchedRequest(t)

	appointment, err := fx.svc.SelectProfessional(context.Background(), fx.clientID, request.ID, fx.professionalID)
	if err != nil {
		t.Fatalf("SelectProfessional: %v", err)
	}
	if appointment.Status != domain.AppointmentRequested {
		t.Errorf("appointment status = %s, want REQUESTED", appointment.Status)
	}

	updated, _ := fx.store.GetRequest(context.Background(), request.ID)
	if updated.Status != domain.RequestPendingContact {
		t.Errorf("request status = %s, want PENDING_CONTACT", updated.Status)
	}
}

func TestSelectProfessionalGuards(t *testing.T) {
	fx := newFixture(t)
	request := fx.openRequest(t)

	// Request still OPEN.
	if _, err := fx.svc.SelectProfessional(context.Background(), fx.clientID, request.ID, fx.professionalID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("select from OPEN: got %v, want Conflict", err)
	}

	matched := fx.matchedRequest(t)

	if _, err := fx.svc.SelectProfessional(context.Background(), uuid.New(), matched.ID, fx.professionalID); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("stranger: got %v, want Forbidden", err)
	}

	unverified := uuid.New()
	if _, err := fx.svc.SelectProfessional(context.Background(), fx.clientID, matched.ID, unverified); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("unverified professional: got %v, want Validation", err)
	}
}

func TestSelectProfessionalOnlyOnce(t *testing.T) {
	fx := newFixture(t)
	request := fx.matchedRequest(t)

	if _, err := fx.svc.SelectProfessional(context.Background(), fx.clientID, request.ID, fx.professionalID); err != nil {
		t.Fatalf("first select: %v", err)
	}
	if _, err := fx.svc.SelectProfessional(context.Background(), fx.clientID, request.ID, fx.professionalID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("second select: got %v, want Conflict", err)
	}
}

func TestAcceptAppointment(t *testing.T) {
	fx := newFixture(t)
	appointment := fx.appointment(t)

	accepted, err := fx.svc.AcceptAppointment(context.Background(), fx.professionalID, appointment.ID, "call me at +15551234567")
	if err != nil {
		t.Fatalf("AcceptAppointment: %v", err)
	}
	if accepted.Status != domain.AppointmentAcceptedByProfessional {
		t.Errorf("appointment status = %s", accepted.Status)
	}
	if accepted.CommunicationDetails == nil || *accepted.CommunicationDetails == "" {
		t.Errorf("communication details not stored")
	}

	request, _ := fx.store.GetRequest(context.Background(), appointment.ServiceRequestID)
	if request.Status != domain.RequestAccepted {
		t.Errorf("request status = %s, want ACCEPTED", request.Status)
	}
}

func TestAcceptAppointmentWrongCaller(t *testing.T) {
	fx := newFixture(t)
	appointment := fx.appointment(t)

	if _, err := fx.svc.AcceptAppointment(context.Background(), fx.clientID, appointment.ID, ""); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("client accepting: got %v, want Forbidden", err)
	}
}

func TestDeclineAppointment(t *testing.T) {
	fx := newFixture(t)
	appointment := fx.appointment(t)

	declined, err := fx.svc.DeclineAppointment(context.Background(), fx.professionalID, appointment.ID)
	if err != nil {
		t.Fatalf("DeclineAppointment: %v", err)
	}
	if declined.Status != domain.AppointmentCancelledByProfessional {
		t.Errorf("appointment status = %s", declined.Status)
	}

	request, _ := fx.store.GetRequest(context.Background(), appointment.ServiceRequestID)
	if request.Status != domain.RequestRejectedByProfessional {
		t.Errorf("request status = %s, want REJECTED_BY_PROFESSIONAL", request.Status)
	}
}

func TestFullLifecycleToCompleted(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	appointment := fx.appointment(t)

	if _, err := fx.svc.AcceptAppointment(ctx, fx.professionalID, appointment.ID, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := fx.svc.ConfirmAppointment(ctx, fx.clientID, appointment.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	completed, err := fx.svc.CompleteAppointment(ctx, fx.clientID, appointment.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.AppointmentCompleted {
		t.Errorf("appointment status = %s, want COMPLETED", completed.Status)
	}

	request, _ := fx.store.GetRequest(ctx, appointment.ServiceRequestID)
	if request.Status != domain.RequestCompleted {
		t.Errorf("request status = %s, want COMPLETED", request.Status)
	}
}

func TestConfirmBeforeAcceptIsConflict(t *testing.T) {
	fx := newFixture(t)
	appointment := fx.appointment(t)

	if _, err := fx.svc.ConfirmAppointment(context.Background(), fx.clientID, appointment.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("confirm from REQUESTED: got %v, want Conflict", err)
	}
}

func TestCancelRequestCancelsAppointment(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	appointment := fx.appointment(t)

	request, err := fx.svc.Cancel(ctx, fx.clientID, appointment.ServiceRequestID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if request.Status != domain.RequestCancelled {
		t.Errorf("request status = %s, want CANCELLED", request.Status)
	}

	got, _ := fx.store.GetAppointment(ctx, appointment.ID)
	if got.Status != domain.AppointmentCancelledByClient {
		t.Errorf("appointment status = %s, want CANCELLED_BY_CLIENT", got.Status)
	}
}

func TestCancelCompletedRequestIsConflict(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	appointment := fx.appointment(t)

	if _, err := fx.svc.AcceptAppointment(ctx, fx.professionalID, appointment.ID, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := fx.svc.ConfirmAppointment(ctx, fx.clientID, appointment.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := fx.svc.CompleteAppointment(ctx, fx.clientID, appointment.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := fx.svc.Cancel(ctx, fx.clientID, appointment.ServiceRequestID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("cancel completed: got %v, want Conflict", err)
	}
}

func TestGetOwnership(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	appointment := fx.appointment(t)

	if _, err := fx.svc.Get(ctx, fx.clientID, appointment.ServiceRequestID); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := fx.svc.Get(ctx, fx.professionalID, appointment.ServiceRequestID); err != nil {
		t.Errorf("appointed professional get: %v", err)
	}
	if _, err := fx.svc.Get(ctx, uuid.New(), appointment.ServiceRequestID); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("stranger get: got %v, want Forbidden", err)
	}
}

func TestListOpenExcludesOwnRequests(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.openRequest(t)

	open, err := fx.svc.ListOpenForProfessional(ctx, fx.professionalID)
	if err != nil {
		t.Fatalf("ListOpenForProfessional: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open = %d, want 1", len(open))
	}

	// The client browsing as a professional never sees their own request.
	own, err := fx.svc.ListOpenForProfessional(ctx, fx.clientID)
	if err != nil {
		t.Fatalf("ListOpenForProfessional: %v", err)
	}
	if len(own) != 0 {
		t.Errorf("own open = %d, want 0", len(own))
	}
}
