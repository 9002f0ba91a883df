package repository

import (
	"context"
	"errors"
	"fmt"

	"fitconnect-backend/internal/requests/domain"
	"fitconnect-backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const requestColumns = `id, client_id, category, description, budget, status, matching_explanation, created_at, updated_at`

func (r *Repository) CreateRequest(ctx context.Context, clientID uuid.UUID, category, description, budget string) (domain.ServiceRequest, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO service_requests (client_id, category, description, budget, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+requestColumns+`
	`, clientID, category, description, budget, domain.RequestOpen)
	request, err := scanRequest(row)
	if err != nil {
		return domain.ServiceRequest{}, fmt.Errorf("create request: %w", err)
	}
	return request, nil
}

func (r *Repository) GetRequest(ctx context.Context, requestID uuid.UUID) (domain.ServiceRequest, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM service_requests WHERE id = $1
	`, requestID)
	return scanRequest(row)
}

func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.ServiceRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM service_requests
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list requests by client: %w", err)
	}
	return collectRequests(rows)
}

// ListOpenExcluding returns OPEN requests that do not belong to the given
// user, for the professional browse view.
func (r *Repository) ListOpenExcluding(ctx context.Context, userID uuid.UUID) ([]domain.ServiceRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM service_requests
		WHERE status = $1 AND client_id <> $2
		ORDER BY created_at DESC
	`, domain.RequestOpen, userID)
	if err != nil {
		return nil, fmt.Errorf("list open requests: %w", err)
	}
	return collectRequests(rows)
}

// SetMatched stores the matching explanation and moves the request to
// MATCHED in one statement, guarded on the current status so a concurrent
// transition cannot be overwritten.
func (r *Repository) SetMatched(ctx context.Context, requestID uuid.UUID, explanation string) (domain.ServiceRequest, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE service_requests
		SET status = $2, matching_explanation = $3, updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING `+requestColumns+`
	`, requestID, domain.RequestMatched, explanation, domain.RequestOpen)
	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) || apperr.Is(err, apperr.KindNotFound) {
		return domain.ServiceRequest{}, apperr.Conflict("matches can only be requested for an open request")
	}
	return request, err
}

func (r *Repository) SetStatus(ctx context.Context, requestID uuid.UUID, status domain.RequestStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE service_requests SET status = $2, updated_at = now() WHERE id = $1
	`, requestID, status)
	if err != nil {
		return fmt.Errorf("set request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service request not found")
	}
	return nil
}

// SelectProfessional atomically creates the request's appointment and moves
// the request to PENDING_CONTACT. The row lock serializes concurrent
// selections; the unique constraint on appointments.service_request_id is
// the final arbiter if anything slips past it.
func (r *Repository) SelectProfessional(ctx context.Context, requestID, professionalID uuid.UUID) (domain.Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("begin select tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM service_requests WHERE id = $1 FOR UPDATE
	`, requestID)
	request, err := scanRequest(row)
	if err != nil {
		return domain.Appointment{}, err
	}
	if request.Status != domain.RequestMatched {
		return domain.Appointment{}, apperr.Conflict("a professional can only be selected for a matched request")
	}

	var appointment domain.Appointment
	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (service_request_id, client_id, professional_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, service_request_id, client_id, professional_id, status, communication_details, created_at, updated_at
	`, requestID, request.ClientID, professionalID, domain.AppointmentRequested).Scan(
		&appointment.ID, &appointment.ServiceRequestID, &appointment.ClientID,
		&appointment.ProfessionalID, &appointment.Status,
		&appointment.CommunicationDetails, &appointment.CreatedAt, &appointment.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Appointment{}, apperr.Conflict("a professional was already selected for this request")
		}
		return domain.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE service_requests SET status = $2, updated_at = now() WHERE id = $1
	`, requestID, domain.RequestPendingContact); err != nil {
		return domain.Appointment{}, fmt.Errorf("move request to pending contact: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Appointment{}, fmt.Errorf("commit select tx: %w", err)
	}
	return appointment, nil
}

const appointmentColumns = `id, service_request_id, client_id, professional_id, status, communication_details, created_at, updated_at`

func (r *Repository) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (domain.Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+` FROM appointments WHERE id = $1
	`, appointmentID)
	return scanAppointment(row)
}

func (r *Repository) GetAppointmentByRequest(ctx context.Context, requestID uuid.UUID) (domain.Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+` FROM appointments WHERE service_request_id = $1
	`, requestID)
	return scanAppointment(row)
}

func (r *Repository) ListAppointmentsByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by client: %w", err)
	}
	return collectAppointments(rows)
}

func (r *Repository) ListAppointmentsByProfessional(ctx context.Context, professionalID uuid.UUID) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE professional_id = $1
		ORDER BY created_at DESC
	`, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by professional: %w", err)
	}
	return collectAppointments(rows)
}

func (r *Repository) SetAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus, communicationDetails *string) error {
	var tag pgconn.CommandTag
	var err error
	if communicationDetails != nil {
		tag, err = r.pool.Exec(ctx, `
			UPDATE appointments SET status = $2, communication_details = $3, updated_at = now() WHERE id = $1
		`, appointmentID, status, *communicationDetails)
	} else {
		tag, err = r.pool.Exec(ctx, `
			UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1
		`, appointmentID, status)
	}
	if err != nil {
		return fmt.Errorf("set appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment not found")
	}
	return nil
}

func scanRequest(row pgx.Row) (domain.ServiceRequest, error) {
	var request domain.ServiceRequest
	err := row.Scan(
		&request.ID, &request.ClientID, &request.Category, &request.Description,
		&request.Budget, &request.Status, &request.MatchingExplanation,
		&request.CreatedAt, &request.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ServiceRequest{}, apperr.NotFound("service request not found")
	}
	if err != nil {
		return domain.ServiceRequest{}, fmt.Errorf("scan request: %w", err)
	}
	return request, nil
}

func collectRequests(rows pgx.Rows) ([]domain.ServiceRequest, error) {
	defer rows.Close()
	var requests []domain.ServiceRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanAppointment(row pgx.Row) (domain.Appointment, error) {
	var appointment domain.Appointment
	err := row.Scan(
		&appointment.ID, &appointment.ServiceRequestID, &appointment.ClientID,
		&appointment.ProfessionalID, &appointment.Status,
		&appointment.CommunicationDetails, &appointment.CreatedAt, &appointment.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Appointment{}, apperr.NotFound("appointment not found")
	}
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("scan appointment: %w", err)
	}
	return appointment, nil
}

func collectAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	defer rows.Close()
	var appointments []domain.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}
