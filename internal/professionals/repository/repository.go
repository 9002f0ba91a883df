package repository

import (
	"context"
	"errors"
	"fmt"

	"fitconnect-backend/internal/professionals/domain"
	"fitconnect-backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateProfile(ctx context.Context, userID uuid.UUID, profession string, years int, qualifications, aboutYou string, socialLinks map[string]string) error {
	if socialLinks == nil {
		socialLinks = map[string]string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO professional_profiles (user_id, profession, years_of_experience, qualifications, about_you, social_links)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, profession, years, qualifications, aboutYou, socialLinks)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

const profileColumns = `
	p.user_id, u.display_name, p.profession, p.years_of_experience,
	p.qualifications, p.about_you, p.social_links, p.profile_status,
	p.summarized_skills, p.updated_at`

func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM professional_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, err
	}

	skills, err := r.profileSkills(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	profile.Skills = skills
	return profile, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, userID uuid.UUID, profession string, years int, qualifications, aboutYou string, socialLinks map[string]string) error {
	if socialLinks == nil {
		socialLinks = map[string]string{}
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE professional_profiles
		SET profession = $2, years_of_experience = $3, qualifications = $4,
		    about_you = $5, social_links = $6, updated_at = now()
		WHERE user_id = $1
	`, userID, profession, years, qualifications, aboutYou, socialLinks)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("professional profile not found")
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, userID uuid.UUID, status domain.ProfileStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE professional_profiles
		SET profile_status = $2, updated_at = now()
		WHERE user_id = $1
	`, userID, status)
	if err != nil {
		return fmt.Errorf("set profile status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("professional profile not found")
	}
	return nil
}

// ListByStatus returns profiles in the given status, most recently updated
// first. Skills are not hydrated; list views don't need them.
func (r *Repository) ListByStatus(ctx context.Context, status domain.ProfileStatus) ([]domain.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM professional_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.profile_status = $1
		ORDER BY p.updated_at DESC
	`, status)
	if err != nil {
		return nil, fmt.Errorf("list profiles by status: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// ListVerifiedWithSkills returns every VERIFIED profile with its skills
// hydrated, for the matching candidate pool.
func (r *Repository) ListVerifiedWithSkills(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := r.ListByStatus(ctx, domain.StatusVerified)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		skills, err := r.profileSkills(ctx, profiles[i].UserID)
		if err != nil {
			return nil, err
		}
		profiles[i].Skills = skills
	}
	return profiles, nil
}

// EnsureSkills resolves each name to a canonical skill row, creating rows
// that don't exist yet. Matching is case-insensitive; the first writer's
// casing wins. Names are expected to already be canonicalized via
// domain.CanonicalSkillNames.
func (r *Repository) EnsureSkills(ctx context.Context, names []string) ([]domain.Skill, error) {
	skills := make([]domain.Skill, 0, len(names))

	for _, name := range names {
		// Concurrent screeners may race on the same name; the unique index
		// on lower(name) makes the insert a no-op for the loser, and the
		// follow-up select reads whichever row won.
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO skills (name) VALUES ($1)
			ON CONFLICT (lower(name)) DO NOTHING
		`, name); err != nil {
			return nil, fmt.Errorf("insert skill %q: %w", name, err)
		}

		var skill domain.Skill
		err := r.pool.QueryRow(ctx, `
			SELECT id, name FROM skills WHERE lower(name) = lower($1)
		`, name).Scan(&skill.ID, &skill.Name)
		if err != nil {
			return nil, fmt.Errorf("select skill %q: %w", name, err)
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// SaveScreeningResult stores the capability summary and replaces the
// professional's skill links in one transaction.
func (r *Repository) SaveScreeningResult(ctx context.Context, userID uuid.UUID, summary string, skillIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin screening tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE professional_profiles
		SET summarized_skills = $2, updated_at = now()
		WHERE user_id = $1
	`, userID, summary)
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("professional profile not found")
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM professional_skills WHERE professional_id = $1
	`, userID); err != nil {
		return fmt.Errorf("clear skills: %w", err)
	}

	for i, skillID := range skillIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO professional_skills (professional_id, skill_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (professional_id, skill_id) DO NOTHING
		`, userID, skillID, i); err != nil {
			return fmt.Errorf("link skill: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) AddDocument(ctx context.Context, professionalID uuid.UUID, fileName, mimeType, storageKey string) (domain.Document, error) {
	var doc domain.Document
	err := r.pool.QueryRow(ctx, `
		INSERT INTO professional_documents (professional_id, file_name, mime_type, storage_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, professional_id, file_name, mime_type, storage_key, extracted_text, created_at
	`, professionalID, fileName, mimeType, storageKey).Scan(
		&doc.ID, &doc.ProfessionalID, &doc.FileName, &doc.MimeType,
		&doc.StorageKey, &doc.ExtractedText, &doc.CreatedAt,
	)
	if err != nil {
		return domain.Document{}, fmt.Errorf("add document: %w", err)
	}
	return doc, nil
}

func (r *Repository) GetDocument(ctx context.Context, documentID uuid.UUID) (domain.Document, error) {
	var doc domain.Document
	err := r.pool.QueryRow(ctx, `
		SELECT id, professional_id, file_name, mime_type, storage_key, extracted_text, created_at
		FROM professional_documents WHERE id = $1
	`, documentID).Scan(
		&doc.ID, &doc.ProfessionalID, &doc.FileName, &doc.MimeType,
		&doc.StorageKey, &doc.ExtractedText, &doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, apperr.NotFound("document not found")
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

func (r *Repository) ListDocuments(ctx context.Context, professionalID uuid.UUID) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, professional_id, file_name, mime_type, storage_key, extracted_text, created_at
		FROM professional_documents
		WHERE professional_id = $1
		ORDER BY created_at DESC
	`, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(
			&doc.ID, &doc.ProfessionalID, &doc.FileName, &doc.MimeType,
			&doc.StorageKey, &doc.ExtractedText, &doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *Repository) SetDocumentExtractedText(ctx context.Context, documentID uuid.UUID, text string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE professional_documents SET extracted_text = $2 WHERE id = $1
	`, documentID, text)
	if err != nil {
		return fmt.Errorf("set extracted text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("document not found")
	}
	return nil
}

func (r *Repository) profileSkills(ctx context.Context, userID uuid.UUID) ([]domain.Skill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name
		FROM professional_skills ps
		JOIN skills s ON s.id = ps.skill_id
		WHERE ps.professional_id = $1
		ORDER BY ps.position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("profile skills: %w", err)
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var skill domain.Skill
		if err := rows.Scan(&skill.ID, &skill.Name); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var profile domain.Profile
	err := row.Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Profession,
		&profile.YearsOfExperience,
		&profile.Qualifications,
		&profile.AboutYou,
		&profile.SocialLinks,
		&profile.Status,
		&profile.SummarizedSkills,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, apperr.NotFound("professional profile not found")
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	return profile, nil
}
