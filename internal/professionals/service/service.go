package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fitconnect-backend/internal/events"
	"fitconnect-backend/internal/professionals/domain"
	"fitconnect-backend/internal/professionals/ports"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// summarySkipped is persisted when the screening capability is not
// configured or fails; the profile stays PENDING_VERIFICATION so an admin
// can still review it by hand.
const summarySkipped = "LLM screening skipped: API key not configured."

const presignedURLExpiry = 15 * time.Minute

// Store is the persistence surface the professionals service needs.
type Store interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, profession string, years int, qualifications, aboutYou string, socialLinks map[string]string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, profession string, years int, qualifications, aboutYou string, socialLinks map[string]string) error
	SetStatus(ctx context.Context, userID uuid.UUID, status domain.ProfileStatus) error
	ListByStatus(ctx context.Context, status domain.ProfileStatus) ([]domain.Profile, error)
	ListVerifiedWithSkills(ctx context.Context) ([]domain.Profile, error)
	EnsureSkills(ctx context.Context, names []string) ([]domain.Skill, error)
	SaveScreeningResult(ctx context.Context, userID uuid.UUID, summary string, skillIDs []uuid.UUID) error
	AddDocument(ctx context.Context, professionalID uuid.UUID, fileName, mimeType, storageKey string) (domain.Document, error)
	GetDocument(ctx context.Context, documentID uuid.UUID) (domain.Document, error)
	ListDocuments(ctx context.Context, professionalID uuid.UUID) ([]domain.Document, error)
	SetDocumentExtractedText(ctx context.Context, documentID uuid.UUID, text string) error
}

type Service struct {
	store      Store
	summarizer ports.Summarizer
	extractor  ports.SkillExtractor
	storage    ports.ObjectStorage
	bus        events.Bus
	log        *logger.Logger
}

func New(store Store, summarizer ports.Summarizer, extractor ports.SkillExtractor, storage ports.ObjectStorage, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		summarizer: summarizer,
		extractor:  extractor,
		storage:    storage,
		bus:        bus,
		log:        log,
	}
}

// CreateProfile creates a profile for a freshly registered professional.
// Called by the auth context through its ProfileCreator port.
func (s *Service) CreateProfile(ctx context.Context, userID uuid.UUID, profession string, years int, qualifications, aboutYou string, socialLinks map[string]string) error {
	return s.store.CreateProfile(ctx, userID, profession, years, qualifications, aboutYou, socialLinks)
}

// GetOwnProfile returns the caller's own profile, whatever its status.
func (s *Service) GetOwnProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

// UpdateOwnProfile replaces the caller's editable profile fields.
func (s *Service) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, profession string, years int, qualifications, aboutYou string, socialLinks map[string]string) (domain.Profile, error) {
	if err := s.store.UpdateProfile(ctx, userID, profession, years, qualifications, aboutYou, socialLinks); err != nil {
		return domain.Profile{}, err
	}
	return s.store.GetProfile(ctx, userID)
}

// GetPublicProfile returns a profile for public viewing. Profiles that are
// not VERIFIED do not exist as far as the public surface is concerned.
func (s *Service) GetPublicProfile(ctx context.Context, professionalID uuid.UUID) (domain.Profile, error) {
	profile, err := s.store.GetProfile(ctx, professionalID)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile.Status != domain.StatusVerified {
		return domain.Profile{}, apperr.NotFound("professional profile not found")
	}
	return profile, nil
}

// ListVerified returns the candidate pool for matching.
func (s *Service) ListVerified(ctx context.Context) ([]domain.Profile, error) {
	return s.store.ListVerifiedWithSkills(ctx)
}

// DocumentUpload is a presigned upload slot plus the stored metadata row.
type DocumentUpload struct {
	Document  domain.Document
	UploadURL string
}

// RequestDocumentUpload records document metadata and returns a presigned
// PUT URL. File bytes go straight to object storage, never through the API.
func (s *Service) RequestDocumentUpload(ctx context.Context, professionalID uuid.UUID, fileName, mimeType string, sizeBytes int64) (DocumentUpload, error) {
	if !s.storage.Enabled() {
		return DocumentUpload{}, apperr.Unavailable("document storage is not configured")
	}
	if _, err := s.store.GetProfile(ctx, professionalID); err != nil {
		return DocumentUpload{}, err
	}

	key := fmt.Sprintf("professionals/%s/%s-%s", professionalID, uuid.NewString(), fileName)
	uploadURL, err := s.storage.PresignedPutURL(ctx, key, mimeType, sizeBytes, presignedURLExpiry)
	if err != nil {
		return DocumentUpload{}, fmt.Errorf("presign upload: %w", err)
	}

	doc, err := s.store.AddDocument(ctx, professionalID, fileName, mimeType, key)
	if err != nil {
		return DocumentUpload{}, err
	}
	return DocumentUpload{Document: doc, UploadURL: uploadURL}, nil
}

// ListOwnDocuments returns the caller's document metadata.
func (s *Service) ListOwnDocuments(ctx context.Context, professionalID uuid.UUID) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx, professionalID)
}

// DocumentDownloadURL returns a presigned GET URL for a document. Only the
// owner and admins may fetch one.
func (s *Service) DocumentDownloadURL(ctx context.Context, callerID uuid.UUID, isAdmin bool, documentID uuid.UUID) (string, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	if !isAdmin && doc.ProfessionalID != callerID {
		return "", apperr.Forbidden("not your document")
	}
	if !s.storage.Enabled() {
		return "", apperr.Unavailable("document storage is not configured")
	}
	return s.storage.PresignedGetURL(ctx, doc.StorageKey, presignedURLExpiry)
}

// AttachDocumentText stores extracted text for a document so future
// screening runs can use it.
func (s *Service) AttachDocumentText(ctx context.Context, callerID uuid.UUID, documentID uuid.UUID, text string) error {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.ProfessionalID != callerID {
		return apperr.Forbidden("not your document")
	}
	return s.store.SetDocumentExtractedText(ctx, documentID, text)
}

// Screen runs the verification pipeline for one professional: builds the
// profile corpus, asks the capability layer for a summary and a skill list,
// canonicalizes the skills, and persists the result. A successful run moves
// the profile to VERIFIED. An unavailable or failing capability degrades to
// a sentinel summary and leaves the profile PENDING_VERIFICATION; Screen
// never propagates capability errors.
func (s *Service) Screen(ctx context.Context, professionalID uuid.UUID) error {
	profile, err := s.store.GetProfile(ctx, professionalID)
	if err != nil {
		return err
	}

	if !s.summarizer.Available() || !s.extractor.Available() {
		s.log.Warn("screening capability unavailable, storing sentinel summary", "professional_id", professionalID.String())
		return s.finishDegraded(ctx, profile)
	}

	docs, err := s.store.ListDocuments(ctx, professionalID)
	if err != nil {
		return err
	}
	corpus := buildCorpus(profile, docs)

	var summary string
	var skillNames []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.summarizer.Summarize(gctx, corpus)
		return err
	})
	g.Go(func() error {
		var err error
		skillNames, err = s.extractor.ExtractSkills(gctx, corpus)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.CapabilityFailure("profile_screening", err)
		return s.finishDegraded(ctx, profile)
	}

	skills, err := s.store.EnsureSkills(ctx, domain.CanonicalSkillNames(skillNames))
	if err != nil {
		return err
	}
	skillIDs := make([]uuid.UUID, len(skills))
	for i, skill := range skills {
		skillIDs[i] = skill.ID
	}

	if err := s.store.SaveScreeningResult(ctx, professionalID, summary, skillIDs); err != nil {
		return err
	}
	if err := s.store.SetStatus(ctx, professionalID, domain.StatusVerified); err != nil {
		return err
	}

	s.publishScreened(ctx, professionalID, domain.StatusVerified)
	s.log.Info("professional screened",
		"professional_id", professionalID.String(),
		"skills", len(skillIDs),
	)
	return nil
}

// finishDegraded records the sentinel summary without touching skills or
// status. Re-running Screen later overwrites it.
func (s *Service) finishDegraded(ctx context.Context, profile domain.Profile) error {
	if err := s.store.SaveScreeningResult(ctx, profile.UserID, summarySkipped, nil); err != nil {
		return err
	}
	s.publishScreened(ctx, profile.UserID, profile.Status)
	return nil
}

func (s *Service) publishScreened(ctx context.Context, professionalID uuid.UUID, status domain.ProfileStatus) {
	s.bus.Publish(ctx, events.ProfessionalScreened{
		BaseEvent:      events.NewBaseEvent(),
		ProfessionalID: professionalID.String(),
		ProfileStatus:  string(status),
	})
}

// SetVerificationStatus is the admin review decision. Only VERIFIED and
// REJECTED are reviewable targets; screening owns PENDING_VERIFICATION.
func (s *Service) SetVerificationStatus(ctx context.Context, professionalID uuid.UUID, status domain.ProfileStatus) (domain.Profile, error) {
	if !domain.ReviewableTo(status) {
		return domain.Profile{}, apperr.Validation("verification status must be VERIFIED or REJECTED")
	}
	if err := s.store.SetStatus(ctx, professionalID, status); err != nil {
		return domain.Profile{}, err
	}
	return s.store.GetProfile(ctx, professionalID)
}

// ListPending returns profiles awaiting review, for the admin queue.
func (s *Service) ListPending(ctx context.Context) ([]domain.Profile, error) {
	return s.store.ListByStatus(ctx, domain.StatusPendingVerification)
}

// ListDocumentsForReview returns a professional's documents for admins.
func (s *Service) ListDocumentsForReview(ctx context.Context, professionalID uuid.UUID) ([]domain.Document, error) {
	if _, err := s.store.GetProfile(ctx, professionalID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, professionalID)
}

// buildCorpus flattens the profile and any extracted document text into the
// single blob the capability layer analyzes.
func buildCorpus(profile domain.Profile, docs []domain.Document) string {
	links := "Not provided"
	if len(profile.SocialLinks) > 0 {
		keys := make([]string, 0, len(profile.SocialLinks))
		for k := range profile.SocialLinks {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + profile.SocialLinks[k]
		}
		links = strings.Join(pairs, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Profession: %s Years of Experience: %d Qualifications: %s About: %s Social Media/Links: %s",
		orNA(profile.Profession), profile.YearsOfExperience,
		orNA(profile.Qualifications), orNA(profile.AboutYou), links)

	for _, doc := range docs {
		if doc.ExtractedText == nil || *doc.ExtractedText == "" {
			continue
		}
		fmt.Fprintf(&b, "\nDocument %s: %s", doc.FileName, *doc.ExtractedText)
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
