// Package domain holds the professional profile model and its
// verification rules.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProfileStatus is the verification state of a professional profile.
type ProfileStatus string

const (
	// StatusPendingVerification: newly registered, screening not finished.
	StatusPendingVerification ProfileStatus = "PENDING_VERIFICATION"
	// StatusVerified: screened and approved; visible to matching.
	StatusVerified ProfileStatus = "VERIFIED"
	// StatusRejected: screened and rejected by an administrator.
	StatusRejected ProfileStatus = "REJECTED"
)

// Valid reports whether s is a known profile status.
func (s ProfileStatus) Valid() bool {
	switch s {
	case StatusPendingVerification, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// ReviewableTo reports whether an admin review may set the profile to next.
// Review decisions are limited to VERIFIED and REJECTED; screening owns
// PENDING_VERIFICATION.
func ReviewableTo(next ProfileStatus) bool {
	return next == StatusVerified || next == StatusRejected
}

// Profile is a professional's service profile. It shares its identity with
// the owning user account.
type Profile struct {
	UserID            uuid.UUID
	DisplayName       string
	Profession        string
	YearsOfExperience int
	Qualifications    string
	AboutYou          string
	SocialLinks       map[string]string
	Status            ProfileStatus
	SummarizedSkills  *string
	Skills            []Skill
	UpdatedAt         time.Time
}

// Skill is a canonical skill name shared across professionals. Name keeps
// the casing of whoever created it first; matching is case-insensitive.
type Skill struct {
	ID   uuid.UUID
	Name string
}

// CanonicalSkillNames trims each name, drops empties, and removes
// case-insensitive duplicates while preserving the input order. Applying
// it to its own output changes nothing.
func CanonicalSkillNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// Document is an uploaded credential file. ExtractedText holds whatever
// text was pulled from it for the screening corpus.
type Document struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	FileName       string
	MimeType       string
	StorageKey     string
	ExtractedText  *string
	CreatedAt      time.Time
}
