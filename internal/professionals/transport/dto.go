// Package transport defines request/response DTOs for professional endpoints.
package transport

import (
	"time"

	"fitconnect-backend/internal/professionals/domain"
)

type UpdateProfileRequest struct {
	Profession        string            `json:"profession" validate:"required,min=2,max=100"`
	YearsOfExperience int               `json:"yearsOfExperience" validate:"gte=0,lte=80"`
	Qualifications    string            `json:"qualifications" validate:"max=5000"`
	AboutYou          string            `json:"aboutYou" validate:"max=5000"`
	SocialLinks       map[string]string `json:"socialLinks" validate:"omitempty,dive,keys,max=50,endkeys,url"`
}

type DocumentUploadRequest struct {
	FileName  string `json:"fileName" validate:"required,max=255"`
	MimeType  string `json:"mimeType" validate:"required,max=100"`
	SizeBytes int64  `json:"sizeBytes" validate:"required,gt=0"`
}

type AttachDocumentTextRequest struct {
	Text string `json:"text" validate:"required,max=100000"`
}

type SetVerificationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
}

type ProfileResponse struct {
	ID                string            `json:"id"`
	DisplayName       string            `json:"displayName"`
	Profession        string            `json:"profession"`
	YearsOfExperience int               `json:"yearsOfExperience"`
	Qualifications    string            `json:"qualifications"`
	AboutYou          string            `json:"aboutYou"`
	SocialLinks       map[string]string `json:"socialLinks"`
	Status            string            `json:"status"`
	SummarizedSkills  *string           `json:"summarizedSkills,omitempty"`
	Skills            []string          `json:"skills"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// PublicProfileResponse omits review-only fields.
type PublicProfileResponse struct {
	ID                string   `json:"id"`
	DisplayName       string   `json:"displayName"`
	Profession        string   `json:"profession"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	AboutYou          string   `json:"aboutYou"`
	SummarizedSkills  *string  `json:"summarizedSkills,omitempty"`
	Skills            []string `json:"skills"`
}

type DocumentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	MimeType  string    `json:"mimeType"`
	HasText   bool      `json:"hasText"`
	CreatedAt time.Time `json:"createdAt"`
}

type DocumentUploadResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"uploadUrl"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

func ToProfileResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.UserID.String(),
		DisplayName:       p.DisplayName,
		Profession:        p.Profession,
		YearsOfExperience: p.YearsOfExperience,
		Qualifications:    p.Qualifications,
		AboutYou:          p.AboutYou,
		SocialLinks:       p.SocialLinks,
		Status:            string(p.Status),
		SummarizedSkills:  p.SummarizedSkills,
		Skills:            skillNames(p.Skills),
		UpdatedAt:         p.UpdatedAt,
	}
}

func ToPublicProfileResponse(p domain.Profile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:                p.UserID.String(),
		DisplayName:       p.DisplayName,
		Profession:        p.Profession,
		YearsOfExperience: p.YearsOfExperience,
		AboutYou:          p.AboutYou,
		SummarizedSkills:  p.SummarizedSkills,
		Skills:            skillNames(p.Skills),
	}
}

func ToDocumentResponse(d domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID.String(),
		FileName:  d.FileName,
		MimeType:  d.MimeType,
		HasText:   d.ExtractedText != nil && *d.ExtractedText != "",
		CreatedAt: d.CreatedAt,
	}
}

func skillNames(skills []domain.Skill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}
