package handler

import (
	"net/http"

	"fitconnect-backend/internal/professionals/domain"
	"fitconnect-backend/internal/professionals/ports"
	"fitconnect-backend/internal/professionals/service"
	"fitconnect-backend/internal/professionals/transport"
	"fitconnect-backend/platform/httpkit"
	"fitconnect-backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc      *service.Service
	enqueuer ports.ScreeningEnqueuer
	val      *validator.Validator
}

func New(svc *service.Service, enqueuer ports.ScreeningEnqueuer, val *validator.Validator) *Handler {
	return &Handler{svc: svc, enqueuer: enqueuer, val: val}
}

// GetPublicProfile serves the public view. Unverified profiles 404.
func (h *Handler) GetPublicProfile(c *gin.Context) {
	professionalID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.svc.GetPublicProfile(c.Request.Context(), professionalID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPublicProfileResponse(profile))
}

func (h *Handler) GetOwnProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	profile, err := h.svc.GetOwnProfile(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToProfileResponse(profile))
}

func (h *Handler) UpdateOwnProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	profile, err := h.svc.UpdateOwnProfile(c.Request.Context(), identity.UserID(),
		req.Profession, req.YearsOfExperience, req.Qualifications, req.AboutYou, req.SocialLinks)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToProfileResponse(profile))
}

func (h *Handler) RequestDocumentUpload(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.DocumentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	upload, err := h.svc.RequestDocumentUpload(c.Request.Context(), identity.UserID(), req.FileName, req.MimeType, req.SizeBytes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.DocumentUploadResponse{
		Document:  transport.ToDocumentResponse(upload.Document),
		UploadURL: upload.UploadURL,
	})
}

func (h *Handler) ListOwnDocuments(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	docs, err := h.svc.ListOwnDocuments(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toDocumentResponses(docs))
}

func (h *Handler) GetDocumentDownloadURL(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	documentID, ok := parseUUIDParam(c, "docId")
	if !ok {
		return
	}

	url, err := h.svc.DocumentDownloadURL(c.Request.Context(), identity.UserID(), identity.HasRole("ADMIN"), documentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.DownloadURLResponse{DownloadURL: url})
}

func (h *Handler) AttachDocumentText(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	documentID, ok := parseUUIDParam(c, "docId")
	if !ok {
		return
	}

	var req transport.AttachDocumentTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.AttachDocumentText(c.Request.Context(), identity.UserID(), documentID, req.Text); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "document text stored"})
}

// TriggerScreening enqueues an asynchronous screening run for the caller.
func (h *Handler) TriggerScreening(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	if err := h.enqueuer.EnqueueScreening(c.Request.Context(), identity.UserID()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"message": "screening scheduled"})
}

// Admin handlers.

func (h *Handler) ListPending(c *gin.Context) {
	profiles, err := h.svc.ListPending(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	out := make([]transport.ProfileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = transport.ToProfileResponse(p)
	}
	httpkit.OK(c, out)
}

func (h *Handler) ListDocumentsForReview(c *gin.Context) {
	professionalID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	docs, err := h.svc.ListDocumentsForReview(c.Request.Context(), professionalID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toDocumentResponses(docs))
}

func (h *Handler) SetVerificationStatus(c *gin.Context) {
	professionalID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req transport.SetVerificationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	profile, err := h.svc.SetVerificationStatus(c.Request.Context(), professionalID, domain.ProfileStatus(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToProfileResponse(profile))
}

// ScreenNow runs screening synchronously, for admin re-checks.
func (h *Handler) ScreenNow(c *gin.Context) {
	professionalID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Screen(c.Request.Context(), professionalID); httpkit.HandleError(c, err) {
		return
	}

	profile, err := h.svc.GetOwnProfile(c.Request.Context(), professionalID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToProfileResponse(profile))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func toDocumentResponses(docs []domain.Document) []transport.DocumentResponse {
	out := make([]transport.DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = transport.ToDocumentResponse(doc)
	}
	return out
}
