package handler

import (
	"io"
	"net/http"

	"evalux/internal/api/middleware"
	"evalux/internal/app/service"
	"evalux/internal/common"

	"github.com/go-chi/chi/v5"
)

// maxCVUploadBytes caps the multipart body; CVs are small documents.
const maxCVUploadBytes = 10 << 20

type CVHandler struct {
	cvService *service.CVService
}

func NewCVHandler(cvService *service.CVService) *CVHandler {
	return &CVHandler{cvService: cvService}
}

func (h *CVHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/upload", h.upload)
	r.Get("/latest", h.latest)
	r.Get("/count", h.count)
}

func (h *CVHandler) upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCVUploadBytes)
	if err := r.ParseMultipartForm(maxCVUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing 'file' field: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Could not read upload: "+err.Error())
		return
	}

	analysis, err := h.cvService.Analyze(r.Context(), userID, header.Filename, data)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, analysis)
}

func (h *CVHandler) count(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	count, err := h.cvService.Count(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]int{"cv_count": count})
}

func (h *CVHandler) latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	analysis, err := h.cvService.Latest(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, analysis)
}
