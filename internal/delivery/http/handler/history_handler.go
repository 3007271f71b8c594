package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
	"go-clinic-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type HistoryHandler struct {
	historyUsecase usecase.HistoryUsecase
	validator      *validator.CustomValidator
}

func NewHistoryHandler(historyUsecase usecase.HistoryUsecase, validator *validator.CustomValidator) *HistoryHandler {
	return &HistoryHandler{
		historyUsecase: historyUsecase,
		validator:      validator,
	}
}

// GetHistory returns the patient's clinical history, creating it on first
// access. The recent query flag narrows entries to the default lookback
// window.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var since *time.Time
	if r.URL.Query().Get("recent") == "1" {
		cutoff := time.Now().Add(-usecase.RecentEntriesWindow)
		since = &cutoff
	}

	history, err := h.historyUsecase.GetHistory(r.Context(), patientID, since)
	if err != nil {
		handleUsecaseError(w, err, "Failed to get clinical history")
		return
	}

	response.Success(w, http.StatusOK, "Clinical history retrieved successfully", history)
}

func (h *HistoryHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.historyUsecase.AddEntry(r.Context(), principal, patientID, req.Content)
	if err != nil {
		handleUsecaseError(w, err, "Failed to add entry")
		return
	}

	response.Success(w, http.StatusCreated, "Entry added successfully", entry)
}

func (h *HistoryHandler) EditEntry(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}
	entryID, err := uuid.Parse(vars["entryId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry ID", nil)
		return
	}

	var req dto.EditEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.historyUsecase.EditEntry(r.Context(), principal, patientID, entryID, req.Content)
	if err != nil {
		handleUsecaseError(w, err, "Failed to edit entry")
		return
	}

	response.Success(w, http.StatusOK, "Entry updated successfully", entry)
}

func (h *HistoryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}
	entryID, err := uuid.Parse(vars["entryId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry ID", nil)
		return
	}

	if err := h.historyUsecase.DeleteEntry(r.Context(), principal, patientID, entryID); err != nil {
		handleUsecaseError(w, err, "Failed to delete entry")
		return
	}

	response.Success(w, http.StatusOK, "Entry deleted successfully", nil)
}

func (h *HistoryHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	versions, err := h.historyUsecase.ListVersions(r.Context(), patientID)
	if err != nil {
		handleUsecaseError(w, err, "Failed to list versions")
		return
	}

	response.Success(w, http.StatusOK, "Versions retrieved successfully", versions)
}

func (h *HistoryHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}
	versionID, err := uuid.Parse(vars["versionId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	version, err := h.historyUsecase.GetVersion(r.Context(), patientID, versionID)
	if err != nil {
		handleUsecaseError(w, err, "Failed to get version")
		return
	}

	response.Success(w, http.StatusOK, "Version retrieved successfully", version)
}
