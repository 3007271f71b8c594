package handler

import (
	"fmt"
	"net/http"

	"go-clinic-management/internal/report"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (h *ReportHandler) PatientRoster(w http.ResponseWriter, r *http.Request) {
	document, err := h.reportUsecase.PatientRoster(r.Context())
	if err != nil {
		handleUsecaseError(w, err, "Failed to generate report")
		return
	}
	h.serve(w, r, document)
}

func (h *ReportHandler) AppointmentLog(w http.ResponseWriter, r *http.Request) {
	document, err := h.reportUsecase.AppointmentLog(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleUsecaseError(w, err, "Failed to generate report")
		return
	}
	h.serve(w, r, document)
}

func (h *ReportHandler) AppointmentTicket(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	document, err := h.reportUsecase.AppointmentTicket(r.Context(), appointmentID)
	if err != nil {
		handleUsecaseError(w, err, "Failed to generate report")
		return
	}
	h.serve(w, r, document)
}

func (h *ReportHandler) SpecialtyList(w http.ResponseWriter, r *http.Request) {
	document, err := h.reportUsecase.SpecialtyList(r.Context())
	if err != nil {
		handleUsecaseError(w, err, "Failed to generate report")
		return
	}
	h.serve(w, r, document)
}

// ClinicalHistory renders the printable record; recent=1 narrows to the
// default lookback window.
func (h *ReportHandler) ClinicalHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	recentOnly := r.URL.Query().Get("recent") == "1"
	document, err := h.reportUsecase.ClinicalHistory(r.Context(), patientID, recentOnly)
	if err != nil {
		handleUsecaseError(w, err, "Failed to generate report")
		return
	}
	h.serve(w, r, document)
}

// serve writes the rendered document inline, or as an attachment when
// download=1 is set.
func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, document *report.Document) {
	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, document.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(document.Body)
}
