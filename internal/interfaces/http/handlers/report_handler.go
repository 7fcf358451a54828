package handlers

import (
	"net/http"

	"github.com/turtacn/AlloyFrontier/internal/application/exploration"
	"github.com/turtacn/AlloyFrontier/internal/application/reporting"
	"github.com/turtacn/AlloyFrontier/pkg/types/alloy"
)

// ReportHandler exposes the report export operation.
type ReportHandler struct {
	service  *exploration.Service
	exporter *reporting.Exporter
}

// NewReportHandler builds the report handler.
func NewReportHandler(service *exploration.Service, exporter *reporting.Exporter) *ReportHandler {
	return &ReportHandler{service: service, exporter: exporter}
}

// Export renders the current dashboard state into a PDF artifact named by
// the active candidate's batch number.  The dashboard state is read, never
// modified; a missing render region fails without side effects.
//
//	POST /api/v1/report/export
func (h *ReportHandler) Export(w http.ResponseWriter, _ *http.Request) {
	snap := h.service.Snapshot()

	var narrative string
	if ins, ok := h.service.Insight(); ok {
		narrative = ins.Narrative
	}

	res, err := h.exporter.Export(reporting.View{
		Candidates: snap.Candidates,
		Selection:  snap.Selection,
		Narrative:  narrative,
	}, h.service.LastRunID())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alloy.ExportResult{
		Filename:    res.Filename,
		BatchNumber: res.BatchNumber,
		SizeBytes:   res.SizeBytes,
	})
}
