package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/layby/internal/http/api"
	"github.com/MrJamesThe3rd/layby/internal/importer"
	"github.com/MrJamesThe3rd/layby/internal/payment"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type outcomeResponse struct {
	Line      int           `json:"line"`
	PaymentID *uuid.UUID    `json:"payment_id,omitempty"`
	State     payment.State `json:"state,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type reportResponse struct {
	Format   string            `json:"format"`
	Charset  string            `json:"charset"`
	Recorded int               `json:"recorded"`
	Failed   int               `json:"failed"`
	Outcomes []outcomeResponse `json:"outcomes"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		api.Error(w, r, api.Invalid("form"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.Error(w, r, api.Invalid("file"))
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), actor, file)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toReportResponse(report))
}

func toReportResponse(report *importer.Report) reportResponse {
	resp := reportResponse{
		Format:   report.Format,
		Charset:  report.Charset,
		Recorded: report.Recorded,
		Failed:   report.Failed,
		Outcomes: make([]outcomeResponse, 0, len(report.Outcomes)),
	}

	for _, o := range report.Outcomes {
		out := outcomeResponse{Line: o.Line, PaymentID: o.PaymentID, State: o.State}
		if o.Err != nil {
			out.Error = o.Err.Error()
		}

		resp.Outcomes = append(resp.Outcomes, out)
	}

	return resp
}
