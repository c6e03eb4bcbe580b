package importcsv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/api"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc *rentroll.Service
}

func NewHandler(svc *rentroll.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importRentRoll)
}

type leaseResponse struct {
	ID            uuid.UUID    `json:"id"`
	ApplicationID uuid.UUID    `json:"application_id"`
	Status        lease.Status `json:"status"`
	StartDate     api.Date     `json:"start_date"`
	EndDate       api.Date     `json:"end_date"`
	MonthlyRent   int64        `json:"monthly_rent"`
	CreatedAt     time.Time    `json:"created_at"`
}

type rowErrorResponse struct {
	Row           int       `json:"row"`
	ApplicationID uuid.UUID `json:"application_id"`
	Error         string    `json:"error"`
}

type importResponse struct {
	Profile  string             `json:"profile"`
	Charset  string             `json:"charset"`
	Imported int                `json:"imported"`
	Leases   []leaseResponse    `json:"leases"`
	Failed   []rowErrorResponse `json:"failed"`
}

func (h *Handler) importRentRoll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		api.Error(w, r, apperr.Validation("failed to parse form: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.Error(w, r, apperr.Validation("file field is required"))
		return
	}
	defer file.Close()

	report, err := h.svc.Import(r.Context(), file)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := importResponse{
		Profile:  report.Profile,
		Charset:  string(report.Charset),
		Imported: len(report.Created),
		Leases:   make([]leaseResponse, 0, len(report.Created)),
		Failed:   make([]rowErrorResponse, 0, len(report.Failed)),
	}

	for _, l := range report.Created {
		resp.Leases = append(resp.Leases, leaseResponse{
			ID:            l.ID,
			ApplicationID: l.ApplicationID,
			Status:        l.Status,
			StartDate:     api.NewDate(l.StartDate),
			EndDate:       api.NewDate(l.EndDate),
			MonthlyRent:   l.MonthlyRent,
			CreatedAt:     l.CreatedAt,
		})
	}

	for _, f := range report.Failed {
		resp.Failed = append(resp.Failed, rowErrorResponse{
			Row:           f.Row,
			ApplicationID: f.ApplicationID,
			Error:         f.Err.Error(),
		})
	}

	status := http.StatusCreated

	switch {
	case len(report.Created) == 0 && len(report.Failed) > 0:
		status = http.StatusUnprocessableEntity
	case len(report.Created) == 0:
		status = http.StatusOK
	}

	api.JSON(w, status, resp)
}
