package lease

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/api"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

type Handler struct {
	svc *lease.Service
}

func NewHandler(svc *lease.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/renewal-candidates", h.renewalCandidates)
	r.Get("/stats", h.stats)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/send", h.sendForSignature)
	r.Post("/{id}/sign", h.sign)
	r.Post("/{id}/renew", h.renew)
	r.Post("/{id}/terminate", h.terminate)
}

type createRequest struct {
	StartDate       api.Date     `json:"start_date"`
	EndDate         api.Date     `json:"end_date"`
	MonthlyRent     int64        `json:"monthly_rent"`
	SecurityDeposit int64        `json:"security_deposit"`
	Terms           *lease.Terms `json:"terms"`
	DocumentURL     string       `json:"document_url"`
}

// CreateFromApplication is mounted under the applications routes as
// POST /applications/{id}/lease.
func (h *Handler) CreateFromApplication(w http.ResponseWriter, r *http.Request) {
	appID, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req createRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	params := lease.CreateParams{
		StartDate:       req.StartDate.Time,
		EndDate:         req.EndDate.Time,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		DocumentURL:     req.DocumentURL,
	}

	if req.Terms != nil {
		params.Terms = *req.Terms
	}

	l, err := h.svc.CreateFromApplication(r.Context(), appID, params)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(l, h.svc.Now()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter lease.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := lease.Status(s)
		if !status.Valid() {
			api.Error(w, r, apperr.Validation("invalid status %q", s))
			return
		}

		filter.Status = new(status)
	}

	var err error

	if filter.LandlordID, err = api.QueryUUID(r, "landlord_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if filter.ApplicationID, err = api.QueryUUID(r, "application_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if filter.OriginalLeaseID, err = api.QueryUUID(r, "original_lease_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	leases, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(leases, h.svc.Now()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(l, h.svc.Now()))
}

type updateRequest struct {
	StartDate       *api.Date    `json:"start_date"`
	EndDate         *api.Date    `json:"end_date"`
	MonthlyRent     *int64       `json:"monthly_rent"`
	SecurityDeposit *int64       `json:"security_deposit"`
	Terms           *lease.Terms `json:"terms"`
	DocumentURL     *string      `json:"document_url"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req updateRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.UpdateDraft(r.Context(), id, lease.UpdateParams{
		StartDate:       req.StartDate.Ptr(),
		EndDate:         req.EndDate.Ptr(),
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		Terms:           req.Terms,
		DocumentURL:     req.DocumentURL,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(l, h.svc.Now()))
}

type sendRequest struct {
	DocumentURL string `json:"document_url"`
}

func (h *Handler) sendForSignature(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req sendRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.SendForSignature(r.Context(), id, req.DocumentURL)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(l, h.svc.Now()))
}

func (h *Handler) sign(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	l, err := h.svc.Sign(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(l, h.svc.Now()))
}

type renewRequest struct {
	NewEndDate     api.Date            `json:"new_end_date"`
	NewMonthlyRent *int64              `json:"new_monthly_rent"`
	RentIncrease   *lease.RentIncrease `json:"rent_increase"`
	Terms          *lease.Terms        `json:"terms"`
}

func (h *Handler) renew(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req renewRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	res, err := h.svc.Renew(r.Context(), id, lease.RenewParams{
		NewEndDate:     req.NewEndDate.Time,
		NewMonthlyRent: req.NewMonthlyRent,
		RentIncrease:   req.RentIncrease,
		Terms:          req.Terms,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, renewResponse{
		Lease:   toResponse(res.Lease, h.svc.Now()),
		Warning: res.Warning,
	})
}

type terminateRequest struct {
	TerminationDate api.Date `json:"termination_date"`
	Reason          string   `json:"reason"`
	RefundDeposit   bool     `json:"refund_deposit"`
}

func (h *Handler) terminate(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req terminateRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	l, refund, err := h.svc.Terminate(r.Context(), id, lease.TerminateParams{
		TerminationDate: req.TerminationDate.Time,
		Reason:          req.Reason,
		RefundDeposit:   req.RefundDeposit,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, terminateResponse{
		Lease:         toResponse(l, h.svc.Now()),
		DepositRefund: depositRefundResponse{Refund: refund.Refund, Amount: refund.Amount},
	})
}

func (h *Handler) renewalCandidates(w http.ResponseWriter, r *http.Request) {
	var (
		q   lease.CandidateQuery
		err error
	)

	if q.HorizonDays, err = api.QueryInt(r, "horizon_days"); err != nil {
		api.Error(w, r, err)
		return
	}

	if q.LandlordID, err = api.QueryUUID(r, "landlord_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	candidates, err := h.svc.RenewalCandidates(r.Context(), q)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toCandidateList(candidates, h.svc.Now()))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	landlordID, err := api.QueryUUID(r, "landlord_id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	stats, err := h.svc.Stats(r.Context(), lease.StatsQuery{LandlordID: landlordID})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toStatsResponse(stats))
}
