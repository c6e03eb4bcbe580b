package application

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/api"
)

type Handler struct {
	svc *application.Service
}

func NewHandler(svc *application.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.decide)
}

type applicationResponse struct {
	ID              uuid.UUID          `json:"id"`
	PropertyID      uuid.UUID          `json:"property_id"`
	ApplicantID     uuid.UUID          `json:"applicant_id"`
	ApplicantName   string             `json:"applicant_name"`
	Status          application.Status `json:"status"`
	MonthlyRent     int64              `json:"monthly_rent"`
	SecurityDeposit int64              `json:"security_deposit"`
	Property        *propertyResponse  `json:"property,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
}

type propertyResponse struct {
	LandlordID   uuid.UUID `json:"landlord_id"`
	Address      string    `json:"address"`
	Unit         string    `json:"unit,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
}

func toResponse(a *application.Application) applicationResponse {
	resp := applicationResponse{
		ID:              a.ID,
		PropertyID:      a.PropertyID,
		ApplicantID:     a.ApplicantID,
		ApplicantName:   a.ApplicantName,
		Status:          a.Status,
		MonthlyRent:     a.MonthlyRent,
		SecurityDeposit: a.SecurityDeposit,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.Property != nil {
		resp.Property = &propertyResponse{
			LandlordID:   a.Property.LandlordID,
			Address:      a.Property.Address,
			Unit:         a.Property.Unit,
			Neighborhood: a.Property.Neighborhood,
		}
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter application.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := application.Status(s)
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

	if filter.PropertyID, err = api.QueryUUID(r, "property_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	apps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := make([]applicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = toResponse(a)
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	app, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(app))
}

type decideRequest struct {
	Status application.Status `json:"status"`
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req decideRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	app, err := h.svc.Decide(r.Context(), id, req.Status)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(app))
}
