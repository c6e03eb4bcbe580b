package template

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/api"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template"
)

type Handler struct {
	svc *template.Service
}

func NewHandler(svc *template.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
}

type templateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Clauses   []string  `json:"clauses"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(t *template.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Clauses:   t.Clauses,
		CreatedAt: t.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := make([]templateResponse, len(templates))
	for i, t := range templates {
		resp[i] = toResponse(t)
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.URLParamUUID(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(t))
}

type createRequest struct {
	Name    string   `json:"name"`
	Clauses []string `json:"clauses"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), req.Name, req.Clauses)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(t))
}
