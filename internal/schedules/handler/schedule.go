package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clinagenda/internal/schedules/service"
	httputil "clinagenda/pkg/http"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

// Create registers a recurring weekly rule. One request may carry
// several weekdays; the service materializes one template per weekday
// atomically and the response echoes every created row.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var create model.ScheduleTemplateCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	templates, err := h.service.Create(r.Context(), &create)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, templates); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// ListByProfessional returns the raw template rows for a professional.
// An unknown professional yields an empty list, not a 404.
func (h *ScheduleHandler) ListByProfessional(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	professionalID := ps.ByName("id")
	if professionalID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "ListByProfessional", "operation", "WriteJSON", "error", err)
		}
		return
	}

	templates, err := h.service.ListByProfessional(r.Context(), professionalID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByProfessional", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, templates); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByProfessional", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/horarios", h.Create)
	router.GET("/horarios/profesional/:id", h.ListByProfessional)
}
