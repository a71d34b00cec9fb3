package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clinagenda/internal/availability/service"
	httputil "clinagenda/pkg/http"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// DateHoursResponse carries the effective window for one date. Window
// is null when the day is cancelled or has no schedule at all; clients
// render that as "hours to be confirmed".
type DateHoursResponse struct {
	Date   string            `json:"date"`
	Window *model.TimeWindow `json:"window"`
}

// Resolve returns every bookable date for the professional, templates
// and manual overrides already merged, sorted by date.
func (h *AvailabilityHandler) Resolve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	professionalID := ps.ByName("id")
	if professionalID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Resolve", "operation", "WriteJSON", "error", err)
		}
		return
	}

	days, err := h.service.Resolve(r.Context(), professionalID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Resolve", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, days); err != nil {
		h.log.Error("failed to write success response", "handler", "Resolve", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) DateHours(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	professionalID := ps.ByName("id")
	date := ps.ByName("fecha")
	if professionalID == "" || date == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID and fecha parameters are required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "DateHours", "operation", "WriteJSON", "error", err)
		}
		return
	}

	window, err := h.service.DateHours(r.Context(), professionalID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DateHours", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, DateHoursResponse{Date: date, Window: window}); err != nil {
		h.log.Error("failed to write success response", "handler", "DateHours", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/horarios/fechas/:id", h.Resolve)
	router.GET("/horarios/fechas/:id/:fecha", h.DateHours)
}
