package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clinagenda/internal/exceptions/service"
	httputil "clinagenda/pkg/http"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

type ExceptionHandler struct {
	service service.ExceptionService
	log     *logger.Logger
}

func NewExceptionHandler(service service.ExceptionService, log *logger.Logger) *ExceptionHandler {
	return &ExceptionHandler{
		service: service,
		log:     log,
	}
}

// Create records a per-date override: a cancellation or a manual
// working window for one calendar date.
func (h *ExceptionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var exc model.Exception
	if err := json.NewDecoder(r.Body).Decode(&exc); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &exc); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, exc); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ExceptionHandler) ListByProfessional(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	professionalID := ps.ByName("id")
	if professionalID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "ListByProfessional", "operation", "WriteJSON", "error", err)
		}
		return
	}

	exceptions, err := h.service.ListByProfessional(r.Context(), professionalID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByProfessional", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, exceptions); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByProfessional", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ExceptionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/excepciones", h.Create)
	router.GET("/excepciones/profesional/:id", h.ListByProfessional)
}
