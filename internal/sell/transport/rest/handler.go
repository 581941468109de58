// Package rest provides HTTP handlers for sell-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	perrors "github.com/DayanAguilar/pharmacy-api/internal/product/errors"
	sellerrors "github.com/DayanAguilar/pharmacy-api/internal/sell/errors"
	"github.com/DayanAguilar/pharmacy-api/internal/sell/service"
	"github.com/DayanAguilar/pharmacy-api/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service  service.SellService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the sell API with the provided service.
func NewHandler(service service.SellService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the sell handlers.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/sells", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{date}", h.ReportByDate)
	})
}

// Create handles the recording of a new sale.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var sellCreateDto service.SellCreateDto
	if err := json.NewDecoder(r.Body).Decode(&sellCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create sell",
		"product_id", sellCreateDto.ProductID, "quantity", sellCreateDto.Quantity)
	if err := h.validate.Struct(sellCreateDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			// If the error is a validation error, we can extract field-specific errors.
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "min", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		// If it's not a validation error, we can return a generic error.
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	newSell, err := h.service.Create(r.Context(), sellCreateDto)
	if err != nil {
		switch {
		case errors.Is(err, perrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found", "product_id", sellCreateDto.ProductID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", sellCreateDto.ProductID))
		case errors.Is(err, sellerrors.ErrInsufficientStock):
			mLogger.WarnContext(r.Context(), "Insufficient stock", "product_id", sellCreateDto.ProductID, "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case errors.Is(err, sellerrors.ErrConflict):
			mLogger.WarnContext(r.Context(), "Concurrent modification detected", "product_id", sellCreateDto.ProductID)
			web.RespondError(w, mLogger, http.StatusConflict, "Product was modified by another transaction, please retry")
		default:
			mLogger.ErrorContext(r.Context(), "Error creating sell", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create sell")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Sell created successfully", slog.Int64("ID", newSell.SellID))
	web.RespondJSON(w, mLogger, http.StatusCreated, newSell)
}

// ReportByDate retrieves the sales report for a date given as YYYY-MM-DD.
func (h *Handler) ReportByDate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	pathValueDate := r.PathValue("date")
	date, err := time.Parse(dateLayout, pathValueDate)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Malformed date", "date", pathValueDate)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to report sells by date", "date", pathValueDate)
	list, err := h.service.ReportByDate(r.Context(), date)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving sell report", "date", pathValueDate, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch sells")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved sell report", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
