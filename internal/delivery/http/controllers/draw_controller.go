package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/delivery/http/middleware"
	"secretsanta/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// SuccessMessage is returned once every participant has been notified.
const SuccessMessage = "Invitations sent."

type DrawController struct {
	Logger  *slog.Logger
	Service domain.DrawService
}

func NewDrawController(logger *slog.Logger, svc domain.DrawService) *DrawController {
	return &DrawController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateDrawRequest is the request body for POST /draws. Fields mirror the organizer
// form: date is mm/dd/yyyy or empty, budget is a whole number.
type CreateDrawRequest struct {
	Participants []domain.ParticipantSlot `json:"participants"`
	Date         string                   `json:"date"`
	Budget       string                   `json:"budget"`
}

// CreateDrawResponse is the data payload for POST /draws (200).
type CreateDrawResponse struct {
	*domain.DrawResult
	Message string `json:"message"`
}

// CreateDrawSuccessResponse is the success response envelope for POST /draws (200).
type CreateDrawSuccessResponse struct {
	Data  CreateDrawResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CreateDraw godoc
// @Summary Run a Secret Santa draw
// @Description Validates the participants, draws a single gifting cycle and emails every participant their assignment. Nothing is sent if validation fails. If the mail transport fails mid-run, participants already emailed stay notified and the response is 502. Send an Idempotency-Key header to make resubmission safe.
// @Tags draws
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replay key"
// @Param body body controllers.CreateDrawRequest true "Participants, date and budget"
// @Success 200 {object} controllers.CreateDrawSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Failure 502 {object} helpers.APIResponse "error.code: dispatch_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /draws [post]
func (c *DrawController) CreateDraw(w http.ResponseWriter, r *http.Request) {
	var req CreateDrawRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.Draw(r.Context(), domain.DrawRequest{
		Slots:     req.Participants,
		RawDate:   req.Date,
		RawBudget: req.Budget,
	})
	if err != nil {
		var dispatchErr *domain.DispatchError
		switch {
		case errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrInvalidDate),
			errors.Is(err, domain.ErrInvalidBudget):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrInsufficientParticipants),
			errors.Is(err, domain.ErrTooManyParticipants):
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessable, err.Error())
		case errors.As(err, &dispatchErr):
			c.Logger.ErrorContext(r.Context(), "draw dispatch failed", "run_id", dispatchErr.RunID, "notified", dispatchErr.Notified, "err", err)
			helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeDispatchFailed,
				fmt.Sprintf("Sending stopped after %d notification(s) (run %s): %v", dispatchErr.Notified, dispatchErr.RunID, dispatchErr.Err))
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}

	organizer, _ := middleware.OrganizerFromContext(r.Context())
	c.Logger.InfoContext(r.Context(), "draw completed", "run_id", result.RunID, "organizer", organizer, "notified", result.Notified)
	helpers.WriteJSONSuccess(w, http.StatusOK, CreateDrawResponse{DrawResult: result, Message: SuccessMessage})
}

// ListNotificationsResponse is the data payload for GET /draws/{runID}/notifications (200).
type ListNotificationsResponse struct {
	Items      []*domain.DispatchRecord `json:"items"`
	Pagination helpers.PaginationMeta   `json:"pagination"`
}

// ListNotificationsSuccessResponse is the success response envelope for GET /draws/{runID}/notifications (200).
type ListNotificationsSuccessResponse struct {
	Data  ListNotificationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListNotifications godoc
// @Summary List who was notified in a draw
// @Description Returns the dispatch log of a draw run: which addresses were emailed and which failed. It never reveals who drew whom. Use page and page_size query params.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Param runID path string true "Run ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 8, max 50)"
// @Success 200 {object} controllers.ListNotificationsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /draws/{runID}/notifications [get]
func (c *DrawController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")
	if runID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing runID")
		return
	}
	if !uuidRegex.MatchString(runID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid runID")
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListNotifications(r.Context(), runID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "draw run not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if list == nil {
		list = []*domain.DispatchRecord{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListNotificationsResponse{Items: list, Pagination: meta})
}
