package controllers

import (
	"log/slog"
	"net/http"

	"eventradar/internal/delivery/http/helpers"
	"eventradar/internal/delivery/http/middleware"
	"eventradar/internal/domain"
)

// EventIDRequest is the request body of the event callables.
type EventIDRequest struct {
	EventID string `json:"eventId"`
}

// DeleteEventResponse is the result of a successful deletion.
type DeleteEventResponse struct {
	Success bool `json:"success"`
}

// DeleteEventSuccessResponse is the success response envelope for deleteEvent (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event with its participants, channels and messages, plus its stored image. Only organizers of the event may call it. Sub-deletions are best-effort.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventIDRequest true "Event to delete"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data.success is true"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid-argument"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: permission-denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not-found"
// @Failure 429 {object} helpers.APIResponse "error.code: resource-exhausted"
// @Failure 500 {object} helpers.APIResponse "error.code: internal"
// @Router /callable/deleteEvent [post]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	var req EventIDRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, _ := middleware.UserIDFromContext(r.Context())
	if err := c.Service.DeleteEvent(r.Context(), req.EventID, callerID); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Success: true})
}
