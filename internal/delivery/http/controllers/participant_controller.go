package controllers

import (
	"log/slog"
	"net/http"

	"eventradar/internal/delivery/http/helpers"
	"eventradar/internal/delivery/http/middleware"
	"eventradar/internal/domain"
)

// ListParticipantsResponse wraps the participants of an event.
type ListParticipantsResponse struct {
	Participants []*domain.ParticipantProfile `json:"participants"`
}

// ListParticipantsSuccessResponse is the success response envelope for getEventParticipants (200).
type ListParticipantsSuccessResponse struct {
	Data  ListParticipantsResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEventParticipants godoc
// @Summary List event participants
// @Description Returns every participant of the event joined with their profile. A missing display name is reported as "Unknown", a missing photo as an empty string.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventIDRequest true "Event whose participants are listed"
// @Success 200 {object} controllers.ListParticipantsSuccessResponse "data.participants in listing order"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid-argument"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthenticated"
// @Failure 429 {object} helpers.APIResponse "error.code: resource-exhausted"
// @Failure 500 {object} helpers.APIResponse "error.code: internal"
// @Router /callable/getEventParticipants [post]
func (c *ParticipantController) GetEventParticipants(w http.ResponseWriter, r *http.Request) {
	var req EventIDRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, _ := middleware.UserIDFromContext(r.Context())
	participants, err := c.Service.ListEventParticipants(r.Context(), req.EventID, callerID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListParticipantsResponse{Participants: participants})
}
