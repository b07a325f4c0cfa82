// Climber HTTP handlers.
//
// This file exposes REST endpoints for the climber registry:
//   - POST   /climbers               (register)
//   - GET    /climbers               (list recent, optional count)
//   - GET    /climbers/{climber_id}  (fetch)
//   - DELETE /climbers/{climber_id}  (remove)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// ListClimbersRequest is the optional JSON payload for listing climbers.
type ListClimbersRequest struct {
	// NumberClimbers bounds the result size; the server default applies
	// when omitted or non-positive.
	NumberClimbers int `json:"number_climbers" example:"5"`
}

// CreateClimber godoc
// @ID          createClimber
// @Summary     Register a climber
// @Description Persists a new climber and returns it with its assigned id.
// @Tags        Climbers
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.Climber  true  "Climber payload (id ignored)"
//
// @Success     200  {object}  domain.Climber
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers [post]
func (h *Handlers) CreateClimber(c *gin.Context) {
	var climber domain.Climber
	if err := c.ShouldBindJSON(&climber); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(climber.Username) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username is required")
		return
	}

	created, err := h.climberSvc.Add(c.Request.Context(), &climber)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, created)
}

// ListClimbers godoc
// @ID          listClimbers
// @Summary     List recently registered climbers
// @Description Returns the most recently registered climbers, newest first.
// @Description The count may be supplied as a JSON body or a query parameter;
// @Description the server default applies when omitted or non-positive.
// @Tags        Climbers
// @Accept      json
// @Produce     json
//
// @Param       number_climbers  query  int  false  "Maximum climbers to return"  minimum(1) default(5)
// @Param       body             body   handlers.ListClimbersRequest  false  "Optional count payload"
//
// @Success     200  {array}   domain.Climber
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers [get]
func (h *Handlers) ListClimbers(c *gin.Context) {
	limit, proceed := bodyCount(c, func() (int, error) {
		var req ListClimbersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return 0, err
		}
		return req.NumberClimbers, nil
	}, "number_climbers")
	if !proceed {
		return
	}

	climbers, err := h.climberSvc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, climbers)
}

// GetClimber godoc
// @ID          getClimber
// @Summary     Fetch a climber by id
// @Tags        Climbers
// @Produce     json
//
// @Param       climber_id  path  int  true  "Climber ID"  example(1)
//
// @Success     200  {object}  domain.Climber
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id or no such climber"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers/{climber_id} [get]
func (h *Handlers) GetClimber(c *gin.Context) {
	id, proceed := pathID(c, "climber_id")
	if !proceed {
		return
	}

	climber, err := h.climberSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, climber)
}

// DeleteClimber godoc
// @ID          deleteClimber
// @Summary     Remove a climber
// @Description Removes the climber and, through cascade, their reviews.
// @Description Deleting a nonexistent id succeeds.
// @Tags        Climbers
// @Produce     json
//
// @Param       climber_id  path  int  true  "Climber ID"  example(1)
//
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers/{climber_id} [delete]
func (h *Handlers) DeleteClimber(c *gin.Context) {
	id, proceed := pathID(c, "climber_id")
	if !proceed {
		return
	}

	if err := h.climberSvc.DeleteByID(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}
	done(c)
}
