// Review HTTP handlers.
//
// This file exposes REST endpoints for route reviews, addressed by the
// (climber, route) pair rather than a surrogate id:
//   - GET    /climbers/{climber_id}/{route_id}  (fetch review)
//   - POST   /climbers/{climber_id}/{route_id}  (leave review)
//   - PUT    /climbers/{climber_id}/{route_id}  (replace review)
//   - DELETE /climbers/{climber_id}/{route_id}  (remove review)
//
// A climber leaves at most one review per route; a second POST for the same
// pair is rejected by the store.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// ReviewRequest is the JSON payload for leaving or replacing a review.
//
// Rating is a pointer so that an explicit 0 is distinguishable from an
// omitted field; out-of-range values are clamped into [1, 10] rather than
// rejected.
type ReviewRequest struct {
	Rating         *int        `json:"rating" binding:"required" example:"8"`
	Review         string      `json:"review" example:"Sustained crimping, superb rock"`
	CompletionDate domain.Date `json:"completion_date" binding:"required" swaggertype:"string" example:"2024-06-15"`
}

// reviewPair parses both path ids of a review endpoint.
func reviewPair(c *gin.Context) (climberID, routeID int32, proceed bool) {
	climberID, proceed = pathID(c, "climber_id")
	if !proceed {
		return 0, 0, false
	}
	routeID, proceed = pathID(c, "route_id")
	if !proceed {
		return 0, 0, false
	}
	return climberID, routeID, true
}

// bindReview decodes and validates a review payload, converting it to the
// domain type with the rating clamped.
func bindReview(c *gin.Context) (domain.Review, bool) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating and completion_date are required")
		return domain.Review{}, false
	}
	return domain.NewReview(*req.Rating, req.Review, req.CompletionDate), true
}

// GetReview godoc
// @ID          getReview
// @Summary     Fetch a climber's review of a route
// @Tags        Reviews
// @Produce     json
//
// @Param       climber_id  path  int  true  "Climber ID"  example(1)
// @Param       route_id    path  int  true  "Route ID"    example(1)
//
// @Success     200  {object}  domain.Climb
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id or no review for the pair"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers/{climber_id}/{route_id} [get]
func (h *Handlers) GetReview(c *gin.Context) {
	climberID, routeID, proceed := reviewPair(c)
	if !proceed {
		return
	}

	climb, err := h.climbSvc.GetReview(c.Request.Context(), climberID, routeID)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, climb)
}

// CreateReview godoc
// @ID          createReview
// @Summary     Leave a review on a route
// @Description Records the climber's rating, text and completion date for the
// @Description route. Each climber may review a route once; a second review
// @Description for the same pair is rejected by the store.
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       climber_id  path  int                     true  "Climber ID"  example(1)
// @Param       route_id    path  int                     true  "Route ID"    example(1)
// @Param       body        body  handlers.ReviewRequest  true  "Review payload"
//
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers/{climber_id}/{route_id} [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	climberID, routeID, proceed := reviewPair(c)
	if !proceed {
		return
	}
	rev, proceed := bindReview(c)
	if !proceed {
		return
	}

	if err := h.climbSvc.AddReview(c.Request.Context(), climberID, routeID, rev); err != nil {
		failStore(c, err)
		return
	}
	done(c)
}

// UpdateReview godoc
// @ID          updateReview
// @Summary     Replace a climber's review of a route
// @Description Replaces rating, text and completion date of the stored review.
// @Description Updating a pair with no review is reported as not found.
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       climber_id  path  int                     true  "Climber ID"  example(1)
// @Param       route_id    path  int                     true  "Route ID"    example(1)
// @Param       body        body  handlers.ReviewRequest  true  "Replacement payload"
//
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or no review for the pair"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers/{climber_id}/{route_id} [put]
func (h *Handlers) UpdateReview(c *gin.Context) {
	climberID, routeID, proceed := reviewPair(c)
	if !proceed {
		return
	}
	rev, proceed := bindReview(c)
	if !proceed {
		return
	}

	if err := h.climbSvc.UpdateReview(c.Request.Context(), climberID, routeID, rev); err != nil {
		failStore(c, err)
		return
	}
	done(c)
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Remove a climber's review of a route
// @Description Deleting a pair with no review succeeds.
// @Tags        Reviews
// @Produce     json
//
// @Param       climber_id  path  int  true  "Climber ID"  example(1)
// @Param       route_id    path  int  true  "Route ID"    example(1)
//
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /climbers/{climber_id}/{route_id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	climberID, routeID, proceed := reviewPair(c)
	if !proceed {
		return
	}

	if err := h.climbSvc.DeleteReview(c.Request.Context(), climberID, routeID); err != nil {
		failStore(c, err)
		return
	}
	done(c)
}
