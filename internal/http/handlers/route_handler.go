// Route HTTP handlers.
//
// This file exposes REST endpoints for the route catalog:
//   - POST   /routes        (add)
//   - GET    /routes        (list recent, optional count)
//   - GET    /routes/{id}   (fetch)
//   - PUT    /routes/{id}   (replace)
//   - DELETE /routes/{id}   (remove)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Store failures arrive
// pre-classified and are mapped to statuses by failStore.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/summitlog/go-crag-backend/internal/domain"
	"github.com/summitlog/go-crag-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RouteService defines route catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RouteService interface {
	// Add persists a new route and returns it with its assigned id.
	Add(ctx context.Context, r *domain.Route) (*domain.Route, error)
	// ListRecent returns up to limit routes, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Route, error)
	// GetByID fetches a single route.
	GetByID(ctx context.Context, id int32) (*domain.Route, error)
	// UpdateByID replaces the mutable fields of a route.
	UpdateByID(ctx context.Context, id int32, r *domain.Route) error
	// DeleteByID removes a route (idempotent).
	DeleteByID(ctx context.Context, id int32) error
}

// ClimberService defines climber registry operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ClimberService interface {
	// Add registers a new climber and returns it with its assigned id.
	Add(ctx context.Context, c *domain.Climber) (*domain.Climber, error)
	// ListRecent returns up to limit climbers, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Climber, error)
	// GetByID fetches a single climber.
	GetByID(ctx context.Context, id int32) (*domain.Climber, error)
	// DeleteByID removes a climber (idempotent).
	DeleteByID(ctx context.Context, id int32) error
}

// ClimbService defines review operations keyed by (climber, route) pair.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ClimbService interface {
	// GetReview returns the stored climb for the pair, ids included.
	GetReview(ctx context.Context, climberID, routeID int32) (*domain.Climb, error)
	// AddReview records a new review for the pair.
	AddReview(ctx context.Context, climberID, routeID int32, rev domain.Review) error
	// UpdateReview replaces the stored review for the pair.
	UpdateReview(ctx context.Context, climberID, routeID int32, rev domain.Review) error
	// DeleteReview removes the review for the pair (idempotent).
	DeleteReview(ctx context.Context, climberID, routeID int32) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for routes, climbers, and reviews.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	routeSvc   RouteService
	climberSvc ClimberService
	climbSvc   ClimbService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(routeSvc RouteService, climberSvc ClimberService, climbSvc ClimbService) *Handlers {
	return &Handlers{routeSvc: routeSvc, climberSvc: climberSvc, climbSvc: climbSvc}
}

//
// DTOs
//

// ListRoutesRequest is the optional JSON payload for listing routes.
type ListRoutesRequest struct {
	// NumberRoutes bounds the result size; the server default applies
	// when omitted or non-positive.
	NumberRoutes int `json:"number_routes" example:"5"`
}

//
// Helpers
//

// pathID parses an int32 path parameter, failing the request with 400 when it
// is not a decimal int32. The bool result reports whether the caller should
// continue.
func pathID(c *gin.Context, name string) (int32, bool) {
	id, err := utils.ParseInt32(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// bodyCount extracts a list count from an optional JSON body, falling back to
// the like-named query parameter. A malformed body fails the request.
func bodyCount(c *gin.Context, bind func() (int, error), query string) (int, bool) {
	if c.Request.ContentLength != 0 {
		n, err := bind()
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return 0, false
		}
		return n, true
	}
	return utils.AtoiDefault(c.Query(query), 0), true
}

// validRoute checks the client-controlled fields of a route payload.
func validRoute(r *domain.Route) bool {
	return strings.TrimSpace(r.Name) != "" && r.Difficulty.Valid()
}

//
// Handlers
//

// CreateRoute godoc
// @ID          createRoute
// @Summary     Add a climbing route
// @Description Persists a new route and returns it with its assigned id.
// @Tags        Routes
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.Route  true  "Route payload (id ignored)"
//
// @Success     200  {object}  domain.Route
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /routes [post]
func (h *Handlers) CreateRoute(c *gin.Context) {
	var route domain.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if !validRoute(&route) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and difficulty are required")
		return
	}

	created, err := h.routeSvc.Add(c.Request.Context(), &route)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, created)
}

// ListRoutes godoc
// @ID          listRoutes
// @Summary     List recently added routes
// @Description Returns the most recently added routes, newest first. The count
// @Description may be supplied as a JSON body or a query parameter; the server
// @Description default applies when omitted or non-positive.
// @Tags        Routes
// @Accept      json
// @Produce     json
//
// @Param       number_routes  query  int  false  "Maximum routes to return"  minimum(1) default(5)
// @Param       body           body   handlers.ListRoutesRequest  false  "Optional count payload"
//
// @Success     200  {array}   domain.Route
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /routes [get]
func (h *Handlers) ListRoutes(c *gin.Context) {
	limit, proceed := bodyCount(c, func() (int, error) {
		var req ListRoutesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return 0, err
		}
		return req.NumberRoutes, nil
	}, "number_routes")
	if !proceed {
		return
	}

	routes, err := h.routeSvc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, routes)
}

// GetRoute godoc
// @ID          getRoute
// @Summary     Fetch a route by id
// @Tags        Routes
// @Produce     json
//
// @Param       id  path  int  true  "Route ID"  example(1)
//
// @Success     200  {object}  domain.Route
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id or no such route"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /routes/{id} [get]
func (h *Handlers) GetRoute(c *gin.Context) {
	id, proceed := pathID(c, "id")
	if !proceed {
		return
	}

	route, err := h.routeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	ok(c, http.StatusOK, route)
}

// UpdateRoute godoc
// @ID          updateRoute
// @Summary     Replace a route
// @Description Replaces name, difficulty and position of the route. Updating a
// @Description nonexistent id succeeds without effect.
// @Tags        Routes
// @Accept      json
// @Produce     json
//
// @Param       id    path  int           true  "Route ID"  example(1)
// @Param       body  body  domain.Route  true  "Replacement payload (id ignored)"
//
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /routes/{id} [put]
func (h *Handlers) UpdateRoute(c *gin.Context) {
	id, proceed := pathID(c, "id")
	if !proceed {
		return
	}

	var route domain.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if !validRoute(&route) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and difficulty are required")
		return
	}

	if err := h.routeSvc.UpdateByID(c.Request.Context(), id, &route); err != nil {
		failStore(c, err)
		return
	}
	done(c)
}

// DeleteRoute godoc
// @ID          deleteRoute
// @Summary     Remove a route
// @Description Removes the route and, through cascade, any reviews of it.
// @Description Deleting a nonexistent id succeeds.
// @Tags        Routes
// @Produce     json
//
// @Param       id  path  int  true  "Route ID"  example(1)
//
// @Success     200  {string}  string  "OK"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     502  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /routes/{id} [delete]
func (h *Handlers) DeleteRoute(c *gin.Context) {
	id, proceed := pathID(c, "id")
	if !proceed {
		return
	}

	if err := h.routeSvc.DeleteByID(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}
	done(c)
}
