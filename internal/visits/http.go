// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package visits

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebelkina/gatehouse/internal/platform/constants"
	"github.com/ebelkina/gatehouse/internal/platform/middleware"
	requestutil "github.com/ebelkina/gatehouse/internal/platform/request"
	"github.com/ebelkina/gatehouse/internal/platform/respond"
)

// Handler implements visit-tracking HTTP endpoints.
type Handler struct {
	visitsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{visitsService: service}
}

// Routes returns a [chi.Router] configured with visit routes.
//
// # Endpoints
//   - GET /visit : Records a visit for the caller and returns the count.
//   - GET /stats : Per-user visit counts for a page.
//
// Both require an authenticated session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireSession)
	router.Get("/visit", handler.visit)
	router.Get("/stats", handler.stats)

	return router
}

// # Request / Response Payloads

// visitResponse is the flat wire shape the visit endpoint has always
// produced; it intentionally bypasses the data envelope.
type visitResponse struct {
	UserID  string `json:"user_id"`
	Page    string `json:"page"`
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

type statsResponse struct {
	Page  string     `json:"page"`
	Items []PageStat `json:"items"`
}

/*
visit records one visit to a page for the authenticated user.

GET /api/v1/visits/visit?page=

Request:
  - Query: `page` (optional, defaults to "protected_page")

Response:
  - 200: {user_id, page, count, message}
  - 401: without an authenticated session
*/
func (handler *Handler) visit(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := requestutil.QueryDefault(request, FieldPage, constants.DefaultVisitPage)

	count, err := handler.visitsService.RecordVisit(request.Context(), identity.UserID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, visitResponse{
		UserID:  identity.UserID,
		Page:    page,
		Count:   count,
		Message: fmt.Sprintf("You have visited this page %d times", count),
	})
}

/*
stats returns per-user visit counts for a page.

GET /api/v1/visits/stats?page=

Request:
  - Query: `page` (optional, defaults to "protected_page")

Response:
  - 200: {page, items: [{login, page, count}, ...]} ordered by count desc, login asc
  - 401: without an authenticated session
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredIdentity(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := requestutil.QueryDefault(request, FieldPage, constants.DefaultVisitPage)

	items, err := handler.visitsService.Stats(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, statsResponse{
		Page:  page,
		Items: items,
	})
}
