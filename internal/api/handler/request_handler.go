package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/guardlink/portal-system/internal/api/metrics"
	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

// RequestHandler handles HTTP requests for service-request operations.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create handles POST /api/requests.
//
// @Summary      Submit a service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  requestResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.CreateRequest(c.Request().Context(), ports.CreateRequestInput{
		UserID:      id.ID,
		ServiceType: req.ServiceType,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(result.ServiceType).Inc()
	return c.JSON(http.StatusCreated, toRequestResponse(result))
}

// List handles GET /api/requests. Clients see only their own requests;
// admins see all.
//
// @Summary      List service requests
// @Tags         requests
// @Produce      json
// @Param        status        query     string  false  "Filter by status"
// @Param        service_type  query     string  false  "Filter by service type"
// @Param        page          query     int     false  "Page (1-based)"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Success      200  {object}  listRequestsResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListRequests(c.Request().Context(), ports.ListRequestsInput{
		Role:        string(id.Role),
		UserID:      id.ID,
		Status:      c.QueryParam("status"),
		ServiceType: c.QueryParam("service_type"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	items := make([]requestResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toRequestResponse(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, listRequestsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/requests/:id.
//
// @Summary      Get a service request
// @Tags         requests
// @Produce      json
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  requestResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "service request not found"})
	}

	result, err := h.service.GetRequest(c.Request().Context(), ports.GetRequestInput{
		ID:     reqID,
		Role:   string(id.Role),
		UserID: id.ID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "service request not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toRequestResponse(result))
}

// UpdateStatus handles PATCH /api/requests/:id/status (admin only).
//
// @Summary      Update a request's status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path      int                         true  "Request id"
// @Param        body  body      updateRequestStatusRequest  true  "New status"
// @Success      200   {object}  requestResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	reqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "service request not found"})
	}

	var req updateRequestStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateRequestStatusInput{
		ID:     reqID,
		Status: req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRequestResponse(result))
}

func toRequestResponse(r *ports.RequestResult) requestResponse {
	return requestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ServiceType: r.ServiceType,
		Location:    r.Location,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}
