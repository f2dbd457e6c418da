package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/api/metrics"
	"github.com/KiwiKetil/room-scheduler-api/internal/api/middleware"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

type ReservationHandler struct {
	reservationService ports.ReservationService
}

func NewReservationHandler(reservationService ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

type createReservationRequest struct {
	RoomID    string    `json:"roomId" validate:"required,uuid"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

// List returns a page of all reservations. Restricted to admins by route
// policy.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        pageSize   query     int  false  "Page size"
// @Success      200        {object}  ports.ReservationPage
// @Failure      403        {object}  map[string]string
// @Router       /api/v1/reservations [get]
// @Security     BearerAuth
func (h *ReservationHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c)
	reservations, err := h.reservationService.GetReservations(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListByUser returns a page of one user's reservations. The route policy
// limits it to the user themselves or an admin.
//
// @Summary      List a user's reservations
// @Tags         reservations
// @Produce      json
// @Param        id         path      string  true   "User id"
// @Param        page       query     int     false  "Page number"
// @Param        pageSize   query     int     false  "Page size"
// @Success      200        {object}  ports.ReservationPage
// @Failure      403        {object}  map[string]string
// @Router       /api/v1/users/{id}/reservations [get]
// @Security     BearerAuth
func (h *ReservationHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}
	page, pageSize := pageParams(c)
	reservations, err := h.reservationService.GetUserReservations(c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// Get returns a single reservation. Non-admins may only read their own.
//
// @Summary      Get reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  domain.Reservation
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/reservations/{id} [get]
// @Security     BearerAuth
func (h *ReservationHandler) Get(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservationService.GetReservationByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !principal.HasRole(domain.RoleAdmin) && reservation.UserID != principal.Subject {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, reservation)
}

// Create books a room. The booking owner is always the caller unless an
// admin books on another user's behalf with the optional userId field.
//
// @Summary      Create reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      createReservationRequest  true  "Booking window"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/reservations [post]
// @Security     BearerAuth
func (h *ReservationHandler) Create(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req struct {
		createReservationRequest
		UserID string `json:"userId" validate:"omitempty,uuid"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner := principal.Subject
	if req.UserID != "" && principal.HasRole(domain.RoleAdmin) {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
		}
		owner = parsed
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid roomId")
	}

	reservation, err := h.reservationService.CreateReservation(c.Request().Context(), ports.CreateReservationInput{
		UserID:    owner,
		RoomID:    roomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if errors.Is(err, domain.ErrReservationOverlap) {
			metrics.ReservationConflictsTotal.Inc()
		}
		return err
	}

	metrics.ReservationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, reservation)
}

// Delete cancels a reservation. Non-admins may only cancel their own.
//
// @Summary      Delete reservation
// @Tags         reservations
// @Param        id  path  string  true  "Reservation id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/reservations/{id} [delete]
// @Security     BearerAuth
func (h *ReservationHandler) Delete(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	reservation, err := h.reservationService.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.HasRole(domain.RoleAdmin) && reservation.UserID != principal.Subject {
		return domain.ErrForbidden
	}

	if err := h.reservationService.DeleteReservation(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
