package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

type RoomHandler struct {
	roomService ports.RoomService
}

func NewRoomHandler(roomService ports.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

type roomRequest struct {
	RoomName   string `json:"roomName" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
	HasMonitor bool   `json:"hasMonitor"`
}

// List returns a page of rooms.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        pageSize   query     int  false  "Page size"
// @Success      200        {object}  ports.RoomPage
// @Router       /api/v1/rooms [get]
// @Security     BearerAuth
func (h *RoomHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c)
	rooms, err := h.roomService.GetRooms(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get returns a single room by id.
//
// @Summary      Get room
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  domain.Room
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/rooms/{id} [get]
// @Security     BearerAuth
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	room, err := h.roomService.GetRoomByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Create registers a new room.
//
// @Summary      Create room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      roomRequest  true  "Room details"
// @Success      201   {object}  domain.Room
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/rooms [post]
// @Security     BearerAuth
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), ports.CreateRoomInput{
		RoomName:   req.RoomName,
		Capacity:   req.Capacity,
		HasMonitor: req.HasMonitor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, room)
}

// Update replaces a room's fields.
//
// @Summary      Update room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Room id"
// @Param        body  body      roomRequest  true  "Room details"
// @Success      200   {object}  domain.Room
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/rooms/{id} [put]
// @Security     BearerAuth
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.roomService.UpdateRoom(c.Request().Context(), id, ports.RoomUpdate{
		RoomName:   req.RoomName,
		Capacity:   req.Capacity,
		HasMonitor: req.HasMonitor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Delete removes a room.
//
// @Summary      Delete room
// @Tags         rooms
// @Param        id  path  string  true  "Room id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/rooms/{id} [delete]
// @Security     BearerAuth
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.roomService.DeleteRoom(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
