package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,roompassword"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"required,email"`
}

// pageParams reads ?page= and ?pageSize=; clamping is left to the service
// layer.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	return page, pageSize
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// List returns a page of user accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        pageSize   query     int  false  "Page size"
// @Success      200        {object}  ports.UserPage
// @Failure      403        {object}  map[string]string
// @Router       /api/v1/users [get]
// @Security     BearerAuth
func (h *UserHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c)
	users, err := h.userService.GetUsers(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single user by id.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [get]
// @Security     BearerAuth
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update replaces a user's profile fields.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/users/{id} [put]
// @Security     BearerAuth
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, ports.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user account.
//
// @Summary      Delete user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterClient creates a self-registered account with the User role. The
// endpoint is public; the chosen password counts as fresh.
//
// @Summary      Register
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/clients/register [post]
func (h *UserHandler) RegisterClient(c echo.Context) error {
	return h.register(c, h.userService.RegisterClient)
}

// RegisterEmployee creates an Employee account on behalf of an admin. The
// assigned password counts as stale until the employee changes it.
//
// @Summary      Register employee
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/employees/register [post]
// @Security     BearerAuth
func (h *UserHandler) RegisterEmployee(c echo.Context) error {
	return h.register(c, h.userService.RegisterEmployee)
}

type registerFunc func(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error)

func (h *UserHandler) register(c echo.Context, fn registerFunc) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := fn(c.Request().Context(), ports.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
