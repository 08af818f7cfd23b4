package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("user id must be an integer"))
		return 0, false
	}
	return id, true
}

func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "no_user_data", errors.New("No user data"))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Create user failed", "error", err)
		RespondFailure(c, err)
		return
	}
	RespondCreated(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetUsers(c.Request.Context(), parseListParams(c))
	if err != nil {
		h.log.Error("List users failed", "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	RespondOK(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "no_user_data", errors.New("No user data"))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Update user failed", "user_id", id, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Delete user failed", "user_id", id, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, user)
}
