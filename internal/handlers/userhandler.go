package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly-api/internal/auth"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/events"
)

// UserHandler serves /auth and /users.
type UserHandler struct {
	Users  UserStore
	Tokens *auth.TokenManager
	Events *eventSink
}

func NewUserHandler(users UserStore, tokens *auth.TokenManager, sink *eventSink) *UserHandler {
	return &UserHandler{Users: users, Tokens: tokens, Events: sink}
}

// Token is POST /auth/token: exchanges credentials for a token.
func (h *UserHandler) Token(c *gin.Context) {
	var req dtos.TokenRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	token, err := h.Tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Register is POST /auth/register. New users are never admins.
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.UserRegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Users.Register(c.Request.Context(), &req, false)
	if err != nil {
		_ = c.Error(err)
		return
	}
	token, err := h.Tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.UserCreated, user.Username, nil))
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": auth.IdentityFrom(c)})
}

// CreateUser is POST /users: an admin adds a user, possibly another admin.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dtos.UserCreationRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Users.Register(c.Request.Context(), &req.UserRegisterRequest, req.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	token, err := h.Tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.UserCreated, user.Username, nil))
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dtos.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Users.Update(c.Request.Context(), c.Param("username"), req.Changes())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.Users.Remove(c.Request.Context(), username); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": username})
}
