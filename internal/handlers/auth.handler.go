package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/internal/services"
	xhttp "github.com/kurirapp/courier-api/pkg/http"
	"github.com/kurirapp/courier-api/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Courier, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
}

type AuthHandler struct {
	svc AuthService
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		svc: authService,
	}
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	var req model.RegisterRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON body")
		return
	}

	_, err := h.svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCredentials),
			errors.Is(err, services.ErrDuplicateUsername):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		default:
			logger.Error("register failed", "error", err)
			writeError(ctx, xhttp.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeMessage(ctx, xhttp.StatusCreated, "registration successful")
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req model.LoginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON body")
		return
	}

	tok, err := h.svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCredentials):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrWrongPassword):
			writeError(ctx, xhttp.StatusUnauthorized, err.Error())
		default:
			logger.Error("login failed", "error", err)
			writeError(ctx, xhttp.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(ctx, xhttp.StatusOK, loginResponse{Message: "login successful", Token: tok})
}
