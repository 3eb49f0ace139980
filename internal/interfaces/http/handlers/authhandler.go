package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUC "melodia/internal/application/user/usecases"
	"melodia/internal/domain/user"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/utils"
)

type AuthHandler struct {
	registerUC *userUC.RegisterUseCase
	loginUC    *userUC.LoginUseCase
	logger     logger.Interface
}

func NewAuthHandler(
	registerUC *userUC.RegisterUseCase,
	loginUC *userUC.LoginUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	SID       string `json:"sid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	IsPremium bool   `json:"is_premium"`
	PlanID    string `json:"plan_id"`
}

type authResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		SID:       u.SID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Avatar:    u.Avatar(),
		IsPremium: u.IsPremium(),
		PlanID:    u.PlanID(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), userUC.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, authResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	}, "account created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), userUC.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, authResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}
