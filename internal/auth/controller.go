package auth

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"eventplanner/internal/shared/middleware"
	"eventplanner/internal/shared/utils/response"
	"eventplanner/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Controller{
		service:   service,
		validator: validate,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /auth/register [post]
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !c.bindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.handleError(ctx, err, "Failed to register user")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

// Login godoc
// @Summary Exchange credentials for a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.StandardApiResponse
// @Failure 401 {object} response.StandardApiResponse
// @Router /auth/login [post]
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if !c.bindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.handleError(ctx, err, "Failed to login")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if !c.bindAndValidate(ctx, &req) {
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		// Any refresh failure looks the same to the client
		if !errors.Is(err, ErrInvalidToken) && !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrAccountDisabled) {
			c.handleError(ctx, err, "Failed to refresh token")
			return
		}
		response.Abort(ctx, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", tokenPair, nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		response.Abort(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !c.bindAndValidate(ctx, &req) {
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), principal.ID, &req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Abort(ctx, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		c.handleError(ctx, err, "Failed to change password")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		response.Abort(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := c.service.GetProfile(ctx.Request.Context(), principal.ID)
	if err != nil {
		c.handleError(ctx, err, "Failed to load profile")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User data retrieved successfully", profile, nil)
}

var errorResponses = []struct {
	err     error
	status  int
	message string
}{
	{ErrUserAlreadyExists, http.StatusConflict, "User with this email already exists"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrAccountDisabled, http.StatusUnauthorized, "Account is deactivated"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	for _, known := range errorResponses {
		if errors.Is(err, known.err) {
			response.Abort(ctx, known.status, known.message)
			return
		}
	}

	logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
	response.Abort(ctx, http.StatusInternalServerError, fallback)
}

func (c *Controller) bindAndValidate(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return false
	}

	err := c.validator.Struct(req)
	if err == nil {
		return true
	}

	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, fields)
	return false
}
