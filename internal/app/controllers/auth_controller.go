package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
)

// SessionCookieSettings controls the session cookie the auth endpoints set
type SessionCookieSettings struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

// AuthController handles registration, login and profile operations
type AuthController struct {
	authService services.AuthService
	cookie      SessionCookieSettings
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookie SessionCookieSettings) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
	}
}

// Register handles user signup
// @Summary Register a new user
// @Description Creates a user account with email, password and nickname
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 409 {object} dto.APIResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user))
}

// Login handles user login
// @Summary Log in
// @Description Verifies credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Logged in"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, sid, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, sid, c.cookie.MaxAge, "/", "", c.cookie.Secure, true)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// Logout handles user logout
// @Summary Log out
// @Description Ends the session. Succeeds even without a valid session.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	sid, _ := ctx.Cookie(c.cookie.Name)

	if err := c.authService.Logout(ctx.Request.Context(), sid); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"loggedOut": true}))
}

// GetMe returns the caller's profile
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Current user"
// @Failure 401 {object} dto.APIResponse "Not authenticated"
// @Router /auth/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	user, err := c.authService.GetMe(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UpdateMe updates the caller's profile
// @Summary Update current user
// @Tags auth
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated user"
// @Failure 401 {object} dto.APIResponse "Not authenticated"
// @Router /auth/me [patch]
func (c *AuthController) UpdateMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}
