package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a user account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param user body dto.RegisterDTO true "Account data"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or username already registered"
// @Router /auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}
	if err := a.authService.Register(c.Request.Context(), req); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User created successfully"})
}

// Login godoc
// @Summary Log in and obtain an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Username and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Incorrect username or password"
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}
	tok, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}
