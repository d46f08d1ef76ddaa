package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartmenu/middlewares"
	"smartmenu/services"
	"smartmenu/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Register -> create a new restaurant owner account
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Username       string `json:"username" binding:"required"`
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required,min=6"`
		RestaurantName string `json:"restaurant_name"`
		Phone          string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := ac.Auth.Register(services.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		RestaurantName: req.RestaurantName,
		Phone:          req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUsername), errors.Is(err, services.ErrDuplicateEmail):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User registered successfully", gin.H{
		"user_id": user.ID,
	})
}

// Login -> verify credentials, return bearer token + identity summary
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := ac.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondError(c, http.StatusUnauthorized, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", result)
}

// Me -> current identity from the bearer token
func (ac *AuthController) Me(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		utils.RespondError(c, http.StatusUnauthorized, services.ErrInvalidCredentials)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Current user", gin.H{
		"id":       identity.ID,
		"username": identity.Username,
		"email":    identity.Email,
		"role":     identity.Role,
	})
}
