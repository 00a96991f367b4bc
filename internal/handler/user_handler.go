package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"helper-app/internal/models"
	"helper-app/internal/services"
	"helper-app/internal/utils"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req struct {
		UserImage    string `json:"userImage"`
		UserName     string `json:"userName"`
		UserEmail    string `json:"userEmail"`
		UserPassword string `json:"userPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	user := models.User{
		Image:    req.UserImage,
		Name:     req.UserName,
		Email:    req.UserEmail,
		Password: req.UserPassword,
	}
	if err := utils.GetValidator().Struct(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ParseErrors(err)})
		return
	}

	created, err := h.service.Signup(c.Request.Context(), &user)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Could not signup, email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Creating account failed, please try again"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusNotFound, gin.H{"message": "data not match"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error in data retrieve from database"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) AddToCart(c *gin.Context) {
	h.updateArray(c, h.service.AddToCart)
}

func (h *UserHandler) RemoveFromCart(c *gin.Context) {
	h.updateArray(c, h.service.RemoveFromCart)
}

func (h *UserHandler) AddLikes(c *gin.Context) {
	h.updateArray(c, h.service.AddLike)
}

func (h *UserHandler) RemoveLikes(c *gin.Context) {
	h.updateArray(c, h.service.RemoveLike)
}

func (h *UserHandler) updateArray(c *gin.Context, op func(ctx context.Context, userID, helperID string) (*models.User, error)) {
	var req struct {
		HelperID string `json:"helperID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	user, err := op(c.Request.Context(), c.Param("userID"), req.HelperID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidID) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), tokenString); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
