package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helper-app/internal/services"
)

type VerificationHandler struct {
	service *services.VerificationService
}

func NewVerificationHandler(service *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

func (h *VerificationHandler) SendOTP(c *gin.Context) {
	var req struct {
		HelperEmail string `json:"helperEmail" binding:"required,email"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	if _, err := h.service.Issue(c.Request.Context(), req.HelperEmail, req.PhoneNumber); err != nil {
		// On ErrSendFailed the code is already persisted, but the caller
		// should not expect delivery.
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

func (h *VerificationHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		HelperEmail string `json:"helperEmail" binding:"required"`
		OTP         string `json:"otp" binding:"required"`
		PhoneNumber string `json:"PhoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	ok, err := h.service.Verify(c.Request.Context(), req.HelperEmail, req.OTP)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}
