package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"helper-app/internal/models"
	"helper-app/internal/services"
	"helper-app/internal/utils"
)

type HelperHandler struct {
	service *services.HelperService
	ratings *services.RatingService
}

func NewHelperHandler(service *services.HelperService, ratings *services.RatingService) *HelperHandler {
	return &HelperHandler{service: service, ratings: ratings}
}

func (h *HelperHandler) GetAll(c *gin.Context) {
	helpers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not retrieve helpers data from database, try later"})
		return
	}
	c.JSON(http.StatusOK, helpers)
}

func (h *HelperHandler) GetByRole(c *gin.Context) {
	helpers, err := h.service.GetByRole(c.Request.Context(), c.Param("helperRole"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not retrieve helpers data from database, try later"})
		return
	}
	c.JSON(http.StatusOK, helpers)
}

func (h *HelperHandler) GetByID(c *gin.Context) {
	helper, err := h.service.GetByID(c.Request.Context(), c.Param("helperID"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidID) {
			c.JSON(http.StatusNotFound, gin.H{"message": "could not find the helper for the provided id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, helper)
}

// GetCartData returns the helper documents for a comma separated list of
// helper IDs in the helperIDs query parameter.
func (h *HelperHandler) GetCartData(c *gin.Context) {
	helperIDs := c.Query("helperIDs")
	if helperIDs == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "There are no helpers in your cart"})
		return
	}

	helpers, err := h.service.GetByIDs(c.Request.Context(), strings.Split(helperIDs, ","))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if len(helpers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "There are no helpers in your cart"})
		return
	}
	c.JSON(http.StatusOK, helpers)
}

func (h *HelperHandler) SignupCheck(c *gin.Context) {
	var req struct {
		HelperEmail string `json:"helperEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	if err := h.service.CheckEmailAvailable(c.Request.Context(), req.HelperEmail); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "could not signup, email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

func (h *HelperHandler) Signup(c *gin.Context) {
	var req struct {
		HelperImage       string `json:"helperImage"`
		HelperName        string `json:"helperName"`
		HelperDOB         string `json:"helperDOB"`
		HelperGender      string `json:"helperGender"`
		HelperRole        string `json:"helperRole"`
		HelperExperience  string `json:"helperExperience"`
		HelperWorkTime    string `json:"helperWorkTime"`
		HelperEmail       string `json:"helperEmail"`
		HelperPassword    string `json:"helperPassword"`
		HelperPhoneNumber string `json:"helperPhoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	helper := models.Helper{
		Image:       req.HelperImage,
		Name:        req.HelperName,
		DateOfBirth: req.HelperDOB,
		Gender:      req.HelperGender,
		Role:        req.HelperRole,
		Experience:  req.HelperExperience,
		WorkTime:    req.HelperWorkTime,
		Email:       req.HelperEmail,
		Password:    req.HelperPassword,
		PhoneNumber: req.HelperPhoneNumber,
	}
	if err := utils.GetValidator().Struct(&helper); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ParseErrors(err)})
		return
	}

	created, err := h.service.Signup(c.Request.Context(), &helper)
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

func (h *HelperHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	helper, token, err := h.service.Login(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Email not found"})
			return
		}
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusNotFound, gin.H{"message": "data not match"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"helper": helper, "token": token})
}

func (h *HelperHandler) Update(c *gin.Context) {
	var req struct {
		Name       *string `json:"helperName"`
		DOB        *string `json:"helperDOB"`
		Role       *string `json:"helperRole"`
		Experience *string `json:"helperExperience"`
		Email      *string `json:"helperEmail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.DOB != nil {
		fields["date_of_birth"] = *req.DOB
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Experience != nil {
		fields["experience"] = *req.Experience
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}

	helper, err := h.service.Update(c.Request.Context(), c.Param("hid"), fields)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, helper)
}

func (h *HelperHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("hid")); err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidID) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Helper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Deleting helper failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
}

func (h *HelperHandler) AddLikedID(c *gin.Context) {
	h.updateLiked(c, true)
}

func (h *HelperHandler) RemoveLikedID(c *gin.Context) {
	h.updateLiked(c, false)
}

func (h *HelperHandler) updateLiked(c *gin.Context, add bool) {
	var req struct {
		UserID string `json:"userID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	var (
		helper *models.Helper
		err    error
	)
	if add {
		helper, err = h.service.AddLikedID(c.Request.Context(), c.Param("helperID"), req.UserID)
	} else {
		helper, err = h.service.RemoveLikedID(c.Request.Context(), c.Param("helperID"), req.UserID)
	}
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, helper)
}

func (h *HelperHandler) UpdateActiveStatus(c *gin.Context) {
	var req struct {
		AccountActive string `json:"accountActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	helper, err := h.service.UpdateActiveStatus(c.Request.Context(), c.Param("helperID"), req.AccountActive)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, helper)
}

func (h *HelperHandler) UpdateWorkTime(c *gin.Context) {
	var req struct {
		NewWorkTime string `json:"newWorkTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	helper, err := h.service.UpdateWorkTime(c.Request.Context(), c.Param("helperID"), req.NewWorkTime)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, helper)
}

// SubmitRating stores a user's rating of a helper and returns the helper
// document with the recomputed aggregate.
func (h *HelperHandler) SubmitRating(c *gin.Context) {
	var req struct {
		Value float64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		return
	}

	helper, err := h.ratings.SubmitRating(c.Request.Context(), c.Param("helperID"), c.Param("userID"), req.Value)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrInvalidID):
			c.JSON(http.StatusNotFound, gin.H{"message": "helper not found"})
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input, check your data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, helper)
}

func (h *HelperHandler) respondUpdateError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "helper not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
