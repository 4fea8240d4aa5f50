// controllers/tour_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tour-backend/models"
	"tour-backend/services"
	"tour-backend/utils"
)

type TourController struct {
	TourSvc *services.TourService
}

func NewTourController(svc *services.TourService) *TourController {
	return &TourController{TourSvc: svc}
}

// GetTours (GET /api/tours?product_id=&tour_date=)
func (ctrl *TourController) GetTours(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	tourDate := strings.TrimSpace(c.Query("tour_date"))

	var (
		tours []models.Tour
		err   error
	)
	if productID != "" && tourDate != "" {
		tours, err = ctrl.TourSvc.GetByGroup(productID, tourDate)
	} else {
		tours, err = ctrl.TourSvc.GetAll()
	}
	if err != nil {
		utils.GetLogger().Error("failed to list tours", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve tours")
		return
	}
	c.JSON(http.StatusOK, tours)
}

// GetTourByID (GET /api/tours/:id)
func (ctrl *TourController) GetTourByID(c *gin.Context) {
	tour, err := ctrl.TourSvc.GetByID(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "tour_not_found") {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.tourNotFound", "tour not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, tour)
}

// CreateTour (POST /api/tours)
func (ctrl *TourController) CreateTour(c *gin.Context) {
	var tour models.Tour
	if err := c.ShouldBindJSON(&tour); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.TourSvc.Create(&tour); err != nil {
		if strings.Contains(err.Error(), "validation:") {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error())
			return
		}
		utils.GetLogger().Error("failed to create tour", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, tour)
}

// UpdateTour (PATCH /api/tours/:id)
func (ctrl *TourController) UpdateTour(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.TourSvc.Update(c.Param("id"), updates); err != nil {
		utils.GetLogger().Error("failed to update tour", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "tour updated"})
}

// DeleteTour (DELETE /api/tours/:id)
func (ctrl *TourController) DeleteTour(c *gin.Context) {
	if err := ctrl.TourSvc.Delete(c.Param("id")); err != nil {
		utils.GetLogger().Error("failed to delete tour", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete tour")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "tour deleted"})
}
