// controllers/reservation_controller.go
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

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

// GetReservations (GET /api/reservations?product_id=&tour_date=)
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	tourDate := strings.TrimSpace(c.Query("tour_date"))

	var (
		list []models.Reservation
		err  error
	)
	if productID != "" && tourDate != "" {
		list, err = ctrl.ReservationSvc.GetByGroup(productID, tourDate)
	} else {
		list, err = ctrl.ReservationSvc.GetAll()
	}
	if err != nil {
		utils.GetLogger().Error("failed to list reservations", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve reservations")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetReservationByID (GET /api/reservations/:id)
func (ctrl *ReservationController) GetReservationByID(c *gin.Context) {
	res, err := ctrl.ReservationSvc.GetByID(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "reservation_not_found") {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.reservationNotFound", "reservation not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateReservation (POST /api/reservations)
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var res models.Reservation
	if err := c.ShouldBindJSON(&res); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.ReservationSvc.Create(&res); err != nil {
		if strings.Contains(err.Error(), "validation:") {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error())
			return
		}
		utils.GetLogger().Error("failed to create reservation", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateReservation (PATCH /api/reservations/:id)
func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.ReservationSvc.Update(c.Param("id"), updates); err != nil {
		utils.GetLogger().Error("failed to update reservation", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "reservation updated"})
}

// DeleteReservation (DELETE /api/reservations/:id)
func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	if err := ctrl.ReservationSvc.Delete(c.Param("id")); err != nil {
		utils.GetLogger().Error("failed to delete reservation", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete reservation")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "reservation deleted"})
}
