// controllers/reference_controller.go
//
// CRUD endpoints for the remaining reference tables: vehicles, pickup hotels,
// customers, products and choice options.
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tour-backend/models"
	"tour-backend/services"
	"tour-backend/utils"
)

var (
	vehicleSvc      services.VehicleService
	pickupHotelSvc  services.PickupHotelService
	customerSvc     services.CustomerService
	productSvc      services.ProductService
	choiceOptionSvc services.ChoiceOptionService
)

// ----------------------------------------------------
// Vehicles
// ----------------------------------------------------

func GetVehicles(c *gin.Context) {
	vehicles, err := vehicleSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve vehicles")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	vehicle.Name = strings.TrimSpace(vehicle.Name)
	if vehicle.Name == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "vehicle_number is required")
		return
	}

	if err := vehicleSvc.Create(&vehicle); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func UpdateVehicle(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := vehicleSvc.Update(c.Param("id"), updates); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "vehicle updated"})
}

func DeleteVehicle(c *gin.Context) {
	if err := vehicleSvc.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "vehicle deleted"})
}

// ----------------------------------------------------
// Pickup hotels
// ----------------------------------------------------

func GetPickupHotels(c *gin.Context) {
	hotels, err := pickupHotelSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve pickup hotels")
		return
	}
	c.JSON(http.StatusOK, hotels)
}

func CreatePickupHotel(c *gin.Context) {
	var hotel models.PickupHotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	hotel.Name = strings.TrimSpace(hotel.Name)
	if hotel.Name == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "hotel name is required")
		return
	}

	if err := pickupHotelSvc.Create(&hotel); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

func UpdatePickupHotel(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := pickupHotelSvc.Update(c.Param("id"), updates); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "pickup hotel updated"})
}

func DeletePickupHotel(c *gin.Context) {
	if err := pickupHotelSvc.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete pickup hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "pickup hotel deleted"})
}

// ----------------------------------------------------
// Customers
// ----------------------------------------------------

func GetCustomers(c *gin.Context) {
	customers, err := customerSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetCustomerByID(c *gin.Context) {
	customer, err := customerSvc.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.customerNotFound", "customer not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, customer)
}

func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := customerSvc.Create(&customer); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// ----------------------------------------------------
// Products
// ----------------------------------------------------

func GetProducts(c *gin.Context) {
	products, err := productSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProductByID(c *gin.Context) {
	product, err := productSvc.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.productNotFound", "product not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "product name is required")
		return
	}

	if err := productSvc.Create(&product); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ----------------------------------------------------
// Choice options
// ----------------------------------------------------

func GetChoiceOptions(c *gin.Context) {
	options, err := choiceOptionSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve choice options")
		return
	}
	c.JSON(http.StatusOK, options)
}

func CreateChoiceOption(c *gin.Context) {
	var option models.ChoiceOption
	if err := c.ShouldBindJSON(&option); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if strings.TrimSpace(option.OptionKey) == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "option_key is required")
		return
	}

	if err := choiceOptionSvc.Create(&option); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, option)
}
