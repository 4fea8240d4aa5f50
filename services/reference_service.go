// services/reference_service.go
//
// Thin CRUD wrappers for the reference tables the assignment engine reads:
// team members, vehicles, pickup hotels, customers, products and choice options.
package services

import (
	"github.com/google/uuid"

	"tour-backend/config"
	"tour-backend/models"
)

type TeamMemberService struct{}

func (s TeamMemberService) Create(member models.TeamMember) error {
	return config.DB.Create(&member).Error
}

func (s TeamMemberService) GetAll() ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := config.DB.Order("email ASC").Find(&members).Error
	return members, err
}

func (s TeamMemberService) GetByEmail(email string) (models.TeamMember, error) {
	var member models.TeamMember
	err := config.DB.First(&member, "email = ?", email).Error
	return member, err
}

func (s TeamMemberService) Update(email string, updates map[string]interface{}) error {
	delete(updates, "email")
	delete(updates, "created_at")
	return config.DB.Model(&models.TeamMember{}).Where("email = ?", email).Updates(updates).Error
}

func (s TeamMemberService) Delete(email string) error {
	return config.DB.Where("email = ?", email).Delete(&models.TeamMember{}).Error
}

type VehicleService struct{}

func (s VehicleService) Create(vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	return config.DB.Create(vehicle).Error
}

func (s VehicleService) GetAll() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := config.DB.Order("vehicle_number ASC").Find(&vehicles).Error
	return vehicles, err
}

func (s VehicleService) Update(id string, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	return config.DB.Model(&models.Vehicle{}).Where("id = ?", id).Updates(updates).Error
}

func (s VehicleService) Delete(id string) error {
	return config.DB.Where("id = ?", id).Delete(&models.Vehicle{}).Error
}

type PickupHotelService struct{}

func (s PickupHotelService) Create(hotel *models.PickupHotel) error {
	if hotel.ID == "" {
		hotel.ID = uuid.NewString()
	}
	return config.DB.Create(hotel).Error
}

func (s PickupHotelService) GetAll() ([]models.PickupHotel, error) {
	var hotels []models.PickupHotel
	err := config.DB.Order("hotel ASC").Find(&hotels).Error
	return hotels, err
}

func (s PickupHotelService) Update(id string, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	return config.DB.Model(&models.PickupHotel{}).Where("id = ?", id).Updates(updates).Error
}

func (s PickupHotelService) Delete(id string) error {
	return config.DB.Where("id = ?", id).Delete(&models.PickupHotel{}).Error
}

type CustomerService struct{}

func (s CustomerService) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	return config.DB.Create(customer).Error
}

func (s CustomerService) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := config.DB.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (s CustomerService) GetByID(id string) (models.Customer, error) {
	var customer models.Customer
	err := config.DB.First(&customer, "id = ?", id).Error
	return customer, err
}

type ProductService struct{}

func (s ProductService) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	return config.DB.Create(product).Error
}

func (s ProductService) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := config.DB.Order("name ASC").Find(&products).Error
	return products, err
}

func (s ProductService) GetByID(id string) (models.Product, error) {
	var product models.Product
	err := config.DB.First(&product, "id = ?", id).Error
	return product, err
}

type ChoiceOptionService struct{}

func (s ChoiceOptionService) GetAll() ([]models.ChoiceOption, error) {
	var options []models.ChoiceOption
	err := config.DB.Order("option_key ASC").Find(&options).Error
	return options, err
}

func (s ChoiceOptionService) Create(option *models.ChoiceOption) error {
	if option.ID == "" {
		option.ID = uuid.NewString()
	}
	return config.DB.Create(option).Error
}
