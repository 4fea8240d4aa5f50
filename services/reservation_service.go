// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tour-backend/models"
)

// ReservationService wraps *gorm.DB for reservation CRUD.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

func (s *ReservationService) Create(res *models.Reservation) error {
	if strings.TrimSpace(res.ProductID) == "" || strings.TrimSpace(res.TourDate) == "" {
		return errors.New("validation: product_id and tour_date are required")
	}
	if res.Adults <= 0 {
		res.Adults = 1
	}
	if res.Child < 0 {
		res.Child = 0
	}
	if res.Infant < 0 {
		res.Infant = 0
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	if res.CustomerID != "" {
		var cust models.Customer
		if err := s.DB.First(&cust, "id = ?", res.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("validation: customer not found")
			}
			return fmt.Errorf("db error checking customer: %w", err)
		}
	}

	if err := s.DB.Create(res).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// GetByGroup lists the reservations of one (productID, tourDate) group.
func (s *ReservationService) GetByGroup(productID, tourDate string) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.
		Preload("Customer").
		Preload("PickupHotel").
		Where("product_id = ? AND tour_date = ?", productID, tourDate).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

func (s *ReservationService) GetAll() ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.
		Preload("Customer").
		Preload("PickupHotel").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

func (s *ReservationService) GetByID(id string) (*models.Reservation, error) {
	var res models.Reservation
	err := s.DB.Preload("Customer").Preload("PickupHotel").First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &res, nil
}

func (s *ReservationService) Update(id string, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if err := s.DB.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	return nil
}

func (s *ReservationService) Delete(id string) error {
	if err := s.DB.Where("id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
