// services/tour_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tour-backend/models"
)

// TourService wraps *gorm.DB for tour CRUD.
type TourService struct {
	DB *gorm.DB
}

func NewTourService(db *gorm.DB) *TourService {
	return &TourService{DB: db}
}

func (s *TourService) Create(tour *models.Tour) error {
	if strings.TrimSpace(tour.ProductID) == "" || strings.TrimSpace(tour.TourDate) == "" {
		return errors.New("validation: product_id and tour_date are required")
	}
	if tour.ID == "" {
		tour.ID = uuid.NewString()
	}
	if len(tour.ReservationIDs) == 0 {
		tour.SetReservationIDList(nil)
	}
	if err := s.DB.Create(tour).Error; err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

// GetByGroup lists the tours of one (productID, tourDate) group in id order.
func (s *TourService) GetByGroup(productID, tourDate string) ([]models.Tour, error) {
	var tours []models.Tour
	err := s.DB.
		Preload("Vehicle").
		Where("product_id = ? AND tour_date = ?", productID, tourDate).
		Order("id ASC").
		Find(&tours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tours: %w", err)
	}
	return tours, nil
}

func (s *TourService) GetAll() ([]models.Tour, error) {
	var tours []models.Tour
	err := s.DB.Preload("Vehicle").Order("tour_date DESC, id ASC").Find(&tours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tours: %w", err)
	}
	return tours, nil
}

func (s *TourService) GetByID(id string) (*models.Tour, error) {
	var tour models.Tour
	if err := s.DB.Preload("Vehicle").First(&tour, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("tour_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve tour: %w", err)
	}
	return &tour, nil
}

func (s *TourService) Update(id string, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if err := s.DB.Model(&models.Tour{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	return nil
}

func (s *TourService) Delete(id string) error {
	if err := s.DB.Where("id = ?", id).Delete(&models.Tour{}).Error; err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	return nil
}
