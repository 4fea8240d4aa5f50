// services/assignment_store.go
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tour-backend/models"
	"tour-backend/utils"
)

// AssignmentStore is the engine's only boundary with the relational store.
// Loads are read-only; CommitTourReservationIDs is the single write.
type AssignmentStore interface {
	LoadTours(ctx context.Context, productID, tourDate string) ([]models.Tour, error)
	LoadReservations(ctx context.Context, productID, tourDate string) ([]models.Reservation, error)
	LoadTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	LoadVehicles(ctx context.Context) ([]models.Vehicle, error)
	LoadPickupHotels(ctx context.Context) ([]models.PickupHotel, error)

	// LoadReservationChoices resolves each reservation's ChoiceTag. Failures
	// resolving a single reservation degrade that entry to ChoiceOther and
	// never fail the load.
	LoadReservationChoices(ctx context.Context, reservationIDs []string) (map[string]ChoiceTag, error)

	LoadCustomerLanguages(ctx context.Context, customerIDs []string) (map[string]string, error)

	CommitTourReservationIDs(ctx context.Context, tourID string, reservationIDs []string) error
}

// GormAssignmentStore backs AssignmentStore with the MySQL database.
type GormAssignmentStore struct {
	DB *gorm.DB
}

func NewGormAssignmentStore(db *gorm.DB) *GormAssignmentStore {
	return &GormAssignmentStore{DB: db}
}

func (s *GormAssignmentStore) LoadTours(ctx context.Context, productID, tourDate string) ([]models.Tour, error) {
	var tours []models.Tour
	err := s.DB.WithContext(ctx).
		Where("product_id = ? AND tour_date = ?", productID, tourDate).
		Order("id ASC").
		Find(&tours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tours: %w", err)
	}
	return tours, nil
}

func (s *GormAssignmentStore) LoadReservations(ctx context.Context, productID, tourDate string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.WithContext(ctx).
		Where("product_id = ? AND tour_date = ?", productID, tourDate).
		Order("id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	return reservations, nil
}

func (s *GormAssignmentStore) LoadTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.DB.WithContext(ctx).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	return members, nil
}

func (s *GormAssignmentStore) LoadVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.DB.WithContext(ctx).Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *GormAssignmentStore) LoadPickupHotels(ctx context.Context) ([]models.PickupHotel, error) {
	var hotels []models.PickupHotel
	if err := s.DB.WithContext(ctx).Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to load pickup hotels: %w", err)
	}
	return hotels, nil
}

// LoadReservationChoices prefers the reservation_choices join; reservations
// it cannot resolve that way fall back to the reservation's own
// choice_option_id. Anything still unresolved, including rows hit by query
// errors, degrades to ChoiceOther with a warning.
func (s *GormAssignmentStore) LoadReservationChoices(ctx context.Context, reservationIDs []string) (map[string]ChoiceTag, error) {
	out := make(map[string]ChoiceTag, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return out, nil
	}

	var links []models.ReservationChoice
	err := s.DB.WithContext(ctx).
		Preload("Option").
		Where("reservation_id IN ?", reservationIDs).
		Find(&links).Error
	if err != nil {
		utils.GetLogger().Warn("choice join query failed, falling back to reservation option ids", zap.Error(err))
	} else {
		for _, link := range links {
			out[link.ReservationID] = ClassifyChoice(link.Option.OptionKey, link.Option.NameKo, link.Option.NameEn)
		}
	}

	missing := make([]string, 0, len(reservationIDs))
	for _, id := range reservationIDs {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		s.resolveChoicesFallback(ctx, missing, out)
	}

	for _, id := range reservationIDs {
		if _, ok := out[id]; !ok {
			out[id] = ChoiceOther
		}
	}
	return out, nil
}

// resolveChoicesFallback is the two-step path: reservation -> option id ->
// option metadata. Errors leave entries unset for the caller to default.
func (s *GormAssignmentStore) resolveChoicesFallback(ctx context.Context, reservationIDs []string, out map[string]ChoiceTag) {
	var reservations []models.Reservation
	err := s.DB.WithContext(ctx).
		Select("id", "choice_option_id").
		Where("id IN ?", reservationIDs).
		Find(&reservations).Error
	if err != nil {
		utils.GetLogger().Warn("choice fallback reservation query failed, defaulting to other",
			zap.Int("reservations", len(reservationIDs)), zap.Error(err))
		return
	}

	optionIDs := make([]string, 0, len(reservations))
	optionByRes := make(map[string]string, len(reservations))
	for _, r := range reservations {
		if r.ChoiceOptionID != nil && *r.ChoiceOptionID != "" {
			optionIDs = append(optionIDs, *r.ChoiceOptionID)
			optionByRes[r.ID] = *r.ChoiceOptionID
		}
	}
	if len(optionIDs) == 0 {
		return
	}

	var options []models.ChoiceOption
	err = s.DB.WithContext(ctx).Where("id IN ?", optionIDs).Find(&options).Error
	if err != nil {
		utils.GetLogger().Warn("choice fallback option query failed, defaulting to other", zap.Error(err))
		return
	}
	optionsByID := make(map[string]models.ChoiceOption, len(options))
	for _, o := range options {
		optionsByID[o.ID] = o
	}

	for resID, optID := range optionByRes {
		if o, ok := optionsByID[optID]; ok {
			out[resID] = ClassifyChoice(o.OptionKey, o.NameKo, o.NameEn)
		}
	}
}

func (s *GormAssignmentStore) LoadCustomerLanguages(ctx context.Context, customerIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}

	var customers []models.Customer
	err := s.DB.WithContext(ctx).
		Select("id", "language").
		Where("id IN ?", customerIDs).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load customer languages: %w", err)
	}
	for _, c := range customers {
		out[c.ID] = c.Language
	}
	return out, nil
}

func (s *GormAssignmentStore) CommitTourReservationIDs(ctx context.Context, tourID string, reservationIDs []string) error {
	var tour models.Tour
	tour.SetReservationIDList(reservationIDs)

	result := s.DB.WithContext(ctx).
		Model(&models.Tour{}).
		Where("id = ?", tourID).
		Update("reservation_ids", tour.ReservationIDs)
	if result.Error != nil {
		return fmt.Errorf("failed to update tour %s: %w", tourID, result.Error)
	}
	if result.RowsAffected == 0 {
		// Row may match with identical content; verify the tour exists at all.
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Tour{}).Where("id = ?", tourID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to verify tour %s: %w", tourID, err)
		}
		if count == 0 {
			return fmt.Errorf("tour %s not found", tourID)
		}
	}
	return nil
}
