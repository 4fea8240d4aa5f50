// services/assignment_snapshot.go
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tour-backend/models"
	"tour-backend/utils"
)

// ErrMissingKey is returned when productID or tourDate is empty.
var ErrMissingKey = errors.New("missing_product_or_date")

// LoadSnapshot fetches everything one engine run needs for a
// (productID, tourDate) group. Independent reads are issued concurrently;
// the choice and language lookups run in a second stage because they depend
// on the reservation list. Any hard load error aborts the run with no
// partial snapshot.
func LoadSnapshot(ctx context.Context, store AssignmentStore, productID, tourDate string) (*Snapshot, error) {
	if strings.TrimSpace(productID) == "" || strings.TrimSpace(tourDate) == "" {
		return nil, ErrMissingKey
	}

	var (
		tours        []models.Tour
		reservations []models.Reservation
		members      []models.TeamMember
		vehicles     []models.Vehicle
		hotels       []models.PickupHotel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tours, err = store.LoadTours(gctx, productID, tourDate)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = store.LoadReservations(gctx, productID, tourDate)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = store.LoadTeamMembers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = store.LoadVehicles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		hotels, err = store.LoadPickupHotels(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ProductID:         productID,
		TourDate:          tourDate,
		Tours:             []TourSlot{},
		Reservations:      map[string]ReservationInfo{},
		Choices:           map[string]ChoiceTag{},
		CustomerLanguages: map[string]string{},
		StaffLanguages:    map[string][]string{},
		Vehicles:          map[string]VehicleInfo{},
		Hotels:            map[string]HotelInfo{},
	}

	// No tours for the key: nothing to propose, but not an error.
	if len(tours) == 0 {
		return snap, nil
	}

	reservationIDs := make([]string, 0, len(reservations))
	customerIDs := make([]string, 0, len(reservations))
	seenCustomer := map[string]bool{}
	for _, r := range reservations {
		reservationIDs = append(reservationIDs, r.ID)
		if r.CustomerID != "" && !seenCustomer[r.CustomerID] {
			seenCustomer[r.CustomerID] = true
			customerIDs = append(customerIDs, r.CustomerID)
		}
	}

	var (
		choices   map[string]ChoiceTag
		languages map[string]string
	)
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		var err error
		choices, err = store.LoadReservationChoices(g2ctx, reservationIDs)
		return err
	})
	g2.Go(func() error {
		var err error
		languages, err = store.LoadCustomerLanguages(g2ctx, customerIDs)
		return err
	})
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	snap.Choices = choices
	snap.CustomerLanguages = languages

	for _, r := range reservations {
		info := ReservationInfo{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			Adults:     r.Adults,
			Child:      r.Child,
			Infant:     r.Infant,
		}
		if r.PickupHotelID != nil {
			info.PickupHotelID = *r.PickupHotelID
		}
		snap.Reservations[r.ID] = info
	}
	for _, m := range members {
		snap.StaffLanguages[m.Email] = m.LanguageList()
	}
	for _, v := range vehicles {
		snap.Vehicles[v.ID] = VehicleInfo{ID: v.ID, Capacity: v.Capacity}
	}
	for _, h := range hotels {
		info := HotelInfo{ID: h.ID, Name: h.Name}
		if h.SubLocation != nil {
			info.SubLocation = *h.SubLocation
		}
		snap.Hotels[h.ID] = info
	}

	snap.Tours = normalizeTourSlots(tours)
	return snap, nil
}

// normalizeTourSlots orders tours by id and drops duplicate reservation
// entries across tours, keeping the first occurrence. Duplicates would break
// the one-tour-per-reservation invariant every pass relies on.
func normalizeTourSlots(tours []models.Tour) []TourSlot {
	sorted := make([]models.Tour, len(tours))
	copy(sorted, tours)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	slots := make([]TourSlot, 0, len(sorted))
	seen := map[string]string{}
	for _, t := range sorted {
		slot := TourSlot{ID: t.ID, ReservationIDs: []string{}}
		if t.GuideEmail != nil {
			slot.GuideEmail = *t.GuideEmail
		}
		if t.AssistantEmail != nil {
			slot.AssistantEmail = *t.AssistantEmail
		}
		if t.VehicleID != nil {
			slot.VehicleID = *t.VehicleID
		}
		for _, resID := range t.ReservationIDList() {
			if holder, dup := seen[resID]; dup {
				utils.GetLogger().Warn("reservation assigned to multiple tours, keeping first",
					zap.String("reservation_id", resID),
					zap.String("kept_tour_id", holder),
					zap.String("dropped_tour_id", t.ID),
				)
				continue
			}
			seen[resID] = t.ID
			slot.ReservationIDs = append(slot.ReservationIDs, resID)
		}
		slots = append(slots, slot)
	}
	return slots
}
