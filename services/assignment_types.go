// services/assignment_types.go
package services

// TourSlot is the engine's working view of one tour: staff, vehicle and the
// ordered reservation list it currently carries.
type TourSlot struct {
	ID             string   `json:"id"`
	GuideEmail     string   `json:"tour_guide_email,omitempty"`
	AssistantEmail string   `json:"assistant_email,omitempty"`
	VehicleID      string   `json:"vehicle_id,omitempty"`
	ReservationIDs []string `json:"reservation_ids"`
}

// ReservationInfo is the engine's working view of one reservation.
type ReservationInfo struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id,omitempty"`
	PickupHotelID string `json:"pickup_hotel_id,omitempty"`
	Adults        int    `json:"adults"`
	Child         int    `json:"child"`
	Infant        int    `json:"infant"`
}

// PeopleCount is the passenger total this reservation contributes.
func (r ReservationInfo) PeopleCount() int {
	return r.Adults + r.Child + r.Infant
}

// VehicleInfo carries the capacity used to derive a tour's passenger ceiling.
// Nil capacity means unknown, which imposes no ceiling.
type VehicleInfo struct {
	ID       string `json:"id"`
	Capacity *int   `json:"capacity,omitempty"`
}

// HotelInfo is display/grouping data for pickup hotels.
type HotelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"hotel"`
	SubLocation string `json:"sub_location,omitempty"`
}

// Snapshot is the immutable input of one engine run: every entity for a
// single (productID, tourDate) group, loaded once. Tours are sorted by id so
// every pass walks them in a deterministic order.
type Snapshot struct {
	ProductID string
	TourDate  string

	Tours             []TourSlot
	Reservations      map[string]ReservationInfo
	Choices           map[string]ChoiceTag
	CustomerLanguages map[string]string
	StaffLanguages    map[string][]string
	Vehicles          map[string]VehicleInfo
	Hotels            map[string]HotelInfo
}

// TourAssignment is one tour's ordered reservation list within a partition.
type TourAssignment struct {
	TourID         string   `json:"tour_id"`
	ReservationIDs []string `json:"reservation_ids"`
}

// Partition maps every tour of the working set to its reservations, in tour
// order. A reservation id appears in at most one tour's list.
type Partition []TourAssignment

// Clone deep-copies the partition.
func (p Partition) Clone() Partition {
	out := make(Partition, len(p))
	for i, ta := range p {
		ids := make([]string, len(ta.ReservationIDs))
		copy(ids, ta.ReservationIDs)
		out[i] = TourAssignment{TourID: ta.TourID, ReservationIDs: ids}
	}
	return out
}

// IndexOf returns the position of tourID, or -1.
func (p Partition) IndexOf(tourID string) int {
	for i, ta := range p {
		if ta.TourID == tourID {
			return i
		}
	}
	return -1
}

// HolderOf returns the tour currently carrying reservationID, or "".
func (p Partition) HolderOf(reservationID string) string {
	for _, ta := range p {
		for _, id := range ta.ReservationIDs {
			if id == reservationID {
				return ta.TourID
			}
		}
	}
	return ""
}

// MoveReservation removes reservationID from whichever tour holds it and
// appends it to the target tour's list. A no-op when the target already
// holds it or does not exist.
func (p Partition) MoveReservation(reservationID, toTourID string) {
	to := p.IndexOf(toTourID)
	if to < 0 || p.HolderOf(reservationID) == toTourID {
		return
	}
	for i := range p {
		ids := p[i].ReservationIDs
		for j, id := range ids {
			if id == reservationID {
				p[i].ReservationIDs = append(ids[:j:j], ids[j+1:]...)
				break
			}
		}
	}
	p[to].ReservationIDs = append(p[to].ReservationIDs, reservationID)
}

// Move records one reservation changing tours. Rule is 1-4 for engine passes
// and 0 for manual overrides and diffs.
type Move struct {
	ReservationID string `json:"reservation_id"`
	FromTourID    string `json:"from_tour_id"`
	ToTourID      string `json:"to_tour_id"`
	Rule          int    `json:"rule,omitempty"`
}

// Overflow documents a tour left above its vehicle ceiling because no other
// tour had headroom to absorb the excess.
type Overflow struct {
	TourID  string `json:"tour_id"`
	People  int    `json:"people"`
	Ceiling int    `json:"ceiling"`
}

// Proposal is the rule engine's computed reservation-to-tour partition,
// prior to any manual override or commit.
type Proposal struct {
	Partition Partition  `json:"partition"`
	Moves     []Move     `json:"moves"`
	Overflows []Overflow `json:"overflows,omitempty"`
}
