// services/assignment_engine.go
//
// The four redistribution passes of the auto-assignment engine. Everything in
// this file is pure computation over a Snapshot: no storage access, no
// goroutines, and no reliance on map iteration order for anything that
// affects the result.
package services

import (
	"sort"
	"strings"

	"tour-backend/models"
)

// Tour returns the snapshot's slot for id.
func (s *Snapshot) Tour(id string) (TourSlot, bool) {
	for _, t := range s.Tours {
		if t.ID == id {
			return t, true
		}
	}
	return TourSlot{}, false
}

// Reservation returns the working view for id; unknown ids get a zero-value
// view (no passengers, no hotel) so stale entries in a tour's array cannot
// break a run.
func (s *Snapshot) Reservation(id string) ReservationInfo {
	if r, ok := s.Reservations[id]; ok {
		return r
	}
	return ReservationInfo{ID: id}
}

// ChoiceOf resolves a reservation's choice tag, defaulting to other.
func (s *Snapshot) ChoiceOf(reservationID string) ChoiceTag {
	if tag, ok := s.Choices[reservationID]; ok && tag != "" {
		return tag
	}
	return ChoiceOther
}

// isKoreanLanguage reports whether a free-text language code means Korean.
// Source data carries both "ko" and "kr" spellings.
func isKoreanLanguage(code string) bool {
	c := strings.ToLower(strings.TrimSpace(code))
	switch {
	case c == "ko" || c == "kr":
		return true
	case strings.HasPrefix(c, "ko-"):
		return true
	case strings.Contains(c, "korean") || strings.Contains(c, "한국"):
		return true
	}
	return false
}

func (s *Snapshot) staffSpeaksKorean(email string) bool {
	if email == "" {
		return false
	}
	for _, lang := range s.StaffLanguages[email] {
		if isKoreanLanguage(lang) {
			return true
		}
	}
	return false
}

// HasKoreanStaff reports whether the tour's guide or assistant can guide in
// Korean.
func (s *Snapshot) HasKoreanStaff(slot TourSlot) bool {
	return s.staffSpeaksKorean(slot.GuideEmail) || s.staffSpeaksKorean(slot.AssistantEmail)
}

// CeilingOf returns the tour's passenger ceiling (vehicle capacity minus the
// staff seats) and false when the tour has no vehicle or unknown capacity.
func (s *Snapshot) CeilingOf(tourID string) (int, bool) {
	slot, ok := s.Tour(tourID)
	if !ok || slot.VehicleID == "" {
		return 0, false
	}
	v, ok := s.Vehicles[slot.VehicleID]
	if !ok || v.Capacity == nil {
		return 0, false
	}
	return *v.Capacity - models.SeatsReservedForStaff, true
}

// InitialPartition is the snapshot's current reservation-to-tour layout.
func (s *Snapshot) InitialPartition() Partition {
	p := make(Partition, len(s.Tours))
	for i, t := range s.Tours {
		ids := make([]string, len(t.ReservationIDs))
		copy(ids, t.ReservationIDs)
		p[i] = TourAssignment{TourID: t.ID, ReservationIDs: ids}
	}
	return p
}

// BuildProposal runs the four passes in order over the snapshot's initial
// partition. Each pass's moves are applied before the next pass runs, so
// later rules see the effect of earlier ones. The computation is
// deterministic: the same snapshot always yields the same proposal.
func BuildProposal(snap *Snapshot) *Proposal {
	p := snap.InitialPartition()
	proposal := &Proposal{Moves: []Move{}}

	passes := []struct {
		rule int
		run  func(*Snapshot, Partition) []Move
	}{
		{1, ruleLanguage},
		{2, ruleChoice},
		{3, rulePickupHotel},
	}
	for _, pass := range passes {
		moves := pass.run(snap, p)
		for i := range moves {
			moves[i].Rule = pass.rule
			p.MoveReservation(moves[i].ReservationID, moves[i].ToTourID)
		}
		proposal.Moves = append(proposal.Moves, moves...)
	}

	capMoves, overflows := ruleCapacity(snap, p)
	proposal.Moves = append(proposal.Moves, capMoves...)
	proposal.Overflows = overflows

	proposal.Partition = p
	return proposal
}

// ruleLanguage (pass 1): Korean-language customers belong on a tour with
// Korean-capable staff. Every Korean reservation sitting on a tour without
// Korean staff moves to the first tour (tour order) that has it. No move is
// possible when no tour qualifies.
func ruleLanguage(snap *Snapshot, p Partition) []Move {
	target := ""
	for _, ta := range p {
		if slot, ok := snap.Tour(ta.TourID); ok && snap.HasKoreanStaff(slot) {
			target = ta.TourID
			break
		}
	}
	if target == "" {
		return nil
	}

	var moves []Move
	for _, ta := range p {
		slot, ok := snap.Tour(ta.TourID)
		if !ok || snap.HasKoreanStaff(slot) {
			continue
		}
		for _, resID := range ta.ReservationIDs {
			res := snap.Reservation(resID)
			if isKoreanLanguage(snap.CustomerLanguages[res.CustomerID]) {
				moves = append(moves, Move{ReservationID: resID, FromTourID: ta.TourID, ToTourID: target})
			}
		}
	}
	return moves
}

// ruleChoice (pass 2): categories L, X, other are dealt onto the tours in
// tour order, one category per index. With fewer tours than categories the
// surplus categories clamp to the last tour.
func ruleChoice(snap *Snapshot, p Partition) []Move {
	if len(p) == 0 {
		return nil
	}

	cats := ChoiceCategories()
	targetFor := make(map[ChoiceTag]string, len(cats))
	for i, cat := range cats {
		idx := i
		if idx > len(p)-1 {
			idx = len(p) - 1
		}
		targetFor[cat] = p[idx].TourID
	}

	var moves []Move
	for _, ta := range p {
		for _, resID := range ta.ReservationIDs {
			target := targetFor[snap.ChoiceOf(resID)]
			if target != ta.TourID {
				moves = append(moves, Move{ReservationID: resID, FromTourID: ta.TourID, ToTourID: target})
			}
		}
	}
	return moves
}

// rulePickupHotel (pass 3): for each hotel, the tour currently carrying the
// most of its reservations becomes that hotel's primary tour (ties break on
// tour order); everyone else at the hotel joins it. Hotels are processed in
// first-encounter order over the current partition.
func rulePickupHotel(snap *Snapshot, p Partition) []Move {
	hotelOrder := []string{}
	counts := map[string][]int{}
	for i, ta := range p {
		for _, resID := range ta.ReservationIDs {
			hotelID := snap.Reservation(resID).PickupHotelID
			if hotelID == "" {
				continue
			}
			if _, seen := counts[hotelID]; !seen {
				counts[hotelID] = make([]int, len(p))
				hotelOrder = append(hotelOrder, hotelID)
			}
			counts[hotelID][i]++
		}
	}

	var moves []Move
	for _, hotelID := range hotelOrder {
		best := 0
		for i, n := range counts[hotelID] {
			if n > counts[hotelID][best] {
				best = i
			}
		}
		primary := p[best].TourID
		for i, ta := range p {
			if i == best {
				continue
			}
			for _, resID := range ta.ReservationIDs {
				if snap.Reservation(resID).PickupHotelID == hotelID {
					moves = append(moves, Move{ReservationID: resID, FromTourID: ta.TourID, ToTourID: primary})
				}
			}
		}
	}
	return moves
}

// ruleCapacity (pass 4): tours over their vehicle ceiling shed reservations,
// largest party first, to the first tour in order with headroom. Tours
// without a vehicle or known capacity are never sources but remain valid
// targets. Overflow that nothing can absorb is documented on the proposal,
// never dropped. Applies its moves incrementally since each move changes the
// totals the next decision depends on.
func ruleCapacity(snap *Snapshot, p Partition) ([]Move, []Overflow) {
	totalOf := func(i int) int {
		sum := 0
		for _, resID := range p[i].ReservationIDs {
			sum += snap.Reservation(resID).PeopleCount()
		}
		return sum
	}

	var moves []Move
	var overflows []Overflow

	for i := range p {
		ceiling, ok := snap.CeilingOf(p[i].TourID)
		if !ok {
			continue
		}

		for totalOf(i) > ceiling {
			candidates := append([]string(nil), p[i].ReservationIDs...)
			sort.SliceStable(candidates, func(a, b int) bool {
				return snap.Reservation(candidates[a]).PeopleCount() > snap.Reservation(candidates[b]).PeopleCount()
			})

			moved := false
			for _, resID := range candidates {
				people := snap.Reservation(resID).PeopleCount()
				for j := range p {
					if j == i {
						continue
					}
					targetCeiling, hasCeiling := snap.CeilingOf(p[j].TourID)
					if hasCeiling && totalOf(j)+people > targetCeiling {
						continue
					}
					moves = append(moves, Move{ReservationID: resID, FromTourID: p[i].TourID, ToTourID: p[j].TourID, Rule: 4})
					p.MoveReservation(resID, p[j].TourID)
					moved = true
					break
				}
				if moved {
					break
				}
			}

			if !moved {
				overflows = append(overflows, Overflow{TourID: p[i].TourID, People: totalOf(i), Ceiling: ceiling})
				break
			}
		}
	}
	return moves, overflows
}

// DiffPartitions compares an original partition against a final one. Moves
// list every reservation whose holding tour changed; hasChanges also covers
// pure reorderings within a tour, since those still change the stored array.
func DiffPartitions(original, final Partition) ([]Move, bool) {
	moves := []Move{}
	for _, ta := range final {
		for _, resID := range ta.ReservationIDs {
			from := original.HolderOf(resID)
			if from != ta.TourID {
				moves = append(moves, Move{ReservationID: resID, FromTourID: from, ToTourID: ta.TourID})
			}
		}
	}

	hasChanges := len(moves) > 0
	if !hasChanges {
		for _, ta := range final {
			i := original.IndexOf(ta.TourID)
			if i < 0 || !equalIDs(original[i].ReservationIDs, ta.ReservationIDs) {
				hasChanges = true
				break
			}
		}
	}
	return moves, hasChanges
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
