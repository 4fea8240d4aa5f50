package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// testSnapshot builds a snapshot with empty lookup maps so tests only fill
// what they exercise.
func testSnapshot(tours ...TourSlot) *Snapshot {
	return &Snapshot{
		ProductID:         "product-1",
		TourDate:          "2026-03-01",
		Tours:             tours,
		Reservations:      map[string]ReservationInfo{},
		Choices:           map[string]ChoiceTag{},
		CustomerLanguages: map[string]string{},
		StaffLanguages:    map[string][]string{},
		Vehicles:          map[string]VehicleInfo{},
		Hotels:            map[string]HotelInfo{},
	}
}

func addReservation(snap *Snapshot, id, customerID, hotelID string, people int) {
	snap.Reservations[id] = ReservationInfo{
		ID:            id,
		CustomerID:    customerID,
		PickupHotelID: hotelID,
		Adults:        people,
	}
}

func allReservationIDs(p Partition) []string {
	var ids []string
	for _, ta := range p {
		ids = append(ids, ta.ReservationIDs...)
	}
	sort.Strings(ids)
	return ids
}

func TestRuleLanguage_MovesKoreanCustomersToKoreanStaff(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", GuideEmail: "kim@tours.com", ReservationIDs: []string{"r1"}},
		TourSlot{ID: "t2", GuideEmail: "john@tours.com", ReservationIDs: []string{"r2", "r3"}},
	)
	snap.StaffLanguages["kim@tours.com"] = []string{"ko", "en"}
	snap.StaffLanguages["john@tours.com"] = []string{"en"}
	addReservation(snap, "r1", "c1", "", 2)
	addReservation(snap, "r2", "c2", "", 2)
	addReservation(snap, "r3", "c3", "", 2)
	snap.CustomerLanguages["c2"] = "ko"
	snap.CustomerLanguages["c3"] = "en"

	moves := ruleLanguage(snap, snap.InitialPartition())
	require.Len(t, moves, 1)
	assert.Equal(t, "r2", moves[0].ReservationID)
	assert.Equal(t, "t2", moves[0].FromTourID)
	assert.Equal(t, "t1", moves[0].ToTourID)
}

func TestRuleLanguage_NoKoreanStaffAnywhere(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", GuideEmail: "john@tours.com", ReservationIDs: []string{"r1"}},
		TourSlot{ID: "t2", GuideEmail: "jane@tours.com", ReservationIDs: []string{"r2"}},
	)
	snap.StaffLanguages["john@tours.com"] = []string{"en"}
	snap.StaffLanguages["jane@tours.com"] = []string{"en"}
	addReservation(snap, "r1", "c1", "", 1)
	addReservation(snap, "r2", "c2", "", 1)
	snap.CustomerLanguages["c1"] = "ko"
	snap.CustomerLanguages["c2"] = "ko"

	assert.Empty(t, ruleLanguage(snap, snap.InitialPartition()))
}

func TestRuleLanguage_KoreanAssistantCounts(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", AssistantEmail: "park@tours.com", ReservationIDs: []string{}},
		TourSlot{ID: "t2", ReservationIDs: []string{"r1"}},
	)
	snap.StaffLanguages["park@tours.com"] = []string{"KR"}
	addReservation(snap, "r1", "c1", "", 1)
	snap.CustomerLanguages["c1"] = "Korean"

	moves := ruleLanguage(snap, snap.InitialPartition())
	require.Len(t, moves, 1)
	assert.Equal(t, "t1", moves[0].ToTourID)
}

func TestRuleChoice_ThreeTours(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"rX"}},
		TourSlot{ID: "t2", ReservationIDs: []string{"rL"}},
		TourSlot{ID: "t3", ReservationIDs: []string{"rO"}},
	)
	for _, id := range []string{"rX", "rL", "rO"} {
		addReservation(snap, id, "", "", 1)
	}
	snap.Choices["rL"] = ChoiceLower
	snap.Choices["rX"] = ChoiceX
	snap.Choices["rO"] = ChoiceOther

	p := snap.InitialPartition()
	moves := ruleChoice(snap, p)
	for _, m := range moves {
		p.MoveReservation(m.ReservationID, m.ToTourID)
	}

	// L -> t1, X -> t2, other -> t3
	assert.Equal(t, []string{"rL"}, p[0].ReservationIDs)
	assert.Equal(t, []string{"rX"}, p[1].ReservationIDs)
	assert.Equal(t, []string{"rO"}, p[2].ReservationIDs)
}

func TestRuleChoice_TwoToursWrapToLast(t *testing.T) {
	// With 2 tours and 3 categories, X and other both clamp onto the last
	// tour: L -> t1, X -> t2, other -> t2.
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"rL", "rO"}},
		TourSlot{ID: "t2", ReservationIDs: []string{"rX"}},
	)
	for _, id := range []string{"rL", "rO", "rX"} {
		addReservation(snap, id, "", "", 1)
	}
	snap.Choices["rL"] = ChoiceLower
	snap.Choices["rX"] = ChoiceX
	snap.Choices["rO"] = ChoiceOther

	p := snap.InitialPartition()
	moves := ruleChoice(snap, p)
	require.Len(t, moves, 1)
	assert.Equal(t, "rO", moves[0].ReservationID)
	assert.Equal(t, "t2", moves[0].ToTourID)
}

func TestRuleChoice_MissingChoiceDefaultsToOther(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"r1"}},
		TourSlot{ID: "t2", ReservationIDs: []string{}},
		TourSlot{ID: "t3", ReservationIDs: []string{}},
	)
	addReservation(snap, "r1", "", "", 1)

	moves := ruleChoice(snap, snap.InitialPartition())
	require.Len(t, moves, 1)
	assert.Equal(t, "t3", moves[0].ToTourID)
}

func TestRulePickupHotel_PoolsOnPrimaryTour(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"r1", "r2"}},
		TourSlot{ID: "t2", ReservationIDs: []string{"r3"}},
	)
	addReservation(snap, "r1", "", "hotelA", 1)
	addReservation(snap, "r2", "", "hotelA", 1)
	addReservation(snap, "r3", "", "hotelA", 1)

	moves := rulePickupHotel(snap, snap.InitialPartition())
	require.Len(t, moves, 1)
	assert.Equal(t, "r3", moves[0].ReservationID)
	assert.Equal(t, "t1", moves[0].ToTourID)
}

func TestRulePickupHotel_TieBreaksOnTourOrder(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"r1"}},
		TourSlot{ID: "t2", ReservationIDs: []string{"r2"}},
	)
	addReservation(snap, "r1", "", "hotelA", 1)
	addReservation(snap, "r2", "", "hotelA", 1)

	moves := rulePickupHotel(snap, snap.InitialPartition())
	require.Len(t, moves, 1)
	assert.Equal(t, "r2", moves[0].ReservationID)
	assert.Equal(t, "t1", moves[0].ToTourID)
}

func TestRulePickupHotel_NoHotelUntouched(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"r1"}},
		TourSlot{ID: "t2", ReservationIDs: []string{"r2"}},
	)
	addReservation(snap, "r1", "", "", 2)
	addReservation(snap, "r2", "", "", 3)

	assert.Empty(t, rulePickupHotel(snap, snap.InitialPartition()))
}

func TestRuleCapacity_ShedsLargestFirst(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", VehicleID: "v1", ReservationIDs: []string{"r1", "r2", "r3"}},
		TourSlot{ID: "t2", ReservationIDs: []string{}},
	)
	snap.Vehicles["v1"] = VehicleInfo{ID: "v1", Capacity: intPtr(10)} // ceiling 8
	addReservation(snap, "r1", "", "", 3)
	addReservation(snap, "r2", "", "", 5)
	addReservation(snap, "r3", "", "", 2)

	p := snap.InitialPartition()
	moves, overflows := ruleCapacity(snap, p)

	// Total 10 > 8: the 5-person party moves first, bringing t1 to 5.
	require.Len(t, moves, 1)
	assert.Equal(t, "r2", moves[0].ReservationID)
	assert.Equal(t, "t2", moves[0].ToTourID)
	assert.Empty(t, overflows)
}

func TestRuleCapacity_RespectsTargetCeiling(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", VehicleID: "v1", ReservationIDs: []string{"r1", "r2"}},
		TourSlot{ID: "t2", VehicleID: "v2", ReservationIDs: []string{"r3"}},
		TourSlot{ID: "t3", VehicleID: "v3", ReservationIDs: []string{}},
	)
	snap.Vehicles["v1"] = VehicleInfo{ID: "v1", Capacity: intPtr(6)}  // ceiling 4
	snap.Vehicles["v2"] = VehicleInfo{ID: "v2", Capacity: intPtr(6)}  // ceiling 4, holds 4
	snap.Vehicles["v3"] = VehicleInfo{ID: "v3", Capacity: intPtr(12)} // ceiling 10
	addReservation(snap, "r1", "", "", 3)
	addReservation(snap, "r2", "", "", 3)
	addReservation(snap, "r3", "", "", 4)

	p := snap.InitialPartition()
	moves, overflows := ruleCapacity(snap, p)

	// t2 has no headroom, so the excess lands on t3.
	require.Len(t, moves, 1)
	assert.Equal(t, "t3", moves[0].ToTourID)
	assert.Empty(t, overflows)
}

func TestRuleCapacity_UncapacitatedTourExemptAsSource(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", ReservationIDs: []string{"r1", "r2"}},
		TourSlot{ID: "t2", VehicleID: "v2", ReservationIDs: []string{}},
	)
	snap.Vehicles["v2"] = VehicleInfo{ID: "v2", Capacity: intPtr(4)}
	addReservation(snap, "r1", "", "", 20)
	addReservation(snap, "r2", "", "", 20)

	moves, overflows := ruleCapacity(snap, snap.InitialPartition())
	assert.Empty(t, moves)
	assert.Empty(t, overflows)
}

func TestRuleCapacity_UnresolvedOverflowDocumented(t *testing.T) {
	snap := testSnapshot(
		TourSlot{ID: "t1", VehicleID: "v1", ReservationIDs: []string{"r1", "r2"}},
		TourSlot{ID: "t2", VehicleID: "v2", ReservationIDs: []string{"r3"}},
	)
	snap.Vehicles["v1"] = VehicleInfo{ID: "v1", Capacity: intPtr(6)} // ceiling 4
	snap.Vehicles["v2"] = VehicleInfo{ID: "v2", Capacity: intPtr(6)} // ceiling 4
	addReservation(snap, "r1", "", "", 3)
	addReservation(snap, "r2", "", "", 3)
	addReservation(snap, "r3", "", "", 4)

	p := snap.InitialPartition()
	moves, overflows := ruleCapacity(snap, p)

	assert.Empty(t, moves)
	require.Len(t, overflows, 1)
	assert.Equal(t, "t1", overflows[0].TourID)
	assert.Equal(t, 6, overflows[0].People)
	assert.Equal(t, 4, overflows[0].Ceiling)

	// Nothing dropped.
	assert.ElementsMatch(t, []string{"r1", "r2", "r3"}, allReservationIDs(p))
}

// fullSnapshot is a mixed scenario exercising all four passes.
func fullSnapshot() *Snapshot {
	snap := testSnapshot(
		TourSlot{ID: "t1", GuideEmail: "kim@tours.com", VehicleID: "v1", ReservationIDs: []string{"r1", "r4"}},
		TourSlot{ID: "t2", GuideEmail: "john@tours.com", VehicleID: "v2", ReservationIDs: []string{"r2", "r5"}},
		TourSlot{ID: "t3", ReservationIDs: []string{"r3", "r6"}},
	)
	snap.StaffLanguages["kim@tours.com"] = []string{"ko"}
	snap.StaffLanguages["john@tours.com"] = []string{"en"}
	snap.Vehicles["v1"] = VehicleInfo{ID: "v1", Capacity: intPtr(12)}
	snap.Vehicles["v2"] = VehicleInfo{ID: "v2", Capacity: intPtr(10)}

	addReservation(snap, "r1", "c1", "hotelA", 2)
	addReservation(snap, "r2", "c2", "hotelA", 3)
	addReservation(snap, "r3", "c3", "hotelB", 4)
	addReservation(snap, "r4", "c4", "hotelB", 2)
	addReservation(snap, "r5", "c5", "", 5)
	addReservation(snap, "r6", "c6", "hotelB", 1)

	snap.CustomerLanguages["c2"] = "ko"
	snap.CustomerLanguages["c5"] = "en"

	snap.Choices["r1"] = ChoiceLower
	snap.Choices["r2"] = ChoiceLower
	snap.Choices["r3"] = ChoiceX
	snap.Choices["r4"] = ChoiceOther
	snap.Choices["r5"] = ChoiceX
	snap.Choices["r6"] = ChoiceOther
	return snap
}

func TestBuildProposal_Conservation(t *testing.T) {
	snap := fullSnapshot()
	before := allReservationIDs(snap.InitialPartition())

	proposal := BuildProposal(snap)
	after := allReservationIDs(proposal.Partition)

	assert.Equal(t, before, after)
}

func TestBuildProposal_Deterministic(t *testing.T) {
	p1 := BuildProposal(fullSnapshot())
	p2 := BuildProposal(fullSnapshot())

	assert.Equal(t, p1.Partition, p2.Partition)
	assert.Equal(t, p1.Moves, p2.Moves)
	assert.Equal(t, p1.Overflows, p2.Overflows)
}

func TestBuildProposal_DoesNotMutateSnapshot(t *testing.T) {
	snap := fullSnapshot()
	original := snap.InitialPartition().Clone()

	BuildProposal(snap)

	assert.Equal(t, original, snap.InitialPartition())
}

func TestBuildProposal_LanguageInvariantHolds(t *testing.T) {
	snap := fullSnapshot()
	proposal := BuildProposal(snap)

	// No tour without Korean staff may end up holding a Korean customer,
	// since at least one tour has Korean staff.
	for _, ta := range proposal.Partition {
		slot, ok := snap.Tour(ta.TourID)
		require.True(t, ok)
		if snap.HasKoreanStaff(slot) {
			continue
		}
		for _, resID := range ta.ReservationIDs {
			lang := snap.CustomerLanguages[snap.Reservation(resID).CustomerID]
			assert.False(t, isKoreanLanguage(lang),
				"korean reservation %s left on tour %s without korean staff", resID, ta.TourID)
		}
	}
}

func TestBuildProposal_EmptySnapshot(t *testing.T) {
	proposal := BuildProposal(testSnapshot())
	assert.Empty(t, proposal.Partition)
	assert.Empty(t, proposal.Moves)
	assert.Empty(t, proposal.Overflows)
}

func TestBuildProposal_TwoTourScenario(t *testing.T) {
	// 2 tours; r1 (ko, L, hotelA, 2 pax) on t1 whose guide speaks Korean,
	// r2 (en, X, hotelB, 3 pax) on t2. No pass should move anything:
	// rule 1 leaves r1 with its Korean guide, rule 2 maps L->t1 and X->t2
	// under the clamp rule, rule 3 finds each hotel already pooled, and no
	// vehicle imposes a ceiling.
	snap := testSnapshot(
		TourSlot{ID: "t1", GuideEmail: "kim@tours.com", ReservationIDs: []string{"r1"}},
		TourSlot{ID: "t2", GuideEmail: "john@tours.com", ReservationIDs: []string{"r2"}},
	)
	snap.StaffLanguages["kim@tours.com"] = []string{"ko"}
	snap.StaffLanguages["john@tours.com"] = []string{"en"}
	addReservation(snap, "r1", "c1", "hotelA", 2)
	addReservation(snap, "r2", "c2", "hotelB", 3)
	snap.CustomerLanguages["c1"] = "ko"
	snap.CustomerLanguages["c2"] = "en"
	snap.Choices["r1"] = ChoiceLower
	snap.Choices["r2"] = ChoiceX

	proposal := BuildProposal(snap)

	assert.Empty(t, proposal.Moves)
	assert.Equal(t, []string{"r1"}, proposal.Partition[0].ReservationIDs)
	assert.Equal(t, []string{"r2"}, proposal.Partition[1].ReservationIDs)
}

func TestDiffPartitions(t *testing.T) {
	original := Partition{
		{TourID: "t1", ReservationIDs: []string{"r1", "r2"}},
		{TourID: "t2", ReservationIDs: []string{"r3"}},
	}
	final := Partition{
		{TourID: "t1", ReservationIDs: []string{"r1"}},
		{TourID: "t2", ReservationIDs: []string{"r2", "r3"}},
	}

	moves, hasChanges := DiffPartitions(original, final)
	assert.True(t, hasChanges)
	require.Len(t, moves, 1)
	assert.Equal(t, Move{ReservationID: "r2", FromTourID: "t1", ToTourID: "t2"}, moves[0])
}

func TestDiffPartitions_NoChanges(t *testing.T) {
	p := Partition{
		{TourID: "t1", ReservationIDs: []string{"r1"}},
		{TourID: "t2", ReservationIDs: []string{"r2"}},
	}
	moves, hasChanges := DiffPartitions(p, p.Clone())
	assert.Empty(t, moves)
	assert.False(t, hasChanges)
}

func TestDiffPartitions_ReorderOnlyStillChanges(t *testing.T) {
	original := Partition{{TourID: "t1", ReservationIDs: []string{"r1", "r2"}}}
	final := Partition{{TourID: "t1", ReservationIDs: []string{"r2", "r1"}}}

	moves, hasChanges := DiffPartitions(original, final)
	assert.Empty(t, moves)
	assert.True(t, hasChanges)
}

func TestPartitionMoveReservation(t *testing.T) {
	p := Partition{
		{TourID: "t1", ReservationIDs: []string{"r1", "r2"}},
		{TourID: "t2", ReservationIDs: []string{"r3"}},
	}

	p.MoveReservation("r1", "t2")
	assert.Equal(t, []string{"r2"}, p[0].ReservationIDs)
	assert.Equal(t, []string{"r3", "r1"}, p[1].ReservationIDs)

	// Moving to the current holder is a no-op.
	p.MoveReservation("r1", "t2")
	assert.Equal(t, []string{"r3", "r1"}, p[1].ReservationIDs)

	// Unknown target is a no-op.
	p.MoveReservation("r2", "missing")
	assert.Equal(t, "t1", p.HolderOf("r2"))
}
