// services/assignment_session.go
package services

import (
	"context"
	"fmt"
	"sync"
)

// AssignmentSession holds one invocation of the engine: the loaded snapshot,
// the computed proposal, and the operator's manual overrides layered on top.
// Sessions are not safe for concurrent use; each operator runs their own.
type AssignmentSession struct {
	store AssignmentStore

	snapshot *Snapshot
	original Partition
	proposal *Proposal

	overrides     map[string]string
	overrideOrder []string
}

// NewAssignmentSession loads the snapshot for the key and computes the
// proposal. Load errors abort with no session state.
func NewAssignmentSession(ctx context.Context, store AssignmentStore, productID, tourDate string) (*AssignmentSession, error) {
	snap, err := LoadSnapshot(ctx, store, productID, tourDate)
	if err != nil {
		return nil, err
	}
	return &AssignmentSession{
		store:     store,
		snapshot:  snap,
		original:  snap.InitialPartition(),
		proposal:  BuildProposal(snap),
		overrides: map[string]string{},
	}, nil
}

// Snapshot exposes the loaded snapshot for display purposes.
func (s *AssignmentSession) Snapshot() *Snapshot {
	return s.snapshot
}

// Proposal is the rule engine's output, before overrides.
func (s *AssignmentSession) Proposal() *Proposal {
	return s.proposal
}

// Override records a manual reservation-to-tour placement. Only the latest
// override per reservation takes effect.
func (s *AssignmentSession) Override(reservationID, targetTourID string) error {
	if s.proposal.Partition.IndexOf(targetTourID) < 0 {
		return fmt.Errorf("unknown_tour: %s", targetTourID)
	}
	if s.proposal.Partition.HolderOf(reservationID) == "" {
		return fmt.Errorf("unknown_reservation: %s", reservationID)
	}

	if _, exists := s.overrides[reservationID]; exists {
		for i, id := range s.overrideOrder {
			if id == reservationID {
				s.overrideOrder = append(s.overrideOrder[:i], s.overrideOrder[i+1:]...)
				break
			}
		}
	}
	s.overrides[reservationID] = targetTourID
	s.overrideOrder = append(s.overrideOrder, reservationID)
	return nil
}

// ResetOverrides discards all recorded overrides.
func (s *AssignmentSession) ResetOverrides() {
	s.overrides = map[string]string{}
	s.overrideOrder = nil
}

// Effective is the displayed partition: the proposal with every recorded
// override applied in order, each moving the reservation from whichever tour
// currently holds it.
func (s *AssignmentSession) Effective() Partition {
	p := s.proposal.Partition.Clone()
	for _, resID := range s.overrideOrder {
		p.MoveReservation(resID, s.overrides[resID])
	}
	return p
}

// Diff compares the snapshot's original layout against the effective
// partition.
func (s *AssignmentSession) Diff() ([]Move, bool) {
	return DiffPartitions(s.original, s.Effective())
}

// CommitFailure is one tour whose write failed during commit.
type CommitFailure struct {
	TourID string `json:"tour_id"`
	Error  string `json:"error"`
}

// CommitReport lists which per-tour writes succeeded and which failed.
// Succeeded tours stay committed; there is no rollback.
type CommitReport struct {
	Committed []string        `json:"committed"`
	Failed    []CommitFailure `json:"failed,omitempty"`
}

// Success reports whether every attempted write went through.
func (r *CommitReport) Success() bool {
	return len(r.Failed) == 0
}

// Commit persists the effective partition, one write per changed tour. The
// writes are independent and issued concurrently; all are awaited before the
// report is returned. With no changes the commit is a valid no-op. On full
// success the original baseline becomes the committed state and overrides
// clear, so the next diff starts clean.
func (s *AssignmentSession) Commit(ctx context.Context) (*CommitReport, error) {
	effective := s.Effective()

	type pending struct {
		tourID string
		ids    []string
	}
	var changed []pending
	for _, ta := range effective {
		i := s.original.IndexOf(ta.TourID)
		if i >= 0 && equalIDs(s.original[i].ReservationIDs, ta.ReservationIDs) {
			continue
		}
		changed = append(changed, pending{tourID: ta.TourID, ids: ta.ReservationIDs})
	}

	report := &CommitReport{Committed: []string{}}
	if len(changed) == 0 {
		return report, nil
	}

	errs := make([]error, len(changed))
	var wg sync.WaitGroup
	for i, w := range changed {
		wg.Add(1)
		go func(i int, w pending) {
			defer wg.Done()
			errs[i] = s.store.CommitTourReservationIDs(ctx, w.tourID, w.ids)
		}(i, w)
	}
	wg.Wait()

	for i, w := range changed {
		if errs[i] != nil {
			report.Failed = append(report.Failed, CommitFailure{TourID: w.tourID, Error: errs[i].Error()})
		} else {
			report.Committed = append(report.Committed, w.tourID)
		}
	}

	if report.Success() {
		s.original = effective.Clone()
		s.proposal.Partition = effective.Clone()
		s.ResetOverrides()
	}
	return report, nil
}
