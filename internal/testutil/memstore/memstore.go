// Package memstore is an in-memory parceltx.Runner for workflow tests.
//
// Transactions read a snapshot taken at begin plus their own writes. Writes are
// replayed against the committed state at commit time; if a precondition no
// longer holds there the whole transaction fails with apperr.ErrPrecondition and
// nothing is applied.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/ports/parceltx"
)

// Faults lets tests fail individual writes inside a transaction.
type Faults struct {
	UpdateParcel  func(domain.ParcelUpdate) error
	InsertPayment func(*domain.PaymentRecord) error
	UpdateRider   func(domain.RiderUpdate) error
}

type state struct {
	parcels  map[string]domain.Parcel
	payments map[string]domain.PaymentRecord // keyed by parcel id
	riders   map[string]domain.Rider
	users    map[string]domain.User // keyed by email
}

func (s state) clone() state {
	return state{
		parcels:  maps.Clone(s.parcels),
		payments: maps.Clone(s.payments),
		riders:   maps.Clone(s.riders),
		users:    maps.Clone(s.users),
	}
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   state
	commits int
	faults  Faults
}

// New returns an empty store.
func New() *Store {
	return &Store{state: state{
		parcels:  map[string]domain.Parcel{},
		payments: map[string]domain.PaymentRecord{},
		riders:   map[string]domain.Rider{},
		users:    map[string]domain.User{},
	}}
}

// SetFaults installs write faults.
func (s *Store) SetFaults(f Faults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = f
}

// PutParcel stores p as committed state, assigning an id when missing.
func (s *Store) PutParcel(p domain.Parcel) domain.Parcel {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.parcels[p.ID] = p
	return p
}

// PutRider stores r as committed state, assigning an id when missing.
func (s *Store) PutRider(r domain.Rider) domain.Rider {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.riders[r.ID] = r
	return r
}

// PutUser stores u as committed state.
func (s *Store) PutUser(u domain.User) domain.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.Email] = u
	return u
}

// Parcel returns the committed parcel.
func (s *Store) Parcel(id string) (domain.Parcel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.parcels[id]
	return p, ok
}

// Rider returns the committed rider.
func (s *Store) Rider(id string) (domain.Rider, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.riders[id]
	return r, ok
}

// User returns the committed user with email.
func (s *Store) User(email string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.users[email]
	return u, ok
}

// Payments returns committed ledger rows ordered by paid-at.
func (s *Store) Payments() []domain.PaymentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PaymentRecord, 0, len(s.state.payments))
	for _, p := range s.state.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out
}

// Commits counts transactions that committed at least one write.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Get returns the committed parcel or (nil, nil).
func (s *Store) Get(_ context.Context, id string) (*domain.Parcel, error) {
	p, ok := s.Parcel(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// WithTx implements parceltx.Runner.
func (s *Store) WithTx(ctx context.Context, fn func(tx parceltx.Repository) error) error {
	s.mu.Lock()
	t := &tx{local: s.state.clone(), faults: s.faults}
	s.mu.Unlock()

	if err := fn(t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(t.ops) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.state.clone()
	for _, op := range t.ops {
		if err := op(staged); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
	}
	s.state = staged
	s.commits++
	return nil
}

type tx struct {
	local  state
	ops    []func(state) error
	faults Faults
}

func (t *tx) GetParcelForUpdate(_ context.Context, id string) (*domain.Parcel, error) {
	p, ok := t.local.parcels[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *tx) UpdateParcel(_ context.Context, u domain.ParcelUpdate, pre domain.ParcelPrecondition) (bool, error) {
	if t.faults.UpdateParcel != nil {
		if err := t.faults.UpdateParcel(u); err != nil {
			return false, err
		}
	}
	if trackingTaken(t.local, u) {
		return false, fmt.Errorf("update parcel %s: %w", u.ID, parceltx.ErrTrackingIDTaken)
	}
	if !applyParcel(t.local, u, pre) {
		return false, nil
	}
	t.ops = append(t.ops, func(s state) error {
		if trackingTaken(s, u) {
			return fmt.Errorf("update parcel %s: %w", u.ID, parceltx.ErrTrackingIDTaken)
		}
		if !applyParcel(s, u, pre) {
			return fmt.Errorf("parcel %s changed concurrently: %w", u.ID, apperr.ErrPrecondition)
		}
		return nil
	})
	return true, nil
}

// trackingTaken mirrors the partial unique index on parcels.tracking_id.
func trackingTaken(s state, u domain.ParcelUpdate) bool {
	if u.TrackingID == nil || *u.TrackingID == "" {
		return false
	}
	for id, p := range s.parcels {
		if id != u.ID && p.TrackingID == *u.TrackingID {
			return true
		}
	}
	return false
}

func applyParcel(s state, u domain.ParcelUpdate, pre domain.ParcelPrecondition) bool {
	p, ok := s.parcels[u.ID]
	if !ok {
		return false
	}
	if pre.PaymentStatusNot != nil && p.PaymentStatus == *pre.PaymentStatusNot {
		return false
	}
	if pre.DeliveryStatus != nil && p.DeliveryStatus != *pre.DeliveryStatus {
		return false
	}
	if u.DeliveryStatus != nil {
		p.DeliveryStatus = *u.DeliveryStatus
	}
	if u.PaymentStatus != nil {
		p.PaymentStatus = *u.PaymentStatus
	}
	if u.TrackingID != nil {
		p.TrackingID = *u.TrackingID
	}
	if u.RiderID != nil {
		p.RiderID = *u.RiderID
	}
	if u.RiderName != nil {
		p.RiderName = *u.RiderName
	}
	if u.RiderEmail != nil {
		p.RiderEmail = *u.RiderEmail
	}
	s.parcels[u.ID] = p
	return true
}

func (t *tx) InsertPayment(_ context.Context, p *domain.PaymentRecord) error {
	if t.faults.InsertPayment != nil {
		if err := t.faults.InsertPayment(p); err != nil {
			return err
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	rec := *p
	insert := func(s state) error {
		if _, dup := s.payments[rec.ParcelID]; dup {
			return fmt.Errorf("payment for parcel %s already recorded: %w", rec.ParcelID, apperr.ErrPrecondition)
		}
		s.payments[rec.ParcelID] = rec
		return nil
	}
	if err := insert(t.local); err != nil {
		return err
	}
	t.ops = append(t.ops, insert)
	return nil
}

func (t *tx) GetPaymentByParcelID(_ context.Context, parcelID string) (*domain.PaymentRecord, error) {
	p, ok := t.local.payments[parcelID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *tx) GetRiderForUpdate(_ context.Context, id string) (*domain.Rider, error) {
	r, ok := t.local.riders[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (t *tx) UpdateRider(_ context.Context, u domain.RiderUpdate) (bool, error) {
	if t.faults.UpdateRider != nil {
		if err := t.faults.UpdateRider(u); err != nil {
			return false, err
		}
	}
	if !applyRider(t.local, u) {
		return false, nil
	}
	t.ops = append(t.ops, func(s state) error {
		if !applyRider(s, u) {
			return fmt.Errorf("rider %s: %w", u.ID, apperr.ErrNotFound)
		}
		return nil
	})
	return true, nil
}

func applyRider(s state, u domain.RiderUpdate) bool {
	r, ok := s.riders[u.ID]
	if !ok {
		return false
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.WorkStatus != nil {
		r.WorkStatus = *u.WorkStatus
	}
	s.riders[u.ID] = r
	return true
}

func (t *tx) UpdateUserRoleByEmail(_ context.Context, email string, role domain.Role) (bool, error) {
	apply := func(s state) bool {
		u, ok := s.users[email]
		if !ok {
			return false
		}
		u.Role = role
		s.users[email] = u
		return true
	}
	if !apply(t.local) {
		return false, nil
	}
	t.ops = append(t.ops, func(s state) error {
		apply(s)
		return nil
	})
	return true, nil
}

var _ parceltx.Runner = (*Store)(nil)
