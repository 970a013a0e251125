// Package bookingtest provides an in-memory ledger and catalog for tests.
package bookingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Store implements domain.Repository and catalog.Repository over maps.
// Set Err to make every call fail with it.
type Store struct {
	mu sync.Mutex

	Err error
	Now func() time.Time

	nextID   uint
	bookings map[uint]models.Booking

	salons   map[uint]models.Salon
	services map[uint]models.Service
	packages []models.Package
	products []models.Product
	users    map[uint]models.User
}

func NewStore() *Store {
	return &Store{
		Now:      time.Now,
		bookings: map[uint]models.Booking{},
		salons:   map[uint]models.Salon{},
		services: map[uint]models.Service{},
		users:    map[uint]models.User{},
	}
}

// ======================================================
// SEEDING
// ======================================================

func (s *Store) AddSalon(salon models.Salon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salons[salon.ID] = salon
}

func (s *Store) AddService(svc models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) AddPackage(p models.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages = append(s.packages, p)
}

func (s *Store) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Put stores b as is, assigning an id when it has none.
func (s *Store) Put(b models.Booking) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		s.nextID++
		b.ID = s.nextID
	} else if b.ID > s.nextID {
		s.nextID = b.ID
	}
	s.bookings[b.ID] = b
	return b
}

// Count returns the number of stored bookings.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// Booking returns a copy of the stored booking.
func (s *Store) Booking(id uint) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

// ======================================================
// LEDGER
// ======================================================

func (s *Store) Create(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(b)
}

func (s *Store) CreateNoOverlap(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	day := s.forDay(b.SalonID, b.BookingDate)
	hit, err := domain.FindOverlap(*b, day)
	if err != nil {
		return err
	}
	if hit != nil {
		return domain.ErrSlotConflict
	}
	return s.insert(b)
}

func (s *Store) insert(b *models.Booking) error {
	if s.Err != nil {
		return s.Err
	}
	if b.IdempotencyKey != nil {
		for _, other := range s.bookings {
			if other.UserID == b.UserID && other.IdempotencyKey != nil && *other.IdempotencyKey == *b.IdempotencyKey {
				return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
			}
		}
	}

	now := s.Now()
	s.nextID++
	b.ID = s.nextID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetByIdempotencyKey(_ context.Context, userID uint, key string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, b := range s.bookings {
		if b.UserID == userID && b.IdempotencyKey != nil && *b.IdempotencyKey == key {
			found := b
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) List(_ context.Context, f domain.ListFilter) ([]domain.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var rows []domain.Row
	for _, b := range s.sorted() {
		if f.SalonID != 0 && b.SalonID != f.SalonID {
			continue
		}
		if f.UserID != 0 && b.UserID != f.UserID {
			continue
		}
		if f.Status != "" && b.Status != string(f.Status) {
			continue
		}
		if f.Date != "" && b.BookingDate != f.Date {
			continue
		}
		rows = append(rows, domain.Row{
			Booking:   b,
			UserName:  s.users[b.UserID].Name,
			SalonName: s.salons[b.SalonID].Name,
		})
	}
	return rows, nil
}

func (s *Store) ListForDay(_ context.Context, salonID uint, date string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.forDay(salonID, date), nil
}

func (s *Store) forDay(salonID uint, date string) []models.Booking {
	var out []models.Booking
	for _, b := range s.sorted() {
		if b.SalonID == salonID && b.BookingDate == date && b.Status != string(domain.StatusCancelled) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) ListPendingBefore(_ context.Context, cutoff time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Booking
	for _, b := range s.sorted() {
		if b.Status == string(domain.StatusPending) && b.CreatedAt.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) Update(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	b.UpdatedAt = s.Now()
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) UpdateIfStatus(_ context.Context, b *models.Booking, expected domain.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	stored, ok := s.bookings[b.ID]
	if !ok || stored.Status != string(expected) {
		return false, nil
	}
	b.UpdatedAt = s.Now()
	s.bookings[b.ID] = *b
	return true, nil
}

func (s *Store) sorted() []models.Booking {
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ======================================================
// CATALOG
// ======================================================

func (s *Store) GetSalon(_ context.Context, id uint) (*models.Salon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	salon, ok := s.salons[id]
	if !ok {
		return nil, catalog.ErrSalonNotFound
	}
	return &salon, nil
}

func (s *Store) UpdateSalonImage(_ context.Context, salonID uint, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	salon, ok := s.salons[salonID]
	if !ok {
		return catalog.ErrSalonNotFound
	}
	salon.ImageURL = url
	s.salons[salonID] = salon
	return nil
}

func (s *Store) ListServicesByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Service
	seen := map[uint]bool{}
	for _, id := range ids {
		if svc, ok := s.services[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *Store) ListServices(_ context.Context, salonID uint) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Service
	for _, svc := range s.services {
		if svc.SalonID == salonID && svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListPackages(_ context.Context, salonID uint) ([]models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Package
	for _, p := range s.packages {
		if p.SalonID == salonID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListProducts(_ context.Context, salonID uint) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Product
	for _, p := range s.products {
		if p.SalonID == salonID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

var (
	_ domain.Repository  = (*Store)(nil)
	_ catalog.Repository = (*Store)(nil)
)
