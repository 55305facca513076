// Package memory keeps every repository in process memory. It backs the
// "memory" storage driver and the service and handler tests. One mutex guards
// the whole store, which gives the same all-or-nothing behaviour as the
// conditional SQL statements of the gorm repositories.
package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/pkg/pagination"
)

// ErrDuplicateKey mirrors a unique index violation
var ErrDuplicateKey = errors.New("memory: duplicate key")

// Store holds the data shared by the in-memory repositories
type Store struct {
	mu sync.Mutex

	quotations      map[uint]*entity.Quotation
	nextQuotationID uint
	invoices        map[uint]*entity.Invoice
	nextInvoiceID   uint

	tours     map[uint]*entity.TourPackage
	vehicles  map[uint]*entity.Vehicle
	hotels    map[uint]*entity.Hotel
	transfers map[uint]*entity.TransferRoute
	nextItem  map[string]uint

	admins      map[uuid.UUID]*entity.AdminUser
	idempotency map[string]*entity.IdempotencyKey

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		quotations:  make(map[uint]*entity.Quotation),
		invoices:    make(map[uint]*entity.Invoice),
		tours:       make(map[uint]*entity.TourPackage),
		vehicles:    make(map[uint]*entity.Vehicle),
		hotels:      make(map[uint]*entity.Hotel),
		transfers:   make(map[uint]*entity.TransferRoute),
		nextItem:    make(map[string]uint),
		admins:      make(map[uuid.UUID]*entity.AdminUser),
		idempotency: make(map[string]*entity.IdempotencyKey),
		now:         time.Now,
	}
}

func (s *Store) nextID(table string) uint {
	s.nextItem[table]++
	return s.nextItem[table]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// page applies offset and limit to an already filtered and sorted slice
func page[T any](items []T, params *pagination.PaginationParams) []T {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// newestFirst sorts by created_at then id, both descending
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) uint) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}
