package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var acceptable = []enum.QuotationStatus{enum.QuotationStatusSent, enum.QuotationStatusViewed}

func seedQuotation(t *testing.T, repo domainRepo.QuotationRepository, ref string, status enum.QuotationStatus) *entity.Quotation {
	t.Helper()
	q := &entity.Quotation{
		Reference:   ref,
		ServiceType: enum.ServiceTypeTransfer,
		TotalAmount: 100000,
		Currency:    "USD",
		Status:      status,
	}
	require.NoError(t, repo.Create(context.Background(), q))
	return q
}

func TestAcceptInsertsExactlyOneInvoiceUnderContention(t *testing.T) {
	store := NewStore()
	quotations := NewQuotationRepository(store)
	invoices := NewInvoiceRepository(store)
	q := seedQuotation(t, quotations, "QT-AAAA0001", enum.QuotationStatusSent)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			inv := entity.NewInvoiceFromQuotation(q, "INV-"+string(rune('A'+n)))
			ok, err := quotations.Accept(context.Background(), q.ID, acceptable, time.Now(), inv)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	_, total, err := invoices.List(context.Background(), &domainRepo.InvoiceFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	stored, err := quotations.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusAccepted, stored.Status)
	assert.NotNil(t, stored.AcceptedAt)
}

func TestRecordViewSetsFirstViewOnce(t *testing.T) {
	store := NewStore()
	quotations := NewQuotationRepository(store)
	q := seedQuotation(t, quotations, "QT-AAAA0002", enum.QuotationStatusSent)

	first := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, quotations.RecordView(context.Background(), q.ID, first.Add(time.Duration(i)*time.Hour)))
	}

	stored, err := quotations.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.ViewCount)
	assert.Equal(t, first, *stored.FirstViewedAt)
	assert.Equal(t, enum.QuotationStatusViewed, stored.Status)
}

func TestAddPaymentNeverOvershootsUnderContention(t *testing.T) {
	store := NewStore()
	quotations := NewQuotationRepository(store)
	invoices := NewInvoiceRepository(store)
	q := seedQuotation(t, quotations, "QT-AAAA0003", enum.QuotationStatusSent)
	inv := entity.NewInvoiceFromQuotation(q, "INV-00000001")
	ok, err := quotations.Accept(context.Background(), q.ID, acceptable, time.Now(), inv)
	require.NoError(t, err)
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := invoices.AddPayment(context.Background(), inv.ID, domainRepo.InvoicePayment{
				Amount: 10000,
				Type:   enum.PaymentTypeCash,
				Date:   time.Now(),
			}, 0)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), stored.PaidAmount)
	assert.Equal(t, enum.InvoiceStatusPaid, stored.Status())
}

func TestListFiltersAndPaginates(t *testing.T) {
	store := NewStore()
	quotations := NewQuotationRepository(store)
	seedQuotation(t, quotations, "QT-LIST0001", enum.QuotationStatusDraft)
	seedQuotation(t, quotations, "QT-LIST0002", enum.QuotationStatusSent)
	seedQuotation(t, quotations, "QT-LIST0003", enum.QuotationStatusSent)

	sent := enum.QuotationStatusSent
	items, total, err := quotations.List(context.Background(), &domainRepo.QuotationFilterParams{
		Status:     &sent,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 1)
	assert.Equal(t, "QT-LIST0003", items[0].Reference)
}
