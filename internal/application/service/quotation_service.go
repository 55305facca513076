package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/serendib-tours/booking-api/internal/config"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/domain/pricing"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/domain/servicedetail"
	"github.com/serendib-tours/booking-api/internal/observability"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/serendib-tours/booking-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const referenceAttempts = 5

// Stored statuses from which a customer may accept or reject
var respondableStatuses = []enum.QuotationStatus{enum.QuotationStatusSent, enum.QuotationStatusViewed}

// QuotationService handles the quotation lifecycle: creation, customer
// access, sending, acceptance with invoice creation, and rejection
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	invoiceRepo   repository.InvoiceRepository
	catalogRepo   repository.CatalogRepository
	clock         clock.Clock
	settings      config.QuotationConfig
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	invoiceRepo repository.InvoiceRepository,
	catalogRepo repository.CatalogRepository,
	clk clock.Clock,
	settings config.QuotationConfig,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *QuotationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
		catalogRepo:   catalogRepo,
		clock:         clk,
		settings:      settings,
		metrics:       metrics,
		logger:        logger,
	}
}

// CreateQuotationInput represents the create quotation input
type CreateQuotationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	ServiceType enum.ServiceType
	ServiceID   uint

	StartDate time.Time
	EndDate   *time.Time

	Adults   int
	Children int
	Infants  int

	// BasePrice overrides the catalog rate times units when set
	BasePrice            *decimal.Decimal
	AccommodationUpgrade decimal.Decimal
	DiscountPercentage   *decimal.Decimal
	DiscountAmount       *decimal.Decimal
	DepositPercentage    *decimal.Decimal
	Currency             string
	ValidUntil           *time.Time

	SpecialRequests  *string
	IncludedServices []string
	ExcludedServices []string
}

// CreateQuotation prices, resolves and stores a new draft quotation
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	if !input.ServiceType.IsValid() {
		return nil, apperror.NewUnknownServiceTypeError(string(input.ServiceType))
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperror.NewMissingRequiredFieldError("customer_name")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, apperror.NewMissingRequiredFieldError("customer_email")
	}
	if input.StartDate.IsZero() {
		return nil, apperror.NewMissingRequiredFieldError("start_date")
	}

	occupancy, err := occupancyFor(input)
	if err != nil {
		return nil, err
	}

	item, err := s.catalogRepo.Lookup(ctx, input.ServiceType, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("lookup catalog item: %w", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("%s %d", input.ServiceType, input.ServiceID))
	}

	startDate := entity.DateOf(input.StartDate)
	endDate, duration, err := scheduleFor(input, item, startDate)
	if err != nil {
		return nil, err
	}

	unitPrice, units := item.UnitPrice(), unitsFor(input.ServiceType, occupancy, duration)
	if input.BasePrice != nil {
		unitPrice, units = *input.BasePrice, 1
	}

	depositPct := s.settings.DefaultDepositPercentage
	if input.DepositPercentage != nil {
		depositPct = *input.DepositPercentage
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = s.settings.DefaultCurrency
	}

	breakdown, err := pricing.Calculate(pricing.Input{
		UnitPrice:            unitPrice,
		Units:                units,
		AccommodationUpgrade: input.AccommodationUpgrade,
		DiscountPercentage:   input.DiscountPercentage,
		DiscountAmount:       input.DiscountAmount,
		DepositPercentage:    depositPct,
		Currency:             currency,
	})
	if err != nil {
		return nil, err
	}

	details, err := servicedetail.Resolve(input.ServiceType, item, servicedetail.Request{
		Occupancy:    occupancy,
		StartDate:    startDate,
		DurationDays: duration,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := entity.DateOf(now)
	validUntil := today.AddDate(0, 0, s.settings.ValidityDays)
	if input.ValidUntil != nil {
		validUntil = entity.DateOf(*input.ValidUntil)
		if validUntil.Before(today) {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "valid_until", Message: "must not be in the past"},
			})
		}
	}

	reference, err := s.newReference(ctx)
	if err != nil {
		return nil, err
	}

	quotation := &entity.Quotation{
		Reference:            reference,
		CustomerName:         strings.TrimSpace(input.CustomerName),
		CustomerEmail:        strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:        input.CustomerPhone,
		ServiceType:          input.ServiceType,
		ServiceID:            input.ServiceID,
		ServiceName:          item.Name(),
		ServiceDetails:       entity.ServiceDetailsJSON{ServiceDetails: details},
		StartDate:            startDate,
		EndDate:              endDate,
		Duration:             duration,
		Adults:               occupancy.Adults,
		Children:             occupancy.Children,
		Infants:              occupancy.Infants,
		BasePrice:            pricing.ToMinor(breakdown.BasePrice),
		AccommodationUpgrade: pricing.ToMinor(breakdown.AccommodationUpgrade),
		DiscountPercentage:   breakdown.DiscountPercentage.InexactFloat64(),
		DiscountAmount:       pricing.ToMinor(breakdown.DiscountAmount),
		Subtotal:             pricing.ToMinor(breakdown.Subtotal),
		TotalAmount:          pricing.ToMinor(breakdown.TotalAmount),
		Currency:             breakdown.Currency,
		DepositPercentage:    breakdown.DepositPercentage.InexactFloat64(),
		DepositAmount:        pricing.ToMinor(breakdown.DepositAmount),
		BalanceAmount:        pricing.ToMinor(breakdown.BalanceAmount),
		ValidUntil:           validUntil,
		Status:               enum.QuotationStatusDraft,
		SpecialRequests:      input.SpecialRequests,
		IncludedServices:     datatypes.JSONSlice[string](nonNil(input.IncludedServices)),
		ExcludedServices:     datatypes.JSONSlice[string](nonNil(input.ExcludedServices)),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}

	s.metrics.QuotationCreated(string(quotation.ServiceType))
	s.logger.InfoContext(ctx, "quotation created",
		slog.String("reference", quotation.Reference),
		slog.String("service_type", string(quotation.ServiceType)),
		slog.String("total", breakdown.TotalAmount.StringFixed(pricing.MinorUnitPlaces)),
	)

	return quotation.WithEffectiveStatus(now), nil
}

// GetQuotation returns a quotation by reference. With trackView the read is
// counted as a customer view: view_count goes up by one, first_viewed_at is
// set on the first view and a sent quotation becomes viewed.
func (s *QuotationService) GetQuotation(ctx context.Context, reference string, trackView bool) (*entity.Quotation, error) {
	quotation, err := s.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if trackView {
		if err := s.quotationRepo.RecordView(ctx, quotation.ID, now); err != nil {
			return nil, fmt.Errorf("record quotation view: %w", err)
		}
		if quotation, err = s.findByReference(ctx, reference); err != nil {
			return nil, err
		}
	}

	return quotation.WithEffectiveStatus(now), nil
}

// GetQuotationForAdmin returns a quotation without counting a view
func (s *QuotationService) GetQuotationForAdmin(ctx context.Context, reference string) (*entity.Quotation, error) {
	return s.GetQuotation(ctx, reference, false)
}

// ListQuotations retrieves quotations with pagination and filters
func (s *QuotationService) ListQuotations(ctx context.Context, params *repository.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}

	now := s.clock.Now()
	for i := range quotations {
		quotations[i].WithEffectiveStatus(now)
	}
	return quotations, total, nil
}

// SendQuotation marks a draft as sent to the customer. Sending a quotation
// that is already sent or viewed is a no-op.
func (s *QuotationService) SendQuotation(ctx context.Context, reference string) (*entity.Quotation, error) {
	quotation, err := s.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch quotation.Status {
	case enum.QuotationStatusSent, enum.QuotationStatusViewed:
		return quotation.WithEffectiveStatus(now), nil
	case enum.QuotationStatusAccepted, enum.QuotationStatusRejected:
		return nil, apperror.NewInvalidTransitionError(quotation.Status.String(), enum.QuotationStatusSent.String())
	}
	if quotation.IsExpired(now) {
		return nil, apperror.NewQuotationExpiredError(quotation.Reference)
	}

	changed, err := s.quotationRepo.TransitionStatus(ctx, quotation.ID,
		[]enum.QuotationStatus{enum.QuotationStatusDraft}, enum.QuotationStatusSent, now)
	if err != nil {
		return nil, fmt.Errorf("send quotation: %w", err)
	}
	if changed {
		s.metrics.QuotationTransitioned(enum.QuotationStatusSent.String())
		s.logger.InfoContext(ctx, "quotation sent", slog.String("reference", quotation.Reference))
	}

	latest, err := s.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if latest.Status != enum.QuotationStatusSent && latest.Status != enum.QuotationStatusViewed {
		return nil, apperror.NewInvalidTransitionError(latest.Status.String(), enum.QuotationStatusSent.String())
	}
	return latest.WithEffectiveStatus(now), nil
}

// AcceptQuotation accepts a sent or viewed quotation and creates its invoice
// in the same transaction. Accepting an accepted quotation returns it
// unchanged, and a concurrent loser sees the winner's result.
func (s *QuotationService) AcceptQuotation(ctx context.Context, reference string) (*entity.Quotation, error) {
	quotation, err := s.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.checkRespondable(quotation, enum.QuotationStatusAccepted, now); err != nil {
		return nil, err
	}
	if quotation.Status == enum.QuotationStatusAccepted {
		return quotation.WithEffectiveStatus(now), nil
	}

	invoice := entity.NewInvoiceFromQuotation(quotation, utils.GenerateReference(s.settings.InvoicePrefix))
	accepted, err := s.quotationRepo.Accept(ctx, quotation.ID, respondableStatuses, now, invoice)
	if err != nil {
		return nil, fmt.Errorf("accept quotation: %w", err)
	}

	if accepted {
		s.metrics.QuotationTransitioned(enum.QuotationStatusAccepted.String())
		s.logger.InfoContext(ctx, "quotation accepted",
			slog.String("reference", quotation.Reference),
			slog.String("invoice_number", invoice.InvoiceNumber),
		)
	}

	return s.settled(ctx, reference, enum.QuotationStatusAccepted, now)
}

// RejectQuotation rejects a sent or viewed quotation. Rejecting a rejected
// quotation returns it unchanged.
func (s *QuotationService) RejectQuotation(ctx context.Context, reference string) (*entity.Quotation, error) {
	quotation, err := s.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.checkRespondable(quotation, enum.QuotationStatusRejected, now); err != nil {
		return nil, err
	}
	if quotation.Status == enum.QuotationStatusRejected {
		return quotation.WithEffectiveStatus(now), nil
	}

	rejected, err := s.quotationRepo.TransitionStatus(ctx, quotation.ID, respondableStatuses, enum.QuotationStatusRejected, now)
	if err != nil {
		return nil, fmt.Errorf("reject quotation: %w", err)
	}

	if rejected {
		s.metrics.QuotationTransitioned(enum.QuotationStatusRejected.String())
		s.logger.InfoContext(ctx, "quotation rejected", slog.String("reference", quotation.Reference))
	}

	return s.settled(ctx, reference, enum.QuotationStatusRejected, now)
}

// checkRespondable applies the customer response rules for target. The
// quotation already being in target is allowed so the caller can return it.
func (s *QuotationService) checkRespondable(q *entity.Quotation, target enum.QuotationStatus, now time.Time) error {
	switch q.Status {
	case target:
		return nil
	case enum.QuotationStatusSent, enum.QuotationStatusViewed:
		if q.IsExpired(now) {
			return apperror.NewQuotationExpiredError(q.Reference)
		}
		return nil
	default:
		return apperror.NewInvalidTransitionError(q.Status.String(), target.String())
	}
}

// settled re-reads the quotation after a conditional write. Whoever won a
// race, the stored status must now be target.
func (s *QuotationService) settled(ctx context.Context, reference string, target enum.QuotationStatus, now time.Time) (*entity.Quotation, error) {
	latest, err := s.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if latest.Status != target {
		return nil, apperror.NewInvalidTransitionError(latest.Status.String(), target.String())
	}
	return latest.WithEffectiveStatus(now), nil
}

func (s *QuotationService) findByReference(ctx context.Context, reference string) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

func (s *QuotationService) newReference(ctx context.Context) (string, error) {
	for i := 0; i < referenceAttempts; i++ {
		reference := utils.GenerateReference(s.settings.ReferencePrefix)
		existing, err := s.quotationRepo.GetByReference(ctx, reference)
		if err != nil {
			return "", fmt.Errorf("check quotation reference: %w", err)
		}
		if existing == nil {
			return reference, nil
		}
	}
	return "", apperror.NewConflictError("Could not allocate a unique quotation reference")
}

// occupancyFor validates guest counts for tours and hotels and clears them
// for vehicles and transfers
func occupancyFor(input *CreateQuotationInput) (entity.Occupancy, error) {
	if !input.ServiceType.HasOccupancy() {
		return entity.Occupancy{}, nil
	}
	if input.Adults < 1 {
		return entity.Occupancy{}, apperror.NewMissingRequiredFieldError("adults")
	}
	var fieldErrors []apperror.FieldError
	if input.Children < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "children", Message: "must not be negative"})
	}
	if input.Infants < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "infants", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return entity.Occupancy{}, apperror.NewValidationError(fieldErrors)
	}
	return entity.Occupancy{Adults: input.Adults, Children: input.Children, Infants: input.Infants}, nil
}

// scheduleFor derives end date and duration in days. Transfers are single
// day and ignore end_date. A tour without end_date runs for the package length.
func scheduleFor(input *CreateQuotationInput, item *entity.CatalogItem, start time.Time) (*time.Time, int, error) {
	if input.ServiceType == enum.ServiceTypeTransfer {
		return nil, 1, nil
	}

	if input.EndDate == nil {
		if input.ServiceType == enum.ServiceTypeTour && item.Tour != nil && item.Tour.DurationDays > 0 {
			end := start.AddDate(0, 0, item.Tour.DurationDays-1)
			return &end, item.Tour.DurationDays, nil
		}
		return nil, 0, apperror.NewMissingRequiredFieldError("end_date")
	}

	end := entity.DateOf(*input.EndDate)
	if end.Before(start) {
		return nil, 0, apperror.NewValidationError([]apperror.FieldError{
			{Field: "end_date", Message: "must not be before start_date"},
		})
	}
	duration := int(end.Sub(start).Hours()/24) + 1
	return &end, duration, nil
}

// unitsFor returns how many times the catalog rate applies: paying guests for
// tours, days for vehicles, nights for hotels and once for transfers
func unitsFor(serviceType enum.ServiceType, occupancy entity.Occupancy, duration int) int {
	switch serviceType {
	case enum.ServiceTypeTour:
		return occupancy.Guests()
	case enum.ServiceTypeVehicle:
		return duration
	case enum.ServiceTypeHotel:
		if duration > 1 {
			return duration - 1
		}
		return 1
	}
	return 1
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
