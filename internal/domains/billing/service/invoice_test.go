package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hms/config"
	otelMocks "hms/infras/otel/mocks"
	billingMocks "hms/internal/domains/billing/mocks"
	"hms/internal/domains/billing/model"
	"hms/internal/domains/billing/model/dto"
	"hms/internal/domains/billing/service"
	cacheMocks "hms/shared/cache/mocks"
	gDto "hms/shared/dto"
	"hms/shared/failure"
)

type billingFixture struct {
	bookings  *billingMocks.MockBookings
	rooms     *billingMocks.MockRooms
	services  *billingMocks.MockServices
	discounts *billingMocks.MockDiscounts
	invoices  *billingMocks.MockInvoices
	customers *billingMocks.MockCustomers
	cache     *cacheMocks.MockRedisCache
	svc       service.Billing
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &billingFixture{
		bookings:  billingMocks.NewMockBookings(ctrl),
		rooms:     billingMocks.NewMockRooms(ctrl),
		services:  billingMocks.NewMockServices(ctrl),
		discounts: billingMocks.NewMockDiscounts(ctrl),
		invoices:  billingMocks.NewMockInvoices(ctrl),
		customers: billingMocks.NewMockCustomers(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Billing.DefaultNightlyRate = 500000

	f.svc = service.New(f.bookings, f.rooms, f.services, f.discounts, f.invoices, f.customers, cfg, f.cache, otelMocks.NewOtel())

	// Every lookup misses the cache so the repository path is exercised.
	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()
	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return f
}

func date(value string) model.Date {
	t, _ := time.Parse("2006-01-02", value)

	return model.NewDate(t)
}

func amount(v int64) *int64 {
	return &v
}

func TestBillingService_BuildBill(t *testing.T) {
	booking := model.Booking{
		ID:         10,
		CustomerID: 7,
		RoomID:     3,
		CheckIn:    date("2026-01-10"),
		CheckOut:   date("2026-01-13"),
		Status:     model.BookingStatusCheckedOut,
		CreatedAt:  date("2026-01-05"),
	}

	usage := []model.ServiceUsageRecord{
		{ID: 1, CustomerID: 7, ServiceID: 5, Name: "Spa", Quantity: 1, LineTotal: 100000},
		{ID: 2, CustomerID: 7, ServiceID: 5, Name: "Spa", Quantity: 1, LineTotal: 100000},
	}

	percentTen := model.DiscountCode{
		ID:     4,
		Code:   "SUMMER10",
		Kind:   model.DiscountKindPercent,
		Value:  decimal.NewFromInt(10),
		Active: true,
	}

	tests := []struct {
		name      string
		req       dto.BuildBillRequest
		setupMock func(f *billingFixture)
		check     func(t *testing.T, res dto.BillResponse)
		wantErr   bool
	}{
		{
			name: "three nights with services and a percent discount",
			req:  dto.BuildBillRequest{CustomerID: 7, DiscountCode: "SUMMER10"},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(usage, nil)
				f.discounts.EXPECT().
					GetByCode(gomock.Any(), "SUMMER10").
					Return(percentTen, nil)
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(3), res.StayNights)
				assert.Equal(t, int64(1500000), res.RoomSubtotal)
				assert.Equal(t, int64(200000), res.ServiceSubtotal)
				assert.Equal(t, int64(1700000), res.SubtotalBeforeDiscount)
				assert.Equal(t, int64(170000), res.DiscountAmount)
				assert.Equal(t, int64(1530000), res.Total)
				assert.Equal(t, "Room 3 (3 nights)", res.RoomLineItem.Label)
				assert.Len(t, res.ServiceLineItems, 2)
				assert.Empty(t, res.Warnings)
			},
		},
		{
			name: "same day stay still bills one night",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				shortStay := booking
				shortStay.CheckOut = shortStay.CheckIn

				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{shortStay}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(1), res.StayNights)
				assert.Equal(t, int64(500000), res.Total)
			},
		},
		{
			name: "rate falls back to the room type",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, RoomTypeID: 2}, nil)
				f.rooms.EXPECT().
					GetTypeByID(gomock.Any(), int64(2)).
					Return(model.RoomType{ID: 2, NightlyRate: 750000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(750000), res.NightlyRate)
				assert.Equal(t, int64(2250000), res.Total)
			},
		},
		{
			name: "rate falls back to the static rate card when the type has none",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, RoomTypeID: 2}, nil)
				f.rooms.EXPECT().
					GetTypeByID(gomock.Any(), int64(2)).
					Return(model.RoomType{}, errors.New("upstream down"))
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(800000), res.NightlyRate)
			},
		},
		{
			name: "room without a rate or a type bills the default rate",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(500000), res.NightlyRate)
				assert.Equal(t, int64(1500000), res.RoomSubtotal)
				assert.Empty(t, res.Warnings)
			},
		},
		{
			name: "unresolvable room bills at the default rate with a warning",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{}, errors.New("upstream down"))
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(500000), res.NightlyRate)
				assert.Contains(t, res.Warnings, "room lookup failed, billed at the default nightly rate")
			},
		},
		{
			name: "cancelled bookings are skipped in favour of a live one",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				cancelled := booking
				cancelled.ID = 11
				cancelled.Status = model.BookingStatusCancelled
				cancelled.CreatedAt = date("2026-02-01")

				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{cancelled, booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(10), res.BookingID)
				assert.Equal(t, model.BookingStatusCheckedOut, res.BookingStatus)
			},
		},
		{
			name: "only cancelled bookings still bills the most recent one",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				older := booking
				older.ID = 8
				older.Status = model.BookingStatusCancelled
				older.CreatedAt = date("2026-01-01")

				newer := booking
				newer.ID = 9
				newer.Status = model.BookingStatusCancelled

				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{older, newer}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(9), res.BookingID)
				assert.Equal(t, model.BookingStatusCancelled, res.BookingStatus)
			},
		},
		{
			name: "no bookings at all is fatal",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "unavailable service usage degrades to zero with a warning",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.Unavailable("service usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(0), res.ServiceSubtotal)
				assert.Equal(t, int64(1500000), res.Total)
				assert.Contains(t, res.Warnings, "service charges unavailable, billed as 0")
			},
		},
		{
			name: "expired discount is ignored and surfaced as a warning",
			req:  dto.BuildBillRequest{CustomerID: 7, DiscountCode: "OLD"},
			setupMock: func(f *billingFixture) {
				expired := percentTen
				expired.Code = "OLD"
				expired.EndDate = date("2020-01-01")

				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
				f.discounts.EXPECT().
					GetByCode(gomock.Any(), "OLD").
					Return(expired, nil)
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(0), res.DiscountAmount)
				assert.Equal(t, int64(1500000), res.Total)
				assert.Contains(t, res.Warnings, "discount code has expired")
			},
		},
		{
			name: "unreachable discount source applies no discount",
			req:  dto.BuildBillRequest{CustomerID: 7, DiscountCode: "SUMMER10"},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
				f.discounts.EXPECT().
					GetByCode(gomock.Any(), "SUMMER10").
					Return(model.DiscountCode{}, failure.Unavailable("discount"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(0), res.DiscountAmount)
				assert.Contains(t, res.Warnings, "discount source unavailable, no discount applied")
			},
		},
		{
			name: "no discount sentinel id applies no discount without a lookup",
			req:  dto.BuildBillRequest{CustomerID: 7, DiscountID: model.NoDiscountID},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(0), res.DiscountAmount)
				assert.Equal(t, int64(0), res.DiscountID)
				assert.Equal(t, int64(1500000), res.Total)
				assert.Empty(t, res.Warnings)
			},
		},
		{
			name: "fixed discount larger than the bill clamps to zero total",
			req:  dto.BuildBillRequest{CustomerID: 7, DiscountID: 6},
			setupMock: func(f *billingFixture) {
				fixed := model.DiscountCode{
					ID:     6,
					Code:   "WELCOME",
					Kind:   model.DiscountKindFixed,
					Value:  decimal.NewFromInt(9000000),
					Active: true,
				}

				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
				f.discounts.EXPECT().
					GetByID(gomock.Any(), int64(6)).
					Return(fixed, nil)
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(1500000), res.DiscountAmount)
				assert.Equal(t, int64(0), res.Total)
			},
		},
		{
			name: "usage record with no pricing data is kept as a placeholder line",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return([]model.ServiceUsageRecord{
						{ID: 1, CustomerID: 7, ServiceID: 99, Quantity: 2},
					}, nil)
				f.services.EXPECT().
					GetByID(gomock.Any(), int64(99)).
					Return(model.Service{}, failure.NotFound("service not found"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Len(t, res.ServiceLineItems, 1)
				assert.Equal(t, "Service 99", res.ServiceLineItems[0].Label)
				assert.Equal(t, int64(0), res.ServiceLineItems[0].LineTotal)
			},
		},
		{
			name: "legacy service id prices from the legacy table",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return([]model.ServiceUsageRecord{
						{ID: 1, CustomerID: 7, ServiceID: 1, Quantity: 3},
					}, nil)
				f.services.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(model.Service{}, failure.NotFound("service not found"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Len(t, res.ServiceLineItems, 1)
				assert.Equal(t, "Laundry", res.ServiceLineItems[0].Label)
				assert.Equal(t, int64(180000), res.ServiceLineItems[0].LineTotal)
				assert.Equal(t, int64(180000), res.ServiceSubtotal)
			},
		},
		{
			name: "billed and deleted usage records are excluded",
			req:  dto.BuildBillRequest{CustomerID: 7},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByCustomer(gomock.Any(), int64(7)).
					Return([]model.Booking{booking}, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return([]model.ServiceUsageRecord{
						{ID: 1, CustomerID: 7, ServiceID: 5, Name: "Spa", Quantity: 1, LineTotal: 100000},
						{ID: 2, CustomerID: 7, ServiceID: 5, Name: "Spa", Quantity: 1, LineTotal: 100000, Billed: true},
						{ID: 3, CustomerID: 7, ServiceID: 5, Name: "Spa", Quantity: 1, LineTotal: 100000, Deleted: true},
					}, nil)
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Len(t, res.ServiceLineItems, 1)
				assert.Equal(t, int64(100000), res.ServiceSubtotal)
			},
		},
		{
			name: "explicit booking id skips selection",
			req:  dto.BuildBillRequest{CustomerID: 7, BookingID: 10},
			setupMock: func(f *billingFixture) {
				f.bookings.EXPECT().
					GetByID(gomock.Any(), int64(10)).
					Return(booking, nil)
				f.rooms.EXPECT().
					GetByID(gomock.Any(), int64(3)).
					Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
				f.services.EXPECT().
					GetUsageByCustomer(gomock.Any(), int64(7)).
					Return(nil, failure.NotFound("no usage"))
			},
			check: func(t *testing.T, res dto.BillResponse) {
				assert.Equal(t, int64(10), res.BookingID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBillingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.BuildBill(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsNotFound(err))

				return
			}

			assert.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestBillingService_CreateBill(t *testing.T) {
	booking := model.Booking{
		ID:         10,
		CustomerID: 7,
		RoomID:     3,
		CheckIn:    date("2026-01-10"),
		CheckOut:   date("2026-01-12"),
		Status:     model.BookingStatusCheckedOut,
	}

	t.Run("submits the computed bill as a pending invoice", func(t *testing.T) {
		f := newBillingFixture(t)

		f.bookings.EXPECT().
			GetByCustomer(gomock.Any(), int64(7)).
			Return([]model.Booking{booking}, nil)
		f.rooms.EXPECT().
			GetByID(gomock.Any(), int64(3)).
			Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
		f.services.EXPECT().
			GetUsageByCustomer(gomock.Any(), int64(7)).
			Return(nil, failure.NotFound("no usage"))
		f.invoices.EXPECT().
			Create(gomock.Any(), model.CreateInvoicePayload{
				CustomerID:      7,
				PaymentMethodID: 2,
				Total:           1000000,
				DiscountID:      model.NoDiscountID,
				Status:          model.InvoiceStatusPending,
			}).
			Return(nil)

		res, err := f.svc.CreateBill(context.Background(), dto.CreateBillRequest{
			BuildBillRequest: dto.BuildBillRequest{CustomerID: 7},
			PaymentMethodID:  2,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1000000), res.Total)
	})

	t.Run("upstream write failure is fatal", func(t *testing.T) {
		f := newBillingFixture(t)

		f.bookings.EXPECT().
			GetByCustomer(gomock.Any(), int64(7)).
			Return([]model.Booking{booking}, nil)
		f.rooms.EXPECT().
			GetByID(gomock.Any(), int64(3)).
			Return(model.Room{ID: 3, NightlyRate: 500000}, nil)
		f.services.EXPECT().
			GetUsageByCustomer(gomock.Any(), int64(7)).
			Return(nil, failure.NotFound("no usage"))
		f.invoices.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(failure.Unavailable("invoice"))

		_, err := f.svc.CreateBill(context.Background(), dto.CreateBillRequest{
			BuildBillRequest: dto.BuildBillRequest{CustomerID: 7},
			PaymentMethodID:  2,
		})

		assert.Error(t, err)
	})
}

func TestBillingService_GetBills(t *testing.T) {
	rawInvoices := []model.RawInvoice{
		{
			ID:         7,
			CustomerID: 1,
			Total:      amount(300000),
			Status:     model.InvoiceStatusPaid,
			ServiceDetails: []model.RawInvoiceLine{
				{ServiceID: 5, Name: "Spa", Quantity: 2, UnitPrice: amount(150000)},
			},
		},
		{
			InvoiceID:     8,
			CustomerIDAlt: 2,
			TotalAmount:   amount(1000000),
			Status:        model.InvoiceStatusPaid,
			PaymentStatus: model.InvoiceStatusPending,
			Payment:       &model.RawRoomPayment{RoomID: 3, Nights: 2, RoomPrice: amount(500000)},
		},
		{
			BillID: 9,
			Amount: amount(250000),
			Status: 99,
		},
	}

	t.Run("normalizes every upstream invoice shape", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return(rawInvoices, nil)
		f.customers.EXPECT().
			List(gomock.Any()).
			Return([]model.Customer{{ID: 1, Name: "Alice Tran"}}, nil)

		res, err := f.svc.GetBills(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		assert.Len(t, res.Invoices, 3)

		first := res.Invoices[0]
		assert.Equal(t, "HD0007", first.DisplayID)
		assert.Equal(t, "Alice Tran", first.CustomerName)
		assert.Equal(t, "paid", first.Status)
		assert.Len(t, first.LineItems, 1)
		assert.Equal(t, int64(300000), first.LineItems[0].LineTotal)

		second := res.Invoices[1]
		assert.Equal(t, "HD0008", second.DisplayID)
		assert.Equal(t, int64(2), second.CustomerID)
		assert.Equal(t, "Unknown customer", second.CustomerName)
		assert.Equal(t, "pending", second.Status)
		assert.Equal(t, "Room 3 (2 nights)", second.LineItems[0].Label)
		assert.Equal(t, int64(1000000), second.LineItems[0].LineTotal)

		third := res.Invoices[2]
		assert.Equal(t, "HD0009", third.DisplayID)
		assert.Equal(t, "cancelled", third.Status)
		assert.Len(t, third.LineItems, 1)
		assert.Equal(t, "Invoice total", third.LineItems[0].Label)
		assert.Equal(t, int64(250000), third.LineItems[0].UnitPrice)
		assert.Equal(t, int64(250000), third.LineItems[0].LineTotal)
	})

	t.Run("customer source failure renders placeholder names", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return(rawInvoices[:1], nil)
		f.customers.EXPECT().
			List(gomock.Any()).
			Return(nil, failure.Unavailable("customer"))

		res, err := f.svc.GetBills(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, "Unknown customer", res.Invoices[0].CustomerName)
	})

	t.Run("invoice source failure is fatal", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return(nil, failure.Unavailable("invoice"))

		_, err := f.svc.GetBills(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.Error(t, err)
	})

	t.Run("paginates the normalized list", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return(rawInvoices, nil)
		f.customers.EXPECT().
			List(gomock.Any()).
			Return([]model.Customer{}, nil)

		res, err := f.svc.GetBills(context.Background(), gDto.QueryParams{Page: 2, Limit: 2})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Invoices, 1)
		assert.Equal(t, "HD0009", res.Invoices[0].DisplayID)
	})
}

func TestBillingService_GetBill(t *testing.T) {
	raw := model.RawInvoice{
		ID:         7,
		CustomerID: 1,
		Total:      amount(300000),
		Status:     model.InvoiceStatusPaid,
	}

	t.Run("returns the invoice with its billed usage", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return([]model.RawInvoice{raw}, nil)
		f.customers.EXPECT().
			List(gomock.Any()).
			Return([]model.Customer{{ID: 1, Name: "Alice Tran"}}, nil)
		f.services.EXPECT().
			GetUsageByInvoice(gomock.Any(), int64(7)).
			Return([]model.ServiceUsageRecord{
				{ID: 1, CustomerID: 1, ServiceID: 5, InvoiceID: 7, Name: "Spa", Quantity: 1, LineTotal: 150000, Billed: true},
			}, nil)

		res, err := f.svc.GetBill(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, "HD0007", res.DisplayID)
		assert.Equal(t, "Alice Tran", res.CustomerName)
		assert.Len(t, res.ServiceUsage, 1)
		assert.Equal(t, "Spa", res.ServiceUsage[0].Label)
	})

	t.Run("missing billed usage only empties that section", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return([]model.RawInvoice{raw}, nil)
		f.customers.EXPECT().
			List(gomock.Any()).
			Return([]model.Customer{}, nil)
		f.services.EXPECT().
			GetUsageByInvoice(gomock.Any(), int64(7)).
			Return(nil, failure.Unavailable("service usage"))

		res, err := f.svc.GetBill(context.Background(), 7)

		assert.NoError(t, err)
		assert.Empty(t, res.ServiceUsage)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		f := newBillingFixture(t)

		f.invoices.EXPECT().
			List(gomock.Any()).
			Return([]model.RawInvoice{raw}, nil)

		_, err := f.svc.GetBill(context.Background(), 42)

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}
