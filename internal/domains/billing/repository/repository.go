package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hms/internal/domains/billing/model"
)

// The billing engine owns no storage. Every interface below is a read
// contract against the upstream hotel-management backend, except
// Invoices.Create which is the single conceptual write.

type Bookings interface {
	GetByID(ctx context.Context, id int64) (model.Booking, error)
	GetByCustomer(ctx context.Context, customerID int64) ([]model.Booking, error)
}

type Rooms interface {
	GetByID(ctx context.Context, id int64) (model.Room, error)
	GetTypeByID(ctx context.Context, id int64) (model.RoomType, error)
}

type Services interface {
	GetUsageByCustomer(ctx context.Context, customerID int64) ([]model.ServiceUsageRecord, error)
	GetUsageByInvoice(ctx context.Context, invoiceID int64) ([]model.ServiceUsageRecord, error)
	GetByID(ctx context.Context, id int64) (model.Service, error)
}

type Discounts interface {
	GetByCode(ctx context.Context, code string) (model.DiscountCode, error)
	GetByID(ctx context.Context, id int64) (model.DiscountCode, error)
}

type Invoices interface {
	List(ctx context.Context) ([]model.RawInvoice, error)
	Create(ctx context.Context, payload model.CreateInvoicePayload) error
}

type Customers interface {
	List(ctx context.Context) ([]model.Customer, error)
}
