package repository

import (
	"context"
	"fmt"

	"hms/infras/otel"
	"hms/infras/upstream"
	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type bookingsImpl struct {
	client *upstream.Client
	otel   otel.Otel
}

func NewBookings(client *upstream.Client, ot otel.Otel) Bookings {
	return &bookingsImpl{
		client: client,
		otel:   ot,
	}
}

func (r *bookingsImpl) GetByID(ctx context.Context, id int64) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Bookings.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "booking",
		fmt.Sprintf("/api/bookings/%d", id),
		fmt.Sprintf("/bookings/%d", id),
	)
	if err != nil {
		return res, err
	}

	return decodeObject[model.Booking]("booking", raw)
}

func (r *bookingsImpl) GetByCustomer(ctx context.Context, customerID int64) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Bookings.GetByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "bookings",
		fmt.Sprintf("/api/bookings?customer_id=%d", customerID),
		fmt.Sprintf("/api/customers/%d/bookings", customerID),
	)
	if err != nil {
		return nil, err
	}

	return decodeList[model.Booking]("bookings", raw)
}
