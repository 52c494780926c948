package repository

import (
	"context"

	"hms/infras/otel"
	"hms/infras/upstream"
	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type customersImpl struct {
	client *upstream.Client
	otel   otel.Otel
}

func NewCustomers(client *upstream.Client, ot otel.Otel) Customers {
	return &customersImpl{
		client: client,
		otel:   ot,
	}
}

func (r *customersImpl) List(ctx context.Context) (res []model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Customers.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "customers",
		"/api/customers",
		"/customers",
	)
	if err != nil {
		return nil, err
	}

	return decodeList[model.Customer]("customers", raw)
}
