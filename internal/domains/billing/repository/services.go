package repository

import (
	"context"
	"fmt"

	"hms/infras/otel"
	"hms/infras/upstream"
	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type servicesImpl struct {
	client *upstream.Client
	otel   otel.Otel
}

func NewServices(client *upstream.Client, ot otel.Otel) Services {
	return &servicesImpl{
		client: client,
		otel:   ot,
	}
}

func (r *servicesImpl) GetUsageByCustomer(ctx context.Context, customerID int64) (res []model.ServiceUsageRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Services.GetUsageByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "service usage",
		fmt.Sprintf("/api/service-usage?customer_id=%d", customerID),
		fmt.Sprintf("/api/customers/%d/service-usage", customerID),
	)
	if err != nil {
		return nil, err
	}

	return decodeList[model.ServiceUsageRecord]("service usage", raw)
}

func (r *servicesImpl) GetUsageByInvoice(ctx context.Context, invoiceID int64) (res []model.ServiceUsageRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Services.GetUsageByInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "service usage",
		fmt.Sprintf("/api/invoices/%d/service-usage", invoiceID),
		fmt.Sprintf("/api/service-usage?invoice_id=%d", invoiceID),
	)
	if err != nil {
		return nil, err
	}

	return decodeList[model.ServiceUsageRecord]("service usage", raw)
}

func (r *servicesImpl) GetByID(ctx context.Context, id int64) (res model.Service, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Services.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "service",
		fmt.Sprintf("/api/services/%d", id),
		fmt.Sprintf("/services/%d", id),
	)
	if err != nil {
		return res, err
	}

	return decodeObject[model.Service]("service", raw)
}
