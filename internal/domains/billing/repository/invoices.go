package repository

import (
	"context"

	"hms/infras/otel"
	"hms/infras/upstream"
	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type invoicesImpl struct {
	client *upstream.Client
	otel   otel.Otel
}

func NewInvoices(client *upstream.Client, ot otel.Otel) Invoices {
	return &invoicesImpl{
		client: client,
		otel:   ot,
	}
}

func (r *invoicesImpl) List(ctx context.Context) (res []model.RawInvoice, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Invoices.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "invoices",
		"/api/invoices",
		"/api/bills",
	)
	if err != nil {
		return nil, err
	}

	return decodeList[model.RawInvoice]("invoices", raw)
}

func (r *invoicesImpl) Create(ctx context.Context, payload model.CreateInvoicePayload) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Invoices.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.client.Post(ctx, "invoice", "/api/invoices", payload)
}
