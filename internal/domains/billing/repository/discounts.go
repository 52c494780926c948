package repository

import (
	"context"
	"fmt"
	"net/url"

	"hms/infras/otel"
	"hms/infras/upstream"
	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type discountsImpl struct {
	client *upstream.Client
	otel   otel.Otel
}

func NewDiscounts(client *upstream.Client, ot otel.Otel) Discounts {
	return &discountsImpl{
		client: client,
		otel:   ot,
	}
}

func (r *discountsImpl) GetByCode(ctx context.Context, code string) (res model.DiscountCode, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Discounts.GetByCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "discount",
		"/api/discounts/code/"+url.PathEscape(code),
		"/api/discounts?code="+url.QueryEscape(code),
	)
	if err != nil {
		return res, err
	}

	return decodeObject[model.DiscountCode]("discount", raw)
}

func (r *discountsImpl) GetByID(ctx context.Context, id int64) (res model.DiscountCode, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Discounts.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "discount",
		fmt.Sprintf("/api/discounts/%d", id),
		fmt.Sprintf("/discounts/%d", id),
	)
	if err != nil {
		return res, err
	}

	return decodeObject[model.DiscountCode]("discount", raw)
}
