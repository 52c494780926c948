package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"hms/config"
	"hms/infras/otel"
	"hms/internal/domains/billing/model/dto"
	"hms/internal/domains/billing/repository"
	"hms/shared"
	"hms/shared/cache"
	gDto "hms/shared/dto"
)

const (
	cacheGetRoom       = "billing:room"
	cacheGetRoomType   = "billing:roomtype"
	cacheGetService    = "billing:service"
	cacheGetDiscount   = "billing:discount"
	cacheCustomerNames = "billing:customers"
)

type Billing interface {
	BuildBill(ctx context.Context, req dto.BuildBillRequest) (dto.BillResponse, error)
	CreateBill(ctx context.Context, req dto.CreateBillRequest) (dto.BillResponse, error)
	GetBills(ctx context.Context, params gDto.QueryParams) (dto.GetInvoicesResponse, error)
	GetBill(ctx context.Context, id int64) (dto.InvoiceDetailResponse, error)
	ResolveDiscountByCode(ctx context.Context, code string) (dto.DiscountResponse, error)
}

type serviceImpl struct {
	bookings  repository.Bookings
	rooms     repository.Rooms
	services  repository.Services
	discounts repository.Discounts
	invoices  repository.Invoices
	customers repository.Customers
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	bookings repository.Bookings,
	rooms repository.Rooms,
	services repository.Services,
	discounts repository.Discounts,
	invoices repository.Invoices,
	customers repository.Customers,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Billing {
	return &serviceImpl{
		bookings:  bookings,
		rooms:     rooms,
		services:  services,
		discounts: discounts,
		invoices:  invoices,
		customers: customers,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// cachedLookup reads through the redis cache for a single upstream entity.
// Cache failures are invisible to callers, they just cost a fetch.
func cachedLookup[T any](ctx context.Context, s *serviceImpl, prefix string, id int64, fetch func(context.Context, int64) (T, error)) (T, error) {
	cacheKey := shared.BuildCacheKey(prefix, strconv.FormatInt(id, 10))

	var value T
	if err := s.cache.Get(ctx, cacheKey, &value); err == nil {
		return value, nil
	}

	value, err := fetch(ctx, id)
	if err != nil {
		return value, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save lookup to cache")
		}
	}()

	return value, nil
}
