package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hms/internal/domains/billing/model"
	"hms/internal/domains/billing/model/dto"
	"hms/shared"
	"hms/shared/constant"
	"hms/shared/failure"
	"hms/shared/timezone"
)

// ResolveDiscountByCode validates a discount code for the caller. The
// distinct rejection reasons are part of the contract: the front desk shows
// them to the guest verbatim.
func (s *serviceImpl) ResolveDiscountByCode(ctx context.Context, code string) (res dto.DiscountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveDiscountByCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	discount, err := s.resolveDiscount(ctx, code, 0)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to resolve discount code")

		return res, err
	}

	res.FromModel(discount)

	return res, nil
}

// resolveDiscount fetches a discount by code or id and walks the validity
// chain. Checks run in a fixed order and the first failure wins, so the
// caller always gets the most fundamental reason.
func (s *serviceImpl) resolveDiscount(ctx context.Context, code string, id int64) (model.DiscountCode, error) {
	var (
		discount model.DiscountCode
		err      error
	)

	if code != "" {
		discount, err = s.getDiscountByCode(ctx, code)
	} else {
		discount, err = cachedLookup(ctx, s, cacheGetDiscount, id, s.discounts.GetByID)
	}

	if err != nil {
		if failure.IsNotFound(err) {
			return model.DiscountCode{}, failure.Unprocessable("discount code not found") //nolint:wrapcheck
		}

		return model.DiscountCode{}, err
	}

	if code != "" && !strings.EqualFold(discount.Code, code) {
		return model.DiscountCode{}, failure.Unprocessable("discount code not found") //nolint:wrapcheck
	}

	now := timezone.Now()

	switch {
	case !discount.Active:
		return model.DiscountCode{}, failure.Unprocessable("discount code is disabled") //nolint:wrapcheck
	case !discount.StartDate.IsZero() && now.Before(discount.StartDate.Time):
		return model.DiscountCode{}, failure.Unprocessable("discount code is not active yet") //nolint:wrapcheck
	case !discount.EndDate.IsZero() && now.After(discount.EndDate.Time):
		return model.DiscountCode{}, failure.Unprocessable("discount code has expired") //nolint:wrapcheck
	case !discount.Value.IsPositive():
		return model.DiscountCode{}, failure.Unprocessable("discount code is malformed") //nolint:wrapcheck
	}

	return discount, nil
}

func (s *serviceImpl) getDiscountByCode(ctx context.Context, code string) (model.DiscountCode, error) {
	cacheKey := shared.BuildCacheKey(cacheGetDiscount, strings.ToLower(code))

	var discount model.DiscountCode
	if err := s.cache.Get(ctx, cacheKey, &discount); err == nil {
		return discount, nil
	}

	discount, err := s.discounts.GetByCode(ctx, code)
	if err != nil {
		return discount, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, discount, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save discount to cache")
		}
	}()

	return discount, nil
}

// ComputeDiscountAmount applies a discount to a base amount in VND. Percent
// values round half away from zero; fixed amounts never exceed the base, so
// the remaining total cannot go negative.
func ComputeDiscountAmount(base int64, discount model.DiscountCode) int64 {
	if base <= 0 {
		return 0
	}

	switch discount.Kind {
	case model.DiscountKindPercent:
		return decimal.NewFromInt(base).
			Mul(discount.Value).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	case model.DiscountKindFixed:
		return min(discount.Value.Round(0).IntPart(), base)
	default:
		return 0
	}
}
