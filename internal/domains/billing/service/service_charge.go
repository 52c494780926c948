package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hms/internal/domains/billing/model"
	"hms/internal/domains/billing/model/dto"
	"hms/shared/failure"
)

// legacyServices backfills the two service ids that predate the services
// catalog and were hardcoded in the old front desk application.
var legacyServices = map[int64]model.Service{
	1: {ID: 1, Name: "Laundry", UnitPrice: 60000},
	2: {ID: 2, Name: "Breakfast", UnitPrice: 50000},
}

type serviceCharges struct {
	subtotal int64
	items    []dto.LineItem
}

// aggregateServiceCharges sums the customer's unbilled service usage. An
// upstream 404 means the customer simply has no usage and is not an error.
func (s *serviceImpl) aggregateServiceCharges(ctx context.Context, customerID int64) (serviceCharges, error) {
	records, err := s.services.GetUsageByCustomer(ctx, customerID)
	if err != nil {
		if failure.IsNotFound(err) {
			return serviceCharges{items: []dto.LineItem{}}, nil
		}

		return serviceCharges{}, err
	}

	eligible := make([]model.ServiceUsageRecord, 0, len(records))

	for _, record := range records {
		if record.Deleted || record.Billed || record.CustomerID != customerID {
			continue
		}

		eligible = append(eligible, record)
	}

	return s.chargeLines(ctx, eligible), nil
}

// aggregateBilledCharges collects the usage already tied to an invoice, for
// historical invoice display.
func (s *serviceImpl) aggregateBilledCharges(ctx context.Context, invoiceID int64) (serviceCharges, error) {
	records, err := s.services.GetUsageByInvoice(ctx, invoiceID)
	if err != nil {
		if failure.IsNotFound(err) {
			return serviceCharges{items: []dto.LineItem{}}, nil
		}

		return serviceCharges{}, err
	}

	eligible := make([]model.ServiceUsageRecord, 0, len(records))

	for _, record := range records {
		if record.Deleted {
			continue
		}

		eligible = append(eligible, record)
	}

	return s.chargeLines(ctx, eligible), nil
}

// chargeLines prices every record. Resolution runs record fields, then the
// services catalog, then the legacy table, then a zero-priced placeholder.
// A record is never dropped, so totals stay auditable even when pricing
// data is gone.
func (s *serviceImpl) chargeLines(ctx context.Context, records []model.ServiceUsageRecord) serviceCharges {
	charges := serviceCharges{items: make([]dto.LineItem, 0, len(records))}

	for _, record := range records {
		quantity := record.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		name := record.Name
		unitPrice := record.UnitPrice
		lineTotal := record.LineTotal

		if lineTotal <= 0 && unitPrice <= 0 || name == "" {
			svc, err := s.lookupService(ctx, record.ServiceID)
			if err != nil {
				log.Warn().Err(err).
					Int64("serviceID", record.ServiceID).
					Msg("service lookup failed, keeping the usage record with placeholder pricing")
			} else {
				if name == "" {
					name = svc.Name
				}

				if lineTotal <= 0 && unitPrice <= 0 {
					unitPrice = svc.UnitPrice
				}
			}
		}

		if name == "" {
			name = fmt.Sprintf("Service %d", record.ServiceID)
		}

		if lineTotal <= 0 {
			lineTotal = unitPrice * quantity
		}

		if unitPrice <= 0 && quantity > 0 {
			unitPrice = lineTotal / quantity
		}

		charges.items = append(charges.items, dto.LineItem{
			Label:     name,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})

		charges.subtotal += lineTotal
	}

	return charges
}

// lookupService resolves a catalog entry, falling back to the legacy table
// before reporting failure.
func (s *serviceImpl) lookupService(ctx context.Context, serviceID int64) (model.Service, error) {
	svc, err := cachedLookup(ctx, s, cacheGetService, serviceID, s.services.GetByID)
	if err == nil && (svc.Name != "" || svc.UnitPrice > 0) {
		return svc, nil
	}

	if legacy, ok := legacyServices[serviceID]; ok {
		return legacy, nil
	}

	if err != nil {
		return model.Service{}, err
	}

	return svc, nil
}
