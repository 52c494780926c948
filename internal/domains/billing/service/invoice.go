package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"hms/internal/domains/billing/model"
	"hms/internal/domains/billing/model/dto"
	"hms/shared"
	"hms/shared/constant"
	gDto "hms/shared/dto"
	"hms/shared/failure"
)

const placeholderCustomerName = "Unknown customer"

// BuildBill computes an invoice for a customer's stay. Losing the booking
// aborts the computation, there is nothing to bill without a stay. Losing
// service usage or the discount degrades to a zero contribution with a
// warning on the result, an invoice with only room charges is still valid.
func (s *serviceImpl) BuildBill(ctx context.Context, req dto.BuildBillRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BuildBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.resolveBooking(ctx, req.CustomerID, req.BookingID)
	if err != nil {
		log.Error().Err(err).
			Int64("customerID", req.CustomerID).
			Int64("bookingID", req.BookingID).
			Msg("failed to resolve billable booking")

		return res, err
	}

	wantDiscount := req.DiscountCode != "" || (req.DiscountID > 0 && req.DiscountID != model.NoDiscountID)

	var (
		charges     serviceCharges
		chargesErr  error
		discount    model.DiscountCode
		discountErr error
		wg          sync.WaitGroup
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		charges, chargesErr = s.aggregateServiceCharges(ctx, booking.CustomerID)
	}()

	if wantDiscount {
		wg.Add(1)

		go func() {
			defer wg.Done()

			discount, discountErr = s.resolveDiscount(ctx, req.DiscountCode, req.DiscountID)
		}()
	}

	room, warnings := s.computeRoomCharge(ctx, booking)

	wg.Wait()

	if chargesErr != nil {
		log.Warn().Err(chargesErr).
			Int64("customerID", booking.CustomerID).
			Msg("service usage unavailable, billing room charges only")

		charges = serviceCharges{items: []dto.LineItem{}}
		warnings = append(warnings, "service charges unavailable, billed as 0")
	}

	haveDiscount := wantDiscount && discountErr == nil

	if wantDiscount && discountErr != nil {
		if failure.IsUnprocessable(discountErr) {
			warnings = append(warnings, discountErr.Error())
		} else {
			log.Warn().Err(discountErr).Msg("discount source unavailable, no discount applied")

			warnings = append(warnings, "discount source unavailable, no discount applied")
		}
	}

	subtotalBeforeDiscount := room.subtotal + charges.subtotal

	var (
		discountAmount int64
		discountID     int64
	)

	if haveDiscount {
		discountAmount = ComputeDiscountAmount(subtotalBeforeDiscount, discount)
		discountID = discount.ID
	}

	total := max(0, subtotalBeforeDiscount-discountAmount)

	res = dto.BillResponse{
		CustomerID:             booking.CustomerID,
		BookingID:              booking.ID,
		BookingStatus:          booking.Status,
		StayNights:             room.nights,
		NightlyRate:            room.nightlyRate,
		RoomSubtotal:           room.subtotal,
		ServiceSubtotal:        charges.subtotal,
		SubtotalBeforeDiscount: subtotalBeforeDiscount,
		DiscountID:             discountID,
		DiscountAmount:         discountAmount,
		Total:                  total,
		RoomLineItem: dto.LineItem{
			Label:     fmt.Sprintf("Room %d (%d nights)", booking.RoomID, room.nights),
			Quantity:  room.nights,
			UnitPrice: room.nightlyRate,
			LineTotal: room.subtotal,
		},
		ServiceLineItems: charges.items,
		Warnings:         warnings,
	}

	return res, nil
}

// CreateBill computes the invoice and submits it to the upstream
// bill-persistence API as a pending payment.
func (s *serviceImpl) CreateBill(ctx context.Context, req dto.CreateBillRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.BuildBill(ctx, req.BuildBillRequest)
	if err != nil {
		return res, err
	}

	discountID := res.DiscountID
	if discountID == 0 {
		discountID = model.NoDiscountID
	}

	payload := model.CreateInvoicePayload{
		CustomerID:      res.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		Total:           res.Total,
		DiscountID:      discountID,
		Status:          model.InvoiceStatusPending,
	}

	if err = s.invoices.Create(ctx, payload); err != nil {
		log.Error().Err(err).
			Int64("customerID", res.CustomerID).
			Msg("failed to create invoice upstream")

		return dto.BillResponse{}, err
	}

	scope.AddEvent("Invoice submitted upstream")

	return res, nil
}

// GetBills lists upstream invoices in the normalized display shape.
func (s *serviceImpl) GetBills(ctx context.Context, params gDto.QueryParams) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBills")
	defer scope.End()
	defer scope.TraceIfError(err)

	rawInvoices, err := s.invoices.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list invoices")

		return res, err
	}

	names := s.customerNames(ctx)

	invoices := make([]dto.InvoiceResponse, len(rawInvoices))
	for i, raw := range rawInvoices {
		invoices[i] = normalizeRawInvoice(raw, names)
	}

	res.TotalData = len(invoices)
	res.TotalPage = shared.CalculateTotalPage(len(invoices), params.Limit)
	res.Invoices = shared.Paginate(invoices, params.Page, params.Limit)

	return res, nil
}

// GetBill returns one normalized invoice plus the billed service usage tied
// to it. Missing usage only empties that section, the invoice still renders.
func (s *serviceImpl) GetBill(ctx context.Context, id int64) (res dto.InvoiceDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	rawInvoices, err := s.invoices.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list invoices")

		return res, err
	}

	for _, raw := range rawInvoices {
		if invoiceID(raw) != id {
			continue
		}

		res.InvoiceResponse = normalizeRawInvoice(raw, s.customerNames(ctx))

		usage, usageErr := s.aggregateBilledCharges(ctx, id)
		if usageErr != nil {
			log.Warn().Err(usageErr).
				Int64("invoiceID", id).
				Msg("billed service usage unavailable for invoice detail")

			usage = serviceCharges{items: []dto.LineItem{}}
		}

		res.ServiceUsage = usage.items

		return res, nil
	}

	return res, failure.NotFound("invoice not found") //nolint:wrapcheck
}

// customerNames builds the id to display-name map used by normalization.
// The map is owned here and cached explicitly, an unavailable customers
// source just means placeholder names.
func (s *serviceImpl) customerNames(ctx context.Context) map[int64]string {
	var names map[int64]string
	if err := s.cache.Get(ctx, cacheCustomerNames, &names); err == nil {
		return names
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("customer list unavailable, rendering placeholder names")

		return map[int64]string{}
	}

	names = make(map[int64]string, len(customers))
	for _, customer := range customers {
		names[customer.ID] = customer.Name
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheCustomerNames, names, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer names to cache")
		}
	}()

	return names
}

// normalizeRawInvoice flattens one upstream invoice row into the display
// shape regardless of which route produced it. A row with neither service
// details nor a room payment gets a single synthesized line equal to its
// total, so line-item sums always match.
func normalizeRawInvoice(raw model.RawInvoice, names map[int64]string) dto.InvoiceResponse {
	id := invoiceID(raw)
	customerID := firstPositive(raw.CustomerID, raw.CustomerIDAlt)
	total := coalesceAmount(0, raw.Total, raw.TotalAmount, raw.Amount)

	name, ok := names[customerID]
	if !ok || name == "" {
		name = placeholderCustomerName
	}

	res := dto.InvoiceResponse{
		DisplayID:    dto.FormatDisplayID(id),
		InvoiceID:    id,
		CustomerID:   customerID,
		CustomerName: name,
		Status:       invoiceStatusLabel(raw),
		Total:        total,
		LineItems:    normalizeLineItems(raw, total),
	}

	if !raw.CreatedAt.IsZero() {
		res.CreatedAt = raw.CreatedAt.Format(constant.DateFormat)
	}

	return res
}

func normalizeLineItems(raw model.RawInvoice, total int64) []dto.LineItem {
	details := raw.ServiceDetails
	if len(details) == 0 {
		details = raw.Services
	}

	if len(details) > 0 {
		items := make([]dto.LineItem, len(details))
		for i, detail := range details {
			items[i] = normalizeLine(detail)
		}

		return items
	}

	payment := raw.RoomPayment
	if payment == nil {
		payment = raw.Payment
	}

	if payment != nil {
		nights := max(1, payment.Nights)
		rate := coalesceAmount(0, payment.RoomPrice)
		amount := coalesceAmount(rate*nights, payment.Amount)

		if rate == 0 && nights > 0 {
			rate = amount / nights
		}

		return []dto.LineItem{{
			Label:     fmt.Sprintf("Room %d (%d nights)", payment.RoomID, nights),
			Quantity:  nights,
			UnitPrice: rate,
			LineTotal: amount,
		}}
	}

	return []dto.LineItem{{
		Label:     "Invoice total",
		Quantity:  1,
		UnitPrice: total,
		LineTotal: total,
	}}
}

func normalizeLine(detail model.RawInvoiceLine) dto.LineItem {
	name := detail.Name
	if name == "" {
		name = detail.ServiceName
	}

	if name == "" {
		name = fmt.Sprintf("Service %d", detail.ServiceID)
	}

	quantity := max(1, detail.Quantity)
	unitPrice := coalesceAmount(0, detail.UnitPrice)
	lineTotal := coalesceAmount(unitPrice*quantity, detail.LineTotal)

	if unitPrice == 0 && quantity > 0 {
		unitPrice = lineTotal / quantity
	}

	return dto.LineItem{
		Label:     name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: lineTotal,
	}
}

// invoiceStatusLabel maps the upstream status enum. An explicit payment
// status wins over the generic status field unless it is the unknown
// sentinel.
func invoiceStatusLabel(raw model.RawInvoice) string {
	status := raw.Status
	if raw.PaymentStatus != model.InvoiceStatusUnknown {
		status = raw.PaymentStatus
	}

	switch status {
	case model.InvoiceStatusPaid:
		return "paid"
	case model.InvoiceStatusPending:
		return "pending"
	default:
		return "cancelled"
	}
}

func invoiceID(raw model.RawInvoice) int64 {
	return firstPositive(raw.ID, raw.InvoiceID, raw.BillID)
}

func firstPositive(values ...int64) int64 {
	for _, value := range values {
		if value > 0 {
			return value
		}
	}

	return 0
}

func coalesceAmount(fallback int64, values ...*int64) int64 {
	for _, value := range values {
		if value != nil {
			return *value
		}
	}

	return fallback
}
