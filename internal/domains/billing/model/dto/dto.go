package dto

import (
	"fmt"

	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type BuildBillRequest struct {
	CustomerID   int64  `json:"customer_id"   validate:"required,gt=0"`
	BookingID    int64  `json:"booking_id"    validate:"omitempty,gt=0"`
	DiscountCode string `json:"discount_code" validate:"omitempty,max=32"`
	DiscountID   int64  `json:"discount_id"   validate:"omitempty,gt=0"`
}

type CreateBillRequest struct {
	BuildBillRequest
	PaymentMethodID int64 `json:"payment_method_id" validate:"required,gt=0"`
}

type LineItem struct {
	Label     string `json:"label"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// BillResponse is a computed invoice. It is never partially constructed:
// either the whole computation succeeds, possibly with warnings, or the
// caller gets an error and no bill.
type BillResponse struct {
	CustomerID             int64      `json:"customer_id"`
	BookingID              int64      `json:"booking_id"`
	BookingStatus          string     `json:"booking_status"`
	StayNights             int64      `json:"stay_nights"`
	NightlyRate            int64      `json:"nightly_rate"`
	RoomSubtotal           int64      `json:"room_subtotal"`
	ServiceSubtotal        int64      `json:"service_subtotal"`
	SubtotalBeforeDiscount int64      `json:"subtotal_before_discount"`
	DiscountID             int64      `json:"discount_id,omitempty"`
	DiscountAmount         int64      `json:"discount_amount"`
	Total                  int64      `json:"total"`
	RoomLineItem           LineItem   `json:"room_line_item"`
	ServiceLineItems       []LineItem `json:"service_line_items"`
	Warnings               []string   `json:"warnings,omitempty"`
}

// InvoiceResponse is the normalized shape of one upstream invoice row.
type InvoiceResponse struct {
	DisplayID    string     `json:"display_id"`
	InvoiceID    int64      `json:"invoice_id"`
	CustomerID   int64      `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Status       string     `json:"status"`
	Total        int64      `json:"total"`
	CreatedAt    string     `json:"created_at,omitempty"`
	LineItems    []LineItem `json:"line_items"`
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

type InvoiceDetailResponse struct {
	InvoiceResponse
	ServiceUsage []LineItem `json:"service_usage"`
}

type DiscountResponse struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Kind      string `json:"kind"`
	Value     string `json:"value"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Active    bool   `json:"active"`
}

func (r *DiscountResponse) FromModel(discount model.DiscountCode) {
	r.ID = discount.ID
	r.Code = discount.Code
	r.Kind = discount.Kind
	r.Value = discount.Value.String()
	r.Active = discount.Active

	if !discount.StartDate.IsZero() {
		r.StartDate = discount.StartDate.Format(constant.DateFormat)
	}

	if !discount.EndDate.IsZero() {
		r.EndDate = discount.EndDate.Format(constant.DateFormat)
	}
}

// FormatDisplayID renders the customer-facing invoice id, e.g. "HD0042".
func FormatDisplayID(id int64) string {
	return fmt.Sprintf("HD%04d", id)
}
