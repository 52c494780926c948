package model

// Invoice statuses as the upstream persists them. The engine observes these
// states when normalizing list rows, it never transitions them.
const (
	InvoiceStatusUnknown = 0
	InvoiceStatusPaid    = 1
	InvoiceStatusPending = 2
)

// RawInvoice is one row from the upstream invoice list endpoints. The schema
// varies between the old and new routes, so the same logical field can show
// up under several keys; values are coalesced during normalization.
type RawInvoice struct {
	ID        int64 `json:"id"`
	InvoiceID int64 `json:"invoice_id"`
	BillID    int64 `json:"bill_id"`

	CustomerID    int64 `json:"customer_id"`
	CustomerIDAlt int64 `json:"customerId"`

	Total       *int64 `json:"total"`
	TotalAmount *int64 `json:"total_amount"`
	Amount      *int64 `json:"amount"`

	Status        int `json:"status"`
	PaymentStatus int `json:"payment_status"`

	DiscountID int64 `json:"discount_id"`
	CreatedAt  Date  `json:"created_at"`

	ServiceDetails []RawInvoiceLine `json:"service_details"`
	Services       []RawInvoiceLine `json:"services"`

	RoomPayment *RawRoomPayment `json:"room_payment"`
	Payment     *RawRoomPayment `json:"payment"`
}

type RawInvoiceLine struct {
	ServiceID   int64  `json:"service_id"`
	Name        string `json:"name"`
	ServiceName string `json:"service_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   *int64 `json:"unit_price"`
	LineTotal   *int64 `json:"line_total"`
}

type RawRoomPayment struct {
	RoomID    int64  `json:"room_id"`
	Nights    int64  `json:"nights"`
	RoomPrice *int64 `json:"room_price"`
	Amount    *int64 `json:"amount"`
}

// CreateInvoicePayload is the one upstream write the engine produces. The
// bill-persistence API owns everything past this boundary.
type CreateInvoicePayload struct {
	CustomerID      int64 `json:"customer_id"`
	PaymentMethodID int64 `json:"payment_method_id"`
	Total           int64 `json:"total"`
	DiscountID      int64 `json:"discount_id"`
	Status          int   `json:"status"`
}
