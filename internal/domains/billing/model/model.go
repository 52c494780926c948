package model

const EntityName = "billing"

// Booking statuses as stored by the upstream booking subsystem. The billing
// engine only ever reads them.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

type Booking struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	RoomID     int64  `json:"room_id"`
	CheckIn    Date   `json:"check_in"`
	CheckOut   Date   `json:"check_out"`
	Status     string `json:"status"`
	Deleted    bool   `json:"deleted"`
	CreatedAt  Date   `json:"created_at"`
}

// Room as served by the upstream rooms store. NightlyRate 0 means the rate
// is absent and must be resolved through the room type or a fallback.
type Room struct {
	ID          int64 `json:"id"`
	RoomTypeID  int64 `json:"room_type_id"`
	NightlyRate int64 `json:"nightly_rate"`
}

type RoomType struct {
	ID          int64 `json:"id"`
	NightlyRate int64 `json:"nightly_rate"`
}

// ServiceUsageRecord is one consumption of a paid hotel service. Records are
// owned by the service-usage subsystem; the engine reads and sums them.
type ServiceUsageRecord struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	ServiceID  int64  `json:"service_id"`
	InvoiceID  int64  `json:"invoice_id"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	LineTotal  int64  `json:"line_total"`
	Billed     bool   `json:"billed"`
	Deleted    bool   `json:"deleted"`
}

type Service struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

// Customer carries only what bill rendering needs: a display name.
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
