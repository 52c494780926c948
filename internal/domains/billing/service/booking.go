package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"hms/internal/domains/billing/model"
	"hms/shared/failure"
)

// resolveBooking selects the single billable booking for a customer. With an
// explicit booking id the choice is made upstream; otherwise the most recent
// live booking wins, and a customer whose bookings are all cancelled or
// deleted still gets their most recent one so historical stays remain
// billable. The chosen booking's status is returned unchanged.
func (s *serviceImpl) resolveBooking(ctx context.Context, customerID, bookingID int64) (model.Booking, error) {
	if bookingID > 0 {
		return s.bookings.GetByID(ctx, bookingID)
	}

	bookings, err := s.bookings.GetByCustomer(ctx, customerID)
	if err != nil {
		if failure.IsNotFound(err) {
			return model.Booking{}, failure.NotFound("no booking for customer") //nolint:wrapcheck
		}

		return model.Booking{}, err
	}

	if len(bookings) == 0 {
		return model.Booking{}, failure.NotFound("no booking for customer") //nolint:wrapcheck
	}

	billable := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.Deleted || strings.EqualFold(booking.Status, model.BookingStatusCancelled) {
			continue
		}

		billable = append(billable, booking)
	}

	if len(billable) > 0 {
		return mostRecentBooking(billable), nil
	}

	log.Warn().
		Int64("customerID", customerID).
		Msg("customer has only cancelled or deleted bookings, billing the most recent one")

	return mostRecentBooking(bookings), nil
}

func mostRecentBooking(bookings []model.Booking) model.Booking {
	best := bookings[0]

	for _, booking := range bookings[1:] {
		switch {
		case booking.CreatedAt.After(best.CreatedAt.Time):
			best = booking
		case booking.CreatedAt.Equal(best.CreatedAt.Time) && booking.ID > best.ID:
			best = booking
		}
	}

	return best
}
