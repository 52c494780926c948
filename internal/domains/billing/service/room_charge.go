package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hms/internal/domains/billing/model"
	"hms/shared/timezone"
)

// fallbackRateByType preserves the legacy front desk rate card, used when a
// room carries neither its own rate nor a resolvable room type.
var fallbackRateByType = map[int64]int64{
	1: 500000,
	2: 800000,
	3: 1200000,
	4: 2000000,
}

type roomCharge struct {
	nightlyRate int64
	nights      int64
	subtotal    int64
}

// computeRoomCharge derives the room portion of a bill. It never fails: a
// room that cannot be resolved at all is billed at the configured default
// rate, with a warning for the caller to surface.
func (s *serviceImpl) computeRoomCharge(ctx context.Context, booking model.Booking) (roomCharge, []string) {
	nights := stayNights(booking.CheckIn.Time, booking.CheckOut.Time)
	rate, warnings := s.resolveNightlyRate(ctx, booking.RoomID)

	return roomCharge{
		nightlyRate: rate,
		nights:      nights,
		subtotal:    rate * nights,
	}, warnings
}

// stayNights floors a zero- or negative-length stay to one night so that
// inverted or same-day check-in/check-out data still produces a charge.
func stayNights(checkIn, checkOut time.Time) int64 {
	loc := timezone.GetLocation()

	in := truncateToDate(checkIn.In(loc))
	out := truncateToDate(checkOut.In(loc))

	nights := int64(out.Sub(in).Hours() / 24)

	return max(1, nights)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// resolveNightlyRate walks the rate fallback chain: the room's own rate,
// then its room type, then the static rate card, then the configured
// default. Each tier is consulted only when the previous one has no usable
// positive value.
func (s *serviceImpl) resolveNightlyRate(ctx context.Context, roomID int64) (int64, []string) {
	room, err := cachedLookup(ctx, s, cacheGetRoom, roomID, s.rooms.GetByID)
	if err != nil {
		log.Warn().Err(err).
			Int64("roomID", roomID).
			Msg("room lookup failed, billing at the default nightly rate")

		return s.cfg.Billing.DefaultNightlyRate, []string{"room lookup failed, billed at the default nightly rate"}
	}

	if room.NightlyRate > 0 {
		return room.NightlyRate, nil
	}

	if room.RoomTypeID > 0 {
		roomType, err := cachedLookup(ctx, s, cacheGetRoomType, room.RoomTypeID, s.rooms.GetTypeByID)
		if err == nil && roomType.NightlyRate > 0 {
			return roomType.NightlyRate, nil
		}

		if err != nil {
			log.Warn().Err(err).
				Int64("roomTypeID", room.RoomTypeID).
				Msg("room type lookup failed, falling back to the static rate card")
		}

		if rate, ok := fallbackRateByType[room.RoomTypeID]; ok && rate > 0 {
			return rate, nil
		}
	}

	return s.cfg.Billing.DefaultNightlyRate, nil
}
