package booking

import (
	"context"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/timezone"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]TimeSlot, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil || !wh.Active {
		return []TimeSlot{}, nil
	}

	// A data chega sem fuso; o dia é ancorado no fuso da barbearia.
	loc := timezone.Location(shop.Timezone)

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = parseHM(wh.LunchStart)
		lunchEnd = parseHM(wh.LunchEnd)
	}

	bookings, err := uc.repo.ListForPeriod(
		ctx, in.BarbershopID, in.BarberID, dayStart, dayEnd,
	)
	if err != nil {
		return nil, err
	}

	// Cancelados não ocupam slot.
	busy := bookings[:0]
	for _, b := range bookings {
		if domain.Status(b.Status) != domain.StatusCanceled {
			busy = append(busy, b)
		}
	}

	slotDuration := time.Duration(svc.DurationMin) * time.Minute
	var slots []TimeSlot

	idx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasLunch && slotStart.Before(lunchEnd) && slotEnd.After(lunchStart) {
			continue
		}

		for idx < len(busy) && busy[idx].EndTime.Before(slotStart) {
			idx++
		}

		conflict := false
		if idx < len(busy) {
			b := busy[idx]
			if slotStart.Before(b.EndTime) && slotEnd.After(b.ScheduledAt) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
