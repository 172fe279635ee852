package booking

import (
	"context"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/dto"
	"github.com/navalhadigital/barber-saas/internal/timezone"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// ByDate lista os agendamentos de um dia no fuso da barbearia.
// barberID zero lista todos os barbeiros.
func (uc *ListBookings) ByDate(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start, end := timezone.DayBounds(date.In(loc))

	return uc.list(ctx, barbershopID, barberID, start, end)
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, barbershopID, barberID, start, end)
}

func (uc *ListBookings) list(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start, end time.Time,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListForPeriod(ctx, barbershopID, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			ScheduledAt:   b.ScheduledAt,
			EndTime:       b.EndTime,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			ClientName:    b.Client.Name,
			ServiceName:   b.Service.Name,
		})
	}

	return out, nil
}
