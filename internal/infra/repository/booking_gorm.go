package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop / Barber / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barbershop_not_found")
		}
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *BookingGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Subscription / Loyalty lookups
// --------------------------------------------------

func (r *BookingGormRepository) FindConsumableSubscription(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
	planID uint,
	now time.Time,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND client_id = ? AND plan_id = ? AND status = ? AND end_date >= ? AND credits_remaining > 0",
			barbershopID, clientID, planID, "active", now,
		).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *BookingGormRepository) GetLoyalty(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Loyalty, error) {

	var loyalty models.Loyalty
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND client_id = ?", barbershopID, clientID).
		First(&loyalty).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loyalty, nil
}

// --------------------------------------------------
// Booking (create / mutate)
// --------------------------------------------------

// CreateBooking faz a escrita atômica do agendamento: checagem de
// conflito, débito de crédito e resgate de recompensa acontecem na mesma
// transação do insert, cada um re-checando a própria precondição no
// filtro do UPDATE.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	opts domain.CreateOptions,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if !opts.Force {
			// FOR UPDATE em bookings não bloqueia um insert concorrente
			// que ainda não existe; o lock na linha do barbeiro serializa
			// as criações do mesmo barbeiro e fecha essa janela.
			var barber models.User
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND barbershop_id = ?", b.BarberID, b.BarbershopID).
				First(&barber).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httperr.ErrBusiness("barber_not_found")
				}
				return err
			}

			var conflicts []models.Booking
			if err := tx.
				Where(
					"barber_id = ? AND scheduled_at = ? AND status <> ?",
					b.BarberID, b.ScheduledAt, string(domain.StatusCanceled),
				).
				Find(&conflicts).Error; err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		if opts.ConsumeSubscriptionID != nil {
			res := tx.Model(&models.Subscription{}).
				Where(
					"id = ? AND status = ? AND end_date >= ? AND credits_remaining > 0",
					*opts.ConsumeSubscriptionID, "active", opts.Now,
				).
				UpdateColumn("credits_remaining", gorm.Expr("credits_remaining - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("no_credits")
			}
		}

		if opts.RedeemLoyalty {
			res := tx.Model(&models.Loyalty{}).
				Where(
					"barbershop_id = ? AND client_id = ? AND rewards > 0",
					b.BarbershopID, b.ClientID,
				).
				UpdateColumn("rewards", gorm.Expr("rewards - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("no_rewards")
			}
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByPaymentRef(
	ctx context.Context,
	barbershopID uint,
	ref string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND payment_ref = ?", barbershopID, ref).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Booking, error) {

	b, err := r.GetBooking(ctx, barbershopID, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&models.Booking{}, b.ID).Error; err != nil {
		return nil, err
	}

	return b, nil
}

// --------------------------------------------------
// Sweep
// --------------------------------------------------

func (r *BookingGormRepository) CompletePastDue(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"scheduled_at < ? AND status IN ?",
			now, []string{string(domain.StatusBooked), string(domain.StatusConfirmed)},
		).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": now,
		})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Listing / availability
// --------------------------------------------------

func (r *BookingGormRepository) ListForPeriod(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barbershop_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			barbershopID, start, end,
		)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var bookings []models.Booking
	if err := q.Order("scheduled_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *BookingGormRepository) IsWithinWorkingHours(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())
	loc := start.Location()

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return false, nil
	}

	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false, nil
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart := parseHM(wh.LunchStart)
		lunchEnd := parseHM(wh.LunchEnd)
		if start.Before(lunchEnd) && end.After(lunchStart) {
			return false, nil
		}
	}

	return true, nil
}

// --------------------------------------------------
// Loyalty accrual
// --------------------------------------------------

func (r *BookingGormRepository) AccrueLoyalty(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
	pointsPerReward int,
) error {

	if pointsPerReward <= 0 {
		pointsPerReward = 10
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var loyalty models.Loyalty
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("barbershop_id = ? AND client_id = ?", barbershopID, clientID).
			First(&loyalty).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			loyalty = models.Loyalty{
				BarbershopID: barbershopID,
				ClientID:     clientID,
			}
		} else if err != nil {
			return err
		}

		loyalty.Points++
		if loyalty.Points >= pointsPerReward {
			loyalty.Points -= pointsPerReward
			loyalty.Rewards++
		}

		return tx.Save(&loyalty).Error
	})
}

func (r *BookingGormRepository) MarkClientVisit(
	ctx context.Context,
	clientID uint,
	now time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		UpdateColumn("last_visit_at", now).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
