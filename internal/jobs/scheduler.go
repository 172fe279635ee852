package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	subdomain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/usecase/booking"
)

// Janela do lembrete de retorno: cliente visto pela última vez há
// exatamente returnReminderDays dias recebe um convite para voltar.
const returnReminderDays = 30

const jobTimeout = 2 * time.Minute

// Scheduler agrupa os jobs diários da plataforma: baixa de agendamentos
// vencidos, encerramento de assinaturas vencidas e lembretes de retorno.
type Scheduler struct {
	cron *cron.Cron

	db       *gorm.DB
	sweep    *booking.SweepOverdue
	subs     subdomain.Repository
	notifier *notify.Dispatcher
}

func NewScheduler(
	db *gorm.DB,
	sweep *booking.SweepOverdue,
	subs subdomain.Repository,
	notifier *notify.Dispatcher,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		db:       db,
		sweep:    sweep,
		subs:     subs,
		notifier: notifier,
	}
}

// Start registra os jobs e liga o cron. Expressões inválidas derrubam o
// processo no boot, que é onde queremos descobrir isso.
func (s *Scheduler) Start(sweepSchedule, reminderSchedule string) error {
	if _, err := s.cron.AddFunc(sweepSchedule, s.runSweeps); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(reminderSchedule, s.runReturnReminders); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("jobs: scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSweeps() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := time.Now()

	if _, err := s.sweep.Execute(ctx, now); err != nil {
		log.Println("jobs: booking sweep failed:", err)
	}

	n, err := s.subs.SweepLapsed(ctx, now)
	if err != nil {
		log.Println("jobs: subscription sweep failed:", err)
	} else if n > 0 {
		log.Printf("jobs: closed %d lapsed subscriptions", n)
	}
}

// runReturnReminders varre as barbearias e convida de volta quem não
// aparece há returnReminderDays dias. A janela de um dia garante no
// máximo um lembrete por ciclo.
func (s *Scheduler) runReturnReminders() {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var shops []models.Barbershop
	if err := s.db.WithContext(ctx).Find(&shops).Error; err != nil {
		log.Println("jobs: reminder shop scan failed:", err)
		return
	}

	for _, shop := range shops {
		s.remindShopClients(ctx, &shop)
	}
}

func (s *Scheduler) remindShopClients(ctx context.Context, shop *models.Barbershop) {
	windowEnd := time.Now().AddDate(0, 0, -returnReminderDays)
	windowStart := windowEnd.AddDate(0, 0, -1)

	var clients []models.Client
	err := s.db.WithContext(ctx).
		Where("barbershop_id = ?", shop.ID).
		Where("last_visit_at IS NOT NULL").
		Where("last_visit_at >= ? AND last_visit_at < ?", windowStart, windowEnd).
		Find(&clients).Error
	if err != nil {
		log.Printf("jobs: reminder scan failed for shop %d: %v", shop.ID, err)
		return
	}

	for _, c := range clients {
		if c.Phone == "" {
			continue
		}
		s.notifier.Dispatch(c.Phone, notify.ReturnReminder(shop.Name, c.Name))
	}

	if len(clients) > 0 {
		log.Printf("jobs: sent %d return reminders for shop %d", len(clients), shop.ID)
	}
}
