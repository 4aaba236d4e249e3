package usecase

import (
	"context"
	"time"

	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	reminderWindow    = 24 * time.Hour
	reminderDedupeKey = "appointment:reminder_sent:"
	// dedupe keys outlive the window so a delayed re-run cannot resend
	reminderDedupeTTL = 48 * time.Hour
)

type ReminderUsecase interface {
	// SendReminders dispatches a reminder for every blocking appointment in
	// the next 24 hours, at most once per appointment. Returns the number
	// of reminders sent.
	SendReminders(ctx context.Context) (int, error)
}

type reminderUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loc             *time.Location
	appointmentRepo repository.AppointmentRepository
	redisClient     *redis.Client
	dispatcher      service.NotificationDispatcher
}

func NewReminderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	appointmentRepo repository.AppointmentRepository,
	redisClient *redis.Client,
	dispatcher service.NotificationDispatcher,
) ReminderUsecase {
	return &reminderUsecase{
		db:              db,
		log:             log,
		loc:             loc,
		appointmentRepo: appointmentRepo,
		redisClient:     redisClient,
		dispatcher:      dispatcher,
	}
}

func (u *reminderUsecase) SendReminders(ctx context.Context) (int, error) {
	now := time.Now().In(u.loc)

	upcoming, err := u.appointmentRepo.FindUpcoming(u.db.WithContext(ctx), now, now.Add(reminderWindow))
	if err != nil {
		u.log.Warnf("Failed to load upcoming appointments: %+v", err)
		return 0, err
	}

	sent := 0
	for i := range upcoming {
		appointment := &upcoming[i]
		if appointment.Patient == nil || appointment.Patient.Email == "" {
			continue
		}

		// SetNX both claims and dedupes: only the first run for this
		// appointment wins the key.
		key := reminderDedupeKey + appointment.ID.String()
		claimed, err := u.redisClient.SetNX(ctx, key, now.Format(time.RFC3339), reminderDedupeTTL).Result()
		if err != nil {
			u.log.Warnf("Failed reminder dedupe check for appointment %s: %+v", appointment.ID, err)
			continue
		}
		if !claimed {
			continue
		}

		notification := service.Notification{
			Channel:   service.ChannelEmail,
			Recipient: appointment.Patient.Email,
			Subject:   "Appointment reminder",
			Template:  service.TemplateAppointmentReminder,
			Variables: map[string]string{
				"patient": appointment.Patient.FullName,
				"date":    appointment.ScheduledAt.In(u.loc).Format("2006-01-02"),
				"time":    appointment.ScheduledAt.In(u.loc).Format("15:04"),
			},
		}
		if err := u.dispatcher.Dispatch(ctx, notification); err != nil {
			// Release the claim so the next run retries this appointment.
			u.log.Warnf("Failed to send reminder for appointment %s (non-fatal): %+v", appointment.ID, err)
			u.redisClient.Del(ctx, key)
			continue
		}
		sent++
	}

	u.log.Infof("Reminder pass done: candidates=%d, sent=%d", len(upcoming), sent)
	return sent, nil
}
