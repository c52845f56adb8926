// Package reminder runs the server-side replacement for the old client-side
// notification queue: a minute-tick loop that mails travelers when a wake or
// meal time on today's itinerary day comes due.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// Scheduler polls today's itinerary days once per minute and sends at most
// one email per (day, trigger).
type Scheduler struct {
	db     *pgxpool.Pool
	email  *utils.EmailService
	logger zerolog.Logger

	sent    map[string]bool
	sentDay string
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(db *pgxpool.Pool, email *utils.EmailService, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		email:  email,
		logger: logger.With().Str("component", "reminder").Logger(),
		sent:   make(map[string]bool),
	}
}

// Run ticks once per minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

// tick sends reminders whose trigger time matches the current minute.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	today := now.Format("2006-01-02")
	if s.sentDay != today {
		// New day, forget yesterday's dedupe state.
		s.sent = make(map[string]bool)
		s.sentDay = today
	}
	clock := now.Format("15:04")

	rows, err := s.db.Query(ctx,
		`SELECT d.id, d.user_id, d.date, d.day_type, d.destination_id, d.activity_id, d.notes,
		        d.wake_time, d.breakfast_time, d.lunch_time, d.dinner_time,
		        u.email
		   FROM itinerary_days d
		   JOIN users u ON u.id = d.user_id
		  WHERE d.date = $1`, today)
	if err != nil {
		s.logger.Error().Err(err).Msg("loading today's itinerary days")
		return
	}
	defer rows.Close()

	type due struct {
		day     models.ItineraryDay
		email   string
		trigger string
	}
	var pending []due

	for rows.Next() {
		var d models.ItineraryDay
		var email string
		if err := rows.Scan(&d.ID, &d.UserID, &d.Date, &d.DayType, &d.DestinationID,
			&d.ActivityID, &d.Notes, &d.WakeTime, &d.BreakfastTime, &d.LunchTime,
			&d.DinnerTime, &email); err != nil {
			s.logger.Error().Err(err).Msg("scanning itinerary day")
			return
		}

		for _, t := range []*string{d.WakeTime, d.BreakfastTime, d.LunchTime, d.DinnerTime} {
			if t != nil && *t == clock {
				pending = append(pending, due{day: d, email: email, trigger: *t})
				break
			}
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("iterating itinerary days")
		return
	}

	for _, p := range pending {
		key := fmt.Sprintf("%s:%s", p.day.ID, p.trigger)
		if s.sent[key] {
			continue
		}
		day := p.day
		if err := s.email.SendDailyReminder(p.email, &day); err != nil {
			s.logger.Warn().Err(err).Str("day_id", day.ID.String()).Msg("reminder email failed")
			continue
		}
		s.sent[key] = true
		s.logger.Info().Str("day_id", day.ID.String()).Str("trigger", p.trigger).Msg("reminder sent")
	}
}
