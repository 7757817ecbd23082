package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"facility-reservation-backend/internal/logger"
	"facility-reservation-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender implementation using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers pushing reservation events to
// subscribed admin browsers.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size*4),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger.Debug().Int("worker", id).Msg("notification worker started")
	for {
		select {
		case reservationID := <-wp.jobs:
			wp.notifyForReservation(ctx, reservationID)
		case <-ctx.Done():
			logger.Debug().Int("worker", id).Msg("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues a reservation event. Drops the event when the queue
// is saturated rather than blocking a request handler.
func (wp *WorkerPool) Dispatch(reservationID int64) {
	select {
	case wp.jobs <- reservationID:
	default:
		logger.Warn().Int64("reservation_id", reservationID).Msg("notification queue full, dropping event")
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

type pushPayload struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Status  string `json:"status"`
	StartAt string `json:"start_at"`
}

// notifyForReservation fetches subscriptions and sends one notification
// per subscriber for the given reservation.
func (wp *WorkerPool) notifyForReservation(ctx context.Context, reservationID int64) {
	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("failed to fetch push subscriptions")
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	var reservation model.Reservation
	if err := wp.db.WithContext(ctx).First(&reservation, reservationID).Error; err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("failed to fetch reservation")
		return
	}

	facilityLabel := fmt.Sprintf("facility %d", reservation.FacilityID)
	var facility model.Facility
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&facility, reservation.FacilityID).Error; err != nil {
		logger.Warn().Err(err).Int64("facility_id", reservation.FacilityID).Msg("failed to fetch facility name")
	} else if facility.Name != "" {
		facilityLabel = facility.Name
	}

	body := fmt.Sprintf("Reservation for %s is now %s", facilityLabel, reservation.Status)
	if reservation.Status == model.StatusPending {
		body = fmt.Sprintf("New reservation request for %s", facilityLabel)
	}
	payload, err := json.Marshal(pushPayload{
		Title:   "Facility reservation",
		Body:    body,
		Status:  reservation.Status,
		StartAt: reservation.StartAt.Format("2006-01-02 15:04"),
	})
	if err != nil {
		return
	}

	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification, pruning
// subscriptions the push service reports as gone.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		logger.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to send notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		logger.Info().Str("endpoint", sub.Endpoint).Msg("subscription expired, deleting")
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			logger.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to delete expired subscription")
		}
	}
}
