package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"facility-reservation-backend/internal/store"
)

// Notifier dispatches a reservation event to the push worker pool.
type Notifier interface {
	Dispatch(reservationID int64)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	cache    *cache.Cache
	webpush  *webpush.Options
	notifier Notifier
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cacheStore *cache.Cache, webpushOptions *webpush.Options, notifier Notifier) *Handler {
	return &Handler{
		store:    s,
		cache:    cacheStore,
		webpush:  webpushOptions,
		notifier: notifier,
	}
}

// flushCache drops all cached public responses after an admin write.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

func (h *Handler) notify(reservationID int64) {
	if h.notifier != nil {
		h.notifier.Dispatch(reservationID)
	}
}
