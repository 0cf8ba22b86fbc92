package watchdog

import (
	"context"
	"log/slog"
	"time"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
)

const DefaultInterval = time.Minute

// Watchdog periodically sweeps expired instruction tokens and reports
// devices that have gone quiet.
type Watchdog interface {
	Start()
	Stop()
}

type watchdogImpl struct {
	done        chan bool
	log         *slog.Logger
	coordinator handshake.Coordinator
	storage     storage.Store
	interval    time.Duration
}

func New(coordinator handshake.Coordinator, s storage.Store, log *slog.Logger, interval time.Duration) Watchdog {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &watchdogImpl{
		done:        make(chan bool),
		log:         log,
		coordinator: coordinator,
		storage:     s,
		interval:    interval,
	}
}

func (w *watchdogImpl) Start() {
	go backgroundWorker(w, w.done)
}

func (w *watchdogImpl) Stop() {
	w.done <- true
}

func backgroundWorker(w *watchdogImpl, done <-chan bool) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			w.sweep(context.Background())
		}
	}
}

func (w *watchdogImpl) sweep(ctx context.Context) {
	swept, err := w.coordinator.ExpireStaleTokens(ctx)
	if err != nil {
		w.log.Error("could not expire stale tokens", "err", err.Error())
	} else if swept > 0 {
		w.log.Info("expired stale instruction tokens", "count", swept)
	}

	devices, err := w.storage.QueryDevices(ctx)
	if err != nil {
		w.log.Error("could not list devices", "err", err.Error())
		return
	}

	now := time.Now().UTC()

	for _, d := range devices.Data {
		if d.LastSeen.IsZero() {
			continue
		}

		// a device is overdue after ten missed sleep cycles
		overdue := time.Duration(d.Settings.SleepInterval) * time.Second * 10
		if d.LastSeen.Before(now.Add(-overdue)) {
			w.log.Warn("device has gone quiet", "device_id", d.DeviceID, "last_seen", d.LastSeen.Format(time.RFC3339))
		}
	}
}
