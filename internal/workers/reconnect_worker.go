package workers

import (
	"context"
	"time"

	"hirehub/internal/logger"
)

// Reconnector - то, что умеет вернуться в online (app.Engine)
type Reconnector interface {
	IsOffline() bool
	Reconnect(ctx context.Context) bool
}

// ReconnectWorker периодически проверяет сервер, пока сессия в offline.
// Останавливается сам после первого успешного переподключения.
type ReconnectWorker struct {
	target   Reconnector
	interval time.Duration
	done     chan struct{}
}

func NewReconnectWorker(target Reconnector, interval time.Duration) *ReconnectWorker {
	return &ReconnectWorker{
		target:   target,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start запускает проверку в фоне. interval <= 0 - воркер выключен.
func (w *ReconnectWorker) Start(ctx context.Context) {
	if w.interval <= 0 || !w.target.IsOffline() {
		close(w.done)
		return
	}
	go w.probe(ctx)
}

// Done закрывается, когда воркер завершился
func (w *ReconnectWorker) Done() <-chan struct{} {
	return w.done
}

func (w *ReconnectWorker) probe(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("reconnect", "stop", nil)
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, w.interval)
			ok := w.target.Reconnect(probeCtx)
			cancel()
			if ok {
				logger.WorkerLog("reconnect", "online", nil)
				return
			}
			logger.Debug("server still unreachable", "worker", "reconnect")
		}
	}
}
