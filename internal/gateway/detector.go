package gateway

import (
	"context"
	"sync"
)

// Mode - режим связи с сервером
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Detector держит режим. Bootstrap выставляет его ровно один раз через Latch,
// дальше он меняется только явным Reconnect.
type Detector struct {
	mu      sync.RWMutex
	mode    Mode
	latched bool
}

func NewDetector() *Detector {
	return &Detector{mode: ModeUnknown}
}

// Latch фиксирует результат bootstrap. Повторные вызовы игнорируются, возвращает итоговый режим.
func (d *Detector) Latch(online bool) Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latched {
		return d.mode
	}
	d.latched = true
	if online {
		d.mode = ModeOnline
	} else {
		d.mode = ModeOffline
	}
	return d.mode
}

func (d *Detector) Mode() Mode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mode
}

// IsOffline - только для зафиксированного offline, unknown считается online
func (d *Detector) IsOffline() bool {
	return d.Mode() == ModeOffline
}

// Reconnect пробует probe и при успехе переводит detector в online.
// Вызывается только опциональным воркером.
func (d *Detector) Reconnect(ctx context.Context, probe func(ctx context.Context) bool) bool {
	if !d.IsOffline() {
		return true
	}
	if !probe(ctx) {
		return false
	}
	d.mu.Lock()
	d.mode = ModeOnline
	d.mu.Unlock()
	return true
}
