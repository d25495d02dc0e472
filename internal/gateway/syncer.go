package gateway

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hirehub/internal/logger"
)

// WriteFunc - один write-through запрос
type WriteFunc func(ctx context.Context) *Failure

type writeJob struct {
	collection Collection
	op         string
	id         string
	fn         WriteFunc
}

// writeQueue - неограниченная FIFO очередь одной коллекции.
// push никогда не ждет, даже если сервер завис.
type writeQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []writeJob
	closed bool
}

func newWriteQueue() *writeQueue {
	q := &writeQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *writeQueue) push(job writeJob) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
	q.cond.Signal()
}

// pop ждет следующий запрос. false - очередь закрыта и пуста.
func (q *writeQueue) pop() (writeJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.jobs) == 0 {
		return writeJob{}, false
	}
	job := q.jobs[0]
	q.jobs[0] = writeJob{}
	q.jobs = q.jobs[1:]
	return job, true
}

func (q *writeQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Syncer отправляет write-through запросы в фоне.
// У каждой коллекции своя очередь, поэтому сервер получает изменения в порядке их выполнения.
// Постановка в очередь не блокирует вызывающего. Ошибки только логируются: локальное состояние не откатывается.
type Syncer struct {
	base     context.Context
	detector *Detector
	limiter  *rate.Limiter
	timeout  time.Duration

	mu     sync.Mutex
	queues map[Collection]*writeQueue
	closed bool
	wg     sync.WaitGroup
}

type SyncerConfig struct {
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
}

func NewSyncer(base context.Context, detector *Detector, cfg SyncerConfig) *Syncer {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Syncer{
		base:     base,
		detector: detector,
		limiter:  rate.NewLimiter(limit, burst),
		timeout:  timeout,
		queues:   make(map[Collection]*writeQueue),
	}
}

// Dispatch ставит запрос в очередь коллекции. В offline режиме ничего не делает и возвращает false.
func (s *Syncer) Dispatch(collection Collection, op, id string, fn WriteFunc) bool {
	if s.detector.IsOffline() {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.SyncLog(string(collection), op, id, context.Canceled)
		return false
	}
	q, ok := s.queues[collection]
	if !ok {
		q = newWriteQueue()
		s.queues[collection] = q
		go s.run(q)
	}
	s.wg.Add(1)
	s.mu.Unlock()

	q.push(writeJob{collection: collection, op: op, id: id, fn: fn})
	return true
}

func (s *Syncer) run(q *writeQueue) {
	for {
		job, ok := q.pop()
		if !ok {
			return
		}
		s.execute(job)
		s.wg.Done()
	}
}

func (s *Syncer) execute(job writeJob) {
	if err := s.limiter.Wait(s.base); err != nil {
		logger.SyncLog(string(job.collection), job.op, job.id, err)
		return
	}

	ctx, cancel := context.WithTimeout(s.base, s.timeout)
	defer cancel()

	if f := job.fn(ctx); f != nil {
		logger.SyncLog(string(job.collection), job.op, job.id, f)
		return
	}
	logger.SyncLog(string(job.collection), job.op, job.id, nil)
}

// Wait блокируется, пока все поставленные запросы не выполнятся
func (s *Syncer) Wait() {
	s.wg.Wait()
}

// Close дожидается очередей и останавливает воркеры
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	for _, q := range s.queues {
		q.close()
	}
	s.mu.Unlock()
}
