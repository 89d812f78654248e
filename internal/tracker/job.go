package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TopicFlightUpdates is the hub topic live viewers subscribe to.
const TopicFlightUpdates = "flight_updates"

// StateCache holds the last broadcast snapshot. It is written only by the
// tracker job; readers get the snapshot that was last pushed to viewers.
type StateCache struct {
	mu   sync.RWMutex
	last Snapshot
}

func NewStateCache() *StateCache {
	return &StateCache{}
}

func (c *StateCache) Last() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

func (c *StateCache) Replace(s Snapshot) {
	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Job polls the flight feed on a fixed interval and rebroadcasts the full
// snapshot whenever it differs from the previous one. Identical polls are
// suppressed so viewers are never flooded with no-op updates.
type Job struct {
	feed         FeedClient
	cache        *StateCache
	hub          *Hub
	producer     Producer
	kafkaTopic   string
	interval     time.Duration
	fetchTimeout time.Duration

	// held for the duration of one fetch/diff/publish cycle; an
	// overlapping tick is skipped, not queued
	running sync.Mutex
}

type JobOption func(*Job)

// WithKafkaMirror also writes every changed snapshot to the given Kafka
// topic for consumers outside this process.
func WithKafkaMirror(producer Producer, topic string) JobOption {
	return func(j *Job) {
		j.producer = producer
		j.kafkaTopic = topic
	}
}

func NewJob(feed FeedClient, cache *StateCache, hub *Hub, interval, fetchTimeout time.Duration, opts ...JobOption) *Job {
	job := &Job{
		feed:         feed,
		cache:        cache,
		hub:          hub,
		interval:     interval,
		fetchTimeout: fetchTimeout,
	}
	for _, opt := range opts {
		opt(job)
	}
	return job
}

// Run blocks until ctx is canceled. The ticker drops ticks that fire while
// a cycle is still running, so staleness is bounded by one interval and no
// backlog can build up.
func (j *Job) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	logrus.WithField("interval", j.interval).Info("flight tracker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("flight tracker stopped")
			return
		case <-ticker.C:
			j.Tick(ctx)
		}
	}
}

// Tick performs one fetch/diff/publish cycle. It returns immediately if a
// previous cycle is still in flight.
func (j *Job) Tick(ctx context.Context) {
	if !j.running.TryLock() {
		logrus.Debug("previous tracker cycle still running, skipping tick")
		return
	}
	defer j.running.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, j.fetchTimeout)
	defer cancel()

	snapshot, err := j.feed.Fetch(fetchCtx)
	if err != nil {
		// last known-good snapshot stays untouched; the next tick retries
		logrus.WithError(err).Error("flight feed fetch failed")
		return
	}

	if j.cache.Last().Equal(snapshot) {
		return
	}

	j.cache.Replace(snapshot)
	j.hub.Publish(TopicFlightUpdates, snapshot)

	if j.producer != nil && j.kafkaTopic != "" {
		if err := j.producer.Publish(ctx, j.kafkaTopic, TopicFlightUpdates, snapshot); err != nil {
			logrus.WithError(err).Warn("failed to mirror flight snapshot to kafka")
		}
	}

	logrus.WithField("flights", len(snapshot)).Info("broadcasted flight updates")
}
