// Package subscription implements the live client list.
//
// Consumers subscribe with a year and status filter and receive complete
// snapshots of the matching client list. Every mutation of the client
// collection triggers a new snapshot for every subscriber, which replaces
// whatever list the consumer held before.
package subscription

import (
	"sync"

	"github.com/hotwellkz/app59/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Filter restricts the client list a subscriber receives.
type Filter struct {
	Year   int                 // Filter by year, 0 matches all years
	Status models.ClientStatus // Filter by status, "" matches all statuses
}

// Snapshot is the complete list of clients matching a subscriber's filter.
type Snapshot []models.Client

type subscriber struct {
	filter Filter
	ch     chan Snapshot
}

// Broker fans client list snapshots out to subscribers.
type Broker struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      uint64
}

func NewBroker() *Broker {
	registerMetrics()

	return &Broker{
		subscribers: make(map[uint64]*subscriber),
	}
}

// Subscribe registers a subscriber and returns its snapshot channel
// together with an unsubscribe function. The first snapshot is queried
// and delivered before Subscribe returns, so consumers always start from
// the current list.
func (b *Broker) Subscribe(filter Filter) (<-chan Snapshot, func(), error) {
	snapshot, err := query(filter)
	if err != nil {
		return nil, nil, err
	}

	s := &subscriber{
		filter: filter,
		// One snapshot of buffer. Only the latest snapshot matters,
		// older ones are dropped for slow consumers.
		ch: make(chan Snapshot, 1),
	}
	s.ch <- snapshot

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subscribers[id] = s
	b.mu.Unlock()

	activeSubscriptions.Inc()

	unsubscribe := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(s.ch)
			activeSubscriptions.Dec()
		}
		b.mu.Unlock()
	}

	return s.ch, unsubscribe, nil
}

// Notify queries a fresh snapshot for every subscriber and delivers it.
// Consumers that have not read the previous snapshot yet only see the
// newest one.
func (b *Broker) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subscribers {
		snapshot, err := query(s.filter)
		if err != nil {
			log.Error().Err(err).Msg("subscription snapshot query failed")
			continue
		}

		select {
		case s.ch <- snapshot:
		default:
			// Replace the unread snapshot with the current one
			select {
			case <-s.ch:
				snapshotsDropped.Inc()
			default:
			}
			s.ch <- snapshot
		}
		snapshotsDelivered.Inc()
	}
}

// query returns the current client list for a filter.
func query(filter Filter) (Snapshot, error) {
	q := models.DB.Order("last_name ASC, first_name ASC")

	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	clients := make(Snapshot, 0)
	err := q.Find(&clients).Error
	if err != nil {
		return nil, err
	}

	return clients, nil
}

var (
	activeSubscriptions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "client_subscriptions_active",
		Help: "Number of active client list subscriptions.",
	})

	snapshotsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "client_snapshots_delivered_total",
		Help: "How many client list snapshots have been delivered to subscribers.",
	})

	snapshotsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "client_snapshots_dropped_total",
		Help: "How many client list snapshots were replaced before a subscriber read them.",
	})
)

var registerOnce sync.Once

// registerMetrics registers the broker metrics with the default registry.
// Brokers are created per test as well, so this only runs once.
func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(activeSubscriptions, snapshotsDelivered, snapshotsDropped)
	})
}
