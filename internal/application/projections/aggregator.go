package projections

import (
	"context"
	"sync"
	"time"

	"github.com/clinicbook/admin-console/internal/application/stats"
	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
)

// Aggregator owns one projection per platform collection and recomputes the
// derived dashboard statistics whenever any projection changes. It replaces
// the pattern of several uncoordinated snapshot handlers merging into a shared
// stats bag: all derived views are rebuilt from the projections in one place.
//
// Separate collections update independently, so projections may be mutually
// inconsistent for a window of time (a doctor's rating can lag the review set
// it was derived from). That is an accepted eventual-consistency property.
type Aggregator struct {
	manager *Manager

	doctors      *Projection[*entities.Doctor]
	appointments *Projection[*entities.Appointment]
	reviews      *Projection[*entities.Review]
	users        *Projection[*entities.User]
	admins       *Projection[*entities.Admin]

	now func() time.Time

	mu        sync.RWMutex
	dashboard stats.Dashboard
	listeners map[chan stats.Dashboard]struct{}
}

// NewAggregator creates an aggregator over the given store. Subscriptions are
// not opened until Start.
func NewAggregator(store providers.DocumentStore) *Aggregator {
	return &Aggregator{
		manager: NewManager(store),
		doctors: New(func(d providers.Document) *entities.Doctor {
			return entities.DoctorFromDocument(d.ID, d.Fields)
		}),
		appointments: New(func(d providers.Document) *entities.Appointment {
			return entities.AppointmentFromDocument(d.ID, d.Fields)
		}),
		reviews: New(func(d providers.Document) *entities.Review {
			return entities.ReviewFromDocument(d.ID, d.Fields)
		}),
		users: New(func(d providers.Document) *entities.User {
			return entities.UserFromDocument(d.ID, d.Fields)
		}),
		admins: New(func(d providers.Document) *entities.Admin {
			return entities.AdminFromDocument(d.ID, d.Fields)
		}),
		now:       time.Now,
		listeners: make(map[chan stats.Dashboard]struct{}),
	}
}

// Start opens the collection subscriptions. Each snapshot is applied to its
// projection serially, then the dashboard is recomputed.
func (a *Aggregator) Start(ctx context.Context) error {
	watches := []struct {
		collection string
		apply      func(providers.Snapshot)
	}{
		{providers.CollectionDoctors, func(s providers.Snapshot) { a.doctors.Apply(s); a.recompute() }},
		{providers.CollectionAppointments, func(s providers.Snapshot) { a.appointments.Apply(s); a.recompute() }},
		{providers.CollectionReviews, func(s providers.Snapshot) { a.reviews.Apply(s); a.recompute() }},
		{providers.CollectionUsers, func(s providers.Snapshot) { a.users.Apply(s); a.recompute() }},
		// Admins carry no dashboard statistics, so no recompute.
		{providers.CollectionAdmins, func(s providers.Snapshot) { a.admins.Apply(s) }},
	}

	for _, w := range watches {
		if err := a.manager.Watch(ctx, w.collection, nil, w.apply); err != nil {
			a.manager.Close()
			return err
		}
	}
	return nil
}

// Stop releases all subscriptions. Must be called on teardown.
func (a *Aggregator) Stop() {
	a.manager.Close()

	a.mu.Lock()
	for ch := range a.listeners {
		close(ch)
	}
	a.listeners = make(map[chan stats.Dashboard]struct{})
	a.mu.Unlock()
}

func (a *Aggregator) recompute() {
	dashboard := stats.ComputeDashboard(
		a.doctors.List(nil),
		a.appointments.List(nil),
		a.reviews.List(nil),
		a.users.List(nil),
		a.now(),
	)

	a.mu.Lock()
	a.dashboard = dashboard
	for ch := range a.listeners {
		// Replace any unconsumed value so a lagging listener always sees the
		// newest statistics. All sends happen under a.mu, so the send after
		// the drain cannot block.
		select {
		case <-ch:
		default:
		}
		ch <- dashboard
	}
	a.mu.Unlock()
}

// Dashboard returns the latest derived dashboard statistics.
func (a *Aggregator) Dashboard() stats.Dashboard {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard
}

// Changes registers a listener notified with fresh dashboard statistics on
// every projection change. The returned func deregisters it.
func (a *Aggregator) Changes() (<-chan stats.Dashboard, func()) {
	ch := make(chan stats.Dashboard, 1)
	a.mu.Lock()
	a.listeners[ch] = struct{}{}
	a.mu.Unlock()

	return ch, func() {
		a.mu.Lock()
		if _, ok := a.listeners[ch]; ok {
			delete(a.listeners, ch)
			close(ch)
		}
		a.mu.Unlock()
	}
}

// Doctors lists all projected doctors, newest first.
func (a *Aggregator) Doctors() []*entities.Doctor {
	return a.doctors.List(func(x, y *entities.Doctor) bool {
		return x.CreatedAt.After(y.CreatedAt)
	})
}

// Doctor returns one projected doctor by id.
func (a *Aggregator) Doctor(id string) (*entities.Doctor, bool) {
	return a.doctors.Get(id)
}

// Appointments lists all projected appointments by appointment date,
// descending.
func (a *Aggregator) Appointments() []*entities.Appointment {
	return a.appointments.List(func(x, y *entities.Appointment) bool {
		return x.AppointmentDate.After(y.AppointmentDate)
	})
}

// Appointment returns one projected appointment by id.
func (a *Aggregator) Appointment(id string) (*entities.Appointment, bool) {
	return a.appointments.Get(id)
}

// Reviews lists all projected reviews, newest first.
func (a *Aggregator) Reviews() []*entities.Review {
	return a.reviews.List(func(x, y *entities.Review) bool {
		return x.CreatedAt.After(y.CreatedAt)
	})
}

// Review returns one projected review by id.
func (a *Aggregator) Review(id string) (*entities.Review, bool) {
	return a.reviews.Get(id)
}

// Users lists all projected users, newest first.
func (a *Aggregator) Users() []*entities.User {
	return a.users.List(func(x, y *entities.User) bool {
		return x.CreatedAt.After(y.CreatedAt)
	})
}

// Admins lists all projected console operators by name.
func (a *Aggregator) Admins() []*entities.Admin {
	return a.admins.List(func(x, y *entities.Admin) bool {
		return x.Name < y.Name
	})
}

// RecentAppointments returns the n most recently booked appointments.
func (a *Aggregator) RecentAppointments(n int) []*entities.Appointment {
	list := a.appointments.List(func(x, y *entities.Appointment) bool {
		return x.CreatedAt.After(y.CreatedAt)
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// PendingDoctors returns up to n doctors awaiting verification.
func (a *Aggregator) PendingDoctors(n int) []*entities.Doctor {
	pending := make([]*entities.Doctor, 0, n)
	for _, d := range a.Doctors() {
		if d.VerificationStatus == entities.VerificationPending {
			pending = append(pending, d)
			if len(pending) == n {
				break
			}
		}
	}
	return pending
}

// RecentReviews returns the n most recent reviews.
func (a *Aggregator) RecentReviews(n int) []*entities.Review {
	list := a.Reviews()
	if len(list) > n {
		list = list[:n]
	}
	return list
}
