package reminder

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"nota/internal/logging"
)

const (
	// NotificationChannel identifies the channel fired reminders post to.
	NotificationChannel = "alarm_channel"
	// NotificationTitle is the fixed headline of every fired reminder.
	NotificationTitle = "Recordatorio"
)

// Notification is what a fired trigger raises. The body is the stored
// reminder title; nothing else about the originating item is carried.
type Notification struct {
	Channel string
	Title   string
	Body    string
}

// Clock is the alarm facility the scheduler registers one-shot triggers
// with. Registrations are keyed so a re-registration for the same key
// replaces the previous one.
type Clock interface {
	Set(key uint32, at time.Time, n Notification)
	Cancel(key uint32)
}

// Scheduler registers and cancels reminder triggers, persisting each one in
// the ledger so it can be re-registered after a restart. Both Schedule and
// Cancel derive the clock key from the title, so the two paths always agree
// on which registration they address. Two items sharing a title share a
// reminder slot: last write wins.
type Scheduler struct {
	ledger *Ledger
	clock  Clock
	log    logging.Logger
}

func NewScheduler(ledger *Ledger, clock Clock, log logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop{}
	}
	return &Scheduler{ledger: ledger, clock: clock, log: log}
}

// Schedule registers a one-shot trigger for the title and writes it to the
// ledger, overwriting any prior entry for the same title.
func (s *Scheduler) Schedule(title string, triggerAtMs int64) error {
	at := time.UnixMilli(triggerAtMs)
	s.clock.Set(alarmKey(title), at, notificationFor(title))
	if err := s.ledger.Put(title, triggerAtMs); err != nil {
		return err
	}
	s.log.Debug(context.Background(), "reminder scheduled", "title", title, "at", at)
	return nil
}

// Cancel removes the trigger registration and the ledger entry for the
// title.
func (s *Scheduler) Cancel(title string) error {
	s.clock.Cancel(alarmKey(title))
	if err := s.ledger.Remove(title); err != nil {
		return err
	}
	s.log.Debug(context.Background(), "reminder cancelled", "title", title)
	return nil
}

// RestoreAll re-registers every ledger entry as a trigger. Invoked exactly
// once at startup by the boot hook; entries with unreadable values were
// already dropped by the ledger.
func (s *Scheduler) RestoreAll() error {
	entries, err := s.ledger.Entries()
	if err != nil {
		return err
	}
	for title, ms := range entries {
		s.clock.Set(alarmKey(title), time.UnixMilli(ms), notificationFor(title))
	}
	s.log.Info(context.Background(), "reminders restored", "count", len(entries))
	return nil
}

func notificationFor(title string) Notification {
	return Notification{Channel: NotificationChannel, Title: NotificationTitle, Body: title}
}

func alarmKey(title string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(title))
	return h.Sum32()
}

// TimerClock is an in-process Clock over time.AfterFunc. It stands in for an
// OS alarm facility while the program is running; fired notifications are
// handed to the notify callback.
type TimerClock struct {
	notify func(Notification)

	mu     sync.Mutex
	timers map[uint32]*time.Timer
}

func NewTimerClock(notify func(Notification)) *TimerClock {
	return &TimerClock{notify: notify, timers: map[uint32]*time.Timer{}}
}

func (c *TimerClock) Set(key uint32, at time.Time, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[key]; ok {
		t.Stop()
	}
	c.timers[key] = time.AfterFunc(time.Until(at), func() {
		c.mu.Lock()
		delete(c.timers, key)
		c.mu.Unlock()
		if c.notify != nil {
			c.notify(n)
		}
	})
}

func (c *TimerClock) Cancel(key uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[key]; ok {
		t.Stop()
		delete(c.timers, key)
	}
}

// Stop cancels every pending timer.
func (c *TimerClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, t := range c.timers {
		t.Stop()
		delete(c.timers, key)
	}
}
