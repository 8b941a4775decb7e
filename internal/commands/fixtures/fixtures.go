// Package fixtures provides recording doubles for the command wiring seams.
package fixtures

import (
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-reqdocs/internal/commands"
)

// failer returns Err once FailAfter successful calls have been recorded.
// A zero FailAfter fails the first call.
type failer struct {
	Err       error
	FailAfter int
	calls     int
}

func (f *failer) next() error {
	f.calls++
	if f.Err != nil && f.calls > f.FailAfter {
		return f.Err
	}
	return nil
}

// RecordingRegistry implements commands.CommandRegistry.
type RecordingRegistry struct {
	failer
	Handlers []any
}

func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{}
}

func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if err := r.next(); err != nil {
		return err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// HandlerTypes lists the dynamic types of the recorded handlers in order.
func (r *RecordingRegistry) HandlerTypes() []string {
	return handlerTypes(r.Handlers)
}

// RecordingDispatcher implements commands.CommandDispatcher and hands out
// subscriptions that remember whether they were released.
type RecordingDispatcher struct {
	failer
	Handlers      []any
	Subscriptions []*RecordingSubscription
}

func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{}
}

func (d *RecordingDispatcher) RegisterCommand(handler any) (commands.CommandSubscription, error) {
	if err := d.next(); err != nil {
		return nil, err
	}
	sub := &RecordingSubscription{Handler: handler}
	d.Handlers = append(d.Handlers, handler)
	d.Subscriptions = append(d.Subscriptions, sub)
	return sub, nil
}

// Active counts subscriptions that have not been released.
func (d *RecordingDispatcher) Active() int {
	n := 0
	for _, sub := range d.Subscriptions {
		if !sub.Unsubscribed {
			n++
		}
	}
	return n
}

type RecordingSubscription struct {
	Handler      any
	Unsubscribed bool
}

func (s *RecordingSubscription) Unsubscribe() {
	s.Unsubscribed = true
}

// CronRegistration is one recorded call to a commands.CronRegistrar.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler any
}

// CronRecorder stands in for a cron scheduler.
type CronRecorder struct {
	failer
	Registrations []CronRegistration
}

func NewCronRecorder() *CronRecorder {
	return &CronRecorder{}
}

// Fail makes every later registration return err.
func (c *CronRecorder) Fail(err error) {
	c.Err = err
	c.FailAfter = c.calls
}

func (c *CronRecorder) Registrar() commands.CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if err := c.next(); err != nil {
			return err
		}
		c.Registrations = append(c.Registrations, CronRegistration{Config: cfg, Handler: handler})
		return nil
	}
}

func handlerTypes(handlers []any) []string {
	out := make([]string, len(handlers))
	for i, h := range handlers {
		out[i] = fmt.Sprintf("%T", h)
	}
	return out
}
