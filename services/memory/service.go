// Package memory runs the SDRAM lifecycle on a host or firmware image that
// has a scheduler: it serialises calls, logs every transition and shares
// the device status over the bus.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sdramctl-go/bus"
	"sdramctl-go/drivers/sdram"
	"sdramctl-go/errcode"
	"sdramctl-go/internal/log"
)

// Status is the retained snapshot published after every operation.
type Status struct {
	Name   string
	State  sdram.State
	Target sdram.TargetMask
	Config sdram.Config // zero unless State is Ready
}

// Request asks a served instance to act. Op is "up", "down" or "status".
type Request struct {
	Op     string
	Config sdram.Config // used by "up"
}

// Reply answers a Request on its ReplyTo topic.
type Reply struct {
	Status Status
	Err    error
}

var ErrUnknownOp = errors.New("unknown request op")

type Option func(*Service)

// WithName sets the instance name used in topics and log fields.
func WithName(name string) Option { return func(s *Service) { s.name = name } }

// WithConnection publishes status on conn after every operation.
func WithConnection(conn *bus.Connection) Option { return func(s *Service) { s.conn = conn } }

type Service struct {
	name string
	dev  *sdram.Device
	conn *bus.Connection

	mu sync.Mutex
}

func New(dev *sdram.Device, opts ...Option) *Service {
	s := &Service{name: "sdram0", dev: dev}
	for _, o := range opts {
		o(s)
	}
	return s
}

// StateTopic is where the retained Status of the instance is published.
func (s *Service) StateTopic() bus.Topic { return bus.T("sdram", s.name, "state") }

// CtlTopic is where Serve listens for requests.
func (s *Service) CtlTopic() bus.Topic { return bus.T("sdram", s.name, "ctl") }

// Up initialises the device and runs bring-up with cfg. On a Ready device
// it changes nothing.
func (s *Service) Up(cfg sdram.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.up(cfg)
}

// Down returns a Ready device to Idle. Calling it before Up is reported as
// an InvalidState error rather than a panic.
func (s *Service) Down() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down()
}

// Status returns the current snapshot.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Service) up(cfg sdram.Config) error {
	lg := log.WithField("device", s.name)
	from := s.dev.State()
	t0 := time.Now()

	if err := s.dev.Init(); err != nil {
		lg.WithError(err).Error("bus controller did not start")
		s.publish()
		return fmt.Errorf("%s: init: %w", s.name, err)
	}
	if err := s.dev.Start(cfg); err != nil {
		lg.WithError(err).WithField("code", errcode.Of(err)).Error("bring-up failed")
		s.publish()
		return fmt.Errorf("%s: start: %w", s.name, err)
	}

	to := s.dev.State()
	if from == to {
		lg.Debug("already ready")
	} else {
		lg.WithFields(log.Fields{
			"from":    from.String(),
			"to":      to.String(),
			"target":  s.dev.Target().String(),
			"elapsed": time.Since(t0).String(),
		}).Info("sdram ready")
	}
	s.publish()
	return nil
}

func (s *Service) down() (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errcode.E)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%s: stop: %w", s.name, e)
		}
	}()

	from := s.dev.State()
	s.dev.Stop()
	if to := s.dev.State(); to != from {
		log.WithFields(log.Fields{"device": s.name, "from": from.String(), "to": to.String()}).Info("sdram stopped")
	}
	s.publish()
	return nil
}

func (s *Service) status() Status {
	st := Status{Name: s.name, State: s.dev.State(), Target: s.dev.Target()}
	if cfg, ok := s.dev.Config(); ok {
		st.Config = cfg
	}
	return st
}

func (s *Service) publish() {
	if s.conn == nil {
		return
	}
	s.conn.Publish(&bus.Message{Topic: s.StateTopic(), Payload: s.status(), Retained: true})
}

// Serve answers Requests arriving on CtlTopic until ctx is cancelled.
func (s *Service) Serve(ctx context.Context, conn *bus.Connection) error {
	sub := conn.Subscribe(s.CtlTopic())
	go s.serviceLoop(ctx, conn, sub)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, sub *bus.Subscription) {
	defer conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			log.WithField("device", s.name).Debug("memory service stopping")
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			rep := s.handle(msg.Payload)
			if msg.ReplyTo != nil {
				conn.Publish(&bus.Message{Topic: msg.ReplyTo, Payload: rep})
			}
		}
	}
}

func (s *Service) handle(payload any) Reply {
	req, ok := payload.(Request)
	if !ok {
		return Reply{Status: s.Status(), Err: &errcode.E{C: errcode.InvalidParams, Op: "memory.request"}}
	}
	var err error
	switch req.Op {
	case "up":
		err = s.Up(req.Config)
	case "down":
		err = s.Down()
	case "status":
	default:
		err = &errcode.E{C: errcode.Unsupported, Op: "memory.request", Msg: req.Op, Err: ErrUnknownOp}
	}
	return Reply{Status: s.Status(), Err: err}
}
