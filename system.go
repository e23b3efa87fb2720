package depot

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// NopSystem implements every System phase as a no-op.
type NopSystem struct{}

func (NopSystem) Start(Storage) error       { return nil }
func (NopSystem) Update(Storage) error      { return nil }
func (NopSystem) FixedUpdate(Storage) error { return nil }
func (NopSystem) Render(Storage) error      { return nil }

type phase int

const (
	phaseStart phase = iota
	phaseUpdate
	phaseFixedUpdate
	phaseRender
)

func (p phase) String() string {
	switch p {
	case phaseStart:
		return "start"
	case phaseUpdate:
		return "update"
	case phaseFixedUpdate:
		return "fixed update"
	default:
		return "render"
	}
}

func (p phase) call(sys System, sto Storage) error {
	switch p {
	case phaseStart:
		return sys.Start(sto)
	case phaseUpdate:
		return sys.Update(sto)
	case phaseFixedUpdate:
		return sys.FixedUpdate(sto)
	default:
		return sys.Render(sto)
	}
}

// Systems runs registered systems against one storage, in registration order.
type Systems struct {
	storage Storage
	systems []System
	logger  zerolog.Logger
}

func newSystems(sto Storage) *Systems {
	logger := Config.logger
	if s, ok := sto.(*storage); ok {
		logger = s.logger
	}
	return &Systems{storage: sto, logger: logger}
}

func (s *Systems) Register(systems ...System) {
	s.systems = append(s.systems, systems...)
}

// RegisterSystemOf registers a zero S and returns it.
func RegisterSystemOf[S any, P interface {
	*S
	System
}](s *Systems) P {
	sys := P(new(S))
	s.Register(sys)
	return sys
}

func (s *Systems) Len() int {
	return len(s.systems)
}

func (s *Systems) Start() error       { return s.run(phaseStart) }
func (s *Systems) Update() error      { return s.run(phaseUpdate) }
func (s *Systems) FixedUpdate() error { return s.run(phaseFixedUpdate) }
func (s *Systems) Render() error      { return s.run(phaseRender) }

// run calls every system even when an earlier one fails. The errors are
// joined.
func (s *Systems) run(p phase) error {
	var errs []error
	for _, sys := range s.systems {
		if err := p.call(sys, s.storage); err != nil {
			name := fmt.Sprintf("%T", sys)
			errs = append(errs, eris.Wrapf(err, "%s failed during %s", name, p))
			s.logger.Warn().Err(err).Str("system", name).Stringer("phase", p).Msg("system failed")
		}
	}
	s.logger.Debug().Stringer("phase", p).Int("systems", len(s.systems)).Int("failed", len(errs)).Msg("phase done")
	return errors.Join(errs...)
}
