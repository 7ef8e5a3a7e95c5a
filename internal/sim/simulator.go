package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Simulator steps a body set without rendering.
type Simulator struct {
	cfg       Config
	metrics   []Metric
	observers []Observer
}

func New(cfg Config) *Simulator {
	return &Simulator{
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances bodies by steps iterations of cfg.TimeScale seconds.
// Metrics observe the initial state and the state after every step.
func (s *Simulator) Run(ctx context.Context, bodies []*physics.Body, steps int) (*Result, error) {
	if err := validateConfig(s.cfg); err != nil {
		return nil, err
	}
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}
	if len(bodies) == 0 {
		return nil, errors.New("no bodies to simulate")
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(bodies, 0)
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		physics.StepAll(bodies, s.cfg.Gravity, s.cfg.TimeScale, s.cfg.Ordering)
		t += s.cfg.TimeScale

		if s.cfg.ValidateState && !physics.Valid(bodies) {
			result.Errors = append(result.Errors, SimError{
				Time:    t,
				Step:    i,
				Message: "invalid state (NaN/Inf)",
				Wrapped: physics.ErrInvalidState,
			})
			break
		}

		result.StepsTaken++
		result.SimTime = t

		for _, m := range s.metrics {
			m.Observe(bodies, t)
		}
		for _, o := range s.observers {
			o.OnStep(bodies, t)
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
