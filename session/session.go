package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/nextgen-2026/futureforged"
	"go.uber.org/zap"
)

// RoadmapGenerator is the part of *futureforged.Generator a session needs.
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, category futureforged.StudentCategory, profile futureforged.StudentProfile) (*futureforged.Roadmap, error)
}

// Snapshot is a copy of the session at one point in time.
type Snapshot struct {
	State    State
	Category futureforged.StudentCategory
	Profile  futureforged.StudentProfile
	Roadmap  *futureforged.Roadmap
	Err      error
	// Rating is 0 until the student rates the roadmap.
	Rating int
}

// Session drives one student through category selection, profile entry,
// generation and the result screen. All methods are safe for concurrent use.
type Session struct {
	generator RoadmapGenerator
	logger    *zap.Logger

	mu       sync.Mutex
	state    State
	category futureforged.StudentCategory
	profile  futureforged.StudentProfile
	roadmap  *futureforged.Roadmap
	err      error
	rating   int
}

type Option func(*Session)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(generator RoadmapGenerator, opts ...Option) *Session {
	s := &Session{
		generator: generator,
		logger:    zap.NewNop(),
		state:     StateLanding,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Category: s.category,
		Profile:  s.profile,
		Err:      s.err,
		Rating:   s.rating,
	}
	if s.roadmap != nil {
		snap.Roadmap = cloneRoadmap(s.roadmap)
	}
	return snap
}

// transitionLocked moves to the next state. s.mu must be held.
func (s *Session) transitionLocked(to State) error {
	if err := ValidateTransition(s.state, to); err != nil {
		return err
	}
	s.logger.Debug("session transition", zap.Stringer("from", s.state), zap.Stringer("to", to))
	s.state = to
	return nil
}

// SelectCategory leaves the landing screen for the profile form.
func (s *Session) SelectCategory(category futureforged.StudentCategory) error {
	if !category.Valid() {
		return futureforged.NewInvalidProfileError("Please choose School or College.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transitionLocked(StateFormEntry); err != nil {
		return err
	}
	s.category = category
	return nil
}

// Back returns from the profile form to the landing screen.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFormEntry {
		return ValidateTransition(s.state, StateLanding)
	}
	return s.transitionLocked(StateLanding)
}

// Edit returns from a failed request to the form, keeping the entered profile.
func (s *Session) Edit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transitionLocked(StateFormEntry); err != nil {
		return err
	}
	s.err = nil
	return nil
}

// Reset clears the session and returns to the landing screen. It is rejected
// while a request is in flight.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRequesting {
		return ValidateTransition(s.state, StateLanding)
	}
	if s.state != StateLanding {
		if err := s.transitionLocked(StateLanding); err != nil {
			return err
		}
	}
	s.category = ""
	s.profile = futureforged.StudentProfile{}
	s.roadmap = nil
	s.err = nil
	s.rating = 0
	return nil
}

// Submit validates profile and runs the pipeline. Only the pipeline outcome
// moves the session out of Requesting. An invalid profile leaves the session
// where it was and returns the invalid-input error.
func (s *Session) Submit(ctx context.Context, profile futureforged.StudentProfile) (*futureforged.Roadmap, error) {
	run, err := s.Begin(profile)
	if err != nil {
		return nil, err
	}
	return run(ctx)
}

// Begin validates profile and enters Requesting without calling the provider.
// The returned function runs the pipeline and records its outcome; it must be
// called exactly once.
func (s *Session) Begin(profile futureforged.StudentProfile) (func(context.Context) (*futureforged.Roadmap, error), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ValidateTransition(s.state, StateRequesting); err != nil {
		return nil, err
	}
	category := s.category
	profile.Category = category
	if err := profile.Validate(); err != nil {
		s.profile = profile
		return nil, err
	}
	if err := s.transitionLocked(StateRequesting); err != nil {
		return nil, err
	}
	s.profile = profile
	s.roadmap = nil
	s.err = nil
	s.rating = 0

	return func(ctx context.Context) (*futureforged.Roadmap, error) {
		return s.finish(s.generator.GenerateRoadmap(ctx, category, profile))
	}, nil
}

// finish moves Requesting to Result or Failed.
func (s *Session) finish(roadmap *futureforged.Roadmap, genErr error) (*futureforged.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if genErr != nil {
		s.err = genErr
		if err := s.transitionLocked(StateFailed); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		return nil, genErr
	}
	s.roadmap = roadmap
	if err := s.transitionLocked(StateResult); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return cloneRoadmap(roadmap), nil
}

// Rate records a 1 to 5 star rating for the current roadmap.
func (s *Session) Rate(stars int) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", stars)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return fmt.Errorf("%w: cannot rate in state %s", ErrInvalidTransition, s.state)
	}
	s.rating = stars
	s.logger.Info("roadmap rated", zap.Int("stars", stars))
	return nil
}

func cloneRoadmap(r *futureforged.Roadmap) *futureforged.Roadmap {
	if r == nil {
		return nil
	}
	out := &futureforged.Roadmap{
		MotivationalQuote: r.MotivationalQuote,
		SecurityNote:      r.SecurityNote,
	}
	if r.Steps != nil {
		out.Steps = make([]futureforged.RoadmapStep, len(r.Steps))
		for i, step := range r.Steps {
			out.Steps[i] = step
			if step.Resources != nil {
				out.Steps[i].Resources = append([]futureforged.ResourceLink{}, step.Resources...)
			}
		}
	}
	if r.WeeklySchedule != nil {
		out.WeeklySchedule = make([]futureforged.WeeklyScheduleEntry, len(r.WeeklySchedule))
		for i, entry := range r.WeeklySchedule {
			out.WeeklySchedule[i] = entry
			if entry.Tasks != nil {
				out.WeeklySchedule[i].Tasks = append([]string{}, entry.Tasks...)
			}
		}
	}
	return out
}
