// Package studio is the client-side state machine: topic input, the cosmetic
// staged progress shown while a curriculum request is in flight, and the
// admin modal that toggles full page mode.
package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	MsgEmptyTopic       = "Please enter a topic to continue."
	MsgInvalidAdminCode = "Invalid admin code."
	MsgGenericFailure   = "Something went wrong. Try again."

	DefaultAdminCode = "CURRICULUM2026"
)

var ErrEmptyTopic = errors.New(MsgEmptyTopic)

// DefaultStageDelays are the waits before stages 3 and 4.
var DefaultStageDelays = []time.Duration{1300 * time.Millisecond, 1500 * time.Millisecond}

type State struct {
	Topic          string
	Stage          Stage
	Curriculum     string
	Error          string
	IsLoading      bool
	IsAdminOpen    bool
	AdminCode      string
	IsFullPageMode bool
}

// Requester performs the /api/chat round trip and returns the curriculum text.
type Requester interface {
	RequestCurriculum(ctx context.Context, topic string) (string, error)
}

type Config struct {
	Requester Requester
	// AdminCode is compared against the trimmed modal input. It ships with
	// the client and grants nothing beyond a different view.
	AdminCode   string
	StageDelays []time.Duration
	// OnChange is called after every state write with a copy of the state.
	// Calls are serialized and arrive in write order. It must not call back
	// into Studio methods that write state.
	OnChange func(State)
	Logger   zerolog.Logger
}

// Studio owns a single State record. Every write goes through mu; notifyMu
// spans a write and its OnChange call.
type Studio struct {
	notifyMu  sync.Mutex
	mu        sync.Mutex
	state     State
	requester Requester
	adminCode string
	delays    []time.Duration
	onChange  func(State)
	logger    zerolog.Logger
}

func New(cfg Config) *Studio {
	if cfg.StageDelays == nil {
		cfg.StageDelays = DefaultStageDelays
	}
	if cfg.AdminCode == "" {
		cfg.AdminCode = DefaultAdminCode
	}
	return &Studio{
		state:     State{Stage: StageTopicInput},
		requester: cfg.Requester,
		adminCode: cfg.AdminCode,
		delays:    cfg.StageDelays,
		onChange:  cfg.OnChange,
		logger:    cfg.Logger,
	}
}

func (s *Studio) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Studio) update(fn func(*State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	st := s.state
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(st)
	}
}

func (s *Studio) SetTopic(topic string) {
	s.update(func(st *State) { st.Topic = topic })
}

// Generate runs one request lifecycle and blocks until it resolves. On
// success it waits for both the request and the stage timer; on failure it
// resolves as soon as the request fails and leaves the timer running.
// Overlapping calls are not guarded against: whichever write lands last wins.
func (s *Studio) Generate(ctx context.Context) error {
	var topic string
	empty := false
	s.update(func(st *State) {
		topic = st.Topic
		if strings.TrimSpace(topic) == "" {
			st.Error = MsgEmptyTopic
			empty = true
			return
		}
		st.IsLoading = true
		st.Error = ""
		st.Curriculum = ""
		st.Stage = StageGatheringLinks
	})
	if empty {
		return ErrEmptyTopic
	}

	stagesDone := make(chan struct{})
	go func() {
		defer close(stagesDone)
		s.runStages(ctx)
	}()

	content, err := s.requester.RequestCurriculum(ctx, topic)
	if err != nil {
		msg := err.Error()
		if strings.TrimSpace(msg) == "" {
			msg = MsgGenericFailure
		}
		s.logger.Debug().Err(err).Msg("curriculum request failed")
		s.update(func(st *State) {
			st.Error = msg
			st.IsLoading = false
		})
		return err
	}

	<-stagesDone
	s.update(func(st *State) {
		st.Curriculum = content
		st.IsLoading = false
	})
	return nil
}

func (s *Studio) runStages(ctx context.Context) {
	next := []Stage{StagePullingInsights, StageGeneratingCurriculum}
	for i, stage := range next {
		if i < len(s.delays) && !sleep(ctx, s.delays[i]) {
			return
		}
		s.update(func(st *State) { st.Stage = stage })
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Studio) OpenAdmin() {
	s.update(func(st *State) { st.IsAdminOpen = true })
}

func (s *Studio) CloseAdmin() {
	s.update(func(st *State) { st.IsAdminOpen = false })
}

func (s *Studio) SetAdminCode(code string) {
	s.update(func(st *State) { st.AdminCode = code })
}

// SubmitAdmin reports whether the entered code unlocked full page mode.
func (s *Studio) SubmitAdmin() bool {
	unlocked := false
	s.update(func(st *State) {
		if strings.TrimSpace(st.AdminCode) == s.adminCode {
			st.IsFullPageMode = true
			st.IsAdminOpen = false
			st.AdminCode = ""
			st.Error = ""
			unlocked = true
			return
		}
		st.Error = MsgInvalidAdminCode
	})
	return unlocked
}

func (s *Studio) ExitFullPage() {
	s.update(func(st *State) { st.IsFullPageMode = false })
}
