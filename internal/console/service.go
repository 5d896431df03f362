package console

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"advisory-console/internal/backoffice"
	"advisory-console/internal/config"
	"advisory-console/internal/logging"
	"advisory-console/internal/screens"
)

var (
	// ErrSessionNotFound is returned for an unknown or closed session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrGenerationInFlight is returned when an AI draft for the same feed item is already running.
	ErrGenerationInFlight = errors.New("generation already in progress for this item")
)

// Service owns the operator sessions and runs every console operation:
// validate locally, call the back office, then apply the result as a screen
// transition and push the new snapshot to the session's websockets.
type Service struct {
	backoffice *backoffice.Client
	logger     *logging.Logger
	config     config.Config
	hub        *Hub

	mu       sync.Mutex
	sessions map[string]*Session
}

// New constructs a console Service
func New(client *backoffice.Client, logger *logging.Logger, cfg config.Config) *Service {
	return &Service{
		backoffice: client,
		logger:     logger,
		config:     cfg,
		hub:        NewHub(cfg.Console.MaxWSConnections, logger),
		sessions:   make(map[string]*Session),
	}
}

// Logger exposes the Service's logger
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// Hub exposes the websocket fan-out.
func (s *Service) Hub() *Hub {
	return s.hub
}

// OpenSession starts a new operator session.
func (s *Service) OpenSession(isAdmin bool) Snapshot {
	caps := screens.Capabilities{
		AIGeneration: s.config.Console.AIGeneration,
		BulkDispatch: s.config.Console.BulkDispatch,
	}
	sess := newSession(uuid.NewString(), isAdmin, caps, s.config.Console.KBPageSize)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Infof("Opened session %s (admin: %t)", sess.ID, isAdmin)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot()
}

// CloseSession discards a session and its websocket connections.
func (s *Service) CloseSession(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.hub.CloseSession(id)
	s.logger.Infof("Closed session %s", id)
	return nil
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Snapshot returns the current state of a session.
func (s *Service) Snapshot(id string) (Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// read runs fn under the session lock without publishing.
func read(sess *Session, fn func(*Session)) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
}

// update applies fn under the session lock and publishes the resulting snapshot.
func (s *Service) update(sess *Session, fn func(*Session)) {
	sess.mu.Lock()
	fn(sess)
	sess.version++
	snap := sess.snapshot()
	sess.mu.Unlock()
	s.publish(sess, snap)
}

// publish sends snap unless a newer snapshot of the session already went out.
func (s *Service) publish(sess *Session, snap Snapshot) {
	sess.pubMu.Lock()
	defer sess.pubMu.Unlock()
	if snap.Version <= sess.published {
		return
	}
	sess.published = snap.Version
	s.send(snap)
}

func (s *Service) send(snap Snapshot) {
	if s.hub.Count(snap.SessionID) == 0 {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Errorf("Failed to encode snapshot for session %s: %v", snap.SessionID, err)
		return
	}
	s.hub.Send(snap.SessionID, data)
}

// Push sends the current snapshot of a session to all of its connections.
func (s *Service) Push(id string) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	sess.pubMu.Lock()
	defer sess.pubMu.Unlock()
	var snap Snapshot
	read(sess, func(sess *Session) {
		snap = sess.snapshot()
	})
	if snap.Version > sess.published {
		sess.published = snap.Version
	}
	s.send(snap)
	return nil
}

// fail logs an operation failure. Local validation is logged at warn level.
func (s *Service) fail(op string, err error) error {
	if screens.IsValidation(err) {
		s.logger.Warnf("%s rejected: %v", op, err)
	} else {
		s.logger.Errorf("%s failed: %v", op, err)
	}
	return err
}
