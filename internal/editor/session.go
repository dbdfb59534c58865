// Package editor implements the editing-session state machine that backs
// interactive clients: the debounced draft auto-save loop and the scene
// commit flow. One Session owns one story's editor state and one timer
// handle; cancel-and-reschedule is the only mutation applied to that handle.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

// State is the auto-save state of a session.
type State string

const (
	// StateIdle: no unsaved changes are waiting on the debounce timer.
	StateIdle State = "idle"
	// StatePendingSave: text differs from the saved baseline and the
	// debounce timer is (or will be) armed.
	StatePendingSave State = "pending-save"
	// StateSaved: a save just succeeded; reverts to StateIdle after the
	// display window. Purely a UI affordance.
	StateSaved State = "saved"
	// StateSaveFailed: the last save attempt failed; unsaved changes are
	// kept and the next edit or the session teardown re-attempts.
	StateSaveFailed State = "save-failed"
)

const (
	defaultDebounce     = 2 * time.Second
	defaultSavedDisplay = 2 * time.Second
	defaultSaveTimeout  = 10 * time.Second
)

// ErrSessionClosed is returned by operations on a torn-down session.
var ErrSessionClosed = errors.New("editor session is closed")

// DraftStore is the slice of the story service a session needs.
type DraftStore interface {
	SaveDraft(ctx context.Context, storyID, ownerID primitive.ObjectID, text string) (time.Time, error)
	CommitScene(ctx context.Context, storyID, ownerID primitive.ObjectID, text, fromChoice string) (*models.Story, error)
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce overrides the 2s keystroke debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithSavedDisplay overrides the window after which StateSaved reverts to idle.
func WithSavedDisplay(d time.Duration) Option {
	return func(s *Session) { s.savedDisplay = d }
}

// WithSaveTimeout overrides the per-save request timeout.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Session) { s.saveTimeout = d }
}

// Session is the per-story editing session. All methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Session struct {
	store   DraftStore
	storyID primitive.ObjectID
	ownerID primitive.ObjectID
	logger  *zap.Logger

	debounce     time.Duration
	savedDisplay time.Duration
	saveTimeout  time.Duration

	mu          sync.Mutex
	cond        *sync.Cond
	state       State
	text        string
	baseline    string // last-known-saved draft text
	hasUnsaved  bool
	suggestions *models.GrammarCheckResult
	lastSaved   time.Time
	timer       *time.Timer
	revertTimer *time.Timer
	saving      bool // serializes the debounced save against commit/teardown
	closed      bool
}

// NewSession creates a session for one open story editor.
func NewSession(store DraftStore, storyID, ownerID primitive.ObjectID, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		store:        store,
		storyID:      storyID,
		ownerID:      ownerID,
		logger:       logger.Named("EditorSession").With(zap.String("storyID", storyID.Hex())),
		debounce:     defaultDebounce,
		savedDisplay: defaultSavedDisplay,
		saveTimeout:  defaultSaveTimeout,
		state:        StateIdle,
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetText records a keystroke. Text equal to the saved baseline arms
// nothing; anything else moves the session to StatePendingSave and resets
// the debounce timer, so at most one write is issued per quiet interval.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.text = text
	s.stopRevertLocked()

	if text == s.baseline {
		s.hasUnsaved = false
		s.stopTimerLocked()
		if s.state == StatePendingSave || s.state == StateSaved {
			s.state = StateIdle
		}
		return
	}

	s.hasUnsaved = true
	s.state = StatePendingSave
	s.scheduleLocked()
}

// SetSuggestions stores a pending AI suggestion payload for the editor.
func (s *Session) SetSuggestions(result *models.GrammarCheckResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = result
}

// ApplySuggestion replaces the working text with the improved version of the
// pending suggestion, clearing it. It is a no-op without a suggestion.
func (s *Session) ApplySuggestion() {
	s.mu.Lock()
	improved := ""
	if s.suggestions != nil {
		improved = s.suggestions.ImprovedVersion
	}
	s.suggestions = nil
	s.mu.Unlock()

	if improved != "" {
		s.SetText(improved)
	}
}

// Commit promotes the working text to an immutable scene. A pending
// auto-save is cancelled (the commit supersedes it) and an in-flight one is
// waited out so a stale draft write cannot land after the commit. On failure
// the editor state is preserved so no work is lost.
func (s *Session) Commit(ctx context.Context, fromChoice string) (*models.Story, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	text := s.text
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("scene text is required: %w", models.ErrInvalidInput)
	}
	s.stopTimerLocked()
	for s.saving {
		s.cond.Wait()
	}
	s.mu.Unlock()

	story, err := s.store.CommitScene(ctx, s.storyID, s.ownerID, text, fromChoice)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
	s.baseline = ""
	s.suggestions = nil
	s.hasUnsaved = false
	s.stopRevertLocked()
	s.state = StateIdle
	return story, nil
}

// Close tears the session down. If unsaved changes remain, one best-effort
// flush is attempted; its failure is not surfaced since the session is
// ending regardless.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.stopRevertLocked()
	for s.saving {
		s.cond.Wait()
	}
	needSave := s.hasUnsaved && strings.TrimSpace(s.text) != ""
	text := s.text
	s.mu.Unlock()

	if !needSave {
		return
	}

	if _, err := s.store.SaveDraft(ctx, s.storyID, s.ownerID, text); err != nil {
		s.logger.Debug("Save on teardown failed", zap.Error(err))
	}
}

// State returns the current auto-save state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Text returns the current working text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// HasUnsavedChanges reports whether the working text differs from the last
// saved baseline.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasUnsaved
}

// LastSaved returns the timestamp of the last successful draft save.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// Suggestions returns the pending AI suggestion payload, if any.
func (s *Session) Suggestions() *models.GrammarCheckResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestions
}

func (s *Session) scheduleLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) stopRevertLocked() {
	if s.revertTimer != nil {
		s.revertTimer.Stop()
		s.revertTimer = nil
	}
}

// flush runs when the debounce timer elapses without further input.
func (s *Session) flush() {
	s.mu.Lock()
	if s.closed || s.state != StatePendingSave || s.saving {
		s.mu.Unlock()
		return
	}
	text := s.text
	if strings.TrimSpace(text) == "" {
		// Empty drafts are never persisted; the change stays pending.
		s.mu.Unlock()
		return
	}
	s.saving = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()
	savedAt, err := s.store.SaveDraft(ctx, s.storyID, s.ownerID, text)

	s.mu.Lock()
	defer func() {
		s.saving = false
		s.cond.Broadcast()
		s.mu.Unlock()
	}()

	if s.closed {
		return
	}

	if err != nil {
		s.logger.Warn("Draft auto-save failed", zap.Error(err))
		s.state = StateSaveFailed
		return
	}

	s.baseline = text
	s.lastSaved = savedAt

	if s.text != text {
		// Text moved on while the save was in flight; keep waiting.
		s.state = StatePendingSave
		s.scheduleLocked()
		return
	}

	s.hasUnsaved = false
	s.state = StateSaved
	s.revertTimer = time.AfterFunc(s.savedDisplay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == StateSaved {
			s.state = StateIdle
		}
	})
}
