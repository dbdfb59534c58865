package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

const (
	testDebounce     = 30 * time.Millisecond
	testSavedDisplay = 40 * time.Millisecond
	// Long enough for a debounce to have fired, short enough to keep the
	// suite fast.
	settle = 150 * time.Millisecond
)

type savedDraft struct {
	text string
}

// fakeStore records SaveDraft/CommitScene calls and can be told to fail.
type fakeStore struct {
	mu          sync.Mutex
	saves       []savedDraft
	commits     []string
	saveErr     error
	commitErr   error
	saveStarted chan struct{} // closed once, on the first SaveDraft entry
	saveBlock   chan struct{} // when non-nil, SaveDraft waits on it
	started     bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{saveStarted: make(chan struct{})}
}

func (f *fakeStore) SaveDraft(ctx context.Context, storyID, ownerID primitive.ObjectID, text string) (time.Time, error) {
	f.mu.Lock()
	if !f.started {
		f.started = true
		close(f.saveStarted)
	}
	block := f.saveBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return time.Time{}, f.saveErr
	}
	f.saves = append(f.saves, savedDraft{text: text})
	return time.Now().UTC(), nil
}

func (f *fakeStore) CommitScene(ctx context.Context, storyID, ownerID primitive.ObjectID, text, fromChoice string) (*models.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	f.commits = append(f.commits, text)
	return &models.Story{
		ID:      storyID,
		OwnerID: ownerID,
		Scenes:  []models.Scene{{Text: text, FromChoice: fromChoice}},
		Status:  models.StoryStatusInProgress,
	}, nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStore) lastSave() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return ""
	}
	return f.saves[len(f.saves)-1].text
}

func (f *fakeStore) setSaveErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErr = err
}

func newTestSession(store *fakeStore) *Session {
	return NewSession(store, primitive.NewObjectID(), primitive.NewObjectID(), zap.NewNop(),
		WithDebounce(testDebounce),
		WithSavedDisplay(testSavedDisplay),
	)
}

func waitForState(t *testing.T, s *Session, want State) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s.State() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("state never reached %q, stuck at %q", want, s.State())
}

func TestSession_DebounceCoalescesKeystrokes(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	// A burst of keystrokes inside the debounce window yields one write.
	s.SetText("O")
	s.SetText("On")
	s.SetText("Onc")
	s.SetText("Once upon a time")
	assert.Equal(t, StatePendingSave, s.State())

	waitForState(t, s, StateSaved)
	assert.Equal(t, 1, store.saveCount())
	assert.Equal(t, "Once upon a time", store.lastSave())
	assert.False(t, s.HasUnsavedChanges())
	assert.False(t, s.LastSaved().IsZero())
}

func TestSession_SavedRevertsToIdle(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("The door creaked open.")
	waitForState(t, s, StateSaved)
	waitForState(t, s, StateIdle)
}

func TestSession_NoWriteWhenTextMatchesBaseline(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("Stable text")
	waitForState(t, s, StateSaved)
	require.Equal(t, 1, store.saveCount())

	// Re-entering the already-saved text must not arm another save.
	s.SetText("Stable text")
	assert.Equal(t, StateIdle, s.State())
	time.Sleep(settle)
	assert.Equal(t, 1, store.saveCount())
}

func TestSession_EmptyTextIsNeverPersisted(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("   \n\t ")
	time.Sleep(settle)
	assert.Equal(t, 0, store.saveCount())
}

func TestSession_SaveFailureKeepsChangesAndRecovers(t *testing.T) {
	store := newFakeStore()
	store.setSaveErr(errors.New("mongo down"))
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("Precious paragraph")
	waitForState(t, s, StateSaveFailed)
	assert.True(t, s.HasUnsavedChanges())
	assert.Equal(t, "Precious paragraph", s.Text())

	// The next edit re-arms the timer and the save goes through.
	store.setSaveErr(nil)
	s.SetText("Precious paragraph, revised")
	waitForState(t, s, StateSaved)
	assert.Equal(t, "Precious paragraph, revised", store.lastSave())
}

func TestSession_EditDuringInFlightSaveReschedules(t *testing.T) {
	store := newFakeStore()
	store.saveBlock = make(chan struct{})
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("version one")
	<-store.saveStarted

	// The save is stuck in flight; newer text arrives meanwhile.
	s.SetText("version two")
	close(store.saveBlock)
	store.mu.Lock()
	store.saveBlock = nil
	store.mu.Unlock()

	waitForState(t, s, StateSaved)
	assert.Equal(t, 2, store.saveCount())
	assert.Equal(t, "version two", store.lastSave())
}

func TestSession_CommitClearsEditorState(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("The hero crossed the bridge.")
	s.SetSuggestions(&models.GrammarCheckResult{ImprovedVersion: "unused"})

	story, err := s.Commit(context.Background(), "Cross the bridge")
	require.NoError(t, err)
	require.NotNil(t, story)
	assert.Len(t, story.Scenes, 1)

	assert.Equal(t, "", s.Text())
	assert.Nil(t, s.Suggestions())
	assert.False(t, s.HasUnsavedChanges())
	assert.Equal(t, StateIdle, s.State())

	// The pending auto-save was superseded by the commit.
	time.Sleep(settle)
	assert.Equal(t, 0, store.saveCount())
}

func TestSession_CommitEmptyTextRejected(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("   ")
	_, err := s.Commit(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSession_CommitFailurePreservesState(t *testing.T) {
	store := newFakeStore()
	store.commitErr = models.ErrStoryNotFound
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("Unlosable work")
	_, err := s.Commit(context.Background(), "")
	require.ErrorIs(t, err, models.ErrStoryNotFound)

	assert.Equal(t, "Unlosable work", s.Text())
	assert.True(t, s.HasUnsavedChanges())
}

func TestSession_CommitWaitsForInFlightSave(t *testing.T) {
	store := newFakeStore()
	store.saveBlock = make(chan struct{})
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("racing text")
	<-store.saveStarted

	done := make(chan struct{})
	go func() {
		_, err := s.Commit(context.Background(), "")
		assert.NoError(t, err)
		close(done)
	}()

	// Commit must not land while the save is in flight.
	select {
	case <-done:
		t.Fatal("commit completed before the in-flight save finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.saveBlock)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("commit never completed")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.commits, 1)
}

func TestSession_ApplySuggestionReplacesText(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)
	defer s.Close(context.Background())

	s.SetText("teh door")
	s.SetSuggestions(&models.GrammarCheckResult{
		HasIssues:       true,
		ImprovedVersion: "the door",
	})
	s.ApplySuggestion()

	assert.Equal(t, "the door", s.Text())
	assert.Nil(t, s.Suggestions())

	waitForState(t, s, StateSaved)
	assert.Equal(t, "the door", store.lastSave())
}

func TestSession_CloseFlushesUnsavedChanges(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)

	s.SetText("last words")
	s.Close(context.Background())

	assert.Equal(t, 1, store.saveCount())
	assert.Equal(t, "last words", store.lastSave())

	// Closed sessions reject further work.
	_, err := s.Commit(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_CloseSwallowsFlushFailure(t *testing.T) {
	store := newFakeStore()
	store.setSaveErr(errors.New("mongo down"))
	s := newTestSession(store)

	s.SetText("doomed flush")
	// Close never surfaces the flush error.
	s.Close(context.Background())
	assert.Equal(t, 0, store.saveCount())
}

func TestSession_CloseWithoutChangesWritesNothing(t *testing.T) {
	store := newFakeStore()
	s := newTestSession(store)

	s.SetText("settled")
	waitForState(t, s, StateSaved)
	require.Equal(t, 1, store.saveCount())

	s.Close(context.Background())
	assert.Equal(t, 1, store.saveCount())
}
