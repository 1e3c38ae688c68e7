package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccodingclub/notice-board-api/internal/models"
)

// boardStoreStub keeps the persisted snapshot in memory and can be told to
// fail saves.
type boardStoreStub struct {
	mu       sync.Mutex
	snapshot *BoardSnapshot
	saveErr  error
	saves    int
}

func (s *boardStoreStub) Load(ctx context.Context) (*BoardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	copied := *s.snapshot
	return &copied, nil
}

func (s *boardStoreStub) Save(ctx context.Context, snapshot BoardSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.snapshot = &snapshot
	return nil
}

func newLoadedRepo(t *testing.T, store *boardStoreStub) *NoticeRepository {
	t.Helper()
	repo := NewNoticeRepository(store, true, nil)
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func draft(title string) models.NoticeDraft {
	return models.NoticeDraft{
		Title:       title,
		Description: "description for " + title,
		Category:    models.CategoryGeneral,
		Date:        "2025-03-01",
	}
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)

	notices := repo.List()
	require.Len(t, notices, 3)
	for _, n := range notices {
		assert.True(t, n.Visible)
		assert.NotEmpty(t, n.ID)
	}
	require.NotNil(t, store.snapshot, "seed must be persisted")
	assert.Len(t, store.snapshot.Notices, 3)
	assert.NotNil(t, store.snapshot.SeededAt)
}

func TestLoadSeedDisabled(t *testing.T) {
	store := &boardStoreStub{}
	repo := NewNoticeRepository(store, false, nil)
	require.NoError(t, repo.Load(context.Background()))
	assert.Empty(t, repo.List())
	assert.Nil(t, store.snapshot)
}

func TestLoadDoesNotReseedEmptiedBoard(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)

	for _, n := range repo.List() {
		require.NoError(t, repo.Delete(context.Background(), n.ID))
	}
	assert.Equal(t, 0, repo.Count())

	// Simulate process restart against the same store.
	restarted := NewNoticeRepository(store, true, nil)
	require.NoError(t, restarted.Load(context.Background()))
	assert.Equal(t, 0, restarted.Count(), "emptied board must stay empty")
}

func TestCreatePrependsAndAssignsDefaults(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)

	created, err := repo.Create(context.Background(), models.NoticeDraft{
		Title:       "X",
		Description: "Y",
		Category:    models.CategoryEvent,
		Date:        "2025-02-01",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Reactions)
	assert.True(t, created.Visible)

	notices := repo.List()
	require.Len(t, notices, 4)
	assert.Equal(t, created.ID, notices[0].ID, "new notice must be at index 0")
	assert.Equal(t, notices, store.snapshot.Notices, "persisted order must match memory")
}

func TestIDsStayUniqueAcrossMutations(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)

	for i := 0; i < 10; i++ {
		_, err := repo.Create(context.Background(), draft("notice"))
		require.NoError(t, err)
	}
	notices := repo.List()
	_, err := repo.Update(context.Background(), notices[3].ID, draft("edited"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), notices[7].ID))

	seen := map[string]struct{}{}
	for _, n := range repo.List() {
		_, dup := seen[n.ID]
		require.False(t, dup, "duplicate id %s", n.ID)
		seen[n.ID] = struct{}{}
	}
}

func TestUpdatePreservesIdentityAndPosition(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)

	before := repo.List()
	target := before[1]
	_, err := repo.React(context.Background(), target.ID)
	require.NoError(t, err)
	_, err = repo.SetVisible(context.Background(), target.ID, false)
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), target.ID, models.NoticeDraft{
		Title:       "New Title",
		Description: "New description",
		Category:    models.CategoryExam,
		Date:        "2025-04-01",
	})
	require.NoError(t, err)

	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, target.Reactions+1, updated.Reactions, "reactions survive edits")
	assert.False(t, updated.Visible, "visibility survives edits")

	after := repo.List()
	assert.Equal(t, target.ID, after[1].ID, "edit must not move the notice")
	assert.Equal(t, "New Title", after[1].Title)
}

func TestReactIncrementsByExactlyOne(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)
	id := repo.List()[0].ID
	base := repo.List()[0].Reactions

	const n = 25
	for i := 0; i < n; i++ {
		_, err := repo.React(context.Background(), id)
		require.NoError(t, err)
	}

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, base+n, got.Reactions)
}

func TestReactConcurrent(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)
	id := repo.List()[0].ID
	base := repo.List()[0].Reactions

	const workers = 16
	const perWorker = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, _ = repo.React(context.Background(), id)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, base+workers*perWorker, got.Reactions)
}

func TestDeleteRemovesNotice(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)
	id := repo.List()[1].ID

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.Equal(t, 2, repo.Count())
	_, err := repo.Get(id)
	assert.ErrorIs(t, err, ErrNoticeNotFound)
}

func TestMutationsReportNotFound(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)

	_, err := repo.Update(context.Background(), "missing", draft("x"))
	assert.ErrorIs(t, err, ErrNoticeNotFound)
	_, err = repo.SetVisible(context.Background(), "missing", false)
	assert.ErrorIs(t, err, ErrNoticeNotFound)
	_, err = repo.React(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoticeNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNoticeNotFound)
}

func TestSaveFailureLeavesMemoryUntouched(t *testing.T) {
	store := &boardStoreStub{}
	repo := newLoadedRepo(t, store)
	before := repo.List()

	store.saveErr = errors.New("store down")

	_, err := repo.Create(context.Background(), draft("doomed"))
	require.Error(t, err)
	_, err = repo.React(context.Background(), before[0].ID)
	require.Error(t, err)

	assert.Equal(t, before, repo.List(), "failed persistence must not commit to memory")
}
