package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bccodingclub/notice-board-api/internal/models"
)

// ErrNoticeNotFound signals a mutation against an id no longer on the board.
var ErrNoticeNotFound = errors.New("notice not found")

// NoticeRepository owns the canonical in-memory notice collection for the
// process and writes it through to the board store on every mutation.
//
// All access is serialized behind a mutex, so React is an atomic increment
// even under concurrent visitor traffic. A mutation only commits to memory
// after the store accepts the new state; on store failure the previous
// state stays, keeping memory and durable copy in agreement.
type NoticeRepository struct {
	store       BoardStore
	logger      *zap.Logger
	seedOnEmpty bool

	mu       sync.Mutex
	notices  []models.Notice
	seededAt *time.Time
}

// NewNoticeRepository constructs the repository. Load must be called before
// serving traffic.
func NewNoticeRepository(store BoardStore, seedOnEmpty bool, logger *zap.Logger) *NoticeRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeRepository{store: store, logger: logger, seedOnEmpty: seedOnEmpty, notices: []models.Notice{}}
}

// Load initializes the collection from the store. An absent key is treated
// as first run: the example board is seeded and persisted (when enabled).
// A present envelope with zero notices is an intentionally emptied board
// and is left empty.
func (r *NoticeRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, err := r.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			return fmt.Errorf("load board: %w", err)
		}
		if !r.seedOnEmpty {
			r.notices = []models.Notice{}
			return nil
		}
		now := time.Now().UTC()
		seeded := SeedNotices()
		if err := r.store.Save(ctx, BoardSnapshot{SeededAt: &now, Notices: seeded}); err != nil {
			return fmt.Errorf("persist seeded board: %w", err)
		}
		r.notices = seeded
		r.seededAt = &now
		r.logger.Info("seeded example notices", zap.Int("count", len(seeded)))
		return nil
	}

	r.notices = snapshot.Notices
	r.seededAt = snapshot.SeededAt
	return nil
}

// List returns a copy of the canonical collection in canonical order.
func (r *NoticeRepository) List() []models.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyLocked()
}

// Get returns the notice with the given id.
func (r *NoticeRepository) Get(id string) (models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notices {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Notice{}, ErrNoticeNotFound
}

// Count reports the current board size.
func (r *NoticeRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

// Create assigns a fresh id, prepends the notice and persists the board.
func (r *NoticeRepository) Create(ctx context.Context, draft models.NoticeDraft) (models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notice := models.Notice{
		ID:             uuid.NewString(),
		Title:          draft.Title,
		Description:    draft.Description,
		Category:       draft.Category,
		Date:           draft.Date,
		AttachmentName: draft.AttachmentName,
		ImageURL:       draft.ImageURL,
		Reactions:      0,
		Visible:        true,
	}

	next := make([]models.Notice, 0, len(r.notices)+1)
	next = append(next, notice)
	next = append(next, r.notices...)

	if err := r.commitLocked(ctx, next); err != nil {
		return models.Notice{}, err
	}
	return notice, nil
}

// Update replaces the mutable fields of the matching notice in place,
// preserving id, reaction count, visibility and board position.
func (r *NoticeRepository) Update(ctx context.Context, id string, draft models.NoticeDraft) (models.Notice, error) {
	return r.replace(ctx, id, func(n models.Notice) models.Notice {
		n.Title = draft.Title
		n.Description = draft.Description
		n.Category = draft.Category
		n.Date = draft.Date
		n.AttachmentName = draft.AttachmentName
		n.ImageURL = draft.ImageURL
		return n
	})
}

// SetVisible flips the visitor-facing gate on the matching notice.
func (r *NoticeRepository) SetVisible(ctx context.Context, id string, visible bool) (models.Notice, error) {
	return r.replace(ctx, id, func(n models.Notice) models.Notice {
		n.Visible = visible
		return n
	})
}

// React increments the reaction counter by exactly one.
func (r *NoticeRepository) React(ctx context.Context, id string) (models.Notice, error) {
	return r.replace(ctx, id, func(n models.Notice) models.Notice {
		n.Reactions++
		return n
	})
}

// Delete removes the matching notice and persists the board. Removing the
// last notice leaves an empty envelope behind, so a later restart does not
// re-seed the examples.
func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Notice, 0, len(r.notices))
	found := false
	for _, n := range r.notices {
		if n.ID == id {
			found = true
			continue
		}
		next = append(next, n)
	}
	if !found {
		return ErrNoticeNotFound
	}

	return r.commitLocked(ctx, next)
}

func (r *NoticeRepository) replace(ctx context.Context, id string, apply func(models.Notice) models.Notice) (models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, n := range r.notices {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Notice{}, ErrNoticeNotFound
	}

	next := r.copyLocked()
	next[idx] = apply(next[idx])

	if err := r.commitLocked(ctx, next); err != nil {
		return models.Notice{}, err
	}
	return next[idx], nil
}

// commitLocked persists the candidate state and swaps it in on success.
// Callers must hold the mutex.
func (r *NoticeRepository) commitLocked(ctx context.Context, next []models.Notice) error {
	if err := r.store.Save(ctx, BoardSnapshot{SeededAt: r.seededAt, Notices: next}); err != nil {
		r.logger.Error("board save failed, mutation not applied", zap.Error(err))
		return fmt.Errorf("save board: %w", err)
	}
	r.notices = next
	return nil
}

func (r *NoticeRepository) copyLocked() []models.Notice {
	out := make([]models.Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// SeedNotices returns the example board used on first run.
func SeedNotices() []models.Notice {
	return []models.Notice{
		{
			ID:             uuid.NewString(),
			Title:          "Mid-Term Examination Schedule 2025",
			Description:    "Mid-term examinations will be held from January 15-20, 2025. All students must report to their respective examination halls 15 minutes before the scheduled time.",
			Category:       models.CategoryExam,
			Date:           "2025-01-10",
			AttachmentName: "exam_schedule.pdf",
			ImageURL:       "https://images.unsplash.com/photo-1434030216411-0b793f4b4173?w=800",
			Reactions:      24,
			Visible:        true,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Annual Sports Meet 2025",
			Description: "Join us for the Annual Sports Meet on February 5th! Registration is now open for all athletic events. Show your school spirit!",
			Category:    models.CategoryEvent,
			Date:        "2025-01-08",
			ImageURL:    "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=800",
			Reactions:   18,
			Visible:     true,
		},
		{
			ID:          uuid.NewString(),
			Title:       "School Reopening Announcement",
			Description: "School will reopen on January 2nd, 2025 after the holiday break. All students are expected to attend in full uniform.",
			Category:    models.CategoryAnnouncement,
			Date:        "2024-12-28",
			Reactions:   42,
			Visible:     true,
		},
	}
}
