package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bccodingclub/notice-board-api/internal/models"
	"github.com/bccodingclub/notice-board-api/internal/repository"
	appErrors "github.com/bccodingclub/notice-board-api/pkg/errors"
)

type noticeRepository interface {
	List() []models.Notice
	Get(id string) (models.Notice, error)
	Create(ctx context.Context, draft models.NoticeDraft) (models.Notice, error)
	Update(ctx context.Context, id string, draft models.NoticeDraft) (models.Notice, error)
	Delete(ctx context.Context, id string) error
	SetVisible(ctx context.Context, id string, visible bool) (models.Notice, error)
	React(ctx context.Context, id string) (models.Notice, error)
}

type boardGauges interface {
	SetBoardSize(size int)
	IncReaction()
}

// NoticeService validates drafts at the boundary and orchestrates
// repository mutations. Invalid drafts never reach the repository.
type NoticeService struct {
	repo      noticeRepository
	validator *validator.Validate
	logger    *zap.Logger
	gauges    boardGauges
}

// NewNoticeService constructs the service.
func NewNoticeService(repo noticeRepository, validate *validator.Validate, logger *zap.Logger, gauges boardGauges) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NoticeService{repo: repo, validator: validate, logger: logger, gauges: gauges}
	svc.validator.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	svc.validator.RegisterValidation("noticedate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return svc
}

// NoticeDraftRequest describes the create/update payload.
type NoticeDraftRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description" validate:"required"`
	Category       string `json:"category" validate:"omitempty,category"`
	Date           string `json:"date" validate:"omitempty,noticedate"`
	AttachmentName string `json:"attachment_name"`
	ImageURL       string `json:"image_url"`
}

// SetVisibilityRequest describes the visibility toggle payload.
type SetVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// List returns the projected view for the given role and query state.
func (s *NoticeService) List(ctx context.Context, role models.Role, query models.NoticeQuery) []models.Notice {
	return ProjectNotices(s.repo.List(), role, query)
}

// Get returns a single notice, gated by visibility for visitors.
func (s *NoticeService) Get(ctx context.Context, role models.Role, id string) (*models.Notice, error) {
	notice, err := s.repo.Get(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
	}
	if role != models.RoleAdmin && !notice.Visible {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
	}
	return &notice, nil
}

// Create validates the draft and publishes a new notice at the top of the board.
func (s *NoticeService) Create(ctx context.Context, req NoticeDraftRequest) (*models.Notice, error) {
	draft, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}
	notice, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, s.mapRepoError(err, "failed to create notice")
	}
	s.observeBoard()
	s.logger.Info("notice created", zap.String("id", notice.ID), zap.String("category", string(notice.Category)))
	return &notice, nil
}

// Update validates the draft and replaces the mutable fields of the notice.
func (s *NoticeService) Update(ctx context.Context, id string, req NoticeDraftRequest) (*models.Notice, error) {
	draft, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}
	notice, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		return nil, s.mapRepoError(err, "failed to update notice")
	}
	return &notice, nil
}

// Delete removes the notice from the board.
func (s *NoticeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, "failed to delete notice")
	}
	s.observeBoard()
	return nil
}

// SetVisible flips the visitor-facing visibility gate.
func (s *NoticeService) SetVisible(ctx context.Context, id string, req SetVisibilityRequest) (*models.Notice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visibility payload")
	}
	notice, err := s.repo.SetVisible(ctx, id, *req.Visible)
	if err != nil {
		return nil, s.mapRepoError(err, "failed to toggle visibility")
	}
	return &notice, nil
}

// React increments the reaction counter of the notice by one.
func (s *NoticeService) React(ctx context.Context, id string) (*models.Notice, error) {
	notice, err := s.repo.React(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "failed to record reaction")
	}
	if s.gauges != nil {
		s.gauges.IncReaction()
	}
	return &notice, nil
}

func (s *NoticeService) buildDraft(req NoticeDraftRequest) (models.NoticeDraft, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.NoticeDraft{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and description are required")
	}
	category := models.NoticeCategory(req.Category)
	if req.Category == "" {
		category = models.CategoryGeneral
	}
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	return models.NoticeDraft{
		Title:          req.Title,
		Description:    req.Description,
		Category:       category,
		Date:           date,
		AttachmentName: req.AttachmentName,
		ImageURL:       req.ImageURL,
	}, nil
}

func (s *NoticeService) mapRepoError(err error, message string) error {
	if errors.Is(err, repository.ErrNoticeNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "notice not found")
	}
	return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
}

func (s *NoticeService) observeBoard() {
	if s.gauges != nil {
		s.gauges.SetBoardSize(len(s.repo.List()))
	}
}
