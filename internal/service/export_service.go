package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bccodingclub/notice-board-api/internal/models"
	appErrors "github.com/bccodingclub/notice-board-api/pkg/errors"
	"github.com/bccodingclub/notice-board-api/pkg/export"
)

// ExportFormat enumerates supported board export encodings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered document and its HTTP metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ExportService renders the admin view of the board as a downloadable file.
type ExportService struct {
	repo noticeRepository
}

// NewExportService constructs the service.
func NewExportService(repo noticeRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Export renders the full board, hidden notices included, in the requested format.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	table := boardTable(s.repo.List())

	switch format {
	case ExportFormatCSV:
		body, err := export.RenderCSV(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{ContentType: "text/csv", Filename: "notice-board.csv", Body: body}, nil
	case ExportFormatPDF:
		body, err := export.RenderPDF(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{ContentType: "application/pdf", Filename: "notice-board.pdf", Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func boardTable(notices []models.Notice) export.Table {
	rows := make([][]string, 0, len(notices))
	for _, n := range notices {
		visible := "yes"
		if !n.Visible {
			visible = "no"
		}
		rows = append(rows, []string{
			n.Title,
			string(n.Category),
			n.Date,
			strconv.Itoa(n.Reactions),
			visible,
			n.AttachmentName,
		})
	}
	return export.Table{
		Title:   "Notice Board",
		Headers: []string{"Title", "Category", "Date", "Reactions", "Visible", "Attachment"},
		Rows:    rows,
	}
}
