package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccodingclub/notice-board-api/internal/models"
	appErrors "github.com/bccodingclub/notice-board-api/pkg/errors"
)

func exportRepo() *noticeRepoStub {
	return &noticeRepoStub{notices: []models.Notice{
		{ID: "1", Title: "Sports Meet", Category: models.CategoryEvent, Date: "2025-01-08", Reactions: 18, Visible: true},
		{ID: "2", Title: "Hidden Note", Category: models.CategoryGeneral, Date: "2025-01-09", Reactions: 0, Visible: false},
	}}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(exportRepo())

	result, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "notice-board.csv", result.Filename)

	body := string(result.Body)
	assert.True(t, strings.HasPrefix(body, "Title,Category,Date,Reactions,Visible,Attachment"))
	assert.Contains(t, body, "Sports Meet,Event,2025-01-08,18,yes,")
	assert.Contains(t, body, "Hidden Note,General,2025-01-09,0,no,", "export includes hidden notices")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(exportRepo())

	result, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Body), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(exportRepo())

	_, err := svc.Export(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
