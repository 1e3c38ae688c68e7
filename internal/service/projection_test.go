package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccodingclub/notice-board-api/internal/models"
)

func boardFixture() []models.Notice {
	return []models.Notice{
		{ID: "1", Title: "Mid-Term Examination Schedule 2025", Description: "Report early.", Category: models.CategoryExam, Visible: true},
		{ID: "2", Title: "Annual Sports Meet", Description: "Registration open.", Category: models.CategoryEvent, Visible: true},
		{ID: "3", Title: "Library Closure", Description: "Closed for exam preparation.", Category: models.CategoryAnnouncement, Visible: false},
		{ID: "4", Title: "Lost and Found", Description: "Visit the office.", Category: models.CategoryGeneral, Visible: true},
	}
}

func ids(notices []models.Notice) []string {
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.ID
	}
	return out
}

func TestProjectionVisitorExcludesHidden(t *testing.T) {
	got := ProjectNotices(boardFixture(), models.RoleVisitor, models.NoticeQuery{Category: models.CategoryFilterAll})
	assert.Equal(t, []string{"1", "2", "4"}, ids(got))
}

func TestProjectionAdminSeesEverything(t *testing.T) {
	got := ProjectNotices(boardFixture(), models.RoleAdmin, models.NoticeQuery{Category: models.CategoryFilterAll})
	require.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
	assert.False(t, got[2].Visible, "hidden notice stays tagged hidden for admins")
}

func TestProjectionCategoryGate(t *testing.T) {
	got := ProjectNotices(boardFixture(), models.RoleVisitor, models.NoticeQuery{Category: string(models.CategoryEvent)})
	assert.Equal(t, []string{"2"}, ids(got))

	got = ProjectNotices(boardFixture(), models.RoleVisitor, models.NoticeQuery{})
	assert.Equal(t, []string{"1", "2", "4"}, ids(got), "empty category behaves like 'all'")
}

func TestProjectionSearchIsCaseInsensitive(t *testing.T) {
	for _, term := range []string{"exam", "EXAM", "Exam"} {
		got := ProjectNotices(boardFixture(), models.RoleVisitor, models.NoticeQuery{Search: term, Category: models.CategoryFilterAll})
		assert.Equal(t, []string{"1", "4"}, ids(got), "term %q", term)
	}
}

func TestProjectionSearchMatchesDescription(t *testing.T) {
	got := ProjectNotices(boardFixture(), models.RoleVisitor, models.NoticeQuery{Search: "registration", Category: models.CategoryFilterAll})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestProjectionGatesAreConjunctive(t *testing.T) {
	got := ProjectNotices(boardFixture(), models.RoleVisitor, models.NoticeQuery{
		Search:   "exam",
		Category: string(models.CategoryAnnouncement),
	})
	assert.Empty(t, got, "hidden announcement must not leak to visitors even when search matches")

	got = ProjectNotices(boardFixture(), models.RoleAdmin, models.NoticeQuery{
		Search:   "exam",
		Category: string(models.CategoryAnnouncement),
	})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestProjectionIsPureAndIdempotent(t *testing.T) {
	input := boardFixture()
	query := models.NoticeQuery{Search: "e", Category: models.CategoryFilterAll}

	first := ProjectNotices(input, models.RoleVisitor, query)
	second := ProjectNotices(input, models.RoleVisitor, query)

	assert.Equal(t, first, second)
	assert.Equal(t, boardFixture(), input, "projection must not mutate its input")
}
