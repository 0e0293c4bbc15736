package subjects

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crono/domain"
)

func testRepo(t *testing.T) *Repository {
	return NewRepository(filepath.Join(t.TempDir(), "data.json"))
}

func TestAdd_Defaults(t *testing.T) {
	r := testRepo(t)

	subject, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	assert.Equal(t, 0, subject.SolvedCount)
	assert.Equal(t, domain.DefaultTarget, subject.TargetCount)
	assert.Equal(t, domain.PriorityMedium, subject.Priority)
	assert.Equal(t, domain.SubjectActive, subject.Status)
	assert.Equal(t, domain.Date(time.Now()), subject.CreatedDate)
	assert.Empty(t, subject.LastStudyDate)
	assert.Empty(t, subject.Topics)
}

func TestAdd_Validation(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		subject string
		params  AddParams
		wantErr error
	}{
		{"empty name", "", AddParams{}, domain.ErrEmptyName},
		{"blank name", "   ", AddParams{}, domain.ErrEmptyName},
		{"duplicate", "Biology", AddParams{}, domain.ErrAlreadyExists},
		{"negative target", "Math", AddParams{Target: -5}, domain.ErrInvalidValue},
		{"bad priority", "Math", AddParams{Priority: "urgent"}, domain.ErrInvalidValue},
		{"bad status", "Math", AddParams{Status: "paused"}, domain.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Add(tt.subject, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAdd_TrimsName(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("  Biology  ", AddParams{})
	require.NoError(t, err)

	_, ok := r.Get("Biology")
	assert.True(t, ok)
}

func TestAddQuestions_ProgressScenario(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Target: 300})
	require.NoError(t, err)

	require.NoError(t, r.AddQuestions("Biology", 120))

	stats := r.Statistics()
	assert.InDelta(t, 40.0, stats.Progress, 1e-9)

	subject, _ := r.Get("Biology")
	assert.Equal(t, domain.Date(time.Now()), subject.LastStudyDate)
}

func TestAddQuestions_CanExceedTarget(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Target: 100})
	require.NoError(t, err)

	require.NoError(t, r.AddQuestions("Biology", 150))
	subject, _ := r.Get("Biology")
	assert.Equal(t, 150, subject.SolvedCount)
}

func TestAddQuestions_Rejections(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	assert.ErrorIs(t, r.AddQuestions("Biology", 0), domain.ErrInvalidValue)
	assert.ErrorIs(t, r.AddQuestions("Biology", -10), domain.ErrInvalidValue)
	assert.ErrorIs(t, r.AddQuestions("Chemistry", 10), domain.ErrNotFound)

	subject, _ := r.Get("Biology")
	assert.Equal(t, 0, subject.SolvedCount)
	assert.Empty(t, subject.LastStudyDate, "rejected calls must not stamp the study date")
}

func TestSetTarget(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	require.NoError(t, r.SetTarget("Biology", 750))
	subject, _ := r.Get("Biology")
	assert.Equal(t, 750, subject.TargetCount)

	assert.ErrorIs(t, r.SetTarget("Biology", 0), domain.ErrInvalidValue)
	assert.ErrorIs(t, r.SetTarget("Missing", 100), domain.ErrNotFound)
}

func TestUpdate_RenamePreservesFields(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Target: 300, Category: "science"})
	require.NoError(t, err)
	require.NoError(t, r.AddQuestions("Biology", 50))
	require.NoError(t, r.AddTopic("Biology", "Cells"))

	require.NoError(t, r.Update("Biology", "Bio", UpdateParams{}))

	_, ok := r.Get("Biology")
	assert.False(t, ok, "old key must be gone")
	subject, ok := r.Get("Bio")
	require.True(t, ok)
	assert.Equal(t, 50, subject.SolvedCount)
	assert.Equal(t, 300, subject.TargetCount)
	assert.Equal(t, "science", subject.Category)
	assert.Len(t, subject.Topics, 1)
}

func TestUpdate_AppliesOnlyProvidedOverrides(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Target: 300})
	require.NoError(t, err)

	target := 600
	status := domain.SubjectOnHold
	require.NoError(t, r.Update("Biology", "Biology", UpdateParams{Target: &target, Status: &status}))

	subject, _ := r.Get("Biology")
	assert.Equal(t, 600, subject.TargetCount)
	assert.Equal(t, domain.SubjectOnHold, subject.Status)
	assert.Equal(t, domain.PriorityMedium, subject.Priority, "untouched fields keep their values")
}

func TestUpdate_Collisions(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)
	_, err = r.Add("Math", AddParams{})
	require.NoError(t, err)

	assert.ErrorIs(t, r.Update("Biology", "Math", UpdateParams{}), domain.ErrAlreadyExists)
	assert.ErrorIs(t, r.Update("Biology", " ", UpdateParams{}), domain.ErrEmptyName)
	assert.ErrorIs(t, r.Update("Missing", "Physics", UpdateParams{}), domain.ErrNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	assert.True(t, r.Delete("Biology"))
	assert.False(t, r.Delete("Biology"))
	assert.False(t, r.Delete("NeverExisted"))
	assert.Empty(t, r.Names())
}

func TestTopics_AddAndDuplicate(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	require.NoError(t, r.AddTopic("Biology", "Cells"))
	assert.ErrorIs(t, r.AddTopic("Biology", "Cells"), domain.ErrAlreadyExists)
	assert.ErrorIs(t, r.AddTopic("Biology", "  "), domain.ErrEmptyName)
	assert.ErrorIs(t, r.AddTopic("Missing", "Cells"), domain.ErrNotFound)

	subject, _ := r.Get("Biology")
	require.Len(t, subject.Topics, 1)
	topic := subject.Topics[0]
	assert.Equal(t, domain.TopicTodo, topic.Status)
	assert.Equal(t, domain.NoDate, topic.StartDate)
	assert.Equal(t, domain.NoDate, topic.EndDate)
}

func TestTopics_BackToTodoClearsDates(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)
	require.NoError(t, r.AddTopic("Biology", "Cells"))

	require.NoError(t, r.UpdateTopicStatus("Biology", "Cells", domain.TopicInProgress))
	require.NoError(t, r.UpdateTopicStatus("Biology", "Cells", domain.TopicTodo))

	subject, _ := r.Get("Biology")
	topic := subject.Topics[0]
	assert.Equal(t, domain.NoDate, topic.StartDate)
	assert.Equal(t, domain.NoDate, topic.EndDate)
}

func TestTopics_CompleteStampsBothDates(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)
	require.NoError(t, r.AddTopic("Biology", "Cells"))

	require.NoError(t, r.UpdateTopicStatus("Biology", "Cells", domain.TopicCompleted))

	subject, _ := r.Get("Biology")
	topic := subject.Topics[0]
	today := domain.Date(time.Now())
	assert.Equal(t, today, topic.StartDate)
	assert.Equal(t, today, topic.EndDate)
}

func TestTopics_UpdateStatusErrors(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	assert.ErrorIs(t, r.UpdateTopicStatus("Biology", "Cells", domain.TopicTodo), domain.ErrNotFound)
	assert.ErrorIs(t, r.UpdateTopicStatus("Missing", "Cells", domain.TopicTodo), domain.ErrNotFound)
	assert.ErrorIs(t, r.UpdateTopicStatus("Biology", "Cells", "done"), domain.ErrInvalidValue)
}

func TestTopics_DeleteIdempotent(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)
	require.NoError(t, r.AddTopic("Biology", "Cells"))

	assert.True(t, r.DeleteTopic("Biology", "Cells"))
	assert.False(t, r.DeleteTopic("Biology", "Cells"))
	assert.False(t, r.DeleteTopic("Missing", "Cells"))
}

func TestStatistics_EmptyRepositoryHasZeroProgress(t *testing.T) {
	r := testRepo(t)
	stats := r.Statistics()

	assert.Equal(t, 0, stats.TotalTarget)
	assert.Equal(t, 0.0, stats.Progress)
	assert.Equal(t, 0, stats.Remaining)
}

func TestStatistics_Rollup(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Target: 300})
	require.NoError(t, err)
	_, err = r.Add("Math", AddParams{Target: 200})
	require.NoError(t, err)
	require.NoError(t, r.AddQuestions("Biology", 120))
	require.NoError(t, r.AddTopic("Biology", "Cells"))
	require.NoError(t, r.AddTopic("Biology", "Genetics"))
	require.NoError(t, r.UpdateTopicStatus("Biology", "Cells", domain.TopicCompleted))

	stats := r.Statistics()
	assert.Equal(t, 120, stats.TotalSolved)
	assert.Equal(t, 500, stats.TotalTarget)
	assert.InDelta(t, 24.0, stats.Progress, 1e-9)
	assert.Equal(t, 2, stats.TotalTopics)
	assert.Equal(t, 1, stats.CompletedTopics)
	assert.Equal(t, 380, stats.Remaining)
}

func TestStatistics_RemainingNeverNegative(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Target: 100})
	require.NoError(t, err)
	require.NoError(t, r.AddQuestions("Biology", 150))

	assert.Equal(t, 0, r.Statistics().Remaining)
}

func TestFilters(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{Category: "science", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	_, err = r.Add("Math", AddParams{Category: "science"})
	require.NoError(t, err)
	_, err = r.Add("History", AddParams{Status: domain.SubjectOnHold})
	require.NoError(t, err)

	assert.Len(t, r.ByCategory("science"), 2)
	assert.Len(t, r.ByPriority(domain.PriorityHigh), 1)
	assert.Len(t, r.ByStatus(domain.SubjectOnHold), 1)
	assert.Len(t, r.ByStatus(domain.SubjectActive), 2)
	assert.Equal(t, []string{"science"}, r.Categories())
}

func TestUpcomingDeadlines(t *testing.T) {
	r := testRepo(t)
	now := time.Now()
	_, err := r.Add("Soon", AddParams{Deadline: domain.Date(now.AddDate(0, 0, 3))})
	require.NoError(t, err)
	_, err = r.Add("Today", AddParams{Deadline: domain.Date(now)})
	require.NoError(t, err)
	_, err = r.Add("Far", AddParams{Deadline: domain.Date(now.AddDate(0, 0, 30))})
	require.NoError(t, err)
	_, err = r.Add("Past", AddParams{Deadline: domain.Date(now.AddDate(0, 0, -1))})
	require.NoError(t, err)
	_, err = r.Add("Garbage", AddParams{Deadline: "next tuesday"})
	require.NoError(t, err)
	_, err = r.Add("None", AddParams{})
	require.NoError(t, err)

	upcoming := r.UpcomingDeadlines(7)
	assert.Len(t, upcoming, 2)
	assert.Contains(t, upcoming, "Soon")
	assert.Contains(t, upcoming, "Today")
}

func TestTags(t *testing.T) {
	r := testRepo(t)
	_, err := r.Add("Biology", AddParams{})
	require.NoError(t, err)

	require.NoError(t, r.AddTag("Biology", "exam"))
	require.NoError(t, r.AddTag("Biology", "exam")) // duplicate is a no-op
	require.NoError(t, r.AddTag("Biology", "science"))
	assert.ErrorIs(t, r.AddTag("Missing", "exam"), domain.ErrNotFound)

	assert.Equal(t, []string{"exam", "science"}, r.Tags())

	assert.True(t, r.RemoveTag("Biology", "exam"))
	assert.False(t, r.RemoveTag("Biology", "exam"))
	assert.Equal(t, []string{"science"}, r.Tags())
}

func TestPersistence_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	r := NewRepository(path)
	_, err := r.Add("Biology", AddParams{Target: 300})
	require.NoError(t, err)
	require.NoError(t, r.AddQuestions("Biology", 120))
	require.NoError(t, r.AddTopic("Biology", "Cells"))

	reloaded := NewRepository(path)
	subject, ok := reloaded.Get("Biology")
	require.True(t, ok)
	assert.Equal(t, 120, subject.SolvedCount)
	assert.Equal(t, 300, subject.TargetCount)
	assert.Len(t, subject.Topics, 1)
}
