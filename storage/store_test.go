package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crono/domain"
)

func testPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "doc.json")
}

func TestLoad_MissingFileSeedsDefaults(t *testing.T) {
	path := testPath(t)
	store := NewStore[domain.SubjectDoc](path)

	doc := store.Load(domain.SubjectDoc{})

	assert.Empty(t, doc)
	_, err := os.Stat(path)
	assert.NoError(t, err, "defaults should be persisted immediately")
}

func TestLoad_RoundTrip(t *testing.T) {
	path := testPath(t)
	store := NewStore[domain.SubjectDoc](path)

	doc := domain.SubjectDoc{
		"Biology": {
			SolvedCount: 42,
			TargetCount: 300,
			Topics: []*domain.Topic{
				{Name: "Cells", Status: domain.TopicTodo, StartDate: domain.NoDate, EndDate: domain.NoDate},
			},
			Priority:    domain.PriorityHigh,
			Status:      domain.SubjectActive,
			CreatedDate: "2026-01-15",
			Tags:        []string{"science"},
		},
	}
	require.NoError(t, store.Save(doc))

	loaded := NewStore[domain.SubjectDoc](path).Load(domain.SubjectDoc{})
	require.Contains(t, loaded, "Biology")
	subject := loaded["Biology"]
	assert.Equal(t, 42, subject.SolvedCount)
	assert.Equal(t, 300, subject.TargetCount)
	assert.Equal(t, domain.PriorityHigh, subject.Priority)
	require.Len(t, subject.Topics, 1)
	assert.Equal(t, "Cells", subject.Topics[0].Name)
	assert.Equal(t, []string{"science"}, subject.Tags)
}

func TestLoad_CorruptFileFallsBackWithoutOverwriting(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	doc := NewStore[domain.SubjectDoc](path).Load(domain.SubjectDoc{})

	assert.Empty(t, doc)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "corrupt bytes should stay recoverable")
}

func TestLoad_BackFillIsIdempotent(t *testing.T) {
	path := testPath(t)
	// Older document shape: only the counters present
	raw := `{"Biology": {"solved_count": 10}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	doc := NewStore[domain.SubjectDoc](path).Load(domain.SubjectDoc{})
	subject := doc["Biology"]
	require.NotNil(t, subject)
	assert.Equal(t, domain.DefaultTarget, subject.TargetCount)
	assert.Equal(t, domain.PriorityMedium, subject.Priority)
	assert.Equal(t, domain.SubjectActive, subject.Status)
	assert.NotNil(t, subject.Topics)
	assert.NotNil(t, subject.Tags)

	// The healed document was re-saved; loading it again must change nothing
	healed, err := os.ReadFile(path)
	require.NoError(t, err)

	again := NewStore[domain.SubjectDoc](path).Load(domain.SubjectDoc{})
	assert.False(t, again.Normalize(), "second load should need no back-fill")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(healed), string(after))
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "doc.json")
	store := NewStore[domain.SessionDoc](path)

	require.NoError(t, store.Save(domain.SessionDoc{}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSave_FailureReturnsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	// A path whose parent is a file cannot be created
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := NewStore[domain.SessionDoc](filepath.Join(blocker, "doc.json"))
	err := store.Save(domain.SessionDoc{})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
