package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/ai-course-backend/models"
)

func newTestProgressStore(t *testing.T, chapterCount int) (*ProgressStore, *CourseStore) {
	t.Helper()
	kv := NewMemoryStore()
	courses := NewCourseStore(kv)

	chapters := make([]models.Chapter, 0, chapterCount)
	for i := 0; i < chapterCount; i++ {
		chapters = append(chapters, models.Chapter{
			ID:      string(rune('a' + i)),
			Title:   "Chương",
			Content: "nội dung",
			Order:   i + 1,
		})
	}
	_, err := courses.Save(models.Course{
		ID:       "c1",
		Title:    "React",
		Chapters: chapters,
	})
	require.NoError(t, err)

	return NewProgressStore(kv, courses), courses
}

func TestMarkCompleteCreatesRecord(t *testing.T) {
	s, _ := newTestProgressStore(t, 4)

	assert.Nil(t, s.Get("c1", "u1"))

	progress, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)

	assert.Equal(t, "c1", progress.CourseID)
	assert.Equal(t, "u1", progress.UserID)
	assert.Equal(t, []string{"a"}, progress.CompletedChapters)
	assert.Equal(t, 4, progress.TotalChapters)
	assert.Equal(t, 25, progress.ProgressPercentage)
	assert.False(t, progress.LastAccessedAt.IsZero())
	assert.Nil(t, progress.CompletedAt)

	require.NotNil(t, s.Get("c1", "u1"))
}

func TestMarkCompleteUnknownCourse(t *testing.T) {
	s, _ := newTestProgressStore(t, 4)

	_, err := s.MarkComplete("không-tồn-tại", "a", "u1")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestMarkCompleteIdempotent(t *testing.T) {
	s, _ := newTestProgressStore(t, 4)

	first, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)

	// Tập completed không đổi nhưng lastAccessedAt vẫn tiến lên
	assert.Equal(t, first.CompletedChapters, second.CompletedChapters)
	assert.Equal(t, first.ProgressPercentage, second.ProgressPercentage)
	assert.True(t, second.LastAccessedAt.After(first.LastAccessedAt))
}

func TestMarkCompleteStampsCompletedAt(t *testing.T) {
	s, _ := newTestProgressStore(t, 2)

	progress, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)
	assert.Nil(t, progress.CompletedAt)
	assert.Equal(t, 50, progress.ProgressPercentage)

	progress, err = s.MarkComplete("c1", "b", "u1")
	require.NoError(t, err)
	assert.Equal(t, 100, progress.ProgressPercentage)
	require.NotNil(t, progress.CompletedAt)
}

func TestMarkIncomplete(t *testing.T) {
	s, _ := newTestProgressStore(t, 2)

	_, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)
	_, err = s.MarkComplete("c1", "b", "u1")
	require.NoError(t, err)

	progress, err := s.MarkIncomplete("c1", "a", "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, progress.CompletedChapters)
	assert.Equal(t, 50, progress.ProgressPercentage)
	// Bỏ đánh dấu luôn xóa completedAt
	assert.Nil(t, progress.CompletedAt)
}

func TestMarkIncompleteWithoutRecord(t *testing.T) {
	s, _ := newTestProgressStore(t, 2)

	_, err := s.MarkIncomplete("c1", "a", "u1")
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestMarkIncompleteUnknownChapterStillClearsCompletedAt(t *testing.T) {
	s, _ := newTestProgressStore(t, 1)

	progress, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)
	require.NotNil(t, progress.CompletedAt)

	// Chương không nằm trong tập completed, completedAt vẫn bị xóa
	progress, err = s.MarkIncomplete("c1", "z", "u1")
	require.NoError(t, err)
	assert.Nil(t, progress.CompletedAt)
	assert.Equal(t, []string{"a"}, progress.CompletedChapters)
	assert.Equal(t, 100, progress.ProgressPercentage)
}

func TestTotalChaptersTracksCourse(t *testing.T) {
	s, courses := newTestProgressStore(t, 2)

	progress, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, progress.TotalChapters)
	assert.Equal(t, 50, progress.ProgressPercentage)

	// Khóa học thêm chương sau khi đã học, phần trăm tính lại theo số mới
	course := courses.Get("c1")
	require.NotNil(t, course)
	course.Chapters = append(course.Chapters, models.Chapter{ID: "c", Title: "Mới", Content: "x", Order: 3})
	_, err = courses.Save(*course)
	require.NoError(t, err)

	progress, err = s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalChapters)
	assert.Equal(t, 33, progress.ProgressPercentage)
}

func TestProgressIsolatedPerUser(t *testing.T) {
	s, _ := newTestProgressStore(t, 2)

	_, err := s.MarkComplete("c1", "a", "u1")
	require.NoError(t, err)
	_, err = s.MarkComplete("c1", "b", "u2")
	require.NoError(t, err)

	p1 := s.Get("c1", "u1")
	require.NotNil(t, p1)
	assert.Equal(t, []string{"a"}, p1.CompletedChapters)

	p2 := s.Get("c1", "u2")
	require.NotNil(t, p2)
	assert.Equal(t, []string{"b"}, p2.CompletedChapters)

	assert.Len(t, s.AllForUser("u1"), 1)
	assert.Empty(t, s.AllForUser("u3"))
}
