package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/ai-course-backend/models"
)

func TestFallbackChaptersStructure(t *testing.T) {
	req := models.CourseGenerationRequest{
		Title:       "Học React từ đầu",
		Description: "Khóa học React",
		Topic:       "React",
		Difficulty:  models.DifficultyBeginner,
		Duration:    2,
	}

	chapters := FallbackChapters(req)
	require.Len(t, chapters, 5)

	for i, ch := range chapters {
		assert.NotEmpty(t, ch.ID)
		assert.NotEmpty(t, ch.Title)
		assert.NotEmpty(t, ch.Content)
		assert.NotEmpty(t, ch.Duration)
		assert.NotEmpty(t, ch.Objectives)
		assert.NotEmpty(t, ch.Exercises)
		assert.Equal(t, i+1, ch.Order)
	}

	assert.Equal(t, "Introduction to React", chapters[0].Title)
	assert.Contains(t, chapters[0].Content, "2-hour course")
	assert.Contains(t, chapters[0].Content, "beginner level")
}

func TestFallbackChaptersDefaultAudience(t *testing.T) {
	req := models.CourseGenerationRequest{
		Title:       "Python cơ bản",
		Description: "Khóa học Python",
		Topic:       "Python",
		Difficulty:  models.DifficultyBeginner,
		Duration:    1,
	}

	chapters := FallbackChapters(req)
	require.Len(t, chapters, 5)
	assert.Contains(t, chapters[0].Content, "learners")
}

func TestFallbackChaptersUniqueIDs(t *testing.T) {
	req := models.CourseGenerationRequest{
		Title:       "Go",
		Description: "Go",
		Topic:       "Go",
		Difficulty:  models.DifficultyAdvanced,
		Duration:    3,
	}

	chapters := FallbackChapters(req)
	seen := map[string]bool{}
	for _, ch := range chapters {
		assert.False(t, seen[ch.ID], "id trùng: %s", ch.ID)
		seen[ch.ID] = true
	}
}
