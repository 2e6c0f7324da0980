package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/ai-course-backend/models"
	"github.com/vnkhanh/ai-course-backend/storage"
)

type stubOutline struct {
	chapters []models.Chapter
	err      error
}

func (s *stubOutline) GenerateOutline(ctx context.Context, req models.CourseGenerationRequest, referenceText string) ([]models.Chapter, error) {
	return s.chapters, s.err
}

type stubVideos struct {
	urls map[string]string // chapterTitle -> url
	err  error
}

func (s *stubVideos) Resolve(ctx context.Context, topic, chapterTitle string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.urls[chapterTitle], nil
}

func newTestGenerator(outline OutlineGenerator, videos VideoResolver) (*CourseGenerator, *storage.CourseStore) {
	store := storage.NewCourseStore(storage.NewMemoryStore())
	return &CourseGenerator{Outline: outline, Videos: videos, Store: store}, store
}

func validRequest() models.CourseGenerationRequest {
	return models.CourseGenerationRequest{
		Title:       "React toàn tập",
		Description: "Học React từ cơ bản đến nâng cao",
		Category:    "Programming",
		Topic:       "React",
		Difficulty:  models.DifficultyBeginner,
		Duration:    2,
	}
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	g, _ := newTestGenerator(nil, nil)

	_, err := g.Generate(context.Background(), models.CourseGenerationRequest{}, "", "")
	assert.Error(t, err)
}

func TestGenerateFallsBackWhenOutlineFails(t *testing.T) {
	g, _ := newTestGenerator(&stubOutline{err: errors.New("quota exceeded")}, nil)

	course, err := g.Generate(context.Background(), validRequest(), "user-1", "")
	require.NoError(t, err)
	assert.Len(t, course.Chapters, 5)
	assert.Equal(t, "Introduction to React", course.Chapters[0].Title)
}

func TestGenerateUsesOutlineChapters(t *testing.T) {
	outline := &stubOutline{chapters: []models.Chapter{
		{ID: "c1", Title: "Một", Content: "x", Order: 1},
		{ID: "c2", Title: "Hai", Content: "x", Order: 2},
		{ID: "c3", Title: "Ba", Content: "x", Order: 3},
		{ID: "c4", Title: "Bốn", Content: "x", Order: 4},
		{ID: "c5", Title: "Năm", Content: "x", Order: 5},
	}}
	videos := &stubVideos{urls: map[string]string{
		"Một": "https://www.youtube.com/watch?v=vid1",
		"Hai": "https://www.youtube.com/watch?v=vid2",
	}}
	g, _ := newTestGenerator(outline, videos)

	course, err := g.Generate(context.Background(), validRequest(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, course.Chapters, 5)

	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", course.Chapters[0].VideoURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid2", course.Chapters[1].VideoURL)
	// Chương không có kết quả rơi về bảng video mặc định theo topic
	assert.Equal(t, FallbackVideoURL("React"), course.Chapters[2].VideoURL)
}

func TestGenerateVideoErrorDoesNotFailPipeline(t *testing.T) {
	g, _ := newTestGenerator(&stubOutline{err: errors.New("down")}, &stubVideos{err: errors.New("quota")})

	course, err := g.Generate(context.Background(), validRequest(), "user-1", "")
	require.NoError(t, err)

	for _, ch := range course.Chapters {
		assert.NotEmpty(t, ch.VideoURL)
	}
}

func TestGenerateAssemblesCourse(t *testing.T) {
	g, store := newTestGenerator(nil, nil)

	course, err := g.Generate(context.Background(), validRequest(), "user-1", "")
	require.NoError(t, err)

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "user-1", course.UserID)
	assert.NotEmpty(t, course.ImageURL)
	assert.False(t, course.CreatedAt.IsZero())
	assert.Equal(t, course.CreatedAt, course.UpdatedAt)

	for _, ch := range course.Chapters {
		assert.Equal(t, course.ID, ch.CourseID)
	}

	// Bản ghi đã được lưu vào storage
	saved := store.Get(course.ID)
	require.NotNil(t, saved)
	assert.Equal(t, course.Title, saved.Title)
}

func TestGenerateDefaultsUserID(t *testing.T) {
	g, _ := newTestGenerator(nil, nil)

	course, err := g.Generate(context.Background(), validRequest(), "", "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserID, course.UserID)
}
