package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/ai-course-backend/models"
)

func newTestCourseStore() *CourseStore {
	return NewCourseStore(NewMemoryStore())
}

func sampleCourse(id, title, category string) models.Course {
	return models.Course{
		ID:          id,
		Title:       title,
		Description: "mô tả " + title,
		Category:    category,
		Topic:       title,
		Duration:    2,
		Chapters: []models.Chapter{
			{ID: id + "-ch1", Title: "Chương 1", Content: "nội dung", Order: 1, CourseID: id},
			{ID: id + "-ch2", Title: "Chương 2", Content: "nội dung", Order: 2, CourseID: id},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    "user-1",
	}
}

func TestCourseStoreSaveAndGet(t *testing.T) {
	s := newTestCourseStore()

	course := sampleCourse("c1", "React", "Programming")
	saved, err := s.Save(course)
	require.NoError(t, err)
	assert.Equal(t, course.ID, saved.ID)

	got := s.Get("c1")
	require.NotNil(t, got)
	assert.Equal(t, "React", got.Title)
	assert.Len(t, got.Chapters, 2)

	assert.Nil(t, s.Get("không-tồn-tại"))
}

func TestCourseStoreSaveReplaceUpdatesTimestamp(t *testing.T) {
	s := newTestCourseStore()

	course := sampleCourse("c1", "React", "Programming")
	course.UpdatedAt = time.Now().Add(-time.Hour)
	_, err := s.Save(course)
	require.NoError(t, err)

	course.Title = "React nâng cao"
	saved, err := s.Save(course)
	require.NoError(t, err)

	assert.Equal(t, "React nâng cao", saved.Title)
	assert.True(t, saved.UpdatedAt.After(course.CreatedAt))

	got := s.Get("c1")
	require.NotNil(t, got)
	assert.Equal(t, "React nâng cao", got.Title)

	// Vẫn chỉ có một bản ghi
	assert.Len(t, s.GetAll(), 1)
}

func TestCourseStoreGetAllOnCorruptBlob(t *testing.T) {
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(CoursesKey, "không phải JSON"))

	s := NewCourseStore(kv)
	assert.Empty(t, s.GetAll())
}

func TestCourseStoreBackfillsOldChapters(t *testing.T) {
	kv := NewMemoryStore()

	// Blob cũ thiếu objectives/exercises/duration
	old := []models.Course{{
		ID:       "c1",
		Title:    "Cũ",
		Chapters: []models.Chapter{{ID: "ch1", Title: "A", Content: "x", Order: 1}},
	}}
	data, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, kv.Set(CoursesKey, string(data)))

	s := NewCourseStore(kv)
	courses := s.GetAll()
	require.Len(t, courses, 1)

	ch := courses[0].Chapters[0]
	assert.NotNil(t, ch.Objectives)
	assert.NotNil(t, ch.Exercises)
	assert.Equal(t, models.DefaultChapterDuration, ch.Duration)
}

func TestCourseStoreDelete(t *testing.T) {
	s := newTestCourseStore()
	_, err := s.Save(sampleCourse("c1", "React", "Programming"))
	require.NoError(t, err)

	assert.False(t, s.Delete("không-tồn-tại"))
	assert.True(t, s.Delete("c1"))
	assert.Nil(t, s.Get("c1"))
	assert.False(t, s.Delete("c1"))
}

func TestCourseStoreSearch(t *testing.T) {
	s := newTestCourseStore()
	_, err := s.Save(sampleCourse("c1", "React", "Programming"))
	require.NoError(t, err)

	python := sampleCourse("c2", "Python", "Programming")
	python.Chapters[0].Content = "giới thiệu về machine learning"
	_, err = s.Save(python)
	require.NoError(t, err)

	// Khớp title, không phân biệt hoa thường
	results := s.Search("rEaCt")
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)

	// Khớp content của chương
	results = s.Search("machine learning")
	require.Len(t, results, 1)
	assert.Equal(t, "c2", results[0].ID)

	// Khớp category trả cả hai
	assert.Len(t, s.Search("programming"), 2)

	assert.Empty(t, s.Search("không có gì khớp"))
	assert.Empty(t, s.Search("   "))
}

func TestCourseStoreByCategory(t *testing.T) {
	s := newTestCourseStore()
	_, err := s.Save(sampleCourse("c1", "React", "Programming"))
	require.NoError(t, err)
	_, err = s.Save(sampleCourse("c2", "Figma", "Design"))
	require.NoError(t, err)

	results := s.ByCategory("Design")
	require.Len(t, results, 1)
	assert.Equal(t, "c2", results[0].ID)

	// So khớp chính xác, không khớp chữ thường
	assert.Empty(t, s.ByCategory("design"))
}

func TestCourseStoreRecent(t *testing.T) {
	s := newTestCourseStore()

	base := time.Now()
	for i, id := range []string{"c1", "c2", "c3"} {
		course := sampleCourse(id, "Khóa "+id, "Programming")
		course.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := s.Save(course)
		require.NoError(t, err)
	}

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c3", recent[0].ID)
	assert.Equal(t, "c2", recent[1].ID)
}

func TestCourseStoreStats(t *testing.T) {
	s := newTestCourseStore()
	_, err := s.Save(sampleCourse("c1", "React", "Programming"))
	require.NoError(t, err)
	_, err = s.Save(sampleCourse("c2", "Python", "Programming"))
	require.NoError(t, err)
	_, err = s.Save(sampleCourse("c3", "Figma", "Design"))
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 3, stats.TotalCourses)
	assert.Equal(t, 6, stats.TotalChapters)
	assert.Equal(t, 6, stats.TotalDuration)
	assert.Equal(t, 2, stats.CategoriesCount)
	assert.Equal(t, 2, stats.CategoryBreakdown["Programming"])
	assert.Equal(t, 1, stats.CategoryBreakdown["Design"])
	assert.Len(t, stats.RecentCourses, 3)
}

func TestCourseStoreCurrentUser(t *testing.T) {
	s := newTestCourseStore()

	assert.Nil(t, s.GetCurrentUser())

	require.NoError(t, s.SetCurrentUser(models.StoredUser{ID: "u1", Name: "Khánh", Email: "khanh@example.com"}))

	user := s.GetCurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Khánh", user.Name)
}

func TestCourseStoreExportImportRoundTrip(t *testing.T) {
	src := newTestCourseStore()
	_, err := src.Save(sampleCourse("c1", "React", "Programming"))
	require.NoError(t, err)
	_, err = src.Save(sampleCourse("c2", "Python", "Programming"))
	require.NoError(t, err)
	require.NoError(t, src.SetCurrentUser(models.StoredUser{ID: "u1", Name: "Khánh"}))

	data, err := src.Export()
	require.NoError(t, err)

	var doc ExportData
	require.NoError(t, json.Unmarshal([]byte(data), &doc))
	assert.Equal(t, exportVersion, doc.Version)
	assert.NotEmpty(t, doc.ExportedAt)
	require.NotNil(t, doc.User)
	assert.Len(t, doc.Courses, 2)

	dst := newTestCourseStore()
	imported, importErrors, err := dst.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Empty(t, importErrors)
	assert.NotNil(t, dst.Get("c1"))
	assert.NotNil(t, dst.Get("c2"))
}

func TestCourseStoreImportSkipsInvalidCourses(t *testing.T) {
	s := newTestCourseStore()

	data := `{
		"version": "1.0",
		"courses": [
			{"id": "c1", "title": "Hợp lệ", "chapters": []},
			{"id": "c2", "title": "", "chapters": []},
			{"id": "c3", "title": "Thiếu chapters"}
		]
	}`

	imported, importErrors, err := s.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.Len(t, importErrors, 2)
	assert.Contains(t, importErrors[0], "Unknown")
	assert.Contains(t, importErrors[1], "Thiếu chapters")

	assert.NotNil(t, s.Get("c1"))
	assert.Nil(t, s.Get("c3"))
}

func TestCourseStoreImportRejectsBadFile(t *testing.T) {
	s := newTestCourseStore()
	_, _, err := s.Import("không phải JSON")
	assert.Error(t, err)
}

func TestCourseStoreClearAll(t *testing.T) {
	s := newTestCourseStore()
	_, err := s.Save(sampleCourse("c1", "React", "Programming"))
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(models.StoredUser{ID: "u1"}))

	s.ClearAll()

	assert.Empty(t, s.GetAll())
	assert.Nil(t, s.GetCurrentUser())
}
