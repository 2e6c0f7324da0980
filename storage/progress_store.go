package storage

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"github.com/vnkhanh/ai-course-backend/models"
)

var (
	ErrCourseNotFound   = errors.New("không tìm thấy khóa học")
	ErrProgressNotFound = errors.New("không tìm thấy bản ghi tiến độ")
)

// ProgressStore quản lý tiến độ học theo cặp (courseId, userId).
// Tổng số chương luôn đọc lại từ khóa học thật, không cache: khóa học đổi số
// chương sau khi đã học thì phần trăm sẽ nhảy theo, hành vi có chủ đích.
type ProgressStore struct {
	kv      KeyValueStore
	courses *CourseStore
}

func NewProgressStore(kv KeyValueStore, courses *CourseStore) *ProgressStore {
	return &ProgressStore{kv: kv, courses: courses}
}

func (s *ProgressStore) loadAll() []models.CourseProgress {
	raw, err := s.kv.Get(ProgressKey)
	if err != nil {
		log.Println("Lỗi đọc tiến độ:", err)
		return []models.CourseProgress{}
	}
	if raw == "" {
		return []models.CourseProgress{}
	}
	var records []models.CourseProgress
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Println("Lỗi parse tiến độ:", err)
		return []models.CourseProgress{}
	}
	return records
}

func (s *ProgressStore) writeAll(records []models.CourseProgress) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ProgressKey, string(data))
}

// Get trả nil khi chưa có bản ghi cho cặp (courseId, userId)
func (s *ProgressStore) Get(courseID, userID string) *models.CourseProgress {
	for _, p := range s.loadAll() {
		if p.CourseID == courseID && p.UserID == userID {
			record := p
			return &record
		}
	}
	return nil
}

// AllForUser trả toàn bộ tiến độ của một user
func (s *ProgressStore) AllForUser(userID string) []models.CourseProgress {
	results := []models.CourseProgress{}
	for _, p := range s.loadAll() {
		if p.UserID == userID {
			results = append(results, p)
		}
	}
	return results
}

func (s *ProgressStore) save(progress models.CourseProgress) error {
	records := s.loadAll()
	found := false
	for i := range records {
		if records[i].CourseID == progress.CourseID && records[i].UserID == progress.UserID {
			records[i] = progress
			found = true
			break
		}
	}
	if !found {
		records = append(records, progress)
	}
	return s.writeAll(records)
}

func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// MarkComplete đánh dấu chương hoàn thành. Chưa có bản ghi thì tạo mới.
// Gọi lặp lại cùng chương không đổi tập completed (idempotent) nhưng vẫn
// cập nhật lastAccessedAt.
func (s *ProgressStore) MarkComplete(courseID, chapterID, userID string) (models.CourseProgress, error) {
	course := s.courses.Get(courseID)
	if course == nil {
		return models.CourseProgress{}, ErrCourseNotFound
	}

	progress := s.Get(courseID, userID)
	if progress == nil {
		progress = &models.CourseProgress{
			CourseID:          courseID,
			UserID:            userID,
			CompletedChapters: []string{chapterID},
		}
	} else if !progress.HasChapter(chapterID) {
		progress.CompletedChapters = append(progress.CompletedChapters, chapterID)
	}
	progress.LastAccessedAt = time.Now()

	progress.TotalChapters = len(course.Chapters)
	progress.ProgressPercentage = percentage(len(progress.CompletedChapters), progress.TotalChapters)

	if progress.TotalChapters > 0 && len(progress.CompletedChapters) == progress.TotalChapters {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.save(*progress); err != nil {
		return models.CourseProgress{}, err
	}
	return *progress, nil
}

// MarkIncomplete bỏ đánh dấu một chương. completedAt luôn bị xóa, kể cả khi
// số lượng vô tình vẫn khớp. Chưa có bản ghi thì báo ErrProgressNotFound.
func (s *ProgressStore) MarkIncomplete(courseID, chapterID, userID string) (models.CourseProgress, error) {
	progress := s.Get(courseID, userID)
	if progress == nil {
		return models.CourseProgress{}, ErrProgressNotFound
	}

	remaining := []string{}
	for _, id := range progress.CompletedChapters {
		if id != chapterID {
			remaining = append(remaining, id)
		}
	}
	progress.CompletedChapters = remaining
	progress.LastAccessedAt = time.Now()
	progress.CompletedAt = nil

	if course := s.courses.Get(courseID); course != nil {
		progress.TotalChapters = len(course.Chapters)
	}
	progress.ProgressPercentage = percentage(len(progress.CompletedChapters), progress.TotalChapters)

	if err := s.save(*progress); err != nil {
		return models.CourseProgress{}, err
	}
	return *progress, nil
}
