package models

import "time"

// CourseProgress lưu tiến độ học của một user trên một khóa học.
// Mỗi cặp (courseId, userId) chỉ có một bản ghi.
type CourseProgress struct {
	CourseID           string     `json:"courseId"`
	UserID             string     `json:"userId"`
	CompletedChapters  []string   `json:"completedChapters"`
	TotalChapters      int        `json:"totalChapters"`
	ProgressPercentage int        `json:"progressPercentage"`
	LastAccessedAt     time.Time  `json:"lastAccessedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"` // chỉ có khi hoàn thành đủ 100%
}

// HasChapter kiểm tra chương đã được đánh dấu hoàn thành chưa
func (p *CourseProgress) HasChapter(chapterID string) bool {
	for _, id := range p.CompletedChapters {
		if id == chapterID {
			return true
		}
	}
	return false
}
