package models

import (
	"errors"
	"strings"
	"time"
)

// Các mức độ khóa học hợp lệ
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Thời lượng mặc định cho chương thiếu thông tin
const DefaultChapterDuration = "15-20 minutes"

// Chapter là một chương của khóa học, kèm video minh họa
type Chapter struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	AudioURL    string   `json:"audioUrl,omitempty"` // narration sinh bằng TTS (nếu có)
	DurationSec float64  `json:"durationSec,omitempty"`
	Order       int      `json:"order"`
	CourseID    string   `json:"courseId"` // gán sau khi tạo course, không gán lúc sinh chương
	Objectives  []string `json:"objectives,omitempty"`
	Exercises   []string `json:"exercises,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Completed   bool     `json:"completed,omitempty"` // tiện cho UI, bản ghi progress mới là nguồn chính
}

// Course là khóa học hoàn chỉnh đã lưu
type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Topic          string    `json:"topic"`
	TargetAudience string    `json:"targetAudience,omitempty"`
	Difficulty     string    `json:"difficulty,omitempty"`
	Duration       int       `json:"duration,omitempty"` // số giờ
	ImageURL       string    `json:"imageUrl,omitempty"`
	Chapters       []Chapter `json:"chapters"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UserID         string    `json:"userId"`
}

// CourseGenerationRequest là input người dùng nhập khi tạo khóa học
type CourseGenerationRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Topic          string `json:"topic"`
	TargetAudience string `json:"targetAudience"`
	Difficulty     string `json:"difficulty"`
	Duration       int    `json:"duration"` // số giờ
}

var ErrInvalidDifficulty = errors.New("difficulty phải là beginner, intermediate hoặc advanced")

// Normalize kiểm tra các trường bắt buộc và điền giá trị mặc định.
// Difficulty trống => beginner, duration <= 0 => 1 giờ.
func (r *CourseGenerationRequest) Normalize() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Topic = strings.TrimSpace(r.Topic)

	if r.Title == "" {
		return errors.New("title bắt buộc")
	}
	if r.Description == "" {
		return errors.New("description bắt buộc")
	}
	if r.Topic == "" {
		return errors.New("topic bắt buộc")
	}

	switch r.Difficulty {
	case "":
		r.Difficulty = DifficultyBeginner
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return ErrInvalidDifficulty
	}

	if r.Duration <= 0 {
		r.Duration = 1
	}
	return nil
}

// Backfill điền các trường optional còn thiếu cho chương load từ storage cũ
func (ch *Chapter) Backfill() {
	if ch.Objectives == nil {
		ch.Objectives = []string{}
	}
	if ch.Exercises == nil {
		ch.Exercises = []string{}
	}
	if ch.Duration == "" {
		ch.Duration = DefaultChapterDuration
	}
}
