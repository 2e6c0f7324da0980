package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vnkhanh/ai-course-backend/models"
	"github.com/vnkhanh/ai-course-backend/storage"
)

// OutlineGenerator sinh danh sách chương từ request (đường Gemini)
type OutlineGenerator interface {
	GenerateOutline(ctx context.Context, req models.CourseGenerationRequest, referenceText string) ([]models.Chapter, error)
}

// VideoResolver tìm URL video cho một chương
type VideoResolver interface {
	Resolve(ctx context.Context, topic, chapterTitle string) (string, error)
}

// CourseGenerator là pipeline đầy đủ: validate request -> sinh chương
// (Gemini hoặc fallback) -> gắn video từng chương -> ráp course -> lưu.
type CourseGenerator struct {
	Outline OutlineGenerator // nil => luôn dùng fallback template
	Videos  VideoResolver    // nil => luôn dùng bảng video mặc định
	Store   *storage.CourseStore
}

func NewCourseGenerator(store *storage.CourseStore) *CourseGenerator {
	return &CourseGenerator{
		Outline: NewGeminiOutlineGenerator(),
		Videos:  NewYouTubeResolver(),
		Store:   store,
	}
}

// Generate chạy toàn bộ pipeline. Ngoài lỗi validate input và lỗi ghi
// storage, không có lỗi nào thoát ra ngoài: mọi lỗi gọi API ngoài đều
// rơi về fallback cục bộ.
func (g *CourseGenerator) Generate(ctx context.Context, req models.CourseGenerationRequest, userID, referenceText string) (models.Course, error) {
	if err := req.Normalize(); err != nil {
		return models.Course{}, err
	}

	chapters := g.generateChapters(ctx, req, referenceText)
	g.attachVideos(ctx, req.Topic, chapters)

	// Ráp course: id mới, timestamps, gán ngược courseId vào từng chương
	courseID := uuid.NewString()
	now := time.Now()
	for i := range chapters {
		chapters[i].CourseID = courseID
	}

	if userID == "" {
		userID = models.DefaultUserID
	}

	course := models.Course{
		ID:             courseID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Topic:          req.Topic,
		TargetAudience: req.TargetAudience,
		Difficulty:     req.Difficulty,
		Duration:       req.Duration,
		ImageURL:       coverImageURL(),
		Chapters:       chapters,
		CreatedAt:      now,
		UpdatedAt:      now,
		UserID:         userID,
	}

	// Bản ghi store trả về mới là bản chính thức
	return g.Store.Save(course)
}

func (g *CourseGenerator) generateChapters(ctx context.Context, req models.CourseGenerationRequest, referenceText string) []models.Chapter {
	if g.Outline != nil {
		chapters, err := g.Outline.GenerateOutline(ctx, req, referenceText)
		if err == nil {
			return chapters
		}
		log.Println("Sinh outline thất bại, chuyển sang template:", err)
	}
	return FallbackChapters(req)
}

// attachVideos gắn video cho từng chương song song (fan-out) rồi chờ đủ
// (fan-in). Một chương lỗi không ảnh hưởng các chương khác.
func (g *CourseGenerator) attachVideos(ctx context.Context, topic string, chapters []models.Chapter) {
	var wg sync.WaitGroup
	for i := range chapters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := ""
			if g.Videos != nil {
				resolved, err := g.Videos.Resolve(ctx, topic, chapters[i].Title)
				if err != nil {
					log.Printf("Không tìm được video cho chương %q: %v\n", chapters[i].Title, err)
				} else {
					url = resolved
				}
			}
			if url == "" {
				url = FallbackVideoURL(topic)
			}
			chapters[i].VideoURL = url
		}(i)
	}
	wg.Wait()
}

// coverImageURL sinh URL ảnh bìa ngẫu nhiên kiểu Unsplash
func coverImageURL() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:11]
	return fmt.Sprintf("https://images.unsplash.com/photo-%s?w=400&h=300&fit=crop&q=80", suffix)
}
