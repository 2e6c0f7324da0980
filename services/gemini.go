package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/vnkhanh/ai-course-backend/models"
)

// GeminiOutlineGenerator sinh dàn bài khóa học bằng Gemini
type GeminiOutlineGenerator struct {
	APIKey string
	Model  string
}

func NewGeminiOutlineGenerator() *GeminiOutlineGenerator {
	return &GeminiOutlineGenerator{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  "gemini-2.0-flash",
	}
}

// Cấu trúc JSON bắt buộc Gemini phải trả về
type outlineChapter struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Objectives  []string `json:"objectives"`
	Exercises   []string `json:"exercises"`
	Duration    string   `json:"duration"`
}

type outlineDocument struct {
	Chapters []outlineChapter `json:"chapters"`
}

var ErrMissingGeminiKey = errors.New("chưa cấu hình GEMINI_API_KEY")

// GenerateOutline gọi Gemini một lần duy nhất và decode chặt theo
// outlineDocument. Mọi lỗi (thiếu key, gọi API, parse, số chương sai)
// trả về error để pipeline rơi xuống đường fallback, không retry.
func (g *GeminiOutlineGenerator) GenerateOutline(ctx context.Context, req models.CourseGenerationRequest, referenceText string) ([]models.Chapter, error) {
	if g.APIKey == "" {
		return nil, ErrMissingGeminiKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildOutlinePrompt(req, referenceText)))
	if err != nil {
		return nil, fmt.Errorf("lỗi Gemini xử lý: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini không trả kết quả hợp lệ")
	}
	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	return decodeOutline(raw)
}

// decodeOutline làm sạch và decode JSON từ Gemini thành danh sách chương
func decodeOutline(raw string) ([]models.Chapter, error) {
	// Làm sạch JSON Gemini (hay bọc trong ```json ... ```)
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "`")
	clean = strings.TrimPrefix(clean, "json")
	clean = strings.TrimSpace(clean)

	var doc outlineDocument
	if err := json.Unmarshal([]byte(clean), &doc); err != nil {
		return nil, fmt.Errorf("parse JSON outline lỗi: %w", err)
	}

	if len(doc.Chapters) < 5 || len(doc.Chapters) > 7 {
		return nil, fmt.Errorf("outline trả về %d chương, yêu cầu 5-7", len(doc.Chapters))
	}

	chapters := make([]models.Chapter, 0, len(doc.Chapters))
	for i, oc := range doc.Chapters {
		if oc.Title == "" || oc.Content == "" {
			return nil, fmt.Errorf("chương %d thiếu title hoặc content", i+1)
		}
		ch := models.Chapter{
			ID:          uuid.NewString(),
			Title:       oc.Title,
			Description: oc.Description,
			Content:     oc.Content,
			Objectives:  oc.Objectives,
			Exercises:   oc.Exercises,
			Duration:    oc.Duration,
			Order:       i + 1,
		}
		ch.Backfill()
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

func buildOutlinePrompt(req models.CourseGenerationRequest, referenceText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Create a comprehensive, practical course outline for "%s" with the following specifications:

COURSE DETAILS:
- Title: %s
- Description: %s
- Category: %s
- Topic: %s
- Target Audience: %s
- Difficulty Level: %s
- Duration: %d hours

REQUIREMENTS:
1. Create 5-7 detailed chapters that build upon each other
2. Each chapter should have a clear title, a brief description, detailed learning content (300-500 words), specific learning objectives and practical exercises
3. Make the content practical and actionable, with real-world applications
4. Ensure progression from basic to advanced concepts, suitable for %s level learners

RESPONSE FORMAT (JSON, no extra text):
{
  "chapters": [
    {
      "title": "Chapter Title",
      "description": "Brief description of what students will learn",
      "content": "Detailed educational content with practical examples",
      "objectives": ["Objective 1", "Objective 2", "Objective 3"],
      "exercises": ["Exercise 1", "Exercise 2"],
      "duration": "estimated time in minutes"
    }
  ]
}
`, req.Title, req.Title, req.Description, req.Category, req.Topic, req.TargetAudience, req.Difficulty, req.Duration, req.Difficulty)

	if referenceText != "" {
		fmt.Fprintf(&b, "\nREFERENCE MATERIAL (base the chapter content on this where relevant):\n%s\n", referenceText)
	}

	return b.String()
}
