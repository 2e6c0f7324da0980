package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/vnkhanh/ai-course-backend/models"
)

// CourseStore đọc/ghi toàn bộ danh sách khóa học như một tài liệu JSON duy nhất.
// Hai writer song song có thể ghi đè nhau (last-writer-wins), giới hạn đã
// chấp nhận của mô hình lưu trữ này.
type CourseStore struct {
	kv KeyValueStore
}

func NewCourseStore(kv KeyValueStore) *CourseStore {
	return &CourseStore{kv: kv}
}

// CourseStats là số liệu tổng hợp, tính lại từ đầu mỗi lần gọi
type CourseStats struct {
	TotalCourses      int             `json:"totalCourses"`
	TotalChapters     int             `json:"totalChapters"`
	TotalDuration     int             `json:"totalDuration"`
	CategoriesCount   int             `json:"categoriesCount"`
	RecentCourses     []models.Course `json:"recentCourses"`
	CategoryBreakdown map[string]int  `json:"categoryBreakdown"`
}

// ExportData là định dạng file export/import
type ExportData struct {
	Version    string             `json:"version"`
	ExportedAt string             `json:"exportedAt"`
	User       *models.StoredUser `json:"user"`
	Courses    []models.Course    `json:"courses"`
}

const exportVersion = "1.0"

// GetAll load toàn bộ khóa học. Lỗi đọc/parse coi như danh sách rỗng
// để không chặn toàn bộ chức năng vì một blob hỏng.
func (s *CourseStore) GetAll() []models.Course {
	raw, err := s.kv.Get(CoursesKey)
	if err != nil {
		log.Println("Lỗi đọc danh sách khóa học:", err)
		return []models.Course{}
	}
	if raw == "" {
		return []models.Course{}
	}

	var courses []models.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		log.Println("Lỗi parse danh sách khóa học:", err)
		return []models.Course{}
	}

	// Backfill các trường mới cho dữ liệu cũ
	for i := range courses {
		for j := range courses[i].Chapters {
			courses[i].Chapters[j].Backfill()
		}
	}
	return courses
}

func (s *CourseStore) writeAll(courses []models.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return s.kv.Set(CoursesKey, string(data))
}

// Save ghi đè khóa học trùng id (cập nhật updatedAt), khác id thì thêm mới.
// Trả về bản ghi đã lưu, caller phải dùng bản này thay cho bản cục bộ.
func (s *CourseStore) Save(course models.Course) (models.Course, error) {
	courses := s.GetAll()

	found := false
	for i := range courses {
		if courses[i].ID == course.ID {
			course.UpdatedAt = time.Now()
			courses[i] = course
			found = true
			break
		}
	}
	if !found {
		courses = append(courses, course)
	}

	if err := s.writeAll(courses); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Get tìm tuyến tính theo id, trả nil khi không có (không phải lỗi)
func (s *CourseStore) Get(id string) *models.Course {
	for _, course := range s.GetAll() {
		if course.ID == id {
			c := course
			return &c
		}
	}
	return nil
}

// GetChapters trả danh sách chương của một khóa học
func (s *CourseStore) GetChapters(courseID string) []models.Chapter {
	course := s.Get(courseID)
	if course == nil {
		return []models.Chapter{}
	}
	return course.Chapters
}

// Delete xóa theo id. Xóa id không tồn tại trả false, không phải lỗi.
func (s *CourseStore) Delete(id string) bool {
	courses := s.GetAll()
	filtered := courses[:0:0]
	found := false
	for _, course := range courses {
		if course.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, course)
	}
	if !found {
		return false
	}
	if err := s.writeAll(filtered); err != nil {
		log.Println("Lỗi ghi sau khi xóa khóa học:", err)
		return false
	}
	return true
}

// Search tìm chuỗi con không phân biệt hoa thường trên title, description,
// topic, category và title/content của từng chương. Không xếp hạng kết quả.
func (s *CourseStore) Search(query string) []models.Course {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []models.Course{}
	if q == "" {
		return results
	}

	for _, course := range s.GetAll() {
		if strings.Contains(strings.ToLower(course.Title), q) ||
			strings.Contains(strings.ToLower(course.Description), q) ||
			strings.Contains(strings.ToLower(course.Topic), q) ||
			strings.Contains(strings.ToLower(course.Category), q) {
			results = append(results, course)
			continue
		}
		for _, ch := range course.Chapters {
			if strings.Contains(strings.ToLower(ch.Title), q) ||
				strings.Contains(strings.ToLower(ch.Content), q) {
				results = append(results, course)
				break
			}
		}
	}
	return results
}

// ByCategory lọc theo category, so khớp chính xác
func (s *CourseStore) ByCategory(category string) []models.Course {
	results := []models.Course{}
	for _, course := range s.GetAll() {
		if course.Category == category {
			results = append(results, course)
		}
	}
	return results
}

// Recent trả về các khóa học tạo gần nhất
func (s *CourseStore) Recent(limit int) []models.Course {
	if limit <= 0 {
		limit = 5
	}
	courses := s.GetAll()
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	if len(courses) > limit {
		courses = courses[:limit]
	}
	return courses
}

// Stats quét lại toàn bộ collection và tổng hợp số liệu
func (s *CourseStore) Stats() CourseStats {
	courses := s.GetAll()

	stats := CourseStats{
		TotalCourses:      len(courses),
		CategoryBreakdown: make(map[string]int),
	}
	for _, course := range courses {
		stats.TotalChapters += len(course.Chapters)
		stats.TotalDuration += course.Duration
		stats.CategoryBreakdown[course.Category]++
	}
	stats.CategoriesCount = len(stats.CategoryBreakdown)
	stats.RecentCourses = s.Recent(5)
	return stats
}

// GetCurrentUser đọc bản ghi user hiện tại, nil khi chưa có
func (s *CourseStore) GetCurrentUser() *models.StoredUser {
	raw, err := s.kv.Get(UserKey)
	if err != nil || raw == "" {
		return nil
	}
	var user models.StoredUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Println("Lỗi parse user hiện tại:", err)
		return nil
	}
	return &user
}

// SetCurrentUser lưu bản ghi user hiện tại
func (s *CourseStore) SetCurrentUser(user models.StoredUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(UserKey, string(data))
}

// Export đóng gói toàn bộ khóa học + user hiện tại thành JSON có version
func (s *CourseStore) Export() (string, error) {
	doc := ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		User:       s.GetCurrentUser(),
		Courses:    s.GetAll(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Import đọc file export, bỏ qua các khóa học thiếu id/title/chapters và
// ghi nhận lỗi theo tên thay vì hủy cả đợt import.
func (s *CourseStore) Import(jsonData string) (int, []string, error) {
	var doc struct {
		Courses []json.RawMessage `json:"courses"`
	}
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return 0, nil, fmt.Errorf("file import không hợp lệ: %w", err)
	}

	imported := 0
	importErrors := []string{}

	for _, raw := range doc.Courses {
		var course models.Course
		if err := json.Unmarshal(raw, &course); err != nil {
			var probe struct {
				Title string `json:"title"`
			}
			_ = json.Unmarshal(raw, &probe)
			name := probe.Title
			if name == "" {
				name = "Unknown"
			}
			importErrors = append(importErrors, "Không import được khóa học: "+name)
			continue
		}

		if course.ID == "" || course.Title == "" || course.Chapters == nil {
			name := course.Title
			if name == "" {
				name = "Unknown"
			}
			importErrors = append(importErrors, "Cấu trúc khóa học không hợp lệ: "+name)
			continue
		}

		for i := range course.Chapters {
			course.Chapters[i].Backfill()
		}

		if _, err := s.Save(course); err != nil {
			importErrors = append(importErrors, "Không lưu được khóa học: "+course.Title)
			continue
		}
		imported++
	}

	return imported, importErrors, nil
}

// ClearAll xóa sạch dữ liệu (courses, user, progress, settings)
func (s *CourseStore) ClearAll() {
	for _, key := range []string{CoursesKey, UserKey, ProgressKey, SettingsKey} {
		if err := s.kv.Remove(key); err != nil {
			log.Println("Lỗi xóa key", key, ":", err)
		}
	}
}
