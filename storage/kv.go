package storage

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Các key cố định trong kho key-value
const (
	CoursesKey  = "ai_course_generator_courses"
	UserKey     = "ai_course_generator_user"
	ProgressKey = "ai_course_generator_progress"
	SettingsKey = "ai_course_generator_settings"
)

// KeyValueStore là cổng lưu trữ key -> chuỗi JSON.
// Get trả về "" (không lỗi) khi key chưa tồn tại.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Entry là một dòng trong bảng kv_entries
type Entry struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value string `gorm:"type:text"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore lưu key-value trong PostgreSQL qua gorm
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Get(key string) (string, error) {
	var entry Entry
	if err := s.DB.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *GormStore) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

func (s *GormStore) Remove(key string) error {
	return s.DB.Delete(&Entry{}, "key = ?", key).Error
}

// MemoryStore giữ dữ liệu trong RAM, dùng cho test
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
