package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/ai-course-backend/models"
	"github.com/vnkhanh/ai-course-backend/services"
	"github.com/vnkhanh/ai-course-backend/storage"
)

var (
	DB *gorm.DB

	// Cổng lưu trữ key-value và các store dựng trên nó
	KV       storage.KeyValueStore
	Courses  *storage.CourseStore
	Progress *storage.ProgressStore

	// Pipeline sinh khóa học (Gemini + YouTube, tự fallback khi thiếu key)
	Generator *services.CourseGenerator
)

func InitDB() {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
		dbHost, dbUser, dbPass, dbName, dbPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("Không thể kết nối database:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Không thể lấy sql.DB từ gorm:", err)
	}

	// Connection Pooling config
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&storage.Entry{},
	)
	if err != nil {
		log.Fatal("autoMigrate lỗi: ", err)
	}
	log.Println("postgreSQL connected & migrated successfully!")

	seedCategories()
	InitStores(storage.NewGormStore(DB))
}

// InitStores dựng các store trên một cổng key-value bất kỳ
// (GormStore khi chạy thật, MemoryStore trong test)
func InitStores(kv storage.KeyValueStore) {
	KV = kv
	Courses = storage.NewCourseStore(kv)
	Progress = storage.NewProgressStore(kv, Courses)
	Generator = services.NewCourseGenerator(Courses)
}

// Danh mục seed sẵn, không cho user sửa
var defaultCategories = []models.Category{
	{Name: "Programming", Description: "Learn programming languages and development", Icon: "💻"},
	{Name: "Design", Description: "UI/UX design and visual arts", Icon: "🎨"},
	{Name: "Business", Description: "Business skills and entrepreneurship", Icon: "💼"},
	{Name: "Marketing", Description: "Digital marketing and advertising", Icon: "📈"},
	{Name: "Data Science", Description: "Data analysis and machine learning", Icon: "📊"},
	{Name: "Photography", Description: "Photography techniques and editing", Icon: "📸"},
	{Name: "Writing", Description: "Content writing and communication", Icon: "✍️"},
	{Name: "Finance", Description: "Personal finance and investment", Icon: "💰"},
}

func seedCategories() {
	for _, category := range defaultCategories {
		category.Slug = slug.Make(category.Name)
		category.Status = true
		if err := DB.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
			log.Println("Lỗi seed category", category.Name, ":", err)
		}
	}
}
