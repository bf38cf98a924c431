// Package testdb opens throwaway in-memory SQLite databases for package tests.
package testdb

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/quizhost/database"
	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/seed"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a migrated database private to the calling test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "=", "_", "&", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql pool: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedGeneralKnowledge stores seed.SampleQuiz and returns it with IDs filled in.
func SeedGeneralKnowledge(t *testing.T, db *gorm.DB) (model.Quiz, []model.Question) {
	t.Helper()

	quiz := seed.SampleQuiz()
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz, quiz.Questions
}

// SeedQuiz stores a quiz with n two-option questions whose answer is option 1.
func SeedQuiz(t *testing.T, db *gorm.DB, title string, n int) (model.Quiz, []model.Question) {
	t.Helper()

	quiz := model.Quiz{Title: title, IsActive: true}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			QuestionText:  fmt.Sprintf("%s question %d", title, i+1),
			Option1:       "yes",
			Option2:       "no",
			CorrectOption: 1,
		})
	}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz, quiz.Questions
}

// Count returns the number of rows of the model's table.
func Count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
