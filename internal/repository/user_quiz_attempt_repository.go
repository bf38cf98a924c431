package repository

import (
	"context"

	"github.com/lshigami/quizhost/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserQuizAttemptRepository interface {
	Create(ctx context.Context, attempt *model.UserQuizAttempt) error
	FindByIDWithDetails(ctx context.Context, id uint) (*model.UserQuizAttempt, error)
	FindAllByQuiz(ctx context.Context, quizID uint, userName *string) ([]model.UserQuizAttempt, error)
	WithTx(tx *gorm.DB) UserQuizAttemptRepository
}

type userQuizAttemptRepository struct {
	db *gorm.DB
}

func NewUserQuizAttemptRepository(db *gorm.DB) UserQuizAttemptRepository {
	return &userQuizAttemptRepository{db: db}
}

func (r *userQuizAttemptRepository) WithTx(tx *gorm.DB) UserQuizAttemptRepository {
	return &userQuizAttemptRepository{db: tx}
}

// Create inserts the attempt row alone; answers are written separately once
// the generated ID is known.
func (r *userQuizAttemptRepository) Create(ctx context.Context, attempt *model.UserQuizAttempt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(attempt).Error
}

func (r *userQuizAttemptRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.UserQuizAttempt, error) {
	var attempt model.UserQuizAttempt
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_answers.question_id ASC")
		}).
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *userQuizAttemptRepository) FindAllByQuiz(ctx context.Context, quizID uint, userName *string) ([]model.UserQuizAttempt, error) {
	var attempts []model.UserQuizAttempt
	query := r.db.WithContext(ctx).Where("quiz_id = ?", quizID)
	if userName != nil {
		query = query.Where("user_name = ?", *userName)
	}
	err := query.Order("completed_at DESC").Order("id DESC").Find(&attempts).Error
	return attempts, err
}
