package repository

import (
	"context"

	"github.com/lshigami/quizhost/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserAnswerRepository interface {
	CreateBatch(ctx context.Context, answers []model.UserAnswer) error
	FindByAttemptID(ctx context.Context, attemptID uint) ([]model.UserAnswer, error)
	CountByAttemptID(ctx context.Context, attemptID uint) (int64, error)
	DeleteByQuestionID(ctx context.Context, questionID uint) (int64, error)
	WithTx(tx *gorm.DB) UserAnswerRepository
}

type userAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: db}
}

func (r *userAnswerRepository) WithTx(tx *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: tx}
}

func (r *userAnswerRepository) CreateBatch(ctx context.Context, answers []model.UserAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(answers, 100).Error
}

func (r *userAnswerRepository) FindByAttemptID(ctx context.Context, attemptID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error
	return answers, err
}

func (r *userAnswerRepository) CountByAttemptID(ctx context.Context, attemptID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserAnswer{}).Where("attempt_id = ?", attemptID).Count(&n).Error
	return n, err
}

func (r *userAnswerRepository) DeleteByQuestionID(ctx context.Context, questionID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&model.UserAnswer{})
	return result.RowsAffected, result.Error
}
