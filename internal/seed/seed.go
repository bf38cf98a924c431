// Package seed populates a fresh database with the default admin account and
// the sample quiz.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@example.com"
)

func strPtr(s string) *string { return &s }

// SampleQuiz returns the "General Knowledge Quiz"; its answer key is 3, 2, 2, 3, 4.
func SampleQuiz() model.Quiz {
	return model.Quiz{
		Title:       "General Knowledge Quiz",
		Description: strPtr("Test your general knowledge with this fun quiz!"),
		IsActive:    true,
		Questions: []model.Question{
			{QuestionText: "What is the capital of France?", Option1: "London", Option2: "Berlin", Option3: strPtr("Paris"), Option4: strPtr("Madrid"), CorrectOption: 3},
			{QuestionText: "Which planet is known as the Red Planet?", Option1: "Venus", Option2: "Mars", Option3: strPtr("Jupiter"), Option4: strPtr("Saturn"), CorrectOption: 2},
			{QuestionText: "What is 2 + 2?", Option1: "3", Option2: "4", Option3: strPtr("5"), Option4: strPtr("6"), CorrectOption: 2},
			{QuestionText: "Who painted the Mona Lisa?", Option1: "Vincent van Gogh", Option2: "Pablo Picasso", Option3: strPtr("Leonardo da Vinci"), Option4: strPtr("Michelangelo"), CorrectOption: 3},
			{QuestionText: "What is the largest ocean on Earth?", Option1: "Atlantic Ocean", Option2: "Indian Ocean", Option3: strPtr("Arctic Ocean"), Option4: strPtr("Pacific Ocean"), CorrectOption: 4},
		},
	}
}

type Seeder struct {
	quizRepo repository.QuizRepository
	userRepo repository.UserRepository
}

func NewSeeder(quizRepo repository.QuizRepository, userRepo repository.UserRepository) *Seeder {
	return &Seeder{quizRepo: quizRepo, userRepo: userRepo}
}

// EnsureAdmin creates the admin account unless it already exists.
func (s *Seeder) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	_, err := s.userRepo.FindByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := model.User{
		Username:       AdminUsername,
		Email:          AdminEmail,
		HashedPassword: string(hash),
		IsActive:       true,
		IsAdmin:        true,
	}
	if err := s.userRepo.Create(ctx, &admin); err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}
	log.Info().Uint("userID", admin.ID).Msg("Created default admin user")
	return true, nil
}

// EnsureSampleQuiz stores SampleQuiz when the store holds no quiz at all.
func (s *Seeder) EnsureSampleQuiz(ctx context.Context) (*model.Quiz, error) {
	n, err := s.quizRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count quizzes: %w", err)
	}
	if n > 0 {
		log.Info().Int64("quizzes", n).Msg("Quizzes already present, skipping sample data")
		return nil, nil
	}
	quiz := SampleQuiz()
	if err := s.quizRepo.Create(ctx, &quiz); err != nil {
		return nil, fmt.Errorf("create sample quiz: %w", err)
	}
	log.Info().Uint("quizID", quiz.ID).Msg("Sample data created")
	return &quiz, nil
}
