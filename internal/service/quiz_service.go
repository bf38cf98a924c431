package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type QuizService interface {
	CreateQuiz(ctx context.Context, req dto.QuizCreateDTO) (*dto.QuizSummaryDTO, error)
	ListQuizzes(ctx context.Context, skip, limit int) ([]dto.QuizSummaryDTO, error)
	GetQuiz(ctx context.Context, quizID uint) (*dto.QuizDetailDTO, error)
	AddQuestion(ctx context.Context, quizID uint, req dto.QuestionCreateDTO) (*dto.QuestionCreatedDTO, error)
	DeleteQuestion(ctx context.Context, questionID uint) error
}

type quizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.UserAnswerRepository
	db           *gorm.DB // For transactions
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.UserAnswerRepository,
	db *gorm.DB,
) QuizService {
	return &quizService{quizRepo: quizRepo, questionRepo: questionRepo, answerRepo: answerRepo, db: db}
}

func (s *quizService) CreateQuiz(ctx context.Context, req dto.QuizCreateDTO) (*dto.QuizSummaryDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	quiz := model.Quiz{
		Title:       title,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.quizRepo.Create(ctx, &quiz); err != nil {
		log.Error().Err(err).Msg("Failed to create quiz in database")
		return nil, fmt.Errorf("database error creating quiz: %w: %w", ErrStore, err)
	}
	log.Info().Uint("quizID", quiz.ID).Str("title", quiz.Title).Msg("Quiz created")

	var resp dto.QuizSummaryDTO
	if err := copier.Copy(&resp, &quiz); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

// ListQuizzes pages through quizzes in creation order. A non-positive limit
// falls back to DefaultPageLimit; larger limits are capped at MaxPageLimit.
func (s *quizService) ListQuizzes(ctx context.Context, skip, limit int) ([]dto.QuizSummaryDTO, error) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}

	quizzes, err := s.quizRepo.List(ctx, skip, limit)
	if err != nil {
		log.Error().Err(err).Int("skip", skip).Int("limit", limit).Msg("Failed to list quizzes from repository")
		return nil, fmt.Errorf("error fetching quizzes: %w: %w", ErrStore, err)
	}

	resp := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	if err := copier.Copy(&resp, &quizzes); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

// GetQuiz returns the quiz with its questions, without the answer key.
func (s *quizService) GetQuiz(ctx context.Context, quizID uint) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("quiz %d %w", quizID, ErrNotFound)
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to get quiz details from repository")
		return nil, fmt.Errorf("loading quiz %d: %w: %w", quizID, ErrStore, err)
	}

	resp := dto.QuizDetailDTO{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]dto.QuestionPublicDTO, 0, len(quiz.Questions)),
	}
	if err := copier.Copy(&resp.Questions, &quiz.Questions); err != nil {
		log.Error().Err(err).Msg("Failed to copy questions to public DTO")
		return nil, fmt.Errorf("error preparing quiz details response: %w", err)
	}
	return &resp, nil
}

func validateQuestion(req dto.QuestionCreateDTO) error {
	if strings.TrimSpace(req.QuestionText) == "" {
		return fmt.Errorf("%w: question_text must not be blank", ErrValidation)
	}
	if strings.TrimSpace(req.Option1) == "" || strings.TrimSpace(req.Option2) == "" {
		return fmt.Errorf("%w: option1 and option2 are required", ErrValidation)
	}
	if req.CorrectOption < model.MinOption || req.CorrectOption > model.MaxOption {
		return fmt.Errorf("%w: correct_option must be between %d and %d", ErrValidation, model.MinOption, model.MaxOption)
	}
	return nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID uint, req dto.QuestionCreateDTO) (*dto.QuestionCreatedDTO, error) {
	if _, err := s.quizRepo.FindByID(ctx, quizID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("quiz %d %w", quizID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading quiz %d: %w: %w", quizID, ErrStore, err)
	}
	if err := validateQuestion(req); err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("AddQuestion: Rejected question")
		return nil, err
	}

	var question model.Question
	if err := copier.Copy(&question, &req); err != nil {
		return nil, fmt.Errorf("error preparing question: %w", err)
	}
	question.QuizID = quizID

	if err := s.questionRepo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to create question in database")
		return nil, fmt.Errorf("database error creating question: %w: %w", ErrStore, err)
	}
	log.Info().Uint("questionID", question.ID).Uint("quizID", quizID).Msg("Question added")

	return &dto.QuestionCreatedDTO{Message: "Question added successfully", QuestionID: question.ID}, nil
}

// DeleteQuestion removes the answers recorded for the question and then the
// question itself, atomically.
func (s *quizService) DeleteQuestion(ctx context.Context, questionID uint) error {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("question %d %w", questionID, ErrNotFound)
		}
		return fmt.Errorf("loading question %d: %w: %w", questionID, ErrStore, err)
	}

	var removedAnswers int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.answerRepo.WithTx(tx).DeleteByQuestionID(ctx, questionID)
		if err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}
		removedAnswers = n
		return s.questionRepo.WithTx(tx).Delete(ctx, questionID)
	})
	if err != nil {
		if isNotFound(err) {
			// Deleted concurrently between the lookup and the transaction.
			return fmt.Errorf("question %d %w", questionID, ErrNotFound)
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("DeleteQuestion: Transaction rolled back")
		return fmt.Errorf("deleting question %d: %w: %w", questionID, ErrStore, err)
	}

	log.Info().Uint("questionID", questionID).Int64("answersRemoved", removedAnswers).Msg("Question deleted")
	return nil
}
