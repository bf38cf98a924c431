package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService scores quiz submissions and serves the attempt history.
type SubmissionService interface {
	Submit(ctx context.Context, quizID uint, userName string, answers map[uint]int) (*dto.SubmissionResultDTO, error)
	GetAttemptDetails(ctx context.Context, attemptID uint) (*dto.AttemptDetailDTO, error)
	ListAttempts(ctx context.Context, quizID uint, userName *string) ([]dto.AttemptSummaryDTO, error)
}

type submissionService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.UserQuizAttemptRepository
	answerRepo  repository.UserAnswerRepository
	db          *gorm.DB // Used for the attempt+answers transaction
	now         func() time.Time
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.UserQuizAttemptRepository,
	answerRepo repository.UserAnswerRepository,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		db:          db,
		now:         time.Now,
	}
}

// Submit grades answers against the quiz's current questions and stores the
// attempt together with one answer per question in a single transaction.
func (s *submissionService) Submit(ctx context.Context, quizID uint, userName string, answers map[uint]int) (*dto.SubmissionResultDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		if isNotFound(err) {
			log.Warn().Uint("quizID", quizID).Msg("Submit: Quiz not found")
			return nil, fmt.Errorf("quiz %d %w", quizID, ErrNotFound)
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("Submit: Failed to load quiz")
		return nil, fmt.Errorf("loading quiz %d: %w: %w", quizID, ErrStore, err)
	}

	sheet := ScoreSubmission(quiz.Questions, answers)
	if len(sheet.Ignored) > 0 {
		log.Warn().Uint("quizID", quizID).Interface("questionIDs", sheet.Ignored).Msg("Submit: Answers for questions outside this quiz were ignored")
	}
	if len(sheet.OutOfRange) > 0 {
		log.Warn().Uint("quizID", quizID).Interface("questionIDs", sheet.OutOfRange).Msg("Submit: Out-of-range selections recorded as unanswered")
	}

	attempt := model.UserQuizAttempt{
		UserID:         nil, // Submissions are anonymous
		UserName:       userName,
		QuizID:         quiz.ID,
		Score:          sheet.Score,
		TotalQuestions: sheet.Total,
		CompletedAt:    s.now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.WithTx(tx).Create(ctx, &attempt); err != nil {
			return fmt.Errorf("failed to create attempt record: %w", err)
		}
		for i := range sheet.Answers {
			sheet.Answers[i].AttemptID = attempt.ID
		}
		if err := s.answerRepo.WithTx(tx).CreateBatch(ctx, sheet.Answers); err != nil {
			return fmt.Errorf("failed to create answer records: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Submit: Transaction rolled back")
		return nil, fmt.Errorf("recording submission for quiz %d: %w: %w", quizID, ErrStore, err)
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("quizID", quiz.ID).
		Int("score", sheet.Score).
		Int("total", sheet.Total).
		Msg("Submission recorded")

	return &dto.SubmissionResultDTO{
		AttemptID:  attempt.ID,
		Score:      sheet.Score,
		Total:      sheet.Total,
		Percentage: Percentage(sheet.Score, sheet.Total),
	}, nil
}

// GetAttemptDetails reads back an attempt with its answers in question order.
func (s *submissionService) GetAttemptDetails(ctx context.Context, attemptID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(ctx, attemptID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("attempt %d %w", attemptID, ErrNotFound)
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: Failed to load attempt")
		return nil, fmt.Errorf("loading attempt %d: %w: %w", attemptID, ErrStore, err)
	}

	var resp dto.AttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Msg("GetAttemptDetails: Failed to copy attempt model to DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	resp.QuizTitle = attempt.Quiz.Title
	resp.Percentage = Percentage(attempt.Score, attempt.TotalQuestions)

	resp.Answers = make([]dto.AnswerDetailDTO, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		resp.Answers = append(resp.Answers, dto.AnswerDetailDTO{
			QuestionID:     a.QuestionID,
			QuestionText:   a.Question.QuestionText,
			SelectedOption: a.SelectedOption,
			CorrectOption:  a.Question.CorrectOption,
			IsCorrect:      a.IsCorrect,
		})
	}
	return &resp, nil
}

// ListAttempts returns the quiz's attempts, newest first, optionally limited
// to one submitter name.
func (s *submissionService) ListAttempts(ctx context.Context, quizID uint, userName *string) ([]dto.AttemptSummaryDTO, error) {
	if _, err := s.quizRepo.FindByID(ctx, quizID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("quiz %d %w", quizID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading quiz %d: %w: %w", quizID, ErrStore, err)
	}

	attempts, err := s.attemptRepo.FindAllByQuiz(ctx, quizID, userName)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("ListAttempts: Failed to find attempts")
		return nil, fmt.Errorf("listing attempts for quiz %d: %w: %w", quizID, ErrStore, err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, a := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &a); err != nil {
			log.Error().Err(err).Uint("attemptID", a.ID).Msg("ListAttempts: Error copying attempt to summary DTO")
			continue
		}
		summary.Percentage = Percentage(a.Score, a.TotalQuestions)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
