package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/lshigami/quizhost/internal/testdb"
	"gorm.io/gorm"
)

func newSubmissionService(db *gorm.DB) *submissionService {
	svc := NewSubmissionService(
		repository.NewQuizRepository(db),
		repository.NewUserQuizAttemptRepository(db),
		repository.NewUserAnswerRepository(db),
		db,
	).(*submissionService)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }
	return svc
}

func answersOf(t *testing.T, db *gorm.DB, attemptID uint) []model.UserAnswer {
	t.Helper()
	answers, err := repository.NewUserAnswerRepository(db).FindByAttemptID(context.Background(), attemptID)
	if err != nil {
		t.Fatalf("FindByAttemptID: %v", err)
	}
	return answers
}

func TestSubmitAllCorrect(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedGeneralKnowledge(t, db)
	svc := newSubmissionService(db)

	res, err := svc.Submit(context.Background(), quiz.ID, "alice", map[uint]int{
		qs[0].ID: 3, qs[1].ID: 2, qs[2].ID: 2, qs[3].ID: 3, qs[4].ID: 4,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 5 || res.Total != 5 || res.Percentage != 100.0 {
		t.Errorf("result = %+v, want 5/5 100%%", res)
	}
	if res.AttemptID == 0 {
		t.Error("attempt id not set")
	}

	var attempt model.UserQuizAttempt
	if err := db.First(&attempt, res.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if attempt.UserName != "alice" || attempt.UserID != nil {
		t.Errorf("attempt submitter = %q / %v", attempt.UserName, attempt.UserID)
	}
	if attempt.Score != 5 || attempt.TotalQuestions != 5 {
		t.Errorf("attempt = %+v", attempt)
	}
	if !attempt.CompletedAt.Equal(svc.now()) {
		t.Errorf("completed_at = %v", attempt.CompletedAt)
	}
}

func TestSubmitOmittedQuestionIsRecordedUnanswered(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedGeneralKnowledge(t, db)
	svc := newSubmissionService(db)

	res, err := svc.Submit(context.Background(), quiz.ID, "bob", map[uint]int{
		qs[0].ID: 3, qs[1].ID: 2, qs[3].ID: 3, qs[4].ID: 4,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 4 || res.Total != 5 || res.Percentage != 80.0 {
		t.Errorf("result = %+v, want 4/5 80%%", res)
	}

	answers := answersOf(t, db, res.AttemptID)
	if len(answers) != 5 {
		t.Fatalf("answers = %d, want 5", len(answers))
	}
	for _, a := range answers {
		if a.QuestionID != qs[2].ID {
			continue
		}
		if a.SelectedOption != 0 || a.IsCorrect {
			t.Errorf("omitted question answer = %+v", a)
		}
	}
}

func TestSubmitEmptyMappingRecordsEveryQuestion(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedQuiz(t, db, "Empty", 7)
	svc := newSubmissionService(db)

	res, err := svc.Submit(context.Background(), quiz.ID, "carol", map[uint]int{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 0 || res.Total != len(qs) || res.Percentage != 0 {
		t.Errorf("result = %+v", res)
	}

	answers := answersOf(t, db, res.AttemptID)
	if len(answers) != len(qs) {
		t.Fatalf("answers = %d, want %d", len(answers), len(qs))
	}
	seen := map[uint]int{}
	for _, a := range answers {
		seen[a.QuestionID]++
		if a.SelectedOption != 0 || a.IsCorrect {
			t.Errorf("answer = %+v, want unanswered", a)
		}
	}
	for _, q := range qs {
		if seen[q.ID] != 1 {
			t.Errorf("question %d has %d answers, want exactly 1", q.ID, seen[q.ID])
		}
	}
}

func TestSubmitUnknownQuizCreatesNothing(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedGeneralKnowledge(t, db)
	svc := newSubmissionService(db)

	_, err := svc.Submit(context.Background(), 999, "dave", map[uint]int{1: 3})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n := testdb.Count(t, db, &model.UserQuizAttempt{}); n != 0 {
		t.Errorf("attempts = %d, want 0", n)
	}
	if n := testdb.Count(t, db, &model.UserAnswer{}); n != 0 {
		t.Errorf("answers = %d, want 0", n)
	}
}

func TestSubmitQuizWithoutQuestions(t *testing.T) {
	db := testdb.Open(t)
	quiz, _ := testdb.SeedQuiz(t, db, "Blank", 0)
	svc := newSubmissionService(db)

	res, err := svc.Submit(context.Background(), quiz.ID, "erin", nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 0 || res.Total != 0 || res.Percentage != 0 {
		t.Errorf("result = %+v", res)
	}
	if n := testdb.Count(t, db, &model.UserQuizAttempt{}); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}

func TestSubmitIgnoresQuestionsOfOtherQuizzes(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedQuiz(t, db, "Target", 2)
	_, foreign := testdb.SeedQuiz(t, db, "Other", 2)
	svc := newSubmissionService(db)

	res, err := svc.Submit(context.Background(), quiz.ID, "frank", map[uint]int{
		qs[0].ID: 1, foreign[0].ID: 1, foreign[1].ID: 1,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 1 || res.Total != 2 {
		t.Errorf("result = %+v, want 1/2", res)
	}
	for _, a := range answersOf(t, db, res.AttemptID) {
		if a.QuestionID == foreign[0].ID || a.QuestionID == foreign[1].ID {
			t.Errorf("answer recorded for foreign question %d", a.QuestionID)
		}
	}
}

func TestSubmitRollsBackAttemptWhenAnswersFail(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedGeneralKnowledge(t, db)
	svc := newSubmissionService(db)

	injected := errors.New("injected answer failure")
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_user_answers", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_answers" {
			_ = tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = svc.Submit(context.Background(), quiz.ID, "grace", map[uint]int{qs[0].ID: 3})
	if !errors.Is(err, ErrStore) {
		t.Fatalf("err = %v, want ErrStore", err)
	}
	if !errors.Is(err, injected) {
		t.Errorf("err = %v, want it to wrap the injected failure", err)
	}
	if n := testdb.Count(t, db, &model.UserQuizAttempt{}); n != 0 {
		t.Errorf("attempts = %d after rollback, want 0", n)
	}
	if n := testdb.Count(t, db, &model.UserAnswer{}); n != 0 {
		t.Errorf("answers = %d after rollback, want 0", n)
	}
}

func TestSubmitTotalIsFixedAtSubmissionTime(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedQuiz(t, db, "Growing", 2)
	svc := newSubmissionService(db)
	ctx := context.Background()

	first, err := svc.Submit(ctx, quiz.ID, "heidi", map[uint]int{qs[0].ID: 1, qs[1].ID: 1})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	extra := model.Question{QuizID: quiz.ID, QuestionText: "late", Option1: "a", Option2: "b", CorrectOption: 2}
	if err := db.Create(&extra).Error; err != nil {
		t.Fatalf("add question: %v", err)
	}

	detail, err := svc.GetAttemptDetails(ctx, first.AttemptID)
	if err != nil {
		t.Fatalf("GetAttemptDetails: %v", err)
	}
	if detail.TotalQuestions != 2 || len(detail.Answers) != 2 {
		t.Errorf("earlier attempt changed: total=%d answers=%d", detail.TotalQuestions, len(detail.Answers))
	}

	second, err := svc.Submit(ctx, quiz.ID, "heidi", map[uint]int{qs[0].ID: 1, qs[1].ID: 1})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if second.Total != 3 || second.Score != 2 {
		t.Errorf("second result = %+v, want 2/3", second)
	}
}

func TestGetAttemptDetailsReadsBackAnswers(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedGeneralKnowledge(t, db)
	svc := newSubmissionService(db)
	ctx := context.Background()

	res, err := svc.Submit(ctx, quiz.ID, "ivan", map[uint]int{qs[0].ID: 3, qs[1].ID: 1})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	detail, err := svc.GetAttemptDetails(ctx, res.AttemptID)
	if err != nil {
		t.Fatalf("GetAttemptDetails: %v", err)
	}
	if detail.ID != res.AttemptID || detail.QuizTitle != quiz.Title || detail.UserName != "ivan" {
		t.Errorf("detail header = %+v", detail)
	}
	if detail.Score != res.Score || detail.TotalQuestions != res.Total || detail.Percentage != res.Percentage {
		t.Errorf("detail score = %d/%d %v, result %+v", detail.Score, detail.TotalQuestions, detail.Percentage, res)
	}
	if len(detail.Answers) != res.Total {
		t.Fatalf("answers = %d, want %d", len(detail.Answers), res.Total)
	}
	first := detail.Answers[0]
	if first.QuestionID != qs[0].ID || first.SelectedOption != 3 || !first.IsCorrect || first.CorrectOption != 3 {
		t.Errorf("first answer = %+v", first)
	}
	if first.QuestionText != qs[0].QuestionText {
		t.Errorf("question text = %q", first.QuestionText)
	}
	second := detail.Answers[1]
	if second.SelectedOption != 1 || second.IsCorrect {
		t.Errorf("second answer = %+v", second)
	}

	if _, err := svc.GetAttemptDetails(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing attempt err = %v, want ErrNotFound", err)
	}
}

func TestListAttempts(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedQuiz(t, db, "History", 2)
	svc := newSubmissionService(db)
	ctx := context.Background()

	for _, name := range []string{"judy", "ken", "judy"} {
		if _, err := svc.Submit(ctx, quiz.ID, name, map[uint]int{qs[0].ID: 1}); err != nil {
			t.Fatalf("Submit(%s): %v", name, err)
		}
	}

	all, err := svc.ListAttempts(ctx, quiz.ID, nil)
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("attempts = %d, want 3", len(all))
	}
	if all[0].ID < all[1].ID || all[1].ID < all[2].ID {
		t.Errorf("attempts not newest first: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}
	if all[0].Percentage != 50 {
		t.Errorf("percentage = %v, want 50", all[0].Percentage)
	}

	name := "judy"
	judy, err := svc.ListAttempts(ctx, quiz.ID, &name)
	if err != nil {
		t.Fatalf("ListAttempts(judy): %v", err)
	}
	if len(judy) != 2 {
		t.Errorf("judy attempts = %d, want 2", len(judy))
	}

	if _, err := svc.ListAttempts(ctx, 999, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown quiz err = %v, want ErrNotFound", err)
	}
}
