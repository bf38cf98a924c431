package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/model"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/lshigami/quizhost/internal/testdb"
	"gorm.io/gorm"
)

func newQuizService(db *gorm.DB) QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewUserAnswerRepository(db),
		db,
	)
}

func strPtr(s string) *string { return &s }

func validQuestion(correct int) dto.QuestionCreateDTO {
	return dto.QuestionCreateDTO{
		QuestionText:  "Which gas do plants absorb?",
		Option1:       "Oxygen",
		Option2:       "Carbon dioxide",
		Option3:       strPtr("Nitrogen"),
		Option4:       strPtr("Helium"),
		CorrectOption: correct,
	}
}

func TestCreateQuiz(t *testing.T) {
	db := testdb.Open(t)
	svc := newQuizService(db)
	ctx := context.Background()

	created, err := svc.CreateQuiz(ctx, dto.QuizCreateDTO{Title: "  Science  ", Description: strPtr("Basics")})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if created.ID == 0 || created.Title != "Science" || created.Description == nil || *created.Description != "Basics" {
		t.Errorf("created = %+v", created)
	}

	var stored model.Quiz
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if !stored.IsActive {
		t.Error("quiz should default to active")
	}

	inactive := false
	hidden, err := svc.CreateQuiz(ctx, dto.QuizCreateDTO{Title: "Draft", IsActive: &inactive})
	if err != nil {
		t.Fatalf("CreateQuiz(draft): %v", err)
	}
	var draft model.Quiz
	if err := db.First(&draft, hidden.ID).Error; err != nil {
		t.Fatalf("load draft quiz: %v", err)
	}
	if draft.IsActive {
		t.Error("explicit is_active=false was not kept")
	}

	if _, err := svc.CreateQuiz(ctx, dto.QuizCreateDTO{Title: "   "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title err = %v, want ErrValidation", err)
	}
}

func TestListQuizzesPaging(t *testing.T) {
	db := testdb.Open(t)
	for i := 1; i <= 12; i++ {
		testdb.SeedQuiz(t, db, fmt.Sprintf("Quiz %02d", i), 0)
	}
	svc := newQuizService(db)
	ctx := context.Background()

	tests := []struct {
		name        string
		skip, limit int
		wantLen     int
		wantFirst   string
	}{
		{"defaults", 0, 0, DefaultPageLimit, "Quiz 01"},
		{"second page", 10, 10, 2, "Quiz 11"},
		{"small limit", 3, 2, 2, "Quiz 04"},
		{"negative skip", -5, 1, 1, "Quiz 01"},
		{"past the end", 50, 10, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListQuizzes(ctx, tt.skip, tt.limit)
			if err != nil {
				t.Fatalf("ListQuizzes: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].Title != tt.wantFirst {
				t.Errorf("first = %q, want %q", got[0].Title, tt.wantFirst)
			}
		})
	}
}

func TestGetQuizWithholdsAnswerKey(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedGeneralKnowledge(t, db)
	svc := newQuizService(db)

	detail, err := svc.GetQuiz(context.Background(), quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if detail.Title != quiz.Title || len(detail.Questions) != len(qs) {
		t.Fatalf("detail = %+v", detail)
	}
	for i, q := range detail.Questions {
		if q.ID != qs[i].ID || q.QuestionText != qs[i].QuestionText || q.Option1 != qs[i].Option1 {
			t.Errorf("question %d = %+v", i, q)
		}
		if q.Option3 == nil || *q.Option3 != *qs[i].Option3 {
			t.Errorf("question %d option3 = %v", i, q.Option3)
		}
	}

	if _, err := svc.GetQuiz(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing quiz err = %v, want ErrNotFound", err)
	}
}

func TestAddQuestionValidatesCorrectOption(t *testing.T) {
	db := testdb.Open(t)
	quiz, _ := testdb.SeedQuiz(t, db, "Science", 0)
	svc := newQuizService(db)
	questions := repository.NewQuestionRepository(db)
	ctx := context.Background()

	for _, bad := range []int{0, 5, -1} {
		if _, err := svc.AddQuestion(ctx, quiz.ID, validQuestion(bad)); !errors.Is(err, ErrValidation) {
			t.Errorf("correct_option=%d err = %v, want ErrValidation", bad, err)
		}
	}
	if n := testdb.Count(t, db, &model.Question{}); n != 0 {
		t.Fatalf("questions after rejected inserts = %d", n)
	}

	for correct := model.MinOption; correct <= model.MaxOption; correct++ {
		created, err := svc.AddQuestion(ctx, quiz.ID, validQuestion(correct))
		if err != nil {
			t.Fatalf("correct_option=%d: %v", correct, err)
		}
		if created.Message != "Question added successfully" || created.QuestionID == 0 {
			t.Errorf("created = %+v", created)
		}
		stored, err := questions.FindByID(ctx, created.QuestionID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if stored.CorrectOption != correct || stored.QuizID != quiz.ID {
			t.Errorf("stored = %+v, want correct option %d", stored, correct)
		}
	}
}

func TestAddQuestionWithTwoOptions(t *testing.T) {
	db := testdb.Open(t)
	quiz, _ := testdb.SeedQuiz(t, db, "True or false", 0)
	svc := newQuizService(db)

	req := dto.QuestionCreateDTO{QuestionText: "The sky is blue", Option1: "True", Option2: "False", CorrectOption: 1}
	created, err := svc.AddQuestion(context.Background(), quiz.ID, req)
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	stored, err := repository.NewQuestionRepository(db).FindByID(context.Background(), created.QuestionID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Option3 != nil || stored.Option4 != nil {
		t.Errorf("optional options = %v / %v, want nil", stored.Option3, stored.Option4)
	}

	req.Option2 = "  "
	if _, err := svc.AddQuestion(context.Background(), quiz.ID, req); !errors.Is(err, ErrValidation) {
		t.Errorf("blank option2 err = %v, want ErrValidation", err)
	}
}

func TestAddQuestionUnknownQuiz(t *testing.T) {
	db := testdb.Open(t)
	svc := newQuizService(db)

	// The quiz check comes first, so even an invalid question reports not found.
	if _, err := svc.AddQuestion(context.Background(), 77, validQuestion(9)); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteQuestionRemovesDependentAnswers(t *testing.T) {
	db := testdb.Open(t)
	quiz, qs := testdb.SeedGeneralKnowledge(t, db)
	svc := newQuizService(db)
	submissions := newSubmissionService(db)
	ctx := context.Background()

	res, err := submissions.Submit(ctx, quiz.ID, "mallory", map[uint]int{qs[0].ID: 3, qs[1].ID: 2})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.DeleteQuestion(ctx, qs[0].ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	if _, err := repository.NewQuestionRepository(db).FindByID(ctx, qs[0].ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("question still present: %v", err)
	}
	var orphans int64
	if err := db.Model(&model.UserAnswer{}).Where("question_id = ?", qs[0].ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if orphans != 0 {
		t.Errorf("answers still referencing deleted question = %d", orphans)
	}
	if left := answersOf(t, db, res.AttemptID); len(left) != len(qs)-1 {
		t.Errorf("remaining answers = %d, want %d", len(left), len(qs)-1)
	}

	if err := svc.DeleteQuestion(ctx, qs[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
