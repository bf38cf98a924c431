package model

import (
	"time"
)

const (
	MinOption = 1
	MaxOption = 4
	// Unanswered is recorded for questions missing from a submission.
	Unanswered = 0
)

type Question struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	QuizID        uint      `json:"quiz_id" gorm:"not null;index"`
	QuestionText  string    `json:"question_text" gorm:"type:text;not null"`
	Option1       string    `json:"option1" gorm:"not null"`
	Option2       string    `json:"option2" gorm:"not null"`
	Option3       *string   `json:"option3,omitempty"`
	Option4       *string   `json:"option4,omitempty"`
	CorrectOption int       `json:"correct_option" gorm:"not null;check:chk_questions_correct_option,correct_option BETWEEN 1 AND 4"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Question) TableName() string { return "questions" }

// IsCorrect reports whether selected matches the answer key. Unanswered and
// out-of-range selections never match.
func (q Question) IsCorrect(selected int) bool {
	return selected >= MinOption && selected <= MaxOption && selected == q.CorrectOption
}
