package model

import (
	"time"
)

// UserQuizAttempt is written once by the submission workflow and never updated.
type UserQuizAttempt struct {
	ID             uint         `gorm:"primarykey" json:"id"`
	UserID         *uint        `json:"user_id,omitempty" gorm:"index"`
	UserName       string       `json:"user_name" gorm:"not null"`
	QuizID         uint         `json:"quiz_id" gorm:"not null;index"`
	Quiz           Quiz         `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Score          int          `json:"score" gorm:"not null"`
	TotalQuestions int          `json:"total_questions" gorm:"not null"`
	CompletedAt    time.Time    `json:"completed_at" gorm:"not null"`
	Answers        []UserAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (UserQuizAttempt) TableName() string { return "user_quiz_attempts" }
