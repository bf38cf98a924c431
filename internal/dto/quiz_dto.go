package dto

import "time"

// QuizSummaryDTO is one entry of the quiz listing.
type QuizSummaryDTO struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// QuestionPublicDTO is a question as shown to quiz takers, without the answer key.
type QuestionPublicDTO struct {
	ID           uint    `json:"id"`
	QuestionText string  `json:"question_text"`
	Option1      string  `json:"option1"`
	Option2      string  `json:"option2"`
	Option3      *string `json:"option3"`
	Option4      *string `json:"option4"`
}

type QuizDetailDTO struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Questions   []QuestionPublicDTO `json:"questions"`
}

type QuestionCreatedDTO struct {
	Message    string `json:"message"`
	QuestionID uint   `json:"question_id"`
}

// --- Submissions and attempt history ---

// SubmissionResultDTO is the normalized outcome of a scored submission.
type SubmissionResultDTO struct {
	AttemptID  uint    `json:"attempt_id"`
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type AttemptSummaryDTO struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quiz_id"`
	UserName       string    `json:"user_name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

type AnswerDetailDTO struct {
	QuestionID     uint   `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedOption int    `json:"selected_option"`
	CorrectOption  int    `json:"correct_option"`
	IsCorrect      bool   `json:"is_correct"`
}

type AttemptDetailDTO struct {
	ID             uint              `json:"id"`
	QuizID         uint              `json:"quiz_id"`
	QuizTitle      string            `json:"quiz_title"`
	UserName       string            `json:"user_name"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Percentage     float64           `json:"percentage"`
	CompletedAt    time.Time         `json:"completed_at"`
	Answers        []AnswerDetailDTO `json:"answers"`
}
