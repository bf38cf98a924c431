package model

type UserAnswer struct {
	ID             uint     `gorm:"primarykey" json:"id"`
	AttemptID      uint     `json:"attempt_id" gorm:"not null;index"`
	QuestionID     uint     `json:"question_id" gorm:"not null;index"`
	Question       Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption int      `json:"selected_option" gorm:"not null;default:0"`
	IsCorrect      bool     `json:"is_correct" gorm:"not null"`
}

func (UserAnswer) TableName() string { return "user_answers" }
