package dto

// QuizCreateDTO is the admin payload for a new quiz.
type QuizCreateDTO struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// QuestionCreateDTO adds a question to an existing quiz. option3/option4 may be
// omitted; correct_option is range-checked by the service.
type QuestionCreateDTO struct {
	QuestionText  string  `json:"question_text" binding:"required"`
	Option1       string  `json:"option1" binding:"required"`
	Option2       string  `json:"option2" binding:"required"`
	Option3       *string `json:"option3"`
	Option4       *string `json:"option4"`
	CorrectOption int     `json:"correct_option"`
}

// QuizSubmissionDTO maps question IDs to the selected option (1-4). An absent
// or unknown quiz_id is answered with 404 by the service.
type QuizSubmissionDTO struct {
	QuizID   uint         `json:"quiz_id"`
	Answers  map[uint]int `json:"answers"`
	UserName string       `json:"user_name" binding:"required"`
}

type QuizListQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type AttemptListQuery struct {
	UserName *string `form:"user_name"`
}

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
