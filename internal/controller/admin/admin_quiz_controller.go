package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhost/internal/controller"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminQuizController struct {
	quizService service.QuizService
}

func NewAdminQuizController(quizService service.QuizService) *AdminQuizController {
	return &AdminQuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz
// @Description Creates an empty quiz; questions are added one by one afterwards.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateDTO true "Quiz data"
// @Success 201 {object} dto.QuizSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/ [post]
func (a *AdminQuizController) CreateQuiz(c *gin.Context) {
	var req dto.QuizCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	quiz, err := a.quizService.CreateQuiz(c.Request.Context(), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to a quiz
// @Description option3 and option4 are optional; correct_option must be between 1 and 4.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 200 {object} dto.QuestionCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or correct_option out of range"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/questions [post]
func (a *AdminQuizController) AddQuestion(c *gin.Context) {
	quizID, ok := controller.ParseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	created, err := a.quizService.AddQuestion(c.Request.Context(), quizID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Removes the answers recorded for the question, then the question.
// @Tags Quizzes
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /quizzes/questions/{question_id} [delete]
func (a *AdminQuizController) DeleteQuestion(c *gin.Context) {
	questionID, ok := controller.ParseIDParam(c, "question_id")
	if !ok {
		return
	}
	if err := a.quizService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Uint("questionID", questionID).Msg("Admin DeleteQuestion: done")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted successfully"})
}
