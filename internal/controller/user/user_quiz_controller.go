package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhost/internal/controller"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/service"
	"github.com/rs/zerolog/log"
)

type UserQuizController struct {
	quizService       service.QuizService
	submissionService service.SubmissionService
}

func NewUserQuizController(qs service.QuizService, ss service.SubmissionService) *UserQuizController {
	return &UserQuizController{
		quizService:       qs,
		submissionService: ss,
	}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags Quizzes
// @Produce json
// @Param skip query int false "Number of quizzes to skip"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Router /quizzes/ [get]
func (u *UserQuizController) ListQuizzes(c *gin.Context) {
	var q dto.QuizListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	quizzes, err := u.quizService.ListQuizzes(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description The answer key is not included.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (u *UserQuizController) GetQuiz(c *gin.Context) {
	quizID, ok := controller.ParseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	quiz, err := u.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit answers for a quiz
// @Description Scores the submission and stores the attempt with one answer per question. Missing questions count as unanswered.
// @Tags User Quiz
// @Accept json
// @Produce json
// @Param submission body dto.QuizSubmissionDTO true "Quiz ID, answers keyed by question ID, submitter name"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Error recording submission"
// @Router /user-quiz/submit [post]
func (u *UserQuizController) SubmitQuiz(c *gin.Context) {
	var req dto.QuizSubmissionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	log.Info().Uint("quizID", req.QuizID).Str("userName", req.UserName).Int("answerCount", len(req.Answers)).Msg("Received quiz submission")

	result, err := u.submissionService.Submit(c.Request.Context(), req.QuizID, req.UserName, req.Answers)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAttempt godoc
// @Summary Get a recorded attempt
// @Tags User Quiz
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /user-quiz/attempts/{attempt_id} [get]
func (u *UserQuizController) GetAttempt(c *gin.Context) {
	attemptID, ok := controller.ParseIDParam(c, "attempt_id")
	if !ok {
		return
	}
	detail, err := u.submissionService.GetAttemptDetails(c.Request.Context(), attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListAttempts godoc
// @Summary List attempts of a quiz
// @Tags User Quiz
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_name query string false "Only attempts by this submitter"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/attempts [get]
func (u *UserQuizController) ListAttempts(c *gin.Context) {
	quizID, ok := controller.ParseIDParam(c, "quiz_id")
	if !ok {
		return
	}
	var q dto.AttemptListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	attempts, err := u.submissionService.ListAttempts(c.Request.Context(), quizID, q.UserName)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}
