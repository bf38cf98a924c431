package service

import (
	"github.com/lshigami/quizhost/internal/model"
)

// ScoreSheet is the outcome of grading one submission against a quiz.
type ScoreSheet struct {
	Score   int
	Total   int
	Answers []model.UserAnswer
	// Ignored lists submitted question IDs that are not part of the quiz.
	Ignored []uint
	// OutOfRange lists questions whose selection was outside 1-4 and was
	// recorded as unanswered.
	OutOfRange []uint
}

// ScoreSubmission grades selections against the answer key of questions.
// Every question yields exactly one answer; missing selections are recorded as
// model.Unanswered, and so are selections outside the option range. The
// returned answers have no AttemptID yet.
func ScoreSubmission(questions []model.Question, selections map[uint]int) ScoreSheet {
	sheet := ScoreSheet{
		Total:   len(questions),
		Answers: make([]model.UserAnswer, 0, len(questions)),
	}

	known := make(map[uint]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}

		selected, ok := selections[q.ID]
		switch {
		case !ok:
			selected = model.Unanswered
		case selected != model.Unanswered && (selected < model.MinOption || selected > model.MaxOption):
			sheet.OutOfRange = append(sheet.OutOfRange, q.ID)
			selected = model.Unanswered
		}
		correct := q.IsCorrect(selected)
		if correct {
			sheet.Score++
		}
		sheet.Answers = append(sheet.Answers, model.UserAnswer{
			QuestionID:     q.ID,
			SelectedOption: selected,
			IsCorrect:      correct,
		})
	}

	for id := range selections {
		if _, ok := known[id]; !ok {
			sheet.Ignored = append(sheet.Ignored, id)
		}
	}
	return sheet
}

// Percentage returns score/total*100, or 0 for an empty quiz.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
