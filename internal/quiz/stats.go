package quiz

import (
	"strconv"

	"github.com/RyoWakabayashi/pm-study/internal/models"
)

const PassRate = 70.0

// AccuracyRate formats correct/total as a percentage with one decimal,
// or "0" when nothing was answered.
func AccuracyRate(correct, total int) string {
	if total == 0 {
		return "0"
	}
	return strconv.FormatFloat(accuracy(correct, total), 'f', 1, 64)
}

func Passed(correct, total int) bool {
	if total == 0 {
		return false
	}
	return accuracy(correct, total) >= PassRate
}

func accuracy(correct, total int) float64 {
	return float64(correct) / float64(total) * 100
}

type IncorrectItem struct {
	Question models.Question
	Answer   models.Answer
}

type Summary struct {
	ExamID    string
	Correct   int
	Incorrect int
	Answered  int
	Total     int
	Remaining int
	Accuracy  string
	Passed    bool
	Wrong     []IncorrectItem
}

// Summarize builds the final results of a session. Wrong answers whose
// question is no longer in the list are skipped.
func Summarize(e *Engine) Summary {
	p := e.Progress()

	s := Summary{
		ExamID:    p.ExamID,
		Correct:   p.CorrectCount,
		Incorrect: p.IncorrectCount,
		Answered:  p.TotalAnswered,
		Total:     p.TotalQuestions,
		Remaining: p.TotalQuestions - p.TotalAnswered,
		Accuracy:  AccuracyRate(p.CorrectCount, p.TotalAnswered),
		Passed:    Passed(p.CorrectCount, p.TotalAnswered),
	}

	for _, a := range p.Answers {
		if a.Correct {
			continue
		}
		q, ok := e.QuestionByKey(a.Key())
		if !ok {
			continue
		}
		s.Wrong = append(s.Wrong, IncorrectItem{Question: q, Answer: a})
	}

	return s
}
