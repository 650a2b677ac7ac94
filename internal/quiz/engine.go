package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/models"
)

var (
	ErrEmptyQuestionSet = errors.New("empty question set")
	ErrUnknownOption    = errors.New("unknown option")
)

// Engine walks an ordered, fixed question list and keeps the answer set
// with its correct/incorrect counters. All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	examID    string
	questions []models.Question

	currentIndex   int
	answers        []models.Answer
	correctCount   int
	incorrectCount int
	startTime      time.Time

	now func() time.Time
}

// NewEngine copies questions, so later changes by the caller are not seen.
// Questions without an exam id inherit examID unless it is the random token.
func NewEngine(examID string, questions []models.Question) (*Engine, error) {
	return newEngine(examID, questions, time.Now)
}

func newEngine(examID string, questions []models.Question, now func() time.Time) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	for i := range qs {
		if qs[i].ExamID == "" && examID != models.RandomExamID {
			qs[i].ExamID = examID
		}
	}

	return &Engine{
		examID:    examID,
		questions: qs,
		answers:   []models.Answer{},
		startTime: now(),
		now:       now,
	}, nil
}

func (e *Engine) ExamID() string {
	return e.examID
}

func (e *Engine) Len() int {
	return len(e.questions)
}

func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentIndex
}

func (e *Engine) Questions() []models.Question {
	qs := make([]models.Question, len(e.questions))
	copy(qs, e.questions)
	return qs
}

func (e *Engine) QuestionByKey(key string) (models.Question, bool) {
	for _, q := range e.questions {
		if q.Key() == key {
			return q, true
		}
	}
	return models.Question{}, false
}

func (e *Engine) CurrentQuestion() models.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.questions[e.currentIndex]
}

func (e *Engine) SubmitAnswer(selected string) (models.AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.questions[e.currentIndex]
	if _, ok := q.Options[selected]; !ok {
		return models.AnswerResult{}, ErrUnknownOption
	}

	isCorrect := selected == q.Answer
	answer := models.Answer{
		QuestionNumber: q.Number,
		ExamID:         q.ExamID,
		Selected:       selected,
		Correct:        isCorrect,
	}

	if i := e.answerIndex(q.Key()); i != -1 {
		prev := e.answers[i]
		switch {
		case prev.Correct && !isCorrect:
			e.correctCount--
			e.incorrectCount++
		case !prev.Correct && isCorrect:
			e.correctCount++
			e.incorrectCount--
		}
		e.answers[i] = answer
	} else {
		e.answers = append(e.answers, answer)
		if isCorrect {
			e.correctCount++
		} else {
			e.incorrectCount++
		}
	}

	return models.AnswerResult{
		IsCorrect:      isCorrect,
		CorrectAnswer:  q.Answer,
		SelectedOption: selected,
		Explanation:    q.Explanation,
	}, nil
}

func (e *Engine) NextQuestion() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentIndex < len(e.questions)-1 {
		e.currentIndex++
		return true
	}
	return false
}

func (e *Engine) PreviousQuestion() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentIndex > 0 {
		e.currentIndex--
		return true
	}
	return false
}

func (e *Engine) GoToQuestion(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.questions) {
		return false
	}
	e.currentIndex = index
	return true
}

func (e *Engine) IsCurrentQuestionAnswered() bool {
	_, ok := e.CurrentAnswer()
	return ok
}

func (e *Engine) CurrentAnswer() (models.Answer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.answerIndex(e.questions[e.currentIndex].Key())
	if i == -1 {
		return models.Answer{}, false
	}
	return e.answers[i], true
}

// IsAnswered reports whether the question with the given key has an answer.
func (e *Engine) IsAnswered(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.answerIndex(key) != -1
}

func (e *Engine) Progress() models.Progress {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers := make([]models.Answer, len(e.answers))
	copy(answers, e.answers)

	return models.Progress{
		ExamID:          e.examID,
		CurrentQuestion: e.currentIndex,
		Answers:         answers,
		CorrectCount:    e.correctCount,
		IncorrectCount:  e.incorrectCount,
		TotalAnswered:   len(answers),
		TotalQuestions:  len(e.questions),
		StartTime:       e.startTime,
		LastUpdated:     e.now(),
	}
}

// RestoreProgress overwrites session state from p. Zero fields fall back to
// defaults. The cursor is clamped into the current question range and
// counters that disagree with the answers are recounted.
func (e *Engine) RestoreProgress(p models.Progress) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.currentIndex = clamp(p.CurrentQuestion, 0, len(e.questions)-1)

	e.answers = make([]models.Answer, 0, len(p.Answers))
	for _, a := range p.Answers {
		if a.ExamID == "" && e.examID != models.RandomExamID {
			a.ExamID = e.examID
		}
		e.answers = append(e.answers, a)
	}

	e.correctCount = p.CorrectCount
	e.incorrectCount = p.IncorrectCount
	if !CountsConsistent(p) {
		e.correctCount, e.incorrectCount = countAnswers(e.answers)
	}

	e.startTime = p.StartTime
	if e.startTime.IsZero() {
		e.startTime = e.now()
	}
}

// FirstUnanswered returns the index of the first question without an answer,
// or the last index when every question is answered.
func (e *Engine) FirstUnanswered() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, q := range e.questions {
		if e.answerIndex(q.Key()) == -1 {
			return i
		}
	}
	return len(e.questions) - 1
}

func (e *Engine) answerIndex(key string) int {
	for i, a := range e.answers {
		if a.Key() == key {
			return i
		}
	}
	return -1
}

// CountsConsistent reports whether the counters of p add up to its answers.
func CountsConsistent(p models.Progress) bool {
	return p.CorrectCount >= 0 && p.IncorrectCount >= 0 &&
		p.CorrectCount+p.IncorrectCount == len(p.Answers)
}

func countAnswers(answers []models.Answer) (correct, incorrect int) {
	for _, a := range answers {
		if a.Correct {
			correct++
		} else {
			incorrect++
		}
	}
	return correct, incorrect
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
