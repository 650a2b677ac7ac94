package models

import "time"

const RandomExamID = "random"

type Answer struct {
	QuestionNumber string `json:"questionNumber"`
	ExamID         string `json:"examId,omitempty"`
	Selected       string `json:"selected"`
	Correct        bool   `json:"correct"`
}

func (a Answer) Key() string {
	return QuestionKey(a.ExamID, a.QuestionNumber)
}

type AnswerResult struct {
	IsCorrect      bool
	CorrectAnswer  string
	SelectedOption string
	Explanation    string
}

type Progress struct {
	ExamID          string    `json:"examId"`
	CurrentQuestion int       `json:"currentQuestion"`
	Answers         []Answer  `json:"answers"`
	CorrectCount    int       `json:"correctCount"`
	IncorrectCount  int       `json:"incorrectCount"`
	TotalAnswered   int       `json:"totalAnswered"`
	TotalQuestions  int       `json:"totalQuestions"`
	StartTime       time.Time `json:"startTime"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
