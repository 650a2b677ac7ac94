package quiz

import (
	"testing"

	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracyRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		correct int
		total   int
		want    string
	}{
		{name: "nothing answered", correct: 0, total: 0, want: "0"},
		{name: "seventy percent", correct: 7, total: 10, want: "70.0"},
		{name: "one third", correct: 1, total: 3, want: "33.3"},
		{name: "all wrong", correct: 0, total: 4, want: "0.0"},
		{name: "all right", correct: 4, total: 4, want: "100.0"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, AccuracyRate(tt.correct, tt.total))
		})
	}
}

func TestPassed(t *testing.T) {
	t.Parallel()

	assert.False(t, Passed(0, 0))
	assert.False(t, Passed(6, 10))
	assert.True(t, Passed(7, 10))
	assert.True(t, Passed(10, 10))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "examA", testQuestions())

	_, err := e.SubmitAnswer(models.OptionI)
	require.NoError(t, err)
	require.True(t, e.NextQuestion())
	_, err = e.SubmitAnswer(models.OptionU)
	require.NoError(t, err)

	s := Summarize(e)
	assert.Equal(t, "examA", s.ExamID)
	assert.Equal(t, 1, s.Correct)
	assert.Equal(t, 1, s.Incorrect)
	assert.Equal(t, 2, s.Answered)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Remaining)
	assert.Equal(t, "50.0", s.Accuracy)
	assert.False(t, s.Passed)

	require.Len(t, s.Wrong, 1)
	assert.Equal(t, "2", s.Wrong[0].Question.Number)
	assert.Equal(t, models.OptionU, s.Wrong[0].Answer.Selected)
}

func TestSummarize_SkipsUnknownQuestions(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "examA", testQuestions())
	e.RestoreProgress(models.Progress{
		Answers: []models.Answer{
			{QuestionNumber: "99", Selected: models.OptionA},
		},
		IncorrectCount: 1,
	})

	s := Summarize(e)
	assert.Equal(t, 1, s.Incorrect)
	assert.Empty(t, s.Wrong)
}
