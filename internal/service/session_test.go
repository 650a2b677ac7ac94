package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/RyoWakabayashi/pm-study/internal/quiz"
	mock_service "github.com/RyoWakabayashi/pm-study/internal/service/mock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionServiceMock(t *testing.T, ctrl *gomock.Controller, setupMock func(*mock_service.MockProgressSI, *mock_service.MockLoaderSI)) *SessionS {
	t.Helper()

	progress := mock_service.NewMockProgressSI(ctrl)
	loader := mock_service.NewMockLoaderSI(ctrl)
	if setupMock != nil {
		setupMock(progress, loader)
	}
	return NewSessionService(progress, loader, zap.NewNop())
}

func testExam(examID string, n int) models.Exam {
	qs := make([]models.Question, n)
	for i := range qs {
		qs[i] = models.Question{
			Number:   fmt.Sprint(i + 1),
			Question: fmt.Sprintf("問%d", i+1),
			Options: map[string]string{
				models.OptionA: "a", models.OptionI: "b", models.OptionU: "c", models.OptionE: "d",
			},
			Answer: models.OptionA,
			ExamID: examID,
		}
	}
	return models.Exam{ID: examID, Name: "テスト試験", Questions: qs}
}

func TestSessionS_Start(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		examID      string
		reset       bool
		f           func(*mock_service.MockProgressSI, *mock_service.MockLoaderSI)
		wantErr     error
		wantResumed bool
		wantIndex   int
		wantCorrect int
		wantWrong   int
	}{
		{
			name:   "fresh exam",
			examID: "examA",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 3), nil)
				mp.EXPECT().LoadProgress(gomock.Any(), "examA").Return(models.Progress{}, false)
			},
		},
		{
			name:   "resume stored position",
			examID: "examA",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 3), nil)
				mp.EXPECT().LoadProgress(gomock.Any(), "examA").Return(models.Progress{
					ExamID:          "examA",
					CurrentQuestion: 1,
					Answers: []models.Answer{
						{QuestionNumber: "1", ExamID: "examA", Selected: models.OptionA, Correct: true},
					},
					CorrectCount:   1,
					TotalQuestions: 3,
				}, true)
			},
			wantResumed: true,
			wantIndex:   1,
			wantCorrect: 1,
		},
		{
			name:   "stored position past the end is clamped",
			examID: "examA",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 3), nil)
				mp.EXPECT().LoadProgress(gomock.Any(), "examA").Return(models.Progress{
					CurrentQuestion: 24,
					TotalQuestions:  25,
				}, true)
			},
			wantResumed: true,
			wantIndex:   2,
		},
		{
			name:   "inconsistent counters are recounted",
			examID: "examA",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 3), nil)
				mp.EXPECT().LoadProgress(gomock.Any(), "examA").Return(models.Progress{
					Answers: []models.Answer{
						{QuestionNumber: "1", Selected: models.OptionA, Correct: true},
						{QuestionNumber: "2", Selected: models.OptionE, Correct: false},
					},
					CorrectCount:   5,
					IncorrectCount: 0,
				}, true)
			},
			wantResumed: true,
			wantCorrect: 1,
			wantWrong:   1,
		},
		{
			name:   "reset clears stored progress",
			examID: "examA",
			reset:  true,
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 3), nil)
				mp.EXPECT().ClearProgress(gomock.Any(), "examA").Return(nil)
			},
		},
		{
			name:   "reset survives a failed clear",
			examID: "examA",
			reset:  true,
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 3), nil)
				mp.EXPECT().ClearProgress(gomock.Any(), "examA").Return(errors.New("disk error"))
			},
		},
		{
			name:   "load failure",
			examID: "examA",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(models.Exam{}, ErrExamNotFound)
			},
			wantErr: ErrExamNotFound,
		},
		{
			name:   "loaded exam has no questions",
			examID: "examA",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(models.Exam{ID: "examA"}, nil)
			},
			wantErr: quiz.ErrEmptyQuestionSet,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newSessionServiceMock(t, ctrl, tt.f)

			sess, err := s.Start(context.Background(), tt.examID, tt.reset)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
				return
			}

			require.NoError(t, err)
			_, err = uuid.Parse(sess.ID)
			require.NoError(t, err)

			assert.Equal(t, tt.examID, sess.ExamID)
			assert.Equal(t, "テスト試験", sess.ExamName)
			assert.Equal(t, tt.wantResumed, sess.Resumed)
			assert.Equal(t, tt.wantIndex, sess.Engine.CurrentIndex())

			p := sess.Engine.Progress()
			assert.Equal(t, tt.wantCorrect, p.CorrectCount)
			assert.Equal(t, tt.wantWrong, p.IncorrectCount)
		})
	}
}

func TestSessionS_Start_Random(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, b := testExam("examA", 2), testExam("examB", 1)
	random := models.Exam{
		ID:        models.RandomExamID,
		Name:      RandomExamName,
		Questions: []models.Question{a.Questions[0], b.Questions[0], a.Questions[1]},
	}

	s := newSessionServiceMock(t, ctrl, func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
		ml.EXPECT().LoadRandom(gomock.Any()).Return(random, nil)
		mp.EXPECT().LoadProgress(gomock.Any(), models.RandomExamID).Return(models.Progress{
			ExamID:          models.RandomExamID,
			CurrentQuestion: 2,
			Answers: []models.Answer{
				{QuestionNumber: "1", ExamID: "examA", Selected: models.OptionA, Correct: true},
			},
			CorrectCount: 1,
		}, true)
	})

	sess, err := s.Start(context.Background(), "", false)
	require.NoError(t, err)

	assert.Equal(t, models.RandomExamID, sess.ExamID)
	assert.True(t, sess.Resumed)
	assert.Equal(t, 1, sess.Engine.CurrentIndex())
	assert.Equal(t, models.QuestionKey("examB", "1"), sess.Engine.CurrentQuestion().Key())
	assert.True(t, sess.Engine.IsAnswered(models.QuestionKey("examA", "1")))
	assert.False(t, sess.Engine.IsAnswered(models.QuestionKey("examB", "1")))
}

func TestSessionS_Save(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, err := quiz.NewEngine("examA", testExam("examA", 2).Questions)
	require.NoError(t, err)
	_, err = engine.SubmitAnswer(models.OptionA)
	require.NoError(t, err)

	saveErr := errors.New("quota")
	s := newSessionServiceMock(t, ctrl, func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
		mp.EXPECT().SaveProgress(gomock.Any(), "examA", gomock.Any()).
			DoAndReturn(func(ctx context.Context, examID string, p models.Progress) error {
				assert.Equal(t, 1, p.CorrectCount)
				assert.Equal(t, 1, p.TotalAnswered)
				assert.Equal(t, 2, p.TotalQuestions)
				return saveErr
			})
	})

	err = s.Save(context.Background(), &Session{ExamID: "examA", Engine: engine})
	require.ErrorIs(t, err, saveErr)
}

func TestSessionS_Restart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newSessionServiceMock(t, ctrl, func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
		gomock.InOrder(
			ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 2), nil),
			mp.EXPECT().LoadProgress(gomock.Any(), "examA").Return(models.Progress{
				CurrentQuestion: 1,
				Answers:         []models.Answer{{QuestionNumber: "1", Selected: models.OptionA, Correct: true}},
				CorrectCount:    1,
			}, true),
			ml.EXPECT().LoadExam(gomock.Any(), "examA").Return(testExam("examA", 2), nil),
			mp.EXPECT().ClearProgress(gomock.Any(), "examA").Return(nil),
		)
	})

	first, err := s.Start(context.Background(), "examA", false)
	require.NoError(t, err)
	require.True(t, first.Resumed)

	second, err := s.Restart(context.Background(), first)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, second.Resumed)
	assert.Equal(t, 0, second.Engine.CurrentIndex())
	assert.Empty(t, second.Engine.Progress().Answers)
}

func TestSessionS_LastSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		f      func(*mock_service.MockProgressSI, *mock_service.MockLoaderSI)
		want   string
		wantOk bool
	}{
		{
			name: "found",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				mp.EXPECT().LatestProgress(gomock.Any()).Return("examB", models.Progress{}, true)
			},
			want:   "examB",
			wantOk: true,
		},
		{
			name: "nothing stored",
			f: func(mp *mock_service.MockProgressSI, ml *mock_service.MockLoaderSI) {
				mp.EXPECT().LatestProgress(gomock.Any()).Return("", models.Progress{}, false)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newSessionServiceMock(t, ctrl, tt.f)

			got, ok := s.LastSession(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}
