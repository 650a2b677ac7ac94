package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/client"
	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/RyoWakabayashi/pm-study/internal/quiz"
	mock_service "github.com/RyoWakabayashi/pm-study/internal/service/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const examJSON = `[
	{"number":"1","question":"問1","options":{"ア":"a","イ":"b","ウ":"c","エ":"d"},"answer":"イ"},
	{"number":"2","question":"問2","options":{"ア":"a","イ":"b","ウ":"c","エ":"d"},"answer":"ア","explanation":"解説"}
]`

type loaderMock struct {
	loader *LoaderS
	sleeps []time.Duration
}

func newLoaderServiceMock(t *testing.T, ctrl *gomock.Controller, examIDs []string, setupMock func(*mock_service.MockSourceI)) *loaderMock {
	t.Helper()

	src := mock_service.NewMockSourceI(ctrl)
	if setupMock != nil {
		setupMock(src)
	}

	lm := &loaderMock{}
	lm.loader = NewLoaderService(src, NewCatalogService(examIDs, "images"), LoaderOptions{
		JSONPath:     "json",
		MaxRetries:   3,
		RetryBase:    500 * time.Millisecond,
		ProbeTimeout: time.Second,
	}, zap.NewNop())
	lm.loader.sleep = func(ctx context.Context, d time.Duration) error {
		lm.sleeps = append(lm.sleeps, d)
		return nil
	}
	lm.loader.shuffle = func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	return lm
}

func noImages(ms *mock_service.MockSourceI) {
	ms.EXPECT().ImageExists(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
}

func TestLoaderS_LoadExam(t *testing.T) {
	t.Parallel()

	unavailable := &client.StatusError{Code: 503}

	tests := []struct {
		name             string
		f                func(*mock_service.MockSourceI)
		wantErr          error
		wantAnyErr       bool
		wantExplanations bool
		wantSleeps       []time.Duration
	}{
		{
			name: "success: with explanations",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return([]byte(examJSON), nil)
				noImages(ms)
			},
			wantExplanations: true,
		},
		{
			name: "success: plain file",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return(nil, client.ErrNotFound)
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA.json").Return([]byte(examJSON), nil)
				noImages(ms)
			},
		},
		{
			name: "success: after transient failures",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return(nil, client.ErrNotFound)
				gomock.InOrder(
					ms.EXPECT().FetchJSON(gomock.Any(), "json/examA.json").Return(nil, unavailable),
					ms.EXPECT().FetchJSON(gomock.Any(), "json/examA.json").Return(nil, errors.New("connection reset")),
					ms.EXPECT().FetchJSON(gomock.Any(), "json/examA.json").Return([]byte(examJSON), nil),
				)
				noImages(ms)
			},
			wantSleeps: []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name: "error: not found is not retried",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return(nil, client.ErrNotFound)
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA.json").Return(nil, client.ErrNotFound).Times(1)
			},
			wantErr: ErrExamNotFound,
		},
		{
			name: "error: retries exhausted",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return(nil, client.ErrNotFound)
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA.json").Return(nil, unavailable).Times(3)
			},
			wantAnyErr: true,
			wantSleeps: []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name: "error: malformed json",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return([]byte(`{"number":`), nil)
			},
			wantErr: ErrMalformedExam,
		},
		{
			name: "error: empty list",
			f: func(ms *mock_service.MockSourceI) {
				ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return([]byte(`[]`), nil)
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

			lm := newLoaderServiceMock(t, ctrl, []string{"examA"}, tt.f)

			exam, err := lm.loader.LoadExam(context.Background(), "examA")
			assert.Equal(t, tt.wantSleeps, lm.sleeps)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				return
			case tt.wantAnyErr:
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "examA", exam.ID)
			assert.Equal(t, tt.wantExplanations, exam.HasExplanations)
			require.Len(t, exam.Questions, 2)
			for _, q := range exam.Questions {
				assert.Equal(t, "examA", q.ExamID)
				assert.False(t, q.HasImages)
			}
			assert.Equal(t, "解説", exam.Questions[1].Explanation)
		})
	}
}

func TestLoaderS_LoadExam_Images(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lm := newLoaderServiceMock(t, ctrl, []string{"examA"}, func(ms *mock_service.MockSourceI) {
		ms.EXPECT().FetchJSON(gomock.Any(), gomock.Any()).Return([]byte(examJSON), nil)
		ms.EXPECT().ImageExists(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, path string) bool {
				return path == "images/examA/q01.png" || path == "images/examA/q02_ウ.png"
			}).AnyTimes()
	})

	exam, err := lm.loader.LoadExam(context.Background(), "examA")
	require.NoError(t, err)

	assert.True(t, exam.Questions[0].HasImages)
	assert.Equal(t, map[string]string{"question": "images/examA/q01.png"}, exam.Questions[0].ImagePaths)
	assert.True(t, exam.Questions[1].HasImages)
	assert.Equal(t, map[string]string{models.OptionU: "images/examA/q02_ウ.png"}, exam.Questions[1].ImagePaths)
}

func TestLoaderS_probe_Timeout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	defer close(release)

	lm := newLoaderServiceMock(t, ctrl, nil, func(ms *mock_service.MockSourceI) {
		ms.EXPECT().ImageExists(gomock.Any(), "slow.png").
			DoAndReturn(func(ctx context.Context, path string) bool {
				<-release
				return true
			})
	})
	lm.loader.opts.ProbeTimeout = 10 * time.Millisecond

	assert.False(t, lm.loader.probe(context.Background(), "slow.png"))
}

func TestLoaderS_LoadRandom(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lm := newLoaderServiceMock(t, ctrl, []string{"examA", "broken", "examB"}, func(ms *mock_service.MockSourceI) {
		ms.EXPECT().FetchJSON(gomock.Any(), "json/examA_with_explanations.json").Return([]byte(examJSON), nil)
		ms.EXPECT().FetchJSON(gomock.Any(), "json/broken_with_explanations.json").Return(nil, client.ErrNotFound)
		ms.EXPECT().FetchJSON(gomock.Any(), "json/broken.json").Return(nil, client.ErrNotFound)
		ms.EXPECT().FetchJSON(gomock.Any(), "json/examB_with_explanations.json").Return(nil, client.ErrNotFound)
		ms.EXPECT().FetchJSON(gomock.Any(), "json/examB.json").Return([]byte(examJSON), nil)
		noImages(ms)
	})

	exam, err := lm.loader.LoadRandom(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RandomExamID, exam.ID)
	assert.Equal(t, RandomExamName, exam.Name)
	assert.True(t, exam.HasExplanations)
	require.Len(t, exam.Questions, 4)

	// reversed by the test shuffle
	assert.Equal(t, models.QuestionKey("examB", "2"), exam.Questions[0].Key())
	assert.Equal(t, models.QuestionKey("examB", "1"), exam.Questions[1].Key())
	assert.Equal(t, models.QuestionKey("examA", "2"), exam.Questions[2].Key())
	assert.Equal(t, models.QuestionKey("examA", "1"), exam.Questions[3].Key())
}

func TestLoaderS_LoadRandom_NothingLoaded(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lm := newLoaderServiceMock(t, ctrl, []string{"broken"}, func(ms *mock_service.MockSourceI) {
		ms.EXPECT().FetchJSON(gomock.Any(), gomock.Any()).Return(nil, client.ErrNotFound).Times(2)
	})

	_, err := lm.loader.LoadRandom(context.Background())
	require.ErrorIs(t, err, quiz.ErrEmptyQuestionSet)
}

func Test_sleepCtx(t *testing.T) {
	t.Parallel()

	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
