package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/client"
	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/RyoWakabayashi/pm-study/internal/quiz"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const probeConcurrency = 8

var (
	ErrExamNotFound  = errors.New("exam not found")
	ErrMalformedExam = errors.New("malformed exam data")
)

type SourceI interface {
	FetchJSON(ctx context.Context, path string) ([]byte, error)
	ImageExists(ctx context.Context, path string) bool
}

type LoaderOptions struct {
	JSONPath     string
	MaxRetries   int
	RetryBase    time.Duration
	ProbeTimeout time.Duration
}

type LoaderS struct {
	source  SourceI
	catalog *CatalogS
	opts    LoaderOptions
	log     *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
	shuffle func(n int, swap func(i, j int))
}

func NewLoaderService(source SourceI, catalog *CatalogS, opts LoaderOptions, log *zap.Logger) *LoaderS {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &LoaderS{
		source:  source,
		catalog: catalog,
		opts:    opts,
		log:     log,
		sleep:   sleepCtx,
		shuffle: r.Shuffle,
	}
}

// LoadExam prefers the file with explanations and falls back to the plain
// one, retrying transient failures with exponential backoff. A missing plain
// file fails at once.
func (l *LoaderS) LoadExam(ctx context.Context, examID string) (models.Exam, error) {
	withExplanations := true
	data, err := l.source.FetchJSON(ctx, jsonFile(l.opts.JSONPath, examID, true))
	if err != nil {
		l.log.Debug("no explanations file, using plain exam data", zap.String("exam_id", examID), zap.Error(err))
		withExplanations = false

		data, err = l.fetchWithRetry(ctx, jsonFile(l.opts.JSONPath, examID, false))
		if err != nil {
			return models.Exam{}, fmt.Errorf("failed to load exam %s: %w", examID, err)
		}
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return models.Exam{}, fmt.Errorf("exam %s: %w: %v", examID, ErrMalformedExam, err)
	}
	if len(questions) == 0 {
		return models.Exam{}, fmt.Errorf("exam %s: %w", examID, quiz.ErrEmptyQuestionSet)
	}

	for i := range questions {
		questions[i].ExamID = examID
	}
	l.attachImages(ctx, examID, questions)

	return models.Exam{
		ID:              examID,
		Name:            ExamName(examID),
		Questions:       questions,
		HasExplanations: withExplanations,
	}, nil
}

func (l *LoaderS) fetchWithRetry(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for retries := 0; retries < l.opts.MaxRetries; {
		data, err := l.source.FetchJSON(ctx, path)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, client.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrExamNotFound, err)
		}

		lastErr = err
		retries++
		l.log.Warn("exam fetch failed", zap.String("path", path), zap.Int("attempt", retries), zap.Error(err))

		if retries < l.opts.MaxRetries {
			delay := time.Duration(1<<retries) * l.opts.RetryBase
			if err := l.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", l.opts.MaxRetries, lastErr)
}

// attachImages probes the question image and one image per option. Probes
// past their timeout count as missing.
func (l *LoaderS) attachImages(ctx context.Context, examID string, questions []models.Question) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)

	for i := range questions {
		q := &questions[i]
		g.Go(func() error {
			paths := make(map[string]string)

			if p := l.catalog.ResolveImagePath(examID, q.Number, ""); l.probe(gctx, p) {
				paths["question"] = p
			}
			for _, option := range q.OrderedOptions() {
				if p := l.catalog.ResolveImagePath(examID, q.Number, option); l.probe(gctx, p) {
					paths[option] = p
				}
			}

			q.HasImages = len(paths) > 0
			q.ImagePaths = paths
			return nil
		})
	}

	_ = g.Wait()
}

func (l *LoaderS) probe(ctx context.Context, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, l.opts.ProbeTimeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		done <- l.source.ImageExists(ctx, path)
	}()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		l.log.Debug("image probe timed out", zap.String("path", path))
		return false
	}
}

// LoadRandom merges every catalog exam into one shuffled list. Exams that
// fail to load are skipped.
func (l *LoaderS) LoadRandom(ctx context.Context) (models.Exam, error) {
	exam := models.Exam{
		ID:   models.RandomExamID,
		Name: RandomExamName,
	}

	for _, info := range l.catalog.Exams() {
		e, err := l.LoadExam(ctx, info.ID)
		if err != nil {
			l.log.Warn("skipping exam in random mode", zap.String("exam_id", info.ID), zap.Error(err))
			continue
		}
		exam.Questions = append(exam.Questions, e.Questions...)
		exam.HasExplanations = exam.HasExplanations || e.HasExplanations
	}

	if len(exam.Questions) == 0 {
		return models.Exam{}, fmt.Errorf("random exam: %w", quiz.ErrEmptyQuestionSet)
	}

	qs := exam.Questions
	l.shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})

	return exam, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
