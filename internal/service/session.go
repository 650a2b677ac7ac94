package service

import (
	"context"
	"fmt"

	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/RyoWakabayashi/pm-study/internal/quiz"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProgressSI interface {
	SaveProgress(ctx context.Context, examID string, progress models.Progress) error
	LoadProgress(ctx context.Context, examID string) (models.Progress, bool)
	ClearProgress(ctx context.Context, examID string) error
	LatestProgress(ctx context.Context) (string, models.Progress, bool)
}

type LoaderSI interface {
	LoadExam(ctx context.Context, examID string) (models.Exam, error)
	LoadRandom(ctx context.Context) (models.Exam, error)
}

// Session is one run of the quiz over a loaded exam.
type Session struct {
	ID              string
	ExamID          string
	ExamName        string
	HasExplanations bool
	Engine          *quiz.Engine
	Resumed         bool
}

type SessionS struct {
	progress ProgressSI
	loader   LoaderSI
	log      *zap.Logger
}

func NewSessionService(progress ProgressSI, loader LoaderSI, log *zap.Logger) *SessionS {
	return &SessionS{
		progress: progress,
		loader:   loader,
		log:      log,
	}
}

// Start loads the exam and resumes stored progress unless reset is set, in
// which case stored progress is removed first. An empty id means random mode.
func (s *SessionS) Start(ctx context.Context, examID string, reset bool) (*Session, error) {
	if examID == "" {
		examID = models.RandomExamID
	}

	var (
		exam models.Exam
		err  error
	)
	if examID == models.RandomExamID {
		exam, err = s.loader.LoadRandom(ctx)
	} else {
		exam, err = s.loader.LoadExam(ctx, examID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	engine, err := quiz.NewEngine(examID, exam.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	sess := &Session{
		ID:              uuid.NewString(),
		ExamID:          examID,
		ExamName:        exam.Name,
		HasExplanations: exam.HasExplanations,
		Engine:          engine,
	}
	log := s.log.With(zap.String("session_id", sess.ID), zap.String("exam_id", examID))

	if reset {
		if err := s.progress.ClearProgress(ctx, examID); err != nil {
			log.Warn("failed to clear progress before start", zap.Error(err))
		}
		log.Info("session started", zap.Int("questions", engine.Len()))
		return sess, nil
	}

	if stored, ok := s.progress.LoadProgress(ctx, examID); ok {
		s.reconcile(log, engine, stored)
		sess.Resumed = true
	}

	log.Info("session started",
		zap.Int("questions", engine.Len()),
		zap.Bool("resumed", sess.Resumed),
		zap.Int("current", engine.CurrentIndex()),
	)
	return sess, nil
}

// reconcile restores stored onto a fresh engine. Random mode reshuffles on
// every start, so its stored position is meaningless and the cursor moves to
// the first unanswered question instead.
func (s *SessionS) reconcile(log *zap.Logger, engine *quiz.Engine, stored models.Progress) {
	if !quiz.CountsConsistent(stored) {
		log.Warn("stored counters disagree with answers, recounting",
			zap.Int("correct", stored.CorrectCount),
			zap.Int("incorrect", stored.IncorrectCount),
			zap.Int("answers", len(stored.Answers)),
		)
	}
	if stored.TotalQuestions != 0 && stored.TotalQuestions != engine.Len() {
		log.Warn("question count changed since last save",
			zap.Int("stored", stored.TotalQuestions),
			zap.Int("loaded", engine.Len()),
		)
	}

	engine.RestoreProgress(stored)

	if engine.ExamID() == models.RandomExamID {
		engine.GoToQuestion(engine.FirstUnanswered())
	}
}

func (s *SessionS) Save(ctx context.Context, sess *Session) error {
	return s.progress.SaveProgress(ctx, sess.Engine.ExamID(), sess.Engine.Progress())
}

// Restart drops stored progress and starts the same exam from the beginning.
func (s *SessionS) Restart(ctx context.Context, sess *Session) (*Session, error) {
	return s.Start(ctx, sess.ExamID, true)
}

// LastSession reports the exam id of the most recently saved progress.
func (s *SessionS) LastSession(ctx context.Context) (string, bool) {
	examID, _, ok := s.progress.LatestProgress(ctx)
	return examID, ok
}
