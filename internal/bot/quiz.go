package bot

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/RyoWakabayashi/pm-study/internal/quiz"
	"github.com/RyoWakabayashi/pm-study/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	callbackExam    = "exam:"
	callbackResume  = "resume:"
	callbackReset   = "reset:"
	callbackAnswer  = "ans:"
	callbackNext    = "next:"
	callbackPrev    = "prev:"
	callbackSave    = "save"
	callbackResults = "results"
	callbackRestart = "restart"
	callbackExams   = "exams"

	maxWrongListed = 30
)

const (
	textNoSession   = "⚠️ 試験が開始されていません。試験一覧から選んでください。"
	textLoadFailed  = "❌ 問題データを読み込めませんでした。しばらくしてから再度お試しください。"
	textNotSaved    = "⚠️ 進捗を保存できませんでした。"
	textSaved       = "💾 進捗を保存しました。"
	textAnswerFirst = "✏️ 先に解答してください。"
	textStaleCard   = "⚠️ この問題カードは古くなっています。最新の問題を表示します。"
)

// Question card buttons carry the session tag and the card's question index,
// e.g. "ans:1a2b3c4d:12:イ", so taps on superseded cards can be told apart.
const sessionTagLen = 8

type QuizSI interface {
	Exams() []models.ExamInfo
	AllProgress(ctx context.Context) map[string]models.Progress
	LoadProgress(ctx context.Context, examID string) (models.Progress, bool)
	Start(ctx context.Context, examID string, reset bool) (*service.Session, error)
	Save(ctx context.Context, sess *service.Session) error
	Restart(ctx context.Context, sess *service.Session) (*service.Session, error)
	LastSession(ctx context.Context) (string, bool)
}

// QuizT drives the single running session of the owner.
type QuizT struct {
	bot     BotSender
	service QuizSI
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	session *service.Session
	dirty   bool
	gen     uint64
}

func NewQuizTAPI(bot BotSender, service QuizSI, timeout time.Duration, log *zap.Logger) *QuizT {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &QuizT{
		bot:     bot,
		service: service,
		timeout: timeout,
		log:     log,
	}
}

func (t *QuizT) sendExamList(chatID int64) {
	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	defer canceled()

	saved := t.service.AllProgress(ctx)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, exam := range t.service.Exams() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(examLabel(exam.Name, saved[exam.ID]), callbackExam+exam.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(examLabel(service.RandomExamName, saved[models.RandomExamID]), callbackExam+models.RandomExamID),
	))

	msg := tgbotapi.NewMessage(chatID, "📋 試験を選んでください:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	sendMessage(t.bot, msg, t.log)
}

func examLabel(name string, p models.Progress) string {
	answered := len(p.Answers)
	if answered == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s%% %d/%d)", name, quiz.AccuracyRate(p.CorrectCount, answered), answered, p.TotalQuestions)
}

// chooseExam asks whether to resume when the exam has stored answers.
func (t *QuizT) chooseExam(chatID int64, examID string) {
	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	p, ok := t.service.LoadProgress(ctx, examID)
	canceled()

	if !ok || len(p.Answers) == 0 {
		t.startExam(chatID, examID, false)
		return
	}

	text := fmt.Sprintf("📂 %s の進捗があります（%d/%d問 解答済み、正答率 %s%%）。\n続きから再開しますか？",
		service.ExamName(examID), len(p.Answers), p.TotalQuestions, quiz.AccuracyRate(p.CorrectCount, len(p.Answers)))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ 続きから", callbackResume+examID),
			tgbotapi.NewInlineKeyboardButtonData("🔄 最初から", callbackReset+examID),
		),
	)

	sendMessage(t.bot, msg, t.log)
}

func (t *QuizT) startExam(chatID int64, examID string, reset bool) {
	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	defer canceled()

	if err := t.saveIfDirty(ctx); err != nil {
		t.log.Warn("failed to save previous session", zap.Error(err))
	}

	sess, err := t.service.Start(ctx, examID, reset)
	if err != nil {
		t.log.Error("failed to start session", zap.String("exam_id", examID), zap.Error(err))
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textLoadFailed), t.log)
		return
	}
	t.setSession(sess)

	if sess.Resumed {
		text := fmt.Sprintf("▶️ 前回の続きから再開します（問 %d）。", sess.Engine.CurrentIndex()+1)
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, text), t.log)
	}
	t.sendQuestion(chatID, sess)
}

func (t *QuizT) resumeLast(chatID int64) {
	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	examID, ok := t.service.LastSession(ctx)
	canceled()

	if !ok {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, "📭 保存された進捗はありません。"), t.log)
		return
	}
	t.startExam(chatID, examID, false)
}

func (t *QuizT) answer(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	sess := t.current()
	if sess == nil {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textNoSession), t.log)
		return
	}

	tag, idx, option, ok := parseCardCallback(query.Data, callbackAnswer)
	if !ok || option == "" {
		t.log.Warn("malformed answer callback", zap.String("data", query.Data))
		return
	}
	if !t.onCurrentCard(sess, tag, idx) {
		t.resendCard(chatID, sess, query.Data)
		return
	}

	result, err := sess.Engine.SubmitAnswer(option)
	if err != nil {
		t.log.Warn("rejected answer", zap.String("session_id", sess.ID), zap.String("option", option), zap.Error(err))
		return
	}
	t.markDirty()

	t.log.Debug("answer submitted",
		zap.String("session_id", sess.ID),
		zap.String("question", sess.Engine.CurrentQuestion().Key()),
		zap.Bool("correct", result.IsCorrect),
	)

	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	defer canceled()

	t.editQuestion(query, sess)
	if err := t.save(ctx, sess); err != nil {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textNotSaved), t.log)
	}
}

// navigate moves forward only past answered questions.
func (t *QuizT) navigate(query *tgbotapi.CallbackQuery, forward bool) {
	chatID := query.Message.Chat.ID

	sess := t.current()
	if sess == nil {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textNoSession), t.log)
		return
	}

	prefix := callbackPrev
	if forward {
		prefix = callbackNext
	}
	tag, idx, rest, ok := parseCardCallback(query.Data, prefix)
	if !ok || rest != "" {
		t.log.Warn("malformed navigation callback", zap.String("data", query.Data))
		return
	}
	if !t.onCurrentCard(sess, tag, idx) {
		t.resendCard(chatID, sess, query.Data)
		return
	}

	var moved bool
	if forward {
		if !sess.Engine.IsCurrentQuestionAnswered() {
			sendMessage(t.bot, tgbotapi.NewMessage(chatID, textAnswerFirst), t.log)
			return
		}
		moved = sess.Engine.NextQuestion()
	} else {
		moved = sess.Engine.PreviousQuestion()
	}
	if !moved {
		return
	}

	t.markDirty()
	t.editQuestion(query, sess)
}

func (t *QuizT) onCurrentCard(sess *service.Session, tag string, idx int) bool {
	return tag == sessionTag(sess) && idx == sess.Engine.CurrentIndex()
}

// resendCard leaves the superseded message untouched and posts the current card.
func (t *QuizT) resendCard(chatID int64, sess *service.Session, data string) {
	t.log.Info("stale question card",
		zap.String("session_id", sess.ID),
		zap.String("data", data),
		zap.Int("current_index", sess.Engine.CurrentIndex()),
	)
	sendMessage(t.bot, tgbotapi.NewMessage(chatID, textStaleCard), t.log)
	t.sendQuestion(chatID, sess)
}

func (t *QuizT) saveNow(chatID int64) {
	sess := t.current()
	if sess == nil {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textNoSession), t.log)
		return
	}

	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	defer canceled()

	text := textSaved
	if err := t.save(ctx, sess); err != nil {
		text = textNotSaved
	}
	sendMessage(t.bot, tgbotapi.NewMessage(chatID, text), t.log)
}

func (t *QuizT) sendResults(chatID int64) {
	sess := t.current()
	if sess == nil {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textNoSession), t.log)
		return
	}

	msg := tgbotapi.NewMessage(chatID, resultsText(sess.ExamName, quiz.Summarize(sess.Engine)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 もう一度", callbackRestart),
			tgbotapi.NewInlineKeyboardButtonData(ButtonExams, callbackExams),
		),
	)

	sendMessage(t.bot, msg, t.log)
}

func resultsText(examName string, s quiz.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 結果: %s\n\n", examName)
	fmt.Fprintf(&b, "解答: %d / %d問（残り %d問）\n", s.Answered, s.Total, s.Remaining)
	fmt.Fprintf(&b, "正解: %d　不正解: %d\n", s.Correct, s.Incorrect)
	fmt.Fprintf(&b, "正答率: %s%%\n", s.Accuracy)
	if s.Passed {
		fmt.Fprintf(&b, "判定: 🎉 合格ライン（%.0f%%）到達\n", quiz.PassRate)
	} else {
		fmt.Fprintf(&b, "判定: 合格ライン（%.0f%%）未達\n", quiz.PassRate)
	}

	if len(s.Wrong) == 0 {
		return b.String()
	}

	b.WriteString("\n❌ 間違えた問題:\n")
	for i, item := range s.Wrong {
		if i == maxWrongListed {
			fmt.Fprintf(&b, "…ほか %d問\n", len(s.Wrong)-maxWrongListed)
			break
		}
		fmt.Fprintf(&b, "・%s（選択 %s / 正解 %s）\n",
			service.GenerateCitation(item.Question.ExamID, item.Question.Number),
			item.Answer.Selected, item.Question.Answer)
	}
	return b.String()
}

func (t *QuizT) restart(chatID int64) {
	sess := t.current()
	if sess == nil {
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textNoSession), t.log)
		return
	}

	ctx, canceled := context.WithTimeout(context.Background(), t.timeout)
	defer canceled()

	next, err := t.service.Restart(ctx, sess)
	if err != nil {
		t.log.Error("failed to restart session", zap.String("session_id", sess.ID), zap.Error(err))
		sendMessage(t.bot, tgbotapi.NewMessage(chatID, textLoadFailed), t.log)
		return
	}
	t.setSession(next)

	sendMessage(t.bot, tgbotapi.NewMessage(chatID, "🔄 最初からやり直します。"), t.log)
	t.sendQuestion(chatID, next)
}

func (t *QuizT) sendQuestion(chatID int64, sess *service.Session) {
	msg := tgbotapi.NewMessage(chatID, questionText(sess))
	msg.ReplyMarkup = questionKeyboard(sess)

	sendMessage(t.bot, msg, t.log)
}

func (t *QuizT) editQuestion(query *tgbotapi.CallbackQuery, sess *service.Session) {
	editMsg := tgbotapi.NewEditMessageTextAndMarkup(
		query.Message.Chat.ID,
		query.Message.MessageID,
		questionText(sess),
		questionKeyboard(sess),
	)

	sendMessage(t.bot, editMsg, t.log)
}

func questionText(sess *service.Session) string {
	e := sess.Engine
	q := e.CurrentQuestion()

	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s\n問 %d / %d\n\n", sess.ExamName, e.CurrentIndex()+1, e.Len())
	b.WriteString(q.Question)
	b.WriteString("\n\n")
	for _, key := range q.OrderedOptions() {
		fmt.Fprintf(&b, "%s. %s\n", key, q.Options[key])
	}

	if q.HasImages {
		keys := make([]string, 0, len(q.ImagePaths))
		for k := range q.ImagePaths {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\n🖼 図:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s\n", q.ImagePaths[k])
		}
	}

	b.WriteString("\n")
	b.WriteString(service.GenerateCitation(q.ExamID, q.Number))

	a, ok := e.CurrentAnswer()
	if !ok {
		return b.String()
	}

	if a.Correct {
		b.WriteString("\n\n✅ 正解！")
	} else {
		fmt.Fprintf(&b, "\n\n❌ 不正解（選択 %s / 正解 %s）", a.Selected, q.Answer)
	}
	if sess.HasExplanations && q.Explanation != "" {
		b.WriteString("\n\n💡 解説\n")
		b.WriteString(q.Explanation)
	}
	return b.String()
}

func questionKeyboard(sess *service.Session) tgbotapi.InlineKeyboardMarkup {
	e := sess.Engine
	q := e.CurrentQuestion()

	var selected string
	if a, ok := e.CurrentAnswer(); ok {
		selected = a.Selected
	}

	options := make([]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, key := range q.OrderedOptions() {
		label := key
		if key == selected {
			label = "✔ " + key
		}
		options = append(options, tgbotapi.NewInlineKeyboardButtonData(label, cardCallback(callbackAnswer, sess, e.CurrentIndex())+":"+key))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if e.CurrentIndex() > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀ 前へ", cardCallback(callbackPrev, sess, e.CurrentIndex())))
	}
	if selected != "" {
		if e.CurrentIndex() < e.Len()-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("次へ ▶", cardCallback(callbackNext, sess, e.CurrentIndex())))
		} else {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🏁 結果を見る", callbackResults))
		}
	}

	rows := [][]tgbotapi.InlineKeyboardButton{options}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💾 保存", callbackSave),
		tgbotapi.NewInlineKeyboardButtonData(ButtonExams, callbackExams),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sessionTag(sess *service.Session) string {
	if len(sess.ID) > sessionTagLen {
		return sess.ID[:sessionTagLen]
	}
	return sess.ID
}

func cardCallback(prefix string, sess *service.Session, idx int) string {
	return prefix + sessionTag(sess) + ":" + strconv.Itoa(idx)
}

// parseCardCallback splits "<prefix><tag>:<idx>[:<rest>]".
func parseCardCallback(data, prefix string) (tag string, idx int, rest string, ok bool) {
	if !strings.HasPrefix(data, prefix) {
		return "", 0, "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(data, prefix), ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return "", 0, "", false
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 {
		return "", 0, "", false
	}
	if len(parts) == 3 {
		rest = parts[2]
	}
	return parts[0], idx, rest, true
}

func (t *QuizT) autosave(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sctx, canceled := context.WithTimeout(ctx, t.timeout)
			if err := t.saveIfDirty(sctx); err != nil {
				t.log.Warn("autosave failed", zap.Error(err))
			}
			canceled()
		}
	}
}

func (t *QuizT) flush(ctx context.Context) error {
	return t.saveIfDirty(ctx)
}

func (t *QuizT) saveIfDirty(ctx context.Context) error {
	t.mu.Lock()
	sess, dirty := t.session, t.dirty
	t.mu.Unlock()

	if sess == nil || !dirty {
		return nil
	}
	return t.save(ctx, sess)
}

// save clears the dirty flag only if nothing changed while the snapshot was
// being written.
func (t *QuizT) save(ctx context.Context, sess *service.Session) error {
	t.mu.Lock()
	gen := t.gen
	t.mu.Unlock()

	if err := t.service.Save(ctx, sess); err != nil {
		t.log.Warn("failed to save session", zap.String("session_id", sess.ID), zap.Error(err))
		return err
	}

	t.mu.Lock()
	if t.session == sess && t.gen == gen {
		t.dirty = false
	}
	t.mu.Unlock()
	return nil
}

func (t *QuizT) current() *service.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

func (t *QuizT) setSession(sess *service.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = sess
	t.dirty = false
	t.gen++
}

func (t *QuizT) markDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty = true
	t.gen++
}
