package bot

import (
	"strings"

	"github.com/RyoWakabayashi/pm-study/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	ButtonExams   = "📋 試験一覧"
	ButtonRandom  = "🔀 ランダム出題"
	ButtonResume  = "▶️ 前回の続き"
	ButtonResults = "📊 結果"
	ButtonHelp    = "ℹ️ ヘルプ"
)

func (t *TelegramAPI) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		t.handleStartCommand(message)
	case "help":
		t.handleHelpCommand(message)
	case "exams":
		t.quiz.sendExamList(chatID)
	case "random":
		t.quiz.chooseExam(chatID, models.RandomExamID)
	case "resume":
		t.quiz.resumeLast(chatID)
	case "results":
		t.quiz.sendResults(chatID)
	default:
		msg := tgbotapi.NewMessage(chatID, "不明なコマンドです。/start を使ってください。")
		sendMessage(t.bot, msg, t.log)
	}
}

func (t *TelegramAPI) handleStartCommand(message *tgbotapi.Message) {
	welcomeText := "🤖 PM試験 学習ボットへようこそ！\n\n" +
		"✨ できること:\n" +
		"• 📋 年度別の午前問題を解く\n" +
		"• 🔀 全試験からランダムに出題\n" +
		"• 💾 進捗を保存して続きから再開\n" +
		"• 📊 正答率と間違えた問題を確認\n\n" +
		"下のボタンから始めてください！"

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = t.generateMenuKeyboard()

	sendMessage(t.bot, msg, t.log)
}

func (t *TelegramAPI) generateMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonExams),
			tgbotapi.NewKeyboardButton(ButtonRandom),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonResume),
			tgbotapi.NewKeyboardButton(ButtonResults),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonHelp),
		),
	)

	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = false

	return keyboard
}

func (t *TelegramAPI) handleHelpCommand(message *tgbotapi.Message) {
	helpText := `
📚 コマンド:
/start — メニューを表示
/exams — 試験一覧
/random — ランダム出題
/resume — 前回の続きから再開
/results — 現在の結果
/help — このメッセージ

🎯 使い方:
• 選択肢ボタン(ア〜エ)で解答
• 解答後に「次へ」で進む
• 進捗は解答ごとと一定間隔で自動保存
`

	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	sendMessage(t.bot, msg, t.log)
}

func (t *TelegramAPI) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Text {
	case ButtonExams:
		t.quiz.sendExamList(chatID)
	case ButtonRandom:
		t.quiz.chooseExam(chatID, models.RandomExamID)
	case ButtonResume:
		t.quiz.resumeLast(chatID)
	case ButtonResults:
		t.quiz.sendResults(chatID)
	case ButtonHelp:
		t.handleHelpCommand(message)
	default:
		msg := tgbotapi.NewMessage(chatID, "下のボタンを使ってください。")
		sendMessage(t.bot, msg, t.log)
	}
}

func (t *TelegramAPI) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := t.bot.Request(callback); err != nil {
		t.log.Warn("failed to answer callback", zap.Error(err))
	}

	if query.Message == nil {
		t.log.Warn("callback without message", zap.String("query_id", query.ID))
		return
	}
	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case strings.HasPrefix(data, callbackExam):
		t.quiz.chooseExam(chatID, strings.TrimPrefix(data, callbackExam))
	case strings.HasPrefix(data, callbackResume):
		t.quiz.startExam(chatID, strings.TrimPrefix(data, callbackResume), false)
	case strings.HasPrefix(data, callbackReset):
		t.quiz.startExam(chatID, strings.TrimPrefix(data, callbackReset), true)
	case strings.HasPrefix(data, callbackAnswer):
		t.quiz.answer(query)
	case strings.HasPrefix(data, callbackNext):
		t.quiz.navigate(query, true)
	case strings.HasPrefix(data, callbackPrev):
		t.quiz.navigate(query, false)
	case data == callbackSave:
		t.quiz.saveNow(chatID)
	case data == callbackResults:
		t.quiz.sendResults(chatID)
	case data == callbackRestart:
		t.quiz.restart(chatID)
	case data == callbackExams:
		t.quiz.sendExamList(chatID)
	default:
		t.log.Warn("unknown callback data", zap.String("data", data), zap.Int64("user_id", query.From.ID))
	}
}
