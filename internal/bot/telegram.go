package bot

import (
	"context"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type ServiceI interface {
	QuizSI
}

type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type BotRequester interface {
	BotSender
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type TelegramAPI struct {
	client  *tgbotapi.BotAPI
	bot     BotRequester
	ownerID int64
	quiz    *QuizT
	log     *zap.Logger
}

func NewTelegramAPI(cfg config.Config, service ServiceI, log *zap.Logger) (*TelegramAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}

	bot.Debug = cfg.Env == "development"

	return &TelegramAPI{
		client:  bot,
		bot:     bot,
		ownerID: cfg.Bot.OwnerID,
		quiz:    NewQuizTAPI(bot, service, cfg.App.Timeout, log),
		log:     log,
	}, nil
}

// Start handles updates until ctx is cancelled. The running session is
// saved every autosave interval while it has unsaved changes.
func (t *TelegramAPI) Start(ctx context.Context, autosave time.Duration) {
	go t.quiz.autosave(ctx, autosave)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.client.GetUpdatesChan(u)
	t.log.Info("bot started", zap.String("username", t.client.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			t.client.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handleUpdate(update)
		}
	}
}

// Shutdown writes unsaved progress of the running session.
func (t *TelegramAPI) Shutdown(ctx context.Context) error {
	return t.quiz.flush(ctx)
}

func (t *TelegramAPI) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if !t.authorized(update.Message.From) {
			t.reject(update.Message.Chat.ID, update.Message.From)
			return
		}

		if update.Message.IsCommand() {
			t.handleCommand(update.Message)
		} else {
			t.handleMessage(update.Message)
		}
		return
	}

	if update.CallbackQuery != nil {
		if !t.authorized(update.CallbackQuery.From) {
			if update.CallbackQuery.Message != nil {
				t.reject(update.CallbackQuery.Message.Chat.ID, update.CallbackQuery.From)
			}
			return
		}
		t.handleCallbackQuery(update.CallbackQuery)
	}
}

func (t *TelegramAPI) authorized(user *tgbotapi.User) bool {
	return user != nil && user.ID == t.ownerID
}

func (t *TelegramAPI) reject(chatID int64, user *tgbotapi.User) {
	var userID int64
	if user != nil {
		userID = user.ID
	}
	t.log.Warn("rejected update from non-owner", zap.Int64("user_id", userID), zap.Int64("chat_id", chatID))

	msg := tgbotapi.NewMessage(chatID, "🔒 このボットは所有者専用です。")
	sendMessage(t.bot, msg, t.log)
}

func sendMessage(bot BotSender, msg tgbotapi.Chattable, log *zap.Logger) {
	sentMsg, err := bot.Send(msg)
	if err != nil {
		log.Error("failed to send message", zap.Error(err))
		return
	}
	if sentMsg.Chat != nil {
		log.Debug("sent message", zap.Int64("chat_id", sentMsg.Chat.ID))
	}
}
