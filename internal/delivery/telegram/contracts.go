package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/service"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

// Bot is the part of the Telegram client the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type AppState interface {
	Settings(ctx context.Context) (*entities.Settings, error)
	ModifySettings(ctx context.Context, fn func(s *entities.Settings) error) (*entities.Settings, error)
	TopScores(ctx context.Context, game string, limit int) ([]entities.LeaderboardEntry, error)
}

type PlayerRegistry interface {
	Get(key int64) *service.Player
}

type MessageTracker interface {
	Get(chatID int64) (storage.TrackedMessage, bool)
	Replace(chatID int64, messageID int) (storage.TrackedMessage, bool)
	Delete(chatID int64)
}
