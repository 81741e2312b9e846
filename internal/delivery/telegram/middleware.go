package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// userError is an error whose text can be shown to the player as is.
type userError struct {
	text string
}

func (e *userError) Error() string { return e.text }

func userFacing(text string) error {
	return &userError{text: text}
}

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			var ue *userError
			if errors.As(err, &ue) {
				h.sendError(chatID, ue.text)
				return nil
			}

			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}
