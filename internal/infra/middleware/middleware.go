package middleware

import (
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// Logger returns middleware that logs every incoming update at debug
// level: the sender, and whether it was a message or a callback.
func Logger(logger *zap.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			fields := []zap.Field{zap.Int("update_id", c.Update().ID)}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("sender_id", sender.ID))
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback", cb.Data))
			} else if msg := c.Message(); msg != nil {
				fields = append(fields, zap.String("text", msg.Text))
			}
			logger.Debug("update", fields...)
			return next(c)
		}
	}
}

// Recover returns middleware that turns a handler panic into a logged
// error so one broken update cannot take the bot down.
func Recover(logger *zap.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic", zap.Any("panic", r))
				}
			}()
			return next(c)
		}
	}
}
