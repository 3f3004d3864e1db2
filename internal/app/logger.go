package app

import (
	"os"

	"parcel-service/internal/config"
	"parcel-service/internal/logx"
)

// NewLogger builds the process logger: zerolog JSON by default, slog text for LOG_FORMAT=text.
func NewLogger(cfg *config.Config) logx.Logger {
	if cfg.Log.Format == "text" {
		return logx.NewSlogText(os.Stdout, cfg.Log.Level)
	}
	return logx.NewZerolog(os.Stdout, cfg.Log.Level)
}
