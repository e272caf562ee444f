package logging

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/campus-services/lostfound-backend/internal/models"
)

const defaultRetentionDays = 30

// StartCleanup runs a daily goroutine that prunes system_logs past the
// retention window. LOG_RETENTION_DAYS overrides the 30-day default.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	retention := defaultRetentionDays
	if raw := os.Getenv("LOG_RETENTION_DAYS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			retention = n
		}
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retention)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected, "retention_days", retention)
				}
			case <-done:
				return
			}
		}
	}()
}
