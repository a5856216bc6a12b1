package service

import (
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountCleanup periodically deletes accounts that were registered but
// never confirmed their email before the expiry set at signup. Their
// contacts go with them
func AccountCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Account cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			var toCleanUserIDs []string

			err := db.
				Model(model.User{}).
				Where("is_confirmed = ? AND expires_at < ?", false, time.Now()).
				Select("id").
				Find(&toCleanUserIDs).
				Error
			if err != nil {
				zap.L().Error("Failed to query db for users to clean", zap.Error(err))
				continue
			}

			if len(toCleanUserIDs) == 0 {
				continue
			}

			err = db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where("user_id IN ?", toCleanUserIDs).
					Delete(model.Contact{}).
					Error; err != nil {
					return err
				}

				return tx.
					Where("id IN ?", toCleanUserIDs).
					Delete(model.User{}).
					Error
			})
			if err != nil {
				zap.L().Error("Failed to delete expired accounts", zap.Error(err))
				continue
			}

			zap.L().Debug("Account cleanup finished", zap.Int("deleted", len(toCleanUserIDs)))
		}
	}()
}
