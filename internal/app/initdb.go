package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

func (a *Application) checkSuper() {
	const superEmail = "admin@mhrhci.local"
	const defaultPassword = "mhrhci"

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var user domain.User
	err = a.gormDB.Where("email = ?", superEmail).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Name:      "administrator",
			Email:     superEmail,
			Password:  string(hashed),
			Role:      domain.RoleSystemAdmin,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default system admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default system admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query system admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(user.Password) == ""
	resetRole := user.Role != domain.RoleSystemAdmin

	if !resetPassword && !resetRole {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = string(hashed)
	}
	if resetRole {
		updates["role"] = domain.RoleSystemAdmin
	}

	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair system admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default system admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("roleReset", resetRole))
}
