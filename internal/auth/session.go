package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// NewSession persists the server-side row that makes a signed user token
// revocable before its cryptographic expiry. One row per login.
func NewSession(db *gorm.DB, token string, claims UserClaims, expiresAt time.Time) (*models.Session, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    claims.UserID,
		OrgID:     claims.OrgID,
		UserType:  claims.UserType,
		ExpiresAt: expiresAt,
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

func NewAdminSession(db *gorm.DB, token string, claims AdminClaims, expiresAt time.Time) (*models.AdminSession, error) {
	sess := &models.AdminSession{
		ID:        uuid.NewString(),
		Token:     token,
		AdminID:   claims.AdminID,
		AdminType: string(claims.Role),
		ExpiresAt: expiresAt,
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSessionByToken revokes a single login. Deleting zero rows is not
// an error: logout with an already-revoked token is a no-op.
func DeleteSessionByToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.Session{}).Error
}

func DeleteAdminSessionByToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.AdminSession{}).Error
}

// DeleteSessionsForUser force-revokes every login of one user, e.g. when
// an admin deactivates the account. Returns the number of sessions killed.
func DeleteSessionsForUser(db *gorm.DB, userID int64) (int64, error) {
	res := db.Where("user_id = ?", userID).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
