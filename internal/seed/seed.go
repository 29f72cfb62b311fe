package seed

import (
	"log"

	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/auth"
	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// FirstSetup ensures a default organization, a platform admin and a demo
// user exist. Idempotent; safe to run on every boot.
func FirstSetup(db *gorm.DB, bcryptCost int) error {
	org := models.Organization{Name: "Default Organization", Slug: "default", IsActive: true}
	if err := db.Where("slug = ?", org.Slug).FirstOrCreate(&org).Error; err != nil {
		return err
	}

	const adminEmail = "admin@example.com"
	const adminPass = "admin123" // change after first login

	adminHash, err := auth.HashPassword(adminPass, bcryptCost)
	if err != nil {
		return err
	}
	admin := models.Admin{
		Email:        adminEmail,
		Name:         "Platform Admin",
		PasswordHash: adminHash,
		Role:         models.AdminRoleSuper,
		IsActive:     true,
	}
	if err := db.Where("email = ?", adminEmail).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	const userEmail = "owner@example.com"
	const userPass = "owner123"

	userHash, err := auth.HashPassword(userPass, bcryptCost)
	if err != nil {
		return err
	}
	owner := models.User{
		OrgID:        org.ID,
		Email:        userEmail,
		Name:         "Org Owner",
		PasswordHash: userHash,
		UserType:     models.UserTypeOwner,
		IsActive:     true,
	}
	if err := db.Where("email = ?", userEmail).FirstOrCreate(&owner).Error; err != nil {
		return err
	}

	log.Printf("✅ Seed OK | admin=%s | owner=%s | org=%s", adminEmail, userEmail, org.Slug)
	return nil
}
