package seeders

import (
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/auth"
)

// SeedAdmin creates the ADMIN_USERNAME account (default "admin") with
// ADMIN_PASSWORD. Without a password nothing is created.
func SeedAdmin(db *gorm.DB, out io.Writer) error {
	password := config.Get("ADMIN_PASSWORD", "")
	if password == "" {
		fmt.Fprintln(out, "    ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}
	username := config.Get("ADMIN_USERNAME", "admin")

	var existing models.Customer
	err := db.Where("username = ?", username).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID != 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return db.Create(&models.Customer{
		Username: username,
		Email:    config.Get("ADMIN_EMAIL", username+"@localhost"),
		Password: hash,
		IsAdmin:  true,
		IsActive: true,
	}).Error
}
