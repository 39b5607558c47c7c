package seeds

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/models"
)

// UserCapabilities lists the optional users columns a database has. Older
// databases lack some of them.
type UserCapabilities struct {
	Phone             bool
	EmailVerification bool
	PasswordReset     bool
}

// DetectUserCapabilities checks which optional users columns exist
func DetectUserCapabilities(tx *gorm.DB) UserCapabilities {
	m := tx.Migrator()
	return UserCapabilities{
		Phone:             m.HasColumn(&models.User{}, "phone"),
		EmailVerification: m.HasColumn(&models.User{}, "email_verified") && m.HasColumn(&models.User{}, "verification_token"),
		PasswordReset:     m.HasColumn(&models.User{}, "reset_token"),
	}
}

// omitted returns the User fields that must not be written
func (c UserCapabilities) omitted() []string {
	var fields []string
	if !c.Phone {
		fields = append(fields, "Phone")
	}
	if !c.EmailVerification {
		fields = append(fields, "EmailVerified", "VerificationToken", "VerificationTokenExpiresAt")
	}
	if !c.PasswordReset {
		fields = append(fields, "ResetToken", "ResetTokenExpiresAt")
	}
	return fields
}

type seedUser struct {
	ID       uint
	Name     string
	Email    string
	Password string
	Role     models.Role
	Phone    string
}

func seedUsers(env Env) []seedUser {
	return []seedUser{
		{ID: 1, Name: "Site Admin", Email: env.Config.AdminEmail, Password: env.Config.AdminPassword, Role: models.RoleAdmin},
		{ID: 2, Name: "Demo Student", Email: env.Config.UserEmail, Password: env.Config.UserPassword, Role: models.RoleUser, Phone: "07700900123"},
	}
}

var usersSeed = Seed{
	Name:        "07_users",
	Kind:        KindAdditive,
	Description: "admin and demo student accounts",
	Run: func(_ context.Context, tx *gorm.DB, env Env) (Result, error) {
		caps := DetectUserCapabilities(tx)
		omit := caps.omitted()

		var result Result
		for _, su := range seedUsers(env) {
			if su.Email == "" || su.Password == "" {
				return Result{}, fmt.Errorf("seed account for role %s needs an email and a password", su.Role)
			}

			var existing models.User
			err := tx.Where("email = ?", su.Email).First(&existing).Error
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return Result{}, fmt.Errorf("failed to check user %s: %w", su.Email, err)
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), env.Config.BcryptCost)
			if err != nil {
				return Result{}, fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
			}

			user := models.User{
				Name:          su.Name,
				Email:         su.Email,
				PasswordHash:  string(hash),
				Role:          su.Role,
				EmailVerified: true,
			}
			if su.Phone != "" {
				phone := su.Phone
				user.Phone = &phone
			}

			// Keep the fixed id unless another account already holds it.
			var taken int64
			if err := tx.Model(&models.User{}).Where("id = ?", su.ID).Count(&taken).Error; err != nil {
				return Result{}, fmt.Errorf("failed to check user id %d: %w", su.ID, err)
			}
			if taken == 0 {
				user.ID = su.ID
			}

			create := tx
			if len(omit) > 0 {
				create = tx.Omit(omit...)
			}
			if err := create.Create(&user).Error; err != nil {
				return Result{}, fmt.Errorf("failed to insert user %s: %w", su.Email, err)
			}
			result.Inserted++
			env.Logger.Printf("users: created %s account %s (id %d)", user.Role, user.Email, user.ID)
		}

		env.Logger.Printf("users: added %d, skipped %d", result.Inserted, result.Skipped)

		if err := database.ResetSequence(tx, "users", "id"); err != nil {
			return Result{}, err
		}
		return result, nil
	},
}
