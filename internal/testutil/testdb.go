package testutil

import (
	"fmt"
	"testing"

	"expense_tracker/database"
	"expense_tracker/internal/auth"
	"expense_tracker/internal/config"
	"expense_tracker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// NewTestDB opens a private in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, database.AutoMigrate(db), "migrate sqlite")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with DefaultPassword. The email is derived from
// username so callers only need unique usernames.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		Role:         role,
		PasswordHash: hash,
	}
	require.NoError(t, db.Create(user).Error, "create user %s", username)
	return user
}

func SuspendUser(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()
	require.NoError(t, db.Model(user).Update("is_suspended", true).Error)
	user.IsSuspended = true
}

// CreateTicket inserts a ticket owned by owner in the given status.
func CreateTicket(t *testing.T, db *gorm.DB, owner *models.User, amount float64, status models.TicketStatus) *models.Ticket {
	t.Helper()

	ticket := &models.Ticket{
		EmployeeID: owner.ID,
		SpentAt:    fixedTime,
		Amount:     amount,
		Currency:   "USD",
		Status:     status,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}
