package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func newTestAccount(email string, role entities.Role) *entities.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return &entities.Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test " + string(role),
		PasswordHash: "hash",
		Role:         role,
		Status:       entities.AccountStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
