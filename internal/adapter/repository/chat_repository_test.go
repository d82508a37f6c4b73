package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// dryRunDB builds statements without connecting to a server
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestChatUpsertOnlyAppliesNewerRevisions(t *testing.T) {
	msg := &entities.ChatMessage{
		ID:        uuid.New(),
		RoomID:    "r1",
		Content:   "hello",
		Type:      entities.MessageTypeText,
		CreatedAt: time.Now(),
		Revision:  2,
	}

	stmt := upsertChatMessage(dryRunDB(t), msg).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, `"revision"="excluded"."revision"`)
	assert.Contains(t, sql, "WHERE chat_messages.revision < excluded.revision")
}
