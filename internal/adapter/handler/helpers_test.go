package handler

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/pkg/jwt"
)

const (
	testSecret = "test-secret"
	testIssuer = "interview-platform"
)

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	now := time.Now()
	claims := &jwt.Claims{
		UserID: userID,
		Email:  "user@example.com",
		Role:   role,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  gojwt.NewNumericDate(now),
			Issuer:    testIssuer,
			Subject:   userID.String(),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

type allowAll struct{}

func (allowAll) IsParticipant(ctx context.Context, userID, interviewID string) (bool, error) {
	return true, nil
}

func (allowAll) GetPermissions(ctx context.Context, userID, interviewID string) (entities.Permissions, error) {
	return entities.DefaultPermissions(), nil
}

type discardStore struct{}

func (discardStore) SaveChatMessage(entities.ChatMessage)           {}
func (discardStore) SaveFile(entities.FileShareRecord, []byte)      {}
func (discardStore) RecordFileDownload(entities.FileShareRecord)    {}
func (discardStore) SaveRecordingSession(entities.RecordingSession) {}
func (discardStore) SaveMetrics(entities.MetricsSnapshot)           {}
func (discardStore) StartCapture(entities.RecordingSession)         {}
func (discardStore) StopCapture(entities.RecordingSession)          {}

func (discardStore) FetchFilePayload(ctx context.Context, rec entities.FileShareRecord) ([]byte, error) {
	return nil, nil
}
