package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot_executor/internal/models"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestDecodeCredentials(t *testing.T) {
	creds, err := decodeCredentials(b64("api-key"), " "+b64("api-secret")+"\n")
	require.NoError(t, err)
	assert.Equal(t, "api-key", creds.APIKey)
	assert.Equal(t, "api-secret", creds.APISecret)
}

func TestDecodeCredentials_Invalid(t *testing.T) {
	_, err := decodeCredentials("not base64!", b64("s"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrCredentialsMissing)

	_, err = decodeCredentials(b64(""), b64("secret"))
	assert.ErrorIs(t, err, models.ErrCredentialsMissing)
}

func TestActionsBatch(t *testing.T) {
	pnl := 12.5
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	results := []models.ActionResult{
		{BotID: "b1", UserID: 1, Symbol: "BTCUSDT", Outcome: models.OutcomeOpened, Side: models.PositionLong, OrderID: "o1"},
		{BotID: "b2", UserID: 2, Symbol: "ETHUSDT", Outcome: models.OutcomeClosed, Side: models.PositionShort, RealizedPnl: &pnl},
		{BotID: "b3", UserID: 2, Symbol: "SOLUSDT", Outcome: models.OutcomeFailed, Detail: "boom"},
	}

	b := actionsBatch("cycle-1", results, at)
	require.Equal(t, 3, b.Len())

	q := b.QueuedQueries[1]
	assert.Equal(t, insertAction, q.SQL)
	require.Len(t, q.Arguments, 12)
	assert.Equal(t, "cycle-1", q.Arguments[1])
	assert.Equal(t, int64(2), q.Arguments[2])
	assert.Equal(t, "b2", q.Arguments[3])
	assert.Equal(t, "Closed", q.Arguments[6])
	assert.Equal(t, "SHORT", q.Arguments[7])
	assert.Equal(t, &pnl, q.Arguments[9])
	assert.Equal(t, at, q.Arguments[11])

	assert.Equal(t, "boom", b.QueuedQueries[2].Arguments[8])
}
