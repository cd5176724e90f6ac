package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"bot_executor/internal/models"
	"bot_executor/pkg/db"
)

const lookupKeys = `
SELECT api_key, api_secret
FROM user_api_keys
WHERE user_id = $1 AND exchange = $2`

// APIKeys: user_api_keys, ключи хранятся в base64.
type APIKeys struct {
	tm db.TxManager
}

func NewAPIKeys(tm *db.PgTxManager) *APIKeys {
	return &APIKeys{tm: tm}
}

func (a *APIKeys) Lookup(ctx context.Context, userID int64, exchange string) (creds models.Credentials, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("APIKeys.Lookup: %w", err)
		}
	}()

	var encKey, encSecret string
	err = a.tm.Conn().QueryRow(ctx, lookupKeys, userID, exchange).Scan(&encKey, &encSecret)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Credentials{}, fmt.Errorf("user %d %s: %w", userID, exchange, models.ErrCredentialsMissing)
	}
	if err != nil {
		return models.Credentials{}, err
	}

	return decodeCredentials(encKey, encSecret)
}

func decodeCredentials(encKey, encSecret string) (models.Credentials, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encKey))
	if err != nil {
		return models.Credentials{}, fmt.Errorf("decode api key: %w", err)
	}
	secret, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encSecret))
	if err != nil {
		return models.Credentials{}, fmt.Errorf("decode api secret: %w", err)
	}

	creds := models.Credentials{APIKey: string(key), APISecret: string(secret)}
	if creds.Empty() {
		return models.Credentials{}, models.ErrCredentialsMissing
	}
	return creds, nil
}
