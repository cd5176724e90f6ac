package models

import (
	"errors"
	"fmt"
)

var (
	// ErrBotsUnavailable: не удалось получить список ботов. Единственная ошибка,
	// которая прерывает весь цикл.
	ErrBotsUnavailable       = errors.New("active bots unavailable")
	ErrCredentialsMissing    = errors.New("credentials missing")
	ErrMarketDataUnavailable = errors.New("market data unavailable")
	ErrExchangeRequestFailed = errors.New("exchange request failed")
	ErrUnknownStrategy       = errors.New("unknown strategy")
)

// ExchangeError: подписанный запрос вернул не-успех.
type ExchangeError struct {
	Op         string
	HTTPStatus int
	RetCode    int
	RetMsg     string
}

func (e *ExchangeError) Error() string {
	if e.HTTPStatus != 0 && e.HTTPStatus/100 != 2 {
		return fmt.Sprintf("%s: http %d: %s", e.Op, e.HTTPStatus, e.RetMsg)
	}
	return fmt.Sprintf("%s: retCode=%d retMsg=%s", e.Op, e.RetCode, e.RetMsg)
}

func (e *ExchangeError) Unwrap() error { return ErrExchangeRequestFailed }
