package exchange

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"

	"bot_executor/internal/models"
)

const (
	DefaultBaseURL    = "https://api.bybit.com"
	DefaultRecvWindow = 5000
	DefaultCategory   = "linear"
)

type Options struct {
	BaseURL    string
	RecvWindow int64 // мс
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	Category   string // linear | spot | inverse
}

// Client: REST-клиент Bybit v5. Ключи передаются в каждый вызов:
// один клиент обслуживает всех пользователей, общий у них только лимит запросов.
type Client struct {
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
	recvWindow string
	category   string
	now        func() time.Time
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RecvWindow <= 0 {
		opts.RecvWindow = DefaultRecvWindow
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Category == "" {
		opts.Category = DefaultCategory
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		http:       &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.Burst),
		recvWindow: strconv.FormatInt(opts.RecvWindow, 10),
		category:   opts.Category,
		now:        time.Now,
	}
}

// Sign: hex(HMAC_SHA256(secret, timestamp + apiKey + recvWindow + payload)).
// payload: query string для GET и JSON-тело для POST.
func Sign(secret, timestamp, apiKey, recvWindow, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(timestamp + apiKey + recvWindow + payload))
	return hex.EncodeToString(h.Sum(nil))
}

type envelope[T any] struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  T      `json:"result"`
	Time    int64  `json:"time"`
}

// do выполняет запрос. creds == nil, публичный запрос без подписи.
func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	body any,
	creds *models.Credentials,
) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%s rate wait: %w", op, err)
	}

	qs := query.Encode()
	var (
		payload string
		reader  io.Reader
	)
	if body != nil {
		b, err := sonic.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s marshal: %w", op, err)
		}
		payload = string(b)
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if qs != "" {
		u += "?" + qs
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if creds != nil {
		signed := qs
		if method == http.MethodPost {
			signed = payload
		}
		ts := strconv.FormatInt(c.now().UnixMilli(), 10)

		req.Header.Set("X-BAPI-API-KEY", creds.APIKey)
		req.Header.Set("X-BAPI-TIMESTAMP", ts)
		req.Header.Set("X-BAPI-RECV-WINDOW", c.recvWindow)
		req.Header.Set("X-BAPI-SIGN-TYPE", "2")
		req.Header.Set("X-BAPI-SIGN", Sign(creds.APISecret, ts, creds.APIKey, c.recvWindow, signed))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s do: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s read body: %w", op, err)
	}
	return resp.StatusCode, data, nil
}

func decode[T any](op string, status int, data []byte) (T, error) {
	var zero T
	if status/100 != 2 {
		return zero, &models.ExchangeError{Op: op, HTTPStatus: status, RetMsg: trim(data)}
	}

	var env envelope[T]
	if err := sonic.Unmarshal(data, &env); err != nil {
		return zero, fmt.Errorf("%w: %s decode: %v; body=%s", models.ErrExchangeRequestFailed, op, err, trim(data))
	}
	if env.RetCode != 0 {
		return zero, &models.ExchangeError{Op: op, HTTPStatus: status, RetCode: env.RetCode, RetMsg: env.RetMsg}
	}
	return env.Result, nil
}

func trim(data []byte) string {
	const limit = 256
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
