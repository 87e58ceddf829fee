// Package client is the customer-side half of the trade-in flow: it keeps
// the identity obtained at login, validates the form locally, prices the
// vehicle and only then talks to the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"avtovybor/internal/quote"
	"avtovybor/internal/validate"
)

const (
	MsgAuthRequired = "Чтобы отправить заявку, пожалуйста, авторизуйтесь."
	MsgNetwork      = "Ошибка соединения с сервером. Попробуйте позже."
)

// ErrAuthRequired is returned when no identity is held; nothing was sent.
var ErrAuthRequired = errors.New("authentication required")

// NetworkError means the call itself failed (offline, timeout, garbled reply).
type NetworkError struct{ Err error }

func (e *NetworkError) Error() string { return "trade-in request failed: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError carries a success=false answer from the server.
type ServerError struct {
	Message string
	Field   string
}

func (e *ServerError) Error() string { return "server rejected request: " + e.Message }

// Session is the session-scoped identity store. It lives as long as the
// Client and is never persisted.
type Session struct {
	mu       sync.RWMutex
	identity string
}

func (s *Session) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) Set(identity string) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
}

func (s *Session) Clear() { s.Set("") }

// Form holds the raw values as typed by the customer.
type Form struct {
	Make    string
	Model   string
	Year    string
	Mileage string
	Phone   string
}

// Result is a confirmed submission.
type Result struct {
	RequestID int64
	Message   string
	Phone     string
	Estimate  quote.Estimate
	// ServerEstimate is the price the server stored with the request.
	ServerEstimate int64
}

type Client struct {
	baseURL string
	http    *http.Client
	Session *Session
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		Session: &Session{},
	}
}

type apiReply struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Field     string `json:"field"`
	RequestID int64  `json:"requestId"`
	Estimate  int64  `json:"estimate"`
	User      struct {
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) post(ctx context.Context, path string, body any) (*apiReply, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal json body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	var reply apiReply
	if err := json.NewDecoder(res.Body).Decode(&reply); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)}
	}
	if !reply.Success {
		return &reply, &ServerError{Message: reply.Message, Field: reply.Field}
	}
	return &reply, nil
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	_, err := c.post(ctx, "/api/register", map[string]string{"email": email, "password": password})
	return err
}

// Login stores the confirmed email as the session identity.
func (c *Client) Login(ctx context.Context, email, password string) error {
	reply, err := c.post(ctx, "/api/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	c.Session.Set(reply.User.Email)
	return nil
}

func (c *Client) Logout() { c.Session.Clear() }

// Prepare runs every local check and prices the vehicle. The identity check
// comes first; without it no field is looked at.
func (c *Client) Prepare(f Form) (validate.TradeInInput, quote.Estimate, error) {
	identity := c.Session.Identity()
	if identity == "" {
		return validate.TradeInInput{}, quote.Estimate{}, ErrAuthRequired
	}
	year, err := validate.Year(f.Year)
	if err != nil {
		return validate.TradeInInput{}, quote.Estimate{}, err
	}
	mileage, err := validate.Mileage(f.Mileage)
	if err != nil {
		return validate.TradeInInput{}, quote.Estimate{}, err
	}
	if _, err := validate.Phone(f.Phone); err != nil {
		return validate.TradeInInput{}, quote.Estimate{}, err
	}
	in := validate.TradeInInput{
		Make:      f.Make,
		Model:     f.Model,
		Year:      &year,
		Mileage:   &mileage,
		Phone:     f.Phone,
		UserEmail: identity,
	}
	req, err := validate.TradeIn(in)
	if err != nil {
		return validate.TradeInInput{}, quote.Estimate{}, err
	}
	in.Make, in.Model, in.Phone = req.Make, req.Model, req.Phone
	return in, quote.Compute(year, mileage), nil
}

// SubmitTradeIn validates locally and, only if that passes, sends one
// request. There is no retry; the caller may resubmit.
func (c *Client) SubmitTradeIn(ctx context.Context, f Form) (*Result, error) {
	in, est, err := c.Prepare(f)
	if err != nil {
		return nil, err
	}
	reply, err := c.post(ctx, "/api/trade-in", in)
	if err != nil {
		return nil, err
	}
	return &Result{
		RequestID:      reply.RequestID,
		Message:        reply.Message,
		Phone:          in.Phone,
		Estimate:       est,
		ServerEstimate: reply.Estimate,
	}, nil
}

// UserMessage picks the text to show for an error from this package.
func UserMessage(err error) string {
	var ve *validate.Error
	var se *ServerError
	var ne *NetworkError
	switch {
	case errors.Is(err, ErrAuthRequired):
		return MsgAuthRequired
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &se):
		return se.Message
	case errors.As(err, &ne):
		return MsgNetwork
	case err != nil:
		return MsgNetwork
	}
	return ""
}
