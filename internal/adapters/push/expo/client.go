package expo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/platform/httpclient"
)

const DefaultPushURL = "https://exp.host/--/api/v2/push/send"

// Expo acepta hasta 100 mensajes por request.
const maxBatch = 100

var (
	ErrExpoUnauthorized = errors.New("expo push unauthorized")
	ErrExpoUpstream     = errors.New("expo push upstream error")
	ErrExpoRejected     = errors.New("expo push rejected")
)

type Config struct {
	PushURL     string
	AccessToken string // opcional; requerido si el proyecto tiene push security
	Timeout     time.Duration

	// Circuit breaker: tras BreakerFailures errores 5xx/red seguidos se deja
	// de llamar a Expo durante BreakerOpenFor.
	BreakerFailures uint32
	BreakerOpenFor  time.Duration
}

// Client implementa reminders.Pusher contra el gateway push de Expo.
type Client struct {
	url         string
	accessToken string
	http        *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	pushURL := strings.TrimSpace(cfg.PushURL)
	if pushURL == "" {
		pushURL = DefaultPushURL
	}

	hc, err := httpclient.New(httpclient.Options{
		Timeout: cfg.Timeout,
		Breaker: &httpclient.BreakerConfig{
			Name:                "expo-push",
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenFor:             cfg.BreakerOpenFor,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		url:         pushURL,
		accessToken: strings.TrimSpace(cfg.AccessToken),
		http:        hc,
	}, nil
}

type pushMessage struct {
	To       string            `json:"to"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    string            `json:"sound"`
	Priority string            `json:"priority"`
}

type pushTicket struct {
	Status  string `json:"status"` // ok | error
	ID      string `json:"id"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type pushResponse struct {
	Data []pushTicket `json:"data"`
}

// Push manda los mensajes en lotes. Si algún ticket vuelve con error
// se devuelve ErrExpoRejected con el primer motivo.
func (c *Client) Push(ctx context.Context, msgs []reminders.Message) error {
	for start := 0; start < len(msgs); start += maxBatch {
		end := min(start+maxBatch, len(msgs))
		if err := c.send(ctx, msgs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, msgs []reminders.Message) error {
	payload := make([]pushMessage, 0, len(msgs))
	for _, m := range msgs {
		payload = append(payload, pushMessage{
			To:       m.To,
			Title:    m.Title,
			Body:     m.Body,
			Data:     m.Data,
			Sound:    "default",
			Priority: "high",
		})
	}

	headers := map[string]string{}
	if c.accessToken != "" {
		headers["Authorization"] = "Bearer " + c.accessToken
	}

	var out pushResponse
	err := c.http.DoJSON(ctx, http.MethodPost, c.url, headers, payload, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return ErrExpoUnauthorized
		}
		return fmt.Errorf("%w: %v", ErrExpoUpstream, err)
	}

	for i, t := range out.Data {
		if t.Status == "ok" {
			continue
		}
		reason := t.Details.Error
		if reason == "" {
			reason = t.Message
		}
		to := ""
		if i < len(msgs) {
			to = msgs[i].To
		}
		return fmt.Errorf("%w: to=%s reason=%s", ErrExpoRejected, to, reason)
	}
	return nil
}
