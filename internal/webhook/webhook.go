// Package webhook manages the automation platform's webhook lifecycle:
// subscribe, unsubscribe, and the recent-sample listing.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"taskbridge/internal/apperr"
)

const (
	// SubscribePath registers a hook URL for a trigger type.
	SubscribePath = "/webhooks/zapier/subscribe"

	// UnsubscribePath deregisters a hook by id.
	UnsubscribePath = "/webhooks/zapier/unsubscribe"

	// TaskDueListPath returns recent task-due samples.
	TaskDueListPath = "/webhooks/zapier/taskdue/performlist"

	// TriggerTaskDue is the task-due trigger type.
	TriggerTaskDue = "TaskDue"
)

// Client talks to the webhook endpoints. Unlike the task API, these respond
// with plain HTTP status codes rather than an {ok,...} envelope.
type Client struct {
	http *resty.Client
}

// New creates a webhook client. httpClient is expected to carry
// authentication; pass nil to use http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	rc := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &Client{http: rc}
}

// Subscription identifies a registered hook.
type Subscription struct {
	HookID string `json:"hookId"`
}

// Subscribe registers hookURL for the given trigger type, optionally scoped
// to a space or project.
func (c *Client) Subscribe(ctx context.Context, hookURL, triggerType, spaceID, projectID string) (Subscription, error) {
	body := map[string]any{
		"hookUrl":     hookURL,
		"triggerType": triggerType,
		"spaceId":     orNil(spaceID),
		"projectId":   orNil(projectID),
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(SubscribePath)
	if err != nil {
		return Subscription{}, &apperr.TransportError{Err: err}
	}
	if resp.IsError() {
		return Subscription{}, &apperr.TransportError{StatusCode: resp.StatusCode()}
	}

	var sub Subscription
	if err := json.Unmarshal(resp.Body(), &sub); err != nil {
		return Subscription{}, fmt.Errorf("malformed subscribe response: %w", err)
	}
	return sub, nil
}

// Unsubscribe deregisters a hook.
func (c *Client) Unsubscribe(ctx context.Context, hookID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("hookId", hookID).
		Delete(UnsubscribePath)
	if err != nil {
		return &apperr.TransportError{Err: err}
	}
	if resp.IsError() {
		return &apperr.TransportError{StatusCode: resp.StatusCode()}
	}
	return nil
}

// ListTaskDue returns recent task-due samples, optionally scoped to a space
// or project.
func (c *Client) ListTaskDue(ctx context.Context, spaceID, projectID string) ([]map[string]any, error) {
	req := c.http.R().SetContext(ctx)
	if spaceID != "" {
		req.SetQueryParam("spaceId", spaceID)
	}
	if projectID != "" {
		req.SetQueryParam("projectId", projectID)
	}

	resp, err := req.Get(TaskDueListPath)
	if err != nil {
		return nil, &apperr.TransportError{Err: err}
	}
	if resp.IsError() {
		return nil, &apperr.TransportError{StatusCode: resp.StatusCode()}
	}

	var payload struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("malformed performlist response: %w", err)
	}
	return payload.Results, nil
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
