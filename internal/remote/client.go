// Package remote executes authenticated calls against the task service and
// normalizes both of its response shapes (REST and GraphQL) into one result type.
package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"taskbridge/internal/apperr"
)

// GraphQLPath is the GraphQL endpoint path on the service origin.
const GraphQLPath = "/graphql"

// Client issues single round-trip HTTP calls with bearer authentication.
// It performs no retries and imposes no timeout of its own; both are left
// to the injected http.Client.
type Client struct {
	http *resty.Client
	log  *log.Logger
}

// New creates a Client against the given origin. httpClient is expected to
// carry authentication (an oauth2 transport); pass nil to use http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: rc, log: logger}
}

// REST issues one REST-style request and normalizes the {ok,item|items,message}
// envelope. An HTTP-success response with ok:false is an application-level
// failure carried in the Result, not an error. A non-2xx response that still
// parses as an envelope is treated the same way; otherwise it surfaces as a
// TransportError.
func (c *Client) REST(ctx context.Context, method, path string, body any) (Result, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return Result{}, &apperr.TransportError{Err: err}
	}

	c.log.Debug("rest call", "method", method, "path", path, "status", resp.StatusCode())

	result, perr := NormalizeREST(resp.Body())
	if perr != nil {
		if resp.IsError() {
			return Result{}, &apperr.TransportError{StatusCode: resp.StatusCode()}
		}
		return Result{}, perr
	}
	return result, nil
}

// GraphQLRequest is the wire body of a GraphQL call.
type GraphQLRequest struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables"`
}

// GraphQL issues one POST against the GraphQL endpoint and normalizes the
// {data,errors} envelope. A non-empty errors array is an application-level
// failure; the user-presentable message is preferred when the server sent one.
func (c *Client) GraphQL(ctx context.Context, operation, query string, variables any) (Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(GraphQLRequest{OperationName: operation, Query: query, Variables: variables}).
		Post(GraphQLPath)
	if err != nil {
		return Result{}, &apperr.TransportError{Err: err}
	}

	c.log.Debug("graphql call", "operation", operation, "status", resp.StatusCode())

	result, perr := NormalizeGraphQL(resp.Body())
	if perr != nil {
		if resp.IsError() {
			return Result{}, &apperr.TransportError{StatusCode: resp.StatusCode()}
		}
		return Result{}, perr
	}
	return result, nil
}

// Decode unmarshals a result payload into out.
func Decode(result Result, out any) error {
	return json.Unmarshal(result.Value, out)
}
