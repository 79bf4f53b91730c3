package remote

import (
	"encoding/json"
	"fmt"
)

// Result is the canonical outcome of a remote call, regardless of which
// response shape the backend speaks. On success Value holds the payload:
// the whole envelope for REST calls, the data object for GraphQL calls.
type Result struct {
	OK      bool
	Value   json.RawMessage
	Message string
}

type restEnvelope struct {
	OK      *bool  `json:"ok"`
	Message string `json:"message"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		UserPresentableMessage string `json:"userPresentableMessage"`
	} `json:"extensions"`
}

// NormalizeREST maps an {ok, item|items, message} body into a Result.
// Pure: no I/O. The body must be a JSON object carrying an "ok" field.
func NormalizeREST(body []byte) (Result, error) {
	var env restEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Result{}, fmt.Errorf("malformed response body: %w", err)
	}
	if env.OK == nil {
		return Result{}, fmt.Errorf("response body has no ok field")
	}
	if !*env.OK {
		return Result{OK: false, Message: env.Message}, nil
	}
	return Result{OK: true, Value: json.RawMessage(body)}, nil
}

// NormalizeGraphQL maps a {data, errors} body into a Result. A non-empty
// errors array wins over any data; errors[0].extensions.userPresentableMessage
// is preferred over errors[0].message when present.
func NormalizeGraphQL(body []byte) (Result, error) {
	var env graphqlEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Result{}, fmt.Errorf("malformed response body: %w", err)
	}
	if len(env.Errors) > 0 {
		first := env.Errors[0]
		message := first.Extensions.UserPresentableMessage
		if message == "" {
			message = first.Message
		}
		return Result{OK: false, Message: message}, nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return Result{}, fmt.Errorf("response body has neither data nor errors")
	}
	return Result{OK: true, Value: env.Data}, nil
}
