package mvc

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyQuery is returned when a request carries no query document
	ErrEmptyQuery = errors.New("graphql request has no query")
	// ErrInvalidPayload is returned for bodies or variables that are not the
	// expected JSON objects
	ErrInvalidPayload = errors.New("invalid graphql payload")
)

// Request is a GraphQL operation as received over HTTP
type Request struct {
	Query         string
	OperationName string
	// Variables as decoded by gjson: objects are map[string]any, lists
	// []any and numbers float64.
	Variables map[string]any
}

// ParseRequest extracts the GraphQL operation from r.
//
// GET requests carry it in the query, operationName and variables URL
// parameters, variables being a JSON object. application/graphql bodies
// are the raw query document. Every other body is a JSON payload with
// query, operationName and variables members.
func ParseRequest(r *http.Request) (*Request, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidPayload)
	}

	var (
		req *Request
		err error
	)
	switch {
	case r.Method == http.MethodGet:
		req, err = fromURL(r)
	case IsApplicationGraphQL(r.Header):
		req, err = fromDocument(r)
	default:
		req, err = fromJSON(r)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	return req, nil
}

func fromURL(r *http.Request) (*Request, error) {
	params := r.URL.Query()

	req := &Request{
		Query:         params.Get("query"),
		OperationName: params.Get("operationName"),
	}

	if raw := params.Get("variables"); raw != "" {
		if !gjson.Valid(raw) {
			return nil, fmt.Errorf("%w: variables are not valid JSON", ErrInvalidPayload)
		}
		variables, err := variablesFrom(gjson.Parse(raw))
		if err != nil {
			return nil, err
		}
		req.Variables = variables
	}
	return req, nil
}

func fromDocument(r *http.Request) (*Request, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	return &Request{Query: string(body)}, nil
}

func fromJSON(r *http.Request) (*Request, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return &Request{}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidPayload)
	}

	payload := gjson.ParseBytes(body)
	if !payload.IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidPayload)
	}

	query, err := stringMember(payload, "query")
	if err != nil {
		return nil, err
	}
	operationName, err := stringMember(payload, "operationName")
	if err != nil {
		return nil, err
	}
	variables, err := variablesFrom(payload.Get("variables"))
	if err != nil {
		return nil, err
	}

	return &Request{
		Query:         query,
		OperationName: operationName,
		Variables:     variables,
	}, nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// stringMember reads an optional string member, null counts as absent
func stringMember(payload gjson.Result, name string) (string, error) {
	member := payload.Get(name)
	switch member.Type {
	case gjson.Null:
		return "", nil
	case gjson.String:
		return member.Str, nil
	default:
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidPayload, name)
	}
}

// variablesFrom decodes an optional variables object, null counts as absent
func variablesFrom(member gjson.Result) (map[string]any, error) {
	if !member.Exists() || member.Type == gjson.Null {
		return nil, nil
	}
	if !member.IsObject() {
		return nil, fmt.Errorf("%w: variables must be a JSON object", ErrInvalidPayload)
	}
	variables, _ := member.Value().(map[string]any)
	return variables, nil
}
