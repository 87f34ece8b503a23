package capability

import (
	"context"
	"encoding/json"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/target/dialtone/internal/errors"
)

// jsonQueryInput is the request body for the jsonquery capability.
type jsonQueryInput struct {
	Expression string          `json:"expression"`
	Document   json.RawMessage `json:"document"`
}

// jsonQueryResult is the response body for the jsonquery capability.
type jsonQueryResult struct {
	Result any `json:"result"`
}

// JSONQuery evaluates a JMESPath expression against a caller-supplied JSON
// document. The expression language is declarative; it cannot reach outside
// the document it is given.
func JSONQuery() Capability {
	return Capability{
		Detail: Detail{
			Name:        "jsonquery",
			DisplayName: "JSON query",
			Description: "Evaluate a JMESPath expression against a JSON document.",
			Usage:       `{"expression": "users[?active].phone", "document": {"users": [...]}}`,
		},
		Handler: runJSONQuery,
	}
}

func runJSONQuery(_ context.Context, input json.RawMessage) (any, error) {
	var in jsonQueryInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, apperrors.ValidationField("body", "invalid JSON body")
	}
	if strings.TrimSpace(in.Expression) == "" {
		return nil, apperrors.ValidationField("expression", "expression is required")
	}
	if len(in.Document) == 0 {
		return nil, apperrors.ValidationField("document", "document is required")
	}

	compiled, err := jmespath.Compile(in.Expression)
	if err != nil {
		return nil, apperrors.ValidationField("expression", "invalid JMESPath expression")
	}

	var doc any
	if err := json.Unmarshal(in.Document, &doc); err != nil {
		return nil, apperrors.ValidationField("document", "document is not valid JSON")
	}

	res, err := compiled.Search(doc)
	if err != nil {
		return nil, apperrors.ValidationField("expression", "expression failed to evaluate")
	}
	return jsonQueryResult{Result: res}, nil
}
