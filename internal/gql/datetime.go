package gql

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime implements the custom DateTime scalar. Inputs accept RFC 3339
// strings; outputs are marshalled the same way.
type DateTime struct {
	time.Time
}

// ImplementsGraphQLType tells the executor which scalar this type backs.
func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

// UnmarshalGraphQL coerces a literal or variable value into a DateTime.
func (t *DateTime) UnmarshalGraphQL(input any) error {
	switch input := input.(type) {
	case time.Time:
		t.Time = input
		return nil
	case string:
		parsed, err := time.Parse(time.RFC3339, input)
		if err != nil {
			return fmt.Errorf("invalid DateTime %q: %w", input, err)
		}
		t.Time = parsed
		return nil
	default:
		return fmt.Errorf("wrong type for DateTime: %T", input)
	}
}

// MarshalJSON renders the scalar in responses.
func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}
