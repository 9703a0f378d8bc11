package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T. In-process publishers put the
// struct itself (or a pointer to it) on the bus; any other shape, such as a
// map decoded from JSON, is converted through a JSON round trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("encode %T payload: %w", payload, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode payload into %T: %w", out, err)
	}
	return out, nil
}
