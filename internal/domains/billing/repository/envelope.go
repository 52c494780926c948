package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The upstream wraps responses inconsistently: some routes return the value
// bare, others under "data", "result" or "items", and the newest ones nest
// pages as {"data": {"items": [...]}}. The decoders below peel wrappers
// until they reach the requested shape.

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Result json.RawMessage `json:"result"`
	Items  json.RawMessage `json:"items"`
}

func unwrap(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}

	for _, inner := range []json.RawMessage{env.Data, env.Result, env.Items} {
		if len(bytes.TrimSpace(inner)) > 0 && string(bytes.TrimSpace(inner)) != "null" {
			return unwrap(inner)
		}
	}

	return raw
}

func decodeList[T any](entity string, raw json.RawMessage) ([]T, error) {
	raw = unwrap(raw)

	var list []T
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	// Some single-object routes answer with the object itself.
	var single T
	if err := json.Unmarshal(raw, &single); err == nil {
		return []T{single}, nil
	}

	return nil, fmt.Errorf("unrecognized %s response shape", entity)
}

func decodeObject[T any](entity string, raw json.RawMessage) (T, error) {
	raw = unwrap(raw)

	var value T
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, nil
	}

	// A by-id route on the legacy API answers with a one-element array.
	var list []T
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0], nil
	}

	return value, fmt.Errorf("unrecognized %s response shape", entity)
}
