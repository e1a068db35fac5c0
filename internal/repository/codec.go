package repository

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatVersion is written into every envelope. Bump it when a record's
// serialized fields change incompatibly.
const FormatVersion = 1

type envelope[T any] struct {
	Version int `json:"version"`
	Records []T `json:"records"`
}

// Encode serializes records, in order, into a versioned envelope.
func Encode[T any](records []T) (string, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(envelope[T]{Version: FormatVersion, Records: records})
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return string(data), nil
}

// Decode accepts a versioned envelope or a bare JSON array of records, the
// unversioned format older installs wrote.
func Decode[T any](payload string) ([]T, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "[") {
		var records []T
		if err := json.Unmarshal([]byte(payload), &records); err != nil {
			return nil, fmt.Errorf("decode legacy records: %w", err)
		}
		return nonNil(records), nil
	}

	var env envelope[T]
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Version < 1 || env.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d", env.Version)
	}
	return nonNil(env.Records), nil
}

func nonNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
