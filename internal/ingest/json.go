// Package ingest turns uploaded report payloads into the raw nested map
// the analyzer navigates. JSON is the native bureau format; pasted or
// hand-edited payloads are repaired before giving up, and XML reports are
// rewritten into the same nested shape so the navigator stays the single
// authority on structure.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// ErrUndecodable marks payloads that no decoder could make sense of, so
// the transport layer can report a client error rather than a server one.
var ErrUndecodable = errors.New("report payload could not be decoded")

// DecodeJSON parses a report payload, falling back to JSON repair when the
// strict decode fails. Pasted reports routinely arrive with trailing
// commas, single quotes or clipped braces.
func DecodeJSON(data []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err == nil {
		return raw, nil
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: repair failed: %v", ErrUndecodable, err)
	}
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return raw, nil
}
