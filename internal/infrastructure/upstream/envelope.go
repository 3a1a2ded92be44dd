package upstream

import "encoding/json"

// Envelope is the uniform wrapper every inventory API response uses:
// {success, message, data}. The data layer hands it through unchanged;
// unwrapping is done by the typed facade with the Decode helpers below.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeList unwraps the envelope payload into a slice of T. A missing,
// null, or wrong-shaped payload decodes to an empty slice, never an error:
// a malformed envelope must render as an empty table, not a crash.
func DecodeList[T any](env *Envelope) []T {
	if env == nil || len(env.Data) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(env.Data, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

// DecodeObject unwraps the envelope payload into a single T. The second
// return is false when the payload is missing or not the expected shape.
func DecodeObject[T any](env *Envelope) (T, bool) {
	var out T
	if env == nil || len(env.Data) == 0 {
		return out, false
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
