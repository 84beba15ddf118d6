package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Profile is the authenticated user's record as returned by the backend.
// The client does not validate its shape: the typed fields are filled when
// the backend's value has the expected JSON type, and anything else,
// including a known field of another type, is kept verbatim in Extra so a
// profile survives a store round trip unchanged.
type Profile struct {
	ID       int64
	FullName string
	Email    string
	Phone    string
	IsAdmin  bool
	Extra    map[string]json.RawMessage
}

var knownFields = map[string]bool{
	"id":        true,
	"full_name": true,
	"email":     true,
	"phone":     true,
	"is_admin":  true,
}

// MarshalJSON writes the typed fields alongside the extra ones. A raw value
// kept in Extra for a known field is written as received.
func (p Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+len(knownFields))
	out["id"] = p.ID
	out["full_name"] = p.FullName
	out["email"] = p.Email
	out["is_admin"] = p.IsAdmin
	if p.Phone != "" {
		out["phone"] = p.Phone
	}
	for k, v := range p.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. It only fails when data is not an
// object.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("profile must be a JSON object")
	}

	*p = Profile{}
	for k, v := range raw {
		exact := true
		switch k {
		case "id":
			p.ID, exact = decodeID(v)
		case "full_name":
			exact = decodeString(v, &p.FullName)
		case "email":
			exact = decodeString(v, &p.Email)
		case "phone":
			exact = decodeString(v, &p.Phone)
		case "is_admin":
			p.IsAdmin, exact = decodeFlag(v)
		default:
			exact = false
		}
		if !exact {
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[k] = compact(v)
		}
	}
	return nil
}

// decodeID reads an integer id. Other shapes report false; an integral float
// or a numeric string still yields the id.
func decodeID(v json.RawMessage) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var val any
	if err := dec.Decode(&val); err != nil {
		return 0, false
	}
	switch id := val.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
			return n, true
		}
		if f, err := id.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return int64(f), false
		}
	case string:
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			return n, false
		}
	}
	return 0, false
}

func decodeString(v json.RawMessage, dst *string) bool {
	return json.Unmarshal(v, dst) == nil && string(bytes.TrimSpace(v)) != "null"
}

// decodeFlag reads the admin flag. Non-boolean values count the way the web
// client treated them: any non-empty, non-zero value is true.
func decodeFlag(v json.RawMessage) (bool, bool) {
	var val any
	if err := json.Unmarshal(v, &val); err != nil {
		return false, false
	}
	switch x := val.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, false
	case string:
		return x != "", false
	case nil:
		return false, false
	default:
		return true, false
	}
}

// compact drops insignificant whitespace so a value reads back byte for byte
// after the store writes it
func compact(v json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return v
	}
	return buf.Bytes()
}
