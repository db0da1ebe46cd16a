package users

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Status values reported by the member API
const (
	StatusDisabled = 0
	StatusActive   = 1
)

// Profile is the signed-in member as returned by the user info endpoint.
// Fields the client does not model are kept in Extra so a cached profile
// round-trips without loss.
type Profile struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Nickname   string  `json:"nickname,omitempty"`
	RealName   string  `json:"realname,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty"`
	Money      float64 `json:"money"`
	Level      int     `json:"level"`
	LevelName  string  `json:"level_name,omitempty"`
	InviteCode string  `json:"invite_code,omitempty"`
	Status     int     `json:"status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

type profileAlias Profile

var knownFields = map[string]struct{}{
	"id": {}, "name": {}, "nickname": {}, "realname": {}, "phone": {}, "email": {},
	"money": {}, "level": {}, "level_name": {}, "invite_code": {}, "status": {},
	"created_at": {}, "updated_at": {},
}

// numericFields may arrive as quoted strings ("money": "88.80").
var numericFields = []string{"id", "money", "level", "status"}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range numericFields {
		if v, ok := all[k]; ok {
			all[k] = unquoteNumber(v)
		}
	}

	normalised, err := json.Marshal(all)
	if err != nil {
		return err
	}
	var alias profileAlias
	if err := json.Unmarshal(normalised, &alias); err != nil {
		return err
	}

	for k := range knownFields {
		delete(all, k)
	}
	if len(all) > 0 {
		alias.Extra = all
	}

	*p = Profile(alias)
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(profileAlias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+len(knownFields))
	for k, v := range p.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// unquoteNumber turns a quoted number into a bare one and an empty string
// into null. Anything else is returned unchanged.
func unquoteNumber(v json.RawMessage) json.RawMessage {
	if !bytes.HasPrefix(bytes.TrimSpace(v), []byte(`"`)) {
		return v
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return json.RawMessage("null")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return v
	}
	return json.RawMessage(s)
}

// HasIdentity reports whether p names a member at all.
func (p *Profile) HasIdentity() bool {
	return p != nil && (p.ID != 0 || p.Name != "")
}

// DisplayName prefers the nickname, then the real name, then the login name.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	for _, name := range []string{p.Nickname, p.RealName, p.Name} {
		if n := strings.TrimSpace(name); n != "" {
			return n
		}
	}
	return ""
}

func (p *Profile) IsActive() bool {
	return p != nil && p.Status == StatusActive
}
