// Package token encodes attendance QR payloads.
//
// A token is the base64url encoding of a JSON payload. It carries no
// signature; freshness comes from the short expiry and the one-shot
// token_id checked by the replay store.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMalformed = errors.New("invalid QR code")
	ErrExpired   = errors.New("QR code has expired")
)

// Payload what a QR code carries
type Payload struct {
	DayOfWeek int    `json:"day_of_week"` // Monday = 0
	SubjectID uint   `json:"subject_id"`
	ShiftID   uint   `json:"shift_id"`
	TeacherID uint   `json:"teacher_id"`
	Exp       int64  `json:"exp"` // unix seconds
	TokenID   string `json:"token_id"`
}

// ExpiresAt exp as time
func (p *Payload) ExpiresAt() time.Time {
	return time.Unix(p.Exp, 0)
}

// Codec issues and checks tokens
type Codec struct {
	ttl time.Duration
	now func() time.Time
}

// NewCodec creates a Codec issuing tokens valid for ttl
func NewCodec(ttl time.Duration) *Codec {
	return &Codec{ttl: ttl, now: time.Now}
}

// TTL token lifetime
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue builds a fresh payload and its encoded form
func (c *Codec) Issue(subjectID, shiftID, teacherID uint) (string, *Payload, error) {
	now := c.now()
	p := &Payload{
		DayOfWeek: weekday(now),
		SubjectID: subjectID,
		ShiftID:   shiftID,
		TeacherID: teacherID,
		Exp:       now.Add(c.ttl).Unix(),
		TokenID:   uuid.NewString(),
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", nil, err
	}
	return base64.URLEncoding.EncodeToString(raw), p, nil
}

// Decode parses a token and rejects expired ones.
// Padded and unpadded base64url are both accepted.
func (c *Codec) Decode(code string) (*Payload, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMalformed
	}
	raw, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(code, "="))
		if err != nil {
			return nil, ErrMalformed
		}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrMalformed
	}
	if p.TokenID == "" || p.Exp == 0 || p.DayOfWeek < 0 || p.DayOfWeek > 6 {
		return nil, ErrMalformed
	}
	if c.now().Unix() > p.Exp {
		return nil, ErrExpired
	}
	return &p, nil
}

// weekday Monday = 0 … Sunday = 6
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
