package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedCodec(now time.Time) *Codec {
	c := NewCodec(30 * time.Second)
	c.now = func() time.Time { return now }
	return c
}

func TestCodec_IssueDecode(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	c := fixedCodec(now)

	code, issued, err := c.Issue(4, 2, 7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.DayOfWeek != 2 {
		t.Errorf("day_of_week = %d, want 2", issued.DayOfWeek)
	}
	if issued.Exp != now.Add(30*time.Second).Unix() {
		t.Errorf("exp = %d", issued.Exp)
	}

	got, err := c.Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != *issued {
		t.Errorf("decoded %+v, want %+v", got, issued)
	}

	// unpadded form decodes too
	if _, err := c.Decode(strings.TrimRight(code, "=")); err != nil {
		t.Errorf("unpadded: %v", err)
	}
}

func TestCodec_Expiry(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	c := fixedCodec(now)
	code, _, err := c.Issue(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	c.now = func() time.Time { return now.Add(30 * time.Second) }
	if _, err := c.Decode(code); err != nil {
		t.Errorf("at exp: %v, want valid", err)
	}

	c.now = func() time.Time { return now.Add(31 * time.Second) }
	if _, err := c.Decode(code); !errors.Is(err, ErrExpired) {
		t.Errorf("after exp: err = %v, want ErrExpired", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := NewCodec(30 * time.Second)
	enc := func(v interface{}) string {
		b, _ := json.Marshal(v)
		return base64.URLEncoding.EncodeToString(b)
	}

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"not base64", "%%%"},
		{"not json", base64.URLEncoding.EncodeToString([]byte("hello"))},
		{"no token id", enc(map[string]interface{}{"exp": time.Now().Add(time.Minute).Unix()})},
		{"bad weekday", enc(map[string]interface{}{"exp": time.Now().Add(time.Minute).Unix(), "token_id": "x", "day_of_week": 9})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Decode(tt.code); !errors.Is(err, ErrMalformed) {
				t.Errorf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestWeekday(t *testing.T) {
	monday := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := weekday(monday.AddDate(0, 0, i)); got != i {
			t.Errorf("%s: got %d, want %d", monday.AddDate(0, 0, i).Weekday(), got, i)
		}
	}
}
