package entity

import (
	"encoding/json"
	"testing"
)

func TestAmountKeepsLiteral(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12.50","b":480,"c":1.0}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.A != "12.50" || payload.B != "480" || payload.C != "1.0" {
		t.Fatalf("amounts were reformatted: %+v", payload)
	}
}

func TestAmountRejectsNonDecimal(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`"twelve"`), &a); err == nil {
		t.Fatalf("expected error for non-decimal literal")
	}
	if err := json.Unmarshal([]byte(`true`), &a); err == nil {
		t.Fatalf("expected error for boolean")
	}
}

func TestTimestampAcceptsNaiveAndZoned(t *testing.T) {
	for _, raw := range []string{
		`"2024-03-01T10:15:00"`,
		`"2024-03-01T10:15:00.123456"`,
		`"2024-03-01T10:15:00+05:30"`,
		`"2024-03-01T10:15:00Z"`,
	} {
		var ts Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if ts.Year() != 2024 || ts.Month() != 3 || ts.Day() != 1 {
			t.Fatalf("%s: parsed to %v", raw, ts.Time)
		}
	}

	var bad Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &bad); err == nil {
		t.Fatalf("expected error for unparseable timestamp")
	}
}

func TestDenominationCountsEncodeAsObject(t *testing.T) {
	body, err := json.Marshal(DenominationPayment{
		Counts:     DenominationCounts{500: 2, 10: 1},
		PaidAmount: "1010",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"counts":{"10":1,"500":2},"paid_amount":"1010"}`
	if string(body) != want {
		t.Fatalf("got %s, want %s", body, want)
	}
}

func TestDenominationMapKeysAscending(t *testing.T) {
	m := DenominationMap{500: 1, 2: 3, 100: 2}
	keys := m.Keys()
	want := []int{2, 100, 500}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if !IsDenomination(2000) || IsDenomination(3) {
		t.Fatalf("IsDenomination mismatch")
	}
}
