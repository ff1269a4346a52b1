package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value exactly as the billing service formatted it.
// The service may send either a JSON string ("12.50") or a bare number (12);
// both are kept verbatim so rendering never reformats them.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	var literal string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &literal); err != nil {
			return err
		}
	} else {
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		literal = num.String()
	}

	if _, err := decimal.NewFromString(literal); err != nil {
		return fmt.Errorf("amount: %q is not a decimal value", literal)
	}
	*a = Amount(literal)
	return nil
}

func (a Amount) String() string {
	return string(a)
}
