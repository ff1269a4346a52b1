package entity

import "sort"

// Denomination is a currency face value used to express cash counts.
type Denomination int

// Denominations is the fixed set accepted at the counter, highest first.
var Denominations = []Denomination{2000, 500, 200, 100, 50, 20, 10, 5, 2, 1}

// IsDenomination reports whether v belongs to the fixed set.
func IsDenomination(v int) bool {
	for _, d := range Denominations {
		if int(d) == v {
			return true
		}
	}
	return false
}

// DenominationCounts maps a face value to a positive note/coin count.
type DenominationCounts map[Denomination]int

// DenominationPayment is the cash breakdown submitted with a bill. PaidAmount
// is passed through untouched; the billing service parses it.
type DenominationPayment struct {
	Counts     DenominationCounts `json:"counts"`
	PaidAmount string             `json:"paid_amount"`
}

// DenominationMap is a face value to count map as returned by the service.
// Keys are not restricted to the fixed set.
type DenominationMap map[int]int

// Keys returns face values in ascending numeric order.
func (m DenominationMap) Keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
