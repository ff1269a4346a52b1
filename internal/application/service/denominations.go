package service

import (
	"fmt"
	"strings"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/pkg/apperror"
)

// MsgPaidAmountRequired is shown when the paid field is blank.
const MsgPaidAmountRequired = "Enter the total paid amount."

// DenominationCounter is the count entered for one face value.
type DenominationCounter struct {
	Value entity.Denomination `json:"value"`
	Count int                 `json:"count"`
}

// DenominationCollector holds one counter per fixed face value. It is not
// safe for concurrent use.
type DenominationCollector struct {
	counters []DenominationCounter
}

// NewDenominationCollector returns a populated collector.
func NewDenominationCollector() *DenominationCollector {
	c := &DenominationCollector{}
	c.Populate()
	return c
}

// Populate replaces all counters with a fresh zeroed set in descending face
// value order.
func (c *DenominationCollector) Populate() {
	c.counters = make([]DenominationCounter, len(entity.Denominations))
	for i, d := range entity.Denominations {
		c.counters[i] = DenominationCounter{Value: d}
	}
}

// SetCount records the count for a face value.
func (c *DenominationCollector) SetCount(value, count int) error {
	if count < 0 {
		return apperror.NewValidationError("Denomination counts cannot be negative.")
	}
	for i := range c.counters {
		if int(c.counters[i].Value) == value {
			c.counters[i].Count = count
			return nil
		}
	}
	return apperror.NewValidationError(fmt.Sprintf("Unsupported denomination %d.", value))
}

// ResetCounts zeroes every counter without rebuilding the set.
func (c *DenominationCollector) ResetCounts() {
	for i := range c.counters {
		c.counters[i].Count = 0
	}
}

// Counters returns a copy of the counters in display order.
func (c *DenominationCollector) Counters() []DenominationCounter {
	out := make([]DenominationCounter, len(c.counters))
	copy(out, c.counters)
	return out
}

// Snapshot returns the non-zero counts and the trimmed paid amount.
func (c *DenominationCollector) Snapshot(paidInput string) (entity.DenominationPayment, error) {
	counts := entity.DenominationCounts{}
	for _, counter := range c.counters {
		if counter.Count > 0 {
			counts[counter.Value] = counter.Count
		}
	}
	paid := strings.TrimSpace(paidInput)
	if paid == "" {
		return entity.DenominationPayment{}, apperror.NewValidationError(MsgPaidAmountRequired)
	}
	return entity.DenominationPayment{Counts: counts, PaidAmount: paid}, nil
}
