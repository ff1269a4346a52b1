package service

import (
	"strconv"
	"strings"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/pkg/apperror"
)

// Line item validation messages shown to the operator.
const (
	MsgEmptyProductCode = "Product code cannot be empty."
	MsgInvalidQuantity  = "Quantity must be a positive integer."
	MsgNoLineItems      = "Add at least one line item."
)

const defaultQuantity = "1"

// LineRow is one editable line of the bill as typed by the operator.
type LineRow struct {
	Index       int    `json:"index"`
	ProductCode string `json:"product_code"`
	Quantity    string `json:"quantity"`
}

// LineItemCollector holds the ordered, editable list of line rows. It always
// keeps at least one row. It is not safe for concurrent use.
type LineItemCollector struct {
	rows      []LineRow
	nextIndex int
}

// NewLineItemCollector returns a collector with a single blank row.
func NewLineItemCollector() *LineItemCollector {
	c := &LineItemCollector{}
	c.AddRow()
	return c
}

// AddRow appends a blank row and returns it.
func (c *LineItemCollector) AddRow() LineRow {
	row := LineRow{Index: c.nextIndex, Quantity: defaultQuantity}
	c.nextIndex++
	c.rows = append(c.rows, row)
	return row
}

// RemoveRow deletes the row with the given index. The sole remaining row is
// blanked instead of deleted.
func (c *LineItemCollector) RemoveRow(index int) error {
	pos := c.position(index)
	if pos < 0 {
		return apperror.NewNotFoundError("Line item row")
	}
	if len(c.rows) == 1 {
		c.rows[0].ProductCode = ""
		c.rows[0].Quantity = defaultQuantity
		return nil
	}
	c.rows = append(c.rows[:pos], c.rows[pos+1:]...)
	return nil
}

// UpdateRow replaces the raw inputs of a row.
func (c *LineItemCollector) UpdateRow(index int, productCode, quantity string) error {
	pos := c.position(index)
	if pos < 0 {
		return apperror.NewNotFoundError("Line item row")
	}
	c.rows[pos].ProductCode = productCode
	c.rows[pos].Quantity = quantity
	return nil
}

// Clear drops every row and starts over with one blank row at index 0.
func (c *LineItemCollector) Clear() {
	c.rows = nil
	c.nextIndex = 0
	c.AddRow()
}

// Rows returns a copy of the current rows in display order.
func (c *LineItemCollector) Rows() []LineRow {
	out := make([]LineRow, len(c.rows))
	copy(out, c.rows)
	return out
}

// Snapshot validates every row in order and returns the line items. The
// first invalid row aborts the whole snapshot.
func (c *LineItemCollector) Snapshot() ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(c.rows))
	for _, row := range c.rows {
		code := strings.TrimSpace(row.ProductCode)
		if code == "" {
			return nil, apperror.NewValidationError(MsgEmptyProductCode)
		}
		qty, ok := parseQuantity(row.Quantity)
		if !ok {
			return nil, apperror.NewValidationError(MsgInvalidQuantity)
		}
		items = append(items, entity.LineItem{ProductCode: code, Quantity: qty})
	}
	if len(items) == 0 {
		return nil, apperror.NewValidationError(MsgNoLineItems)
	}
	return items, nil
}

// parseQuantity accepts only base-10 integers >= 1; "1.5", "2.0" and "1e2"
// are rejected rather than coerced.
func parseQuantity(raw string) (int, bool) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		return 0, false
	}
	return qty, true
}

func (c *LineItemCollector) position(index int) int {
	for i, row := range c.rows {
		if row.Index == index {
			return i
		}
	}
	return -1
}
