package service

import (
	"reflect"
	"testing"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/pkg/apperror"
)

func TestLineItemCollectorNeverEmpties(t *testing.T) {
	c := NewLineItemCollector()
	c.AddRow()
	c.AddRow()
	if got := len(c.Rows()); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}

	for _, idx := range []int{1, 0, 2, 2, 2} {
		if err := c.RemoveRow(idx); err != nil && len(c.Rows()) > 1 {
			t.Fatalf("unexpected error removing %d: %v", idx, err)
		}
		if len(c.Rows()) < 1 {
			t.Fatalf("collector reached zero rows")
		}
	}
	rows := c.Rows()
	if len(rows) != 1 || rows[0].Index != 2 {
		t.Fatalf("expected only row 2 to remain, got %+v", rows)
	}
}

func TestLineItemCollectorResetsSoleRow(t *testing.T) {
	c := NewLineItemCollector()
	if err := c.UpdateRow(0, "NB200", "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.RemoveRow(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := c.Rows()
	if len(rows) != 1 || rows[0].ProductCode != "" || rows[0].Quantity != "1" || rows[0].Index != 0 {
		t.Fatalf("expected blanked row 0, got %+v", rows)
	}
}

func TestLineItemCollectorIndexesAreMonotonic(t *testing.T) {
	c := NewLineItemCollector()
	a := c.AddRow()
	_ = c.RemoveRow(a.Index)
	b := c.AddRow()
	if b.Index <= a.Index {
		t.Fatalf("expected fresh index, got %d after %d", b.Index, a.Index)
	}

	c.Clear()
	rows := c.Rows()
	if len(rows) != 1 || rows[0].Index != 0 {
		t.Fatalf("expected single row 0 after clear, got %+v", rows)
	}
}

func TestLineItemCollectorUnknownRow(t *testing.T) {
	c := NewLineItemCollector()
	if err := c.RemoveRow(99); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := c.UpdateRow(99, "X", "1"); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLineItemSnapshot(t *testing.T) {
	cases := []struct {
		name    string
		rows    [][2]string
		want    []entity.LineItem
		wantErr string
	}{
		{
			name: "trims and parses",
			rows: [][2]string{{"  NB200 ", "2"}, {"PN010", " 3 "}},
			want: []entity.LineItem{{ProductCode: "NB200", Quantity: 2}, {ProductCode: "PN010", Quantity: 3}},
		},
		{name: "empty code", rows: [][2]string{{"   ", "abc"}}, wantErr: MsgEmptyProductCode},
		{name: "zero", rows: [][2]string{{"NB200", "0"}}, wantErr: MsgInvalidQuantity},
		{name: "negative", rows: [][2]string{{"NB200", "-1"}}, wantErr: MsgInvalidQuantity},
		{name: "fraction", rows: [][2]string{{"NB200", "1.5"}}, wantErr: MsgInvalidQuantity},
		{name: "decimal integer", rows: [][2]string{{"NB200", "2.0"}}, wantErr: MsgInvalidQuantity},
		{name: "exponent", rows: [][2]string{{"NB200", "1e2"}}, wantErr: MsgInvalidQuantity},
		{name: "blank quantity", rows: [][2]string{{"NB200", ""}}, wantErr: MsgInvalidQuantity},
		{name: "text quantity", rows: [][2]string{{"NB200", "two"}}, wantErr: MsgInvalidQuantity},
		{
			name:    "first bad row wins",
			rows:    [][2]string{{"NB200", "1"}, {"PN010", "0"}, {"", "1"}},
			wantErr: MsgInvalidQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewLineItemCollector()
			for i, row := range tc.rows {
				if i > 0 {
					c.AddRow()
				}
				if err := c.UpdateRow(i, row[0], row[1]); err != nil {
					t.Fatalf("update row %d: %v", i, err)
				}
			}
			items, err := c.Snapshot()
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("expected %q, got %v", tc.wantErr, err)
				}
				if !apperror.IsKind(err, apperror.KindValidation) {
					t.Fatalf("expected validation kind")
				}
				if items != nil {
					t.Fatalf("expected no partial result, got %+v", items)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(items, tc.want) {
				t.Fatalf("got %+v, want %+v", items, tc.want)
			}
		})
	}
}

func TestLineItemSnapshotWithoutRows(t *testing.T) {
	c := &LineItemCollector{}
	if _, err := c.Snapshot(); err == nil || err.Error() != MsgNoLineItems {
		t.Fatalf("expected %q, got %v", MsgNoLineItems, err)
	}
}

func TestDenominationPopulateIsIdempotent(t *testing.T) {
	c := NewDenominationCollector()
	_ = c.SetCount(500, 3)
	c.Populate()
	c.Populate()

	counters := c.Counters()
	if len(counters) != 10 {
		t.Fatalf("expected 10 counters, got %d", len(counters))
	}
	seen := map[entity.Denomination]bool{}
	for i, counter := range counters {
		if counter.Count != 0 {
			t.Fatalf("counter %d not reset: %+v", counter.Value, counter)
		}
		if seen[counter.Value] {
			t.Fatalf("duplicate counter %d", counter.Value)
		}
		seen[counter.Value] = true
		if counter.Value != entity.Denominations[i] {
			t.Fatalf("counters out of order at %d: %d", i, counter.Value)
		}
	}
}

func TestDenominationSnapshotOmitsZeroCounts(t *testing.T) {
	c := NewDenominationCollector()
	_ = c.SetCount(2000, 0)
	_ = c.SetCount(500, 2)
	_ = c.SetCount(100, 0)

	payment, err := c.Snapshot(" 1000 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(payment.Counts, entity.DenominationCounts{500: 2}) {
		t.Fatalf("unexpected counts %v", payment.Counts)
	}
	if payment.PaidAmount != "1000" {
		t.Fatalf("expected trimmed paid amount, got %q", payment.PaidAmount)
	}
}

func TestDenominationSnapshotKeepsPaidAmountOpaque(t *testing.T) {
	c := NewDenominationCollector()
	payment, err := c.Snapshot("12abc")
	if err != nil || payment.PaidAmount != "12abc" {
		t.Fatalf("paid amount must pass through untouched, got %q %v", payment.PaidAmount, err)
	}
}

func TestDenominationSnapshotRequiresPaidAmount(t *testing.T) {
	c := NewDenominationCollector()
	for _, paid := range []string{"", "   ", "\t\n"} {
		if _, err := c.Snapshot(paid); err == nil || err.Error() != MsgPaidAmountRequired {
			t.Fatalf("paid %q: expected %q, got %v", paid, MsgPaidAmountRequired, err)
		}
	}
}

func TestDenominationSetCountRejectsUnknownAndNegative(t *testing.T) {
	c := NewDenominationCollector()
	if err := c.SetCount(3, 1); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for 3, got %v", err)
	}
	if err := c.SetCount(10, -1); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for negative count, got %v", err)
	}
	_ = c.SetCount(10, 4)
	c.ResetCounts()
	for _, counter := range c.Counters() {
		if counter.Count != 0 {
			t.Fatalf("ResetCounts left %+v", counter)
		}
	}
}

func TestBuildBillingRequest(t *testing.T) {
	lines := NewLineItemCollector()
	_ = lines.UpdateRow(0, "NB200", "2")
	denoms := NewDenominationCollector()
	_ = denoms.SetCount(500, 1)

	req, err := BuildBillingRequest("jane@example.com", lines, denoms, "500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &entity.BillingRequest{
		CustomerEmail: "jane@example.com",
		Items:         []entity.LineItem{{ProductCode: "NB200", Quantity: 2}},
		Denominations: entity.DenominationPayment{Counts: entity.DenominationCounts{500: 1}, PaidAmount: "500"},
	}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("got %+v, want %+v", req, want)
	}
}

func TestBuildBillingRequestPropagatesFirstFailure(t *testing.T) {
	lines := NewLineItemCollector()
	denoms := NewDenominationCollector()

	_, err := BuildBillingRequest("", lines, denoms, "")
	if err == nil || err.Error() != MsgEmptyProductCode {
		t.Fatalf("line items must be checked first, got %v", err)
	}

	_ = lines.UpdateRow(0, "NB200", "1")
	_, err = BuildBillingRequest("", lines, denoms, "")
	if err == nil || err.Error() != MsgPaidAmountRequired {
		t.Fatalf("expected paid amount failure, got %v", err)
	}
}
