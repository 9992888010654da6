package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

func TestWriteCSV(t *testing.T) {
	rows := []model.RoundFeatures{
		{MatchID: "m1", RoundNumber: 1, MapName: "de_train", CTMoneyTotal: 4000, CTCashAvg: 312.5, RoundWinner: 1},
		{MatchID: "m1", RoundNumber: 2, MapName: "de_train", IsOvertime: false},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(records))
	}

	cols := storage.RoundColumns()
	if len(records[0]) != len(cols) {
		t.Fatalf("header has %d columns, want %d", len(records[0]), len(cols))
	}
	byName := make(map[string]string, len(cols))
	for i, name := range records[0] {
		byName[name] = records[1][i]
	}
	if byName["ct_money_total"] != "4000" {
		t.Errorf("ct_money_total = %q, want 4000", byName["ct_money_total"])
	}
	if byName["ct_cash_avg"] != "312.5" {
		t.Errorf("ct_cash_avg = %q, want 312.5", byName["ct_cash_avg"])
	}
	if byName["round_winner"] != "1" || byName["is_side_switch"] != "0" {
		t.Errorf("winner/side-switch = %q/%q", byName["round_winner"], byName["is_side_switch"])
	}
}

func TestRowStringsMatchesColumnCount(t *testing.T) {
	got := rowStrings(model.RoundFeatures{})
	if len(got) != len(storage.RoundColumns()) {
		t.Fatalf("rowStrings has %d values, columns %d", len(got), len(storage.RoundColumns()))
	}
	vals := rowValues(model.RoundFeatures{})
	if len(vals) != len(storage.RoundColumns()) {
		t.Fatalf("rowValues has %d values, columns %d", len(vals), len(storage.RoundColumns()))
	}
}
