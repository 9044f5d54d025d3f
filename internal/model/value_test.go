package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValue_Decode(t *testing.T) {
	var snap FinancialSnapshot
	body := `{"companyName":"Apple Inc.","stockPrice":"N/A","peRatio":31.42,
		"marginData":[{"date":"2024-06-30","grossMargin":"46.3","operatingMargin":null,"netIncomeMargin":24.1}]}`
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.StockPrice.Valid {
		t.Errorf("expected N/A stock price to be invalid, got %v", snap.StockPrice.Float)
	}
	if !snap.PERatio.Valid || snap.PERatio.Float != 31.42 {
		t.Errorf("expected pe 31.42, got %+v", snap.PERatio)
	}
	m := snap.MarginData[0]
	if !m.GrossMargin.Valid || m.GrossMargin.Float != 46.3 {
		t.Errorf("expected numeric string to decode, got %+v", m.GrossMargin)
	}
	if m.OperatingMargin.Valid {
		t.Error("expected null margin to be invalid")
	}
}

func TestValue_DecodeRejectsObjects(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"x":1}`), &v); err == nil {
		t.Fatal("expected error for object value")
	}
}

func TestValue_MarshalInvalidAsNull(t *testing.T) {
	b, err := json.Marshal([]Value{Num(1.5), {}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[1.5,null]" {
		t.Errorf("got %s", b)
	}
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)

	got, err := ParseTimestamp("2024-03-01 09:35:00", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, 3, 1, 9, 35, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = ParseTimestamp("2024-03-01T14:35:00Z", loc)
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("rfc3339: got %v, want %v", got, want)
	}

	if _, err := ParseTimestamp("yesterday", loc); err == nil {
		t.Error("expected error for garbage timestamp")
	}
}
