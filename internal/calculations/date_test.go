package calculations

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	sale := SaleInfo{SaleDate: NewDate(2023, time.August, 1), SalePrice: 20, SharesSold: 100}

	data, err := json.Marshal(sale)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"sale_date":"2023-08-01","sale_price":20,"shares_sold":100}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded SaleInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.SaleDate.Equal(sale.SaleDate.Time) {
		t.Errorf("decoded date = %v, want %v", decoded.SaleDate, sale.SaleDate)
	}
}

func TestDateJSONEmptyAndInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`""`), &d); err != nil || !d.IsZero() {
		t.Errorf("empty string should decode to zero date, got %v, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`"08/01/2023"`), &d); err == nil {
		t.Error("expected error for non ISO date")
	}
}
