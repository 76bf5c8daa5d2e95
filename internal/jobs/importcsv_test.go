package jobs

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseProductCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"name,sku,description,price_cents,currency,images,status",
		"Red Mug,MUG-R,Ceramic mug,1299,USD,a.png|b.png,active",
		"Blue Mug,MUG-B,,999,,,",
		",MISSING-NAME,no name here,100,,,",
		"Bad Price,MUG-X,,not-a-number,,,",
	}, "\n")

	rows, failed, err := parseProductCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseProductCSV returned error: %v", err)
	}
	if failed != 2 {
		t.Fatalf("failed = %d, want 2", failed)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.Name != "Red Mug" || first.SKU != "MUG-R" || first.PriceCents != 1299 {
		t.Fatalf("first row = %+v", first)
	}
	if len(first.Images) != 2 || first.Images[0] != "a.png" || first.Images[1] != "b.png" {
		t.Fatalf("first row images = %v", first.Images)
	}
	if first.Status != "active" {
		t.Fatalf("first row status = %q", first.Status)
	}

	second := rows[1]
	if second.Name != "Blue Mug" || second.PriceCents != 999 {
		t.Fatalf("second row = %+v", second)
	}
	if second.Images != nil {
		t.Fatalf("second row images = %v, want nil", second.Images)
	}
}

func TestParseProductCSVHeaderOrderIndependent(t *testing.T) {
	csvData := "sku,name\nMUG-1,Green Mug\n"
	rows, failed, err := parseProductCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseProductCSV returned error: %v", err)
	}
	if failed != 0 || len(rows) != 1 {
		t.Fatalf("rows=%d failed=%d, want 1 and 0", len(rows), failed)
	}
	if rows[0].Name != "Green Mug" || rows[0].SKU != "MUG-1" {
		t.Fatalf("row = %+v", rows[0])
	}
}

func TestParseProductCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"empty input", ""},
		{"no name column", "sku,price_cents\nMUG-1,100\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := parseProductCSV(strings.NewReader(tc.csv)); err == nil {
				t.Fatalf("parseProductCSV(%q) returned nil error", tc.csv)
			}
		})
	}
}

func TestProductRowToProductDefaults(t *testing.T) {
	row := productRow{Name: "Plain"}
	p := row.toProduct(uuid.New())
	if p.Currency != "USD" {
		t.Fatalf("currency = %q, want USD", p.Currency)
	}
	if p.Status != "draft" {
		t.Fatalf("status = %q, want draft", p.Status)
	}
	if string(p.Images) != "[]" {
		t.Fatalf("images = %s, want []", p.Images)
	}
}
