package procure

import (
	"strconv"
	"testing"
	"time"

	"p9e.in/qms/models"
)

func TestComputeNetWeight(t *testing.T) {
	cases := []struct {
		name   string
		before string
		after  string
		want   float64
	}{
		{"simple", "100", "30", 70},
		{"decimals", "100.55", "30.25", 70.30},
		{"unparseable before treated as zero", "abc", "30", -30},
		{"unparseable after treated as zero", "100", "", 100},
		{"both unparseable", "x", "y", 0},
		{"whitespace tolerated", " 100 ", " 30 ", 70},
		{"negative net", "30", "100", -70},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ComputeNetWeight(c.before, c.after); got != c.want {
				t.Errorf("ComputeNetWeight(%q, %q) = %v, want %v", c.before, c.after, got, c.want)
			}
		})
	}
}

func TestComputeTaxAmount(t *testing.T) {
	cases := []struct {
		name string
		qty  string
		rate string
		gst  string
		want string
	}{
		{"whole numbers", "10", "100", "18", "180.00"},
		{"fractional", "2.5", "40", "5", "5.00"},
		{"zero gst", "10", "100", "0", "0.00"},
		{"unparseable quantity", "ten", "100", "18", ""},
		{"blank rate", "10", "", "18", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ComputeTaxAmount(c.qty, c.rate, c.gst); got != c.want {
				t.Errorf("ComputeTaxAmount(%q, %q, %q) = %q, want %q", c.qty, c.rate, c.gst, got, c.want)
			}
		})
	}
}

func TestGNRNumber(t *testing.T) {
	asOf := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		poNumber string
		want     string
	}{
		{"canonical number uses sequence suffix", "PO20240115042", "GNR-042"},
		{"trailing digit run padded", "CUSTOM-7", "GNR-007"},
		{"long trailing run kept whole", "ORDER1234", "GNR-1234"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := GNRNumber(c.poNumber, asOf); got != c.want {
				t.Errorf("GNRNumber(%q) = %q, want %q", c.poNumber, got, c.want)
			}
		})
	}

	t.Run("no digits falls back to timestamp", func(t *testing.T) {
		got := GNRNumber("NODIGITS", asOf)
		if len(got) != len("GNR-")+6 {
			t.Fatalf("GNRNumber fallback = %q, want GNR- plus six digits", got)
		}
		millis := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
		want := "GNR-" + fmtLastSix(millis)
		if got != want {
			t.Errorf("GNRNumber fallback = %q, want %q", got, want)
		}
	})
}

func fmtLastSix(millis int64) string {
	s := strconv.FormatInt(millis, 10)
	if len(s) > 6 {
		s = s[len(s)-6:]
	}
	return s
}

func TestDeriveGNRFromPO(t *testing.T) {
	asOf := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	po := models.PurchaseOrder{
		PONumber:     "PO20240115042",
		SupplierName: "Acme Metals",
		Material:     "Steel Rods",
		Quantity:     "500",
	}

	first := DeriveGNRFromPO(po, asOf)
	second := DeriveGNRFromPO(po, asOf)

	if first.GNRNumber != "GNR-042" {
		t.Errorf("GNRNumber = %q, want GNR-042", first.GNRNumber)
	}
	if first.Source != models.GNRDerived {
		t.Errorf("Source = %q, want %q", first.Source, models.GNRDerived)
	}
	if first.ReceivedDate != "2024-01-20" {
		t.Errorf("ReceivedDate = %q", first.ReceivedDate)
	}
	if first.Unit != "pieces" || first.Condition != "Good" || first.StorageLocation != "Main Warehouse" {
		t.Errorf("defaults wrong: %+v", first)
	}
	if first.VehicleNumber != "VEH-PO20240115042" {
		t.Errorf("VehicleNumber = %q", first.VehicleNumber)
	}

	// Same PO, same as-of date: identical projection.
	if first.GNRNumber != second.GNRNumber || first.ReceivedDate != second.ReceivedDate ||
		first.Quantity != second.Quantity || first.VehicleNumber != second.VehicleNumber {
		t.Errorf("projection not deterministic: %+v vs %+v", first, second)
	}
}

func TestDeriveGNRFromPODefaults(t *testing.T) {
	asOf := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	po := models.PurchaseOrder{PONumber: "WP-7781"}

	got := DeriveGNRFromPO(po, asOf)
	if got.Quantity != "N/A" {
		t.Errorf("blank quantity should default to N/A, got %q", got.Quantity)
	}
	if got.VehicleNumber != "VEH-7781" {
		t.Errorf("VehicleNumber = %q, want VEH-7781", got.VehicleNumber)
	}
	if got.GNRNumber != "GNR-7781" {
		t.Errorf("GNRNumber = %q, want GNR-7781", got.GNRNumber)
	}
}
