package procure

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"p9e.in/qms/models"
	"p9e.in/qms/utils"
)

// parseAmount reads a form value as a decimal, treating blank or
// unparseable input as zero. Weigh stations type into free-text fields;
// a typo must not hard-fail the weighing flow.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ComputeNetWeight returns weightBefore - weightAfter rounded to two
// decimals. The stored net weight is always this value, recomputed on
// every edit to either input; it is never taken from user input.
func ComputeNetWeight(weightBefore, weightAfter string) float64 {
	net := parseAmount(weightBefore).Sub(parseAmount(weightAfter))
	return net.Round(2).InexactFloat64()
}

// ComputeTaxAmount returns quantity * rate * gst% rounded to two
// decimals, or "" when any input is not numeric.
func ComputeTaxAmount(quantity, ratePerQuantity, gstPercent string) string {
	qty, err1 := decimal.NewFromString(strings.TrimSpace(quantity))
	rate, err2 := decimal.NewFromString(strings.TrimSpace(ratePerQuantity))
	gst, err3 := decimal.NewFromString(strings.TrimSpace(gstPercent))
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	tax := qty.Mul(rate).Mul(gst).Div(decimal.NewFromInt(100))
	return tax.Round(2).StringFixed(2)
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// GNRNumber derives the GNR number from a PO number. For a canonical
// POYYYYMMDDXXX number the 3-digit sequence suffix is used; otherwise
// the trailing digit run, zero-padded to three. Numbers with no digits
// fall back to the last six digits of asOf in unix milliseconds.
func GNRNumber(poNumber string, asOf time.Time) string {
	if utils.ValidatePONumber(poNumber) {
		return "GNR-" + poNumber[len(poNumber)-3:]
	}
	if m := trailingDigits.FindString(poNumber); m != "" {
		for len(m) < 3 {
			m = "0" + m
		}
		return "GNR-" + m
	}
	millis := fmt.Sprintf("%d", asOf.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "GNR-" + millis
}

// ManualGNRNumber pre-seeds the Accounts form when no number was typed.
func ManualGNRNumber(asOf time.Time) string {
	return fmt.Sprintf("GNR-%d", asOf.UnixMilli())
}

// DeriveGNRFromPO projects a GNR view from a purchase order. Pure: the
// same PO and as-of date always produce the same record. Nothing is
// persisted; the caller tags persisted receipts as manual instead.
func DeriveGNRFromPO(po models.PurchaseOrder, asOf time.Time) models.GNR {
	quantity := po.Quantity
	if quantity == "" {
		quantity = "N/A"
	}
	segments := strings.Split(po.PONumber, "-")
	remarks := "Auto-generated GNR for PO " + po.PONumber
	return models.GNR{
		GNRNumber:       GNRNumber(po.PONumber, asOf),
		PONumber:        po.PONumber,
		SupplierName:    po.SupplierName,
		Material:        po.Material,
		Quantity:        quantity,
		Unit:            "pieces",
		ReceivedDate:    asOf.Format("2006-01-02"),
		ReceivedBy:      "System Generated",
		Condition:       "Good",
		StorageLocation: "Main Warehouse",
		VehicleNumber:   "VEH-" + segments[len(segments)-1],
		DriverName:      "Auto Assigned",
		DriverPhone:     "N/A",
		Source:          models.GNRDerived,
		Status:          "Active",
		Remarks:         &remarks,
		CreatedBy:       "system",
	}
}
