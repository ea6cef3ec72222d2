package importer

import "github.com/MrJamesThe3rd/layby/internal/payment"

// Profile describes the column layout of one kind of payment sheet.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name         string
	PurchaseCol  string
	AmountCol    string
	MethodCol    string // optional; DefaultMethod applies when absent or blank
	ReferenceCol string // optional
	// DefaultMethod is the payment method implied by the sheet itself.
	DefaultMethod payment.Method
	// DecimalMark, when set, is always the decimal separator if it appears
	// alone in a cell. Empty means the mark is guessed per cell.
	DecimalMark string
}

func (p Profile) requiredCols() []string {
	return []string{p.PurchaseCol, p.AmountCol}
}

// profiles is the ordered list of layouts tried during auto-detection. More
// specific profiles come first so a generic header does not shadow them.
var profiles = []Profile{
	{
		Name:          "mobile money statement",
		PurchaseCol:   "account",
		AmountCol:     "amount received",
		ReferenceCol:  "transaction id",
		DefaultMethod: payment.MethodMobileMoney,
		DecimalMark:   ".",
	},
	{
		Name:          "bank statement",
		PurchaseCol:   "purchase",
		AmountCol:     "credit",
		ReferenceCol:  "bank reference",
		DefaultMethod: payment.MethodBankTransfer,
	},
	{
		Name:          "collector sheet",
		PurchaseCol:   "purchase_id",
		AmountCol:     "amount",
		MethodCol:     "method",
		ReferenceCol:  "reference",
		DefaultMethod: payment.MethodCash,
		DecimalMark:   ".",
	},
}
