// Package export writes a purchase's invoice snapshots to disk and renders a
// plain-text statement that can be pasted into a message to the customer.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
)

// Source is the read side of the ledger the export needs.
type Source interface {
	GetPurchase(ctx context.Context, id uuid.UUID) (*ledger.PurchaseView, error)
	ListInvoices(ctx context.Context, purchaseID uuid.UUID) ([]*invoice.Invoice, error)
}

// Item links an invoice to the file it was written to.
type Item struct {
	Invoice  *invoice.Invoice
	FilePath string
}

type Service struct {
	ledger Source
}

func NewService(src Source) *Service {
	return &Service{ledger: src}
}

// Export writes every invoice of the purchase as a JSON file into outputDir,
// oldest first.
func (s *Service) Export(ctx context.Context, purchaseID uuid.UUID, outputDir string) (*ledger.PurchaseView, []Item, error) {
	view, err := s.ledger.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting purchase: %w", err)
	}

	invoices, err := s.ledger.ListInvoices(ctx, purchaseID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing invoices: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(invoices))

	for _, inv := range invoices {
		path, err := writeInvoice(inv, outputDir)
		if err != nil {
			return nil, nil, fmt.Errorf("writing invoice %s: %w", inv.Number, err)
		}

		items = append(items, Item{Invoice: inv, FilePath: path})
	}

	return view, items, nil
}

func writeInvoice(inv *invoice.Invoice, dir string) (string, error) {
	path := filepath.Join(dir, filename(inv))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(toDocument(inv)); err != nil {
		return "", fmt.Errorf("encoding invoice: %w", err)
	}

	return path, nil
}

type lineDocument struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type document struct {
	Number          string          `json:"number"`
	Kind            invoice.Kind    `json:"kind"`
	PurchaseID      uuid.UUID       `json:"purchase_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	ShopID          uuid.UUID       `json:"shop_id"`
	Lines           []lineDocument  `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Interest        decimal.Decimal `json:"interest"`
	Total           decimal.Decimal `json:"total"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	IssuedAt        string          `json:"issued_at"`
}

func toDocument(inv *invoice.Invoice) document {
	doc := document{
		Number:          inv.Number,
		Kind:            inv.Kind,
		PurchaseID:      inv.PurchaseID,
		CustomerID:      inv.CustomerID,
		ShopID:          inv.ShopID,
		Lines:           make([]lineDocument, len(inv.Items)),
		Subtotal:        inv.Subtotal,
		Interest:        inv.Interest,
		Total:           inv.Total,
		PreviousBalance: inv.PreviousBalance,
		PaymentAmount:   inv.PaymentAmount,
		NewBalance:      inv.NewBalance,
		IssuedAt:        inv.IssuedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	for i, it := range inv.Items {
		doc.Lines[i] = lineDocument{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice, LineTotal: it.LineTotal}
	}

	return doc
}

// Format: YYYYMMDD_INV-00000001_KIND.json
func filename(inv *invoice.Invoice) string {
	return fmt.Sprintf("%s_%s_%s.json", inv.IssuedAt.Format("20060102"), inv.Number, strings.ToLower(string(inv.Kind)))
}

// Statement renders one line per invoice followed by the purchase's
// current position.
func Statement(view *ledger.PurchaseView, items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		inv := item.Invoice

		amount := inv.Total
		if inv.Kind == invoice.KindPayment {
			amount = inv.PaymentAmount
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | balance %s | %s\n",
			inv.IssuedAt.Format("2006-01-02"),
			inv.Number,
			inv.Kind,
			amount.StringFixed(2),
			inv.NewBalance.StringFixed(2),
			filepath.Base(item.FilePath),
		)
	}

	p := view.Purchase
	fmt.Fprintf(&sb, "\nStatus: %s | Paid: %s of %s | Outstanding: %s\n",
		view.Status, p.AmountPaid.StringFixed(2), p.Total.StringFixed(2), p.Outstanding().StringFixed(2))

	return sb.String()
}
