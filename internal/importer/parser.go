// Package importer reads payment sheets handed in by field collectors and
// mobile money or bank statements, and records their rows as payments.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	enc "github.com/MrJamesThe3rd/layby/internal/encoding"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/payment"
)

var ErrUnknownFormat = errors.New("no matching sheet format found")

// Row is one data line of a sheet. Err is set when the line could not be
// turned into a payment; the rest of the sheet is still usable.
type Row struct {
	Line    int
	Payment ledger.RecordPaymentParams
	Err     error
}

type Sheet struct {
	Format  string
	Charset string
	Rows    []Row
}

// Parse reads a semicolon or comma separated sheet in any supported layout
// and charset.
func Parse(r io.Reader) (*Sheet, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = delimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := readRecords(reader)
	if err != nil {
		return nil, err
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return &Sheet{
		Format:  profile.Name,
		Charset: utf8r.Charset,
		Rows:    parseRows(profile, cols, records[headerIdx+1:]),
	}, nil
}

// record is a csv row with the file line it started on. The csv reader
// skips blank lines, so positions cannot be derived from the row index.
type record struct {
	line  int
	cells []string
}

func readRecords(reader *csv.Reader) ([]record, error) {
	var out []record

	for {
		cells, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		out = append(out, record{line: line, cells: cells})
	}
}

// delimiter picks ';' unless the header line only uses commas.
func delimiter(raw []byte) rune {
	line, _, _ := strings.Cut(string(raw), "\n")
	if !strings.Contains(line, ";") && strings.Contains(line, ",") {
		return ','
	}

	return ';'
}

type colIndex map[string]int

func detectProfile(records []record) (*Profile, colIndex, int) {
	for rowIdx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.cells {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips blank and footer lines (no purchase and no amount) and
// reports every other malformed line instead of dropping it.
func parseRows(p *Profile, cols colIndex, records []record) []Row {
	var out []Row

	for _, rec := range records {
		purchaseCell := cellValue(rec.cells, cols, p.PurchaseCol)
		amountCell := cellValue(rec.cells, cols, p.AmountCol)

		if purchaseCell == "" && amountCell == "" {
			continue
		}

		out = append(out, parseRow(p, cols, rec.cells, rec.line, purchaseCell, amountCell))
	}

	return out
}

func parseRow(p *Profile, cols colIndex, row []string, line int, purchaseCell, amountCell string) Row {
	r := Row{Line: line}

	id, err := uuid.Parse(purchaseCell)
	if err != nil {
		r.Err = fmt.Errorf("line %d: invalid purchase id %q", line, purchaseCell)
		return r
	}

	amount, err := parseAmount(amountCell, p.DecimalMark)
	if err != nil {
		r.Err = fmt.Errorf("line %d: invalid amount %q: %w", line, amountCell, payment.ErrInvalidAmount)
		return r
	}

	method := p.DefaultMethod
	if s := cellValue(row, cols, p.MethodCol); s != "" {
		method = normalizeMethod(s)
	}

	if !method.Valid() {
		r.Err = fmt.Errorf("line %d: %w %q", line, payment.ErrInvalidMethod, method)
		return r
	}

	r.Payment = ledger.RecordPaymentParams{
		PurchaseID: id,
		Amount:     amount,
		Method:     method,
		Reference:  cellValue(row, cols, p.ReferenceCol),
	}

	return r
}

var methodAliases = map[string]payment.Method{
	"MOMO":     payment.MethodMobileMoney,
	"MOBILE":   payment.MethodMobileMoney,
	"BANK":     payment.MethodBankTransfer,
	"TRANSFER": payment.MethodBankTransfer,
	"POS":      payment.MethodCard,
}

func normalizeMethod(s string) payment.Method {
	key := strings.ToUpper(strings.Join(strings.Fields(s), "_"))
	key = strings.ReplaceAll(key, "-", "_")

	if m, ok := methodAliases[key]; ok {
		return m
	}

	return payment.Method(key)
}

func cellValue(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
