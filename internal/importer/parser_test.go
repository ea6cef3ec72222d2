package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/layby/internal/importer"
	"github.com/MrJamesThe3rd/layby/internal/payment"
)

const (
	idA = "0b6f1c2e-8d7a-4f6e-9a51-3c2d1e0f9a8b"
	idB = "5e4d3c2b-1a09-4f8e-8d7c-6b5a49382716"
)

func TestParse_CollectorSheet(t *testing.T) {
	sheet := `Route 4 - Kagiso;handed in 2026-03-02

purchase_id;amount;method;reference
` + idA + `;1.250,00;cash;receipt 88
` + idB + `;333.34;MoMo;MP240302.1455
` + idA + `;12,50;;
not-a-purchase;5,00;cash;
;;;
 ; ;Page 1/1;
`

	got, err := importer.Parse(strings.NewReader(sheet))
	require.NoError(t, err)

	assert.Equal(t, "collector sheet", got.Format)
	assert.Equal(t, "UTF-8", got.Charset)
	require.Len(t, got.Rows, 4)

	first := got.Rows[0]
	require.NoError(t, first.Err)
	assert.Equal(t, 4, first.Line)
	assert.Equal(t, idA, first.Payment.PurchaseID.String())
	assert.Equal(t, "1250", first.Payment.Amount.String())
	assert.Equal(t, payment.MethodCash, first.Payment.Method)
	assert.Equal(t, "receipt 88", first.Payment.Reference)

	second := got.Rows[1]
	require.NoError(t, second.Err)
	assert.Equal(t, payment.MethodMobileMoney, second.Payment.Method)
	assert.Equal(t, "333.34", second.Payment.Amount.String())

	third := got.Rows[2]
	require.NoError(t, third.Err)
	assert.Equal(t, payment.MethodCash, third.Payment.Method)
	assert.Equal(t, "12.5", third.Payment.Amount.String())

	assert.Equal(t, 7, got.Rows[3].Line)
	assert.Error(t, got.Rows[3].Err)
	assert.Contains(t, got.Rows[3].Err.Error(), "invalid purchase id")
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name       string
		sheet      string
		wantFormat string
		wantMethod payment.Method
		wantRef    string
	}{
		{
			name: "MobileMoney",
			sheet: "Date,Transaction ID,Account,Amount Received,Balance\n" +
				"2026-03-01,MP0301X7," + idB + ",\"1,500.00\",9000.00\n",
			wantFormat: "mobile money statement",
			wantMethod: payment.MethodMobileMoney,
			wantRef:    "MP0301X7",
		},
		{
			name: "Bank",
			sheet: "Value date;Purchase;Debit;Credit;Bank reference\n" +
				"01-03-2026;" + idB + ";;1.500,00;TRF 99812\n",
			wantFormat: "bank statement",
			wantMethod: payment.MethodBankTransfer,
			wantRef:    "TRF 99812",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.Parse(strings.NewReader(tt.sheet))
			require.NoError(t, err)

			assert.Equal(t, tt.wantFormat, got.Format)
			require.Len(t, got.Rows, 1)
			require.NoError(t, got.Rows[0].Err)
			assert.Equal(t, "1500", got.Rows[0].Payment.Amount.String())
			assert.Equal(t, tt.wantMethod, got.Rows[0].Payment.Method)
			assert.Equal(t, tt.wantRef, got.Rows[0].Payment.Reference)
		})
	}
}

func TestParse_DottedDecimalMark(t *testing.T) {
	sheet := "purchase_id;amount;method\n" +
		idA + ";12.500;cash\n" +
		idA + ";1,250;cash\n"

	got, err := importer.Parse(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)

	require.NoError(t, got.Rows[0].Err)
	assert.Equal(t, "12.5", got.Rows[0].Payment.Amount.String())
	require.NoError(t, got.Rows[1].Err)
	assert.Equal(t, "1250", got.Rows[1].Payment.Amount.String())
}

func TestParse_RowErrors(t *testing.T) {
	sheet := "purchase_id;amount;method\n" +
		idA + ";lots;cash\n" +
		idA + ";10,00;cheque\n"

	got, err := importer.Parse(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)

	assert.ErrorIs(t, got.Rows[0].Err, payment.ErrInvalidAmount)
	assert.ErrorIs(t, got.Rows[1].Err, payment.ErrInvalidMethod)
}

func TestParse_Latin1Sheet(t *testing.T) {
	utf8Sheet := "purchase_id;amount;method;reference\n" + idA + ";10,00;cash;Recibo nº 12 - Conceição\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8Sheet))
	require.NoError(t, err)

	got, err := importer.Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)

	assert.Equal(t, "Recibo nº 12 - Conceição", got.Rows[0].Payment.Reference)
	assert.NotEqual(t, "UTF-8", got.Charset)
}

func TestParse_UnknownFormat(t *testing.T) {
	for _, sheet := range []string{"", "Date;Description;Amount\n01-03-2026;coffee;1,00\n"} {
		_, err := importer.Parse(strings.NewReader(sheet))
		assert.ErrorIs(t, err, importer.ErrUnknownFormat)
	}
}
