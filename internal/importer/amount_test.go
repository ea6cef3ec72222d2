package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		mark string
		want string
	}{
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "12,50", want: "12.5"},
		{in: "12.50", want: "12.5"},
		{in: "333.34", want: "333.34"},
		{in: "1,250", want: "1250"},
		{in: "1.250.000", want: "1250000"},
		{in: "2 500,00", want: "2500"},
		{in: "2\u00a0500,00", want: "2500"},
		{in: "1'000.75", want: "1000.75"},
		{in: "200", want: "200"},
		{in: "12.500", want: "12500"},
		{in: "12.500", mark: ".", want: "12.5"},
		{in: "1,250", mark: ".", want: "1250"},
		{in: "12,50", mark: ".", want: "12.5"},
		{in: "1.250.000", mark: ".", want: "1250000"},
		{in: "1.234,56", mark: ".", want: "1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.in+"/"+tt.mark, func(t *testing.T) {
			got, err := parseAmount(tt.in, tt.mark)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	for _, bad := range []string{"", "  ", "abc", "12,3,4x"} {
		_, err := parseAmount(bad, "")
		assert.Error(t, err, bad)
	}
}
