package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bione-api/pkg/money"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":       "R$ 0,00",
		"1500.5":  "R$ 1.500,50",
		"1234567": "R$ 1.234.567,00",
		"-20":     "-R$ 20,00",
		"99.999":  "R$ 100,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.Format(decimal.RequireFromString(in)), in)
	}
}
