package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	th, ok := Lookup("tokyo-night")
	assert.True(t, ok)
	assert.Equal(t, TokyoNight.Accent, th.Accent)

	_, ok = Lookup("solarized")
	assert.False(t, ok)
	assert.Equal(t, FlexokiDark.Name, ByName("solarized").Name)
}

func TestConditionColors(t *testing.T) {
	for _, th := range All {
		assert.NotEmpty(t, th.GoodLoan, th.Name)
		assert.NotEmpty(t, th.BadLoan, th.Name)
		assert.NotEqual(t, th.GoodLoan, th.BadLoan, th.Name)

		assert.Equal(t, th.GoodLoan, th.Condition("Good Loan"))
		assert.Equal(t, th.BadLoan, th.Condition(" bad loan"))
		assert.Equal(t, th.Accent, th.Condition("Charged Off"))
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(All))
	assert.Contains(t, names, "terminal")
}
