// ABOUTME: Tests for locale formatting helpers
// ABOUTME: Checks grouping per locale and duration thresholds

package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMoney(t *testing.T) {
	en := New("en-US")
	assert.Equal(t, "$1,234,567.00", en.Money(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$12.50", en.Money(decimal.RequireFromString("12.5")))
	assert.Equal(t, "$0.13", en.Money(decimal.RequireFromString("0.125")))
	assert.Equal(t, "-$3.00", en.Money(decimal.NewFromInt(-3)))

	es := New("es-ES")
	assert.Equal(t, "$1.234.567,50", es.Money(decimal.RequireFromString("1234567.5")))
}

func TestInt(t *testing.T) {
	assert.Equal(t, "1,234,567", New("en-US").Int(1234567))
	assert.Equal(t, "42", New("en-US").Int(42))
}

func TestNew_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, language.MustParse(DefaultLocale), New("").Locale())
	assert.Equal(t, language.MustParse(DefaultLocale), New("not a locale!").Locale())
}

func TestDurationMs(t *testing.T) {
	assert.Equal(t, "0ms", DurationMs(0))
	assert.Equal(t, "999ms", DurationMs(999))
	assert.Equal(t, "1.00s", DurationMs(1000))
	assert.Equal(t, "1.25s", DurationMs(1250))
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 7, 3, 0, time.Local)
	assert.Equal(t, "05/03/2024", Date(ts))
	assert.Equal(t, "05/03/2024 09:07:03", DateTime(ts))
	assert.Equal(t, "09:07", Clock(ts))
	assert.Equal(t, "-", Date(time.Time{}))
}

func TestSince(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{2 * time.Second, "ahora"},
		{30 * time.Second, "hace 30s"},
		{5 * time.Minute, "hace 5m"},
		{3 * time.Hour, "hace 3h"},
		{72 * time.Hour, "hace 3d"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Since(now.Add(-tc.ago), now))
	}
}
