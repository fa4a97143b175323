// ABOUTME: Locale-aware formatting of money, counts, dates and durations
// ABOUTME: Shared by command output, the TUI and the PDF report

package format

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when the configured locale does not parse
const DefaultLocale = "es-ES"

// Formatter formats numbers for one locale
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a formatter for locale, falling back to DefaultLocale
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Locale returns the formatter's language tag
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Money formats an amount with a dollar sign and two decimals
func (f *Formatter) Money(d decimal.Decimal) string {
	amount := d.Round(2).InexactFloat64()
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + f.printer.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Int formats an integer with locale grouping
func (f *Formatter) Int(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Date formats as dd/mm/yyyy
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}

// DateTime formats as dd/mm/yyyy hh:mm:ss
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04:05")
}

// Clock formats as hh:mm
func Clock(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("15:04")
}

// DurationMs formats a request duration: "850ms" below one second, "1.25s" above
func DurationMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

// Since formats the time elapsed from t to now in short Spanish form
func Since(t, now time.Time) string {
	d := now.Sub(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "ahora"
		}
		return fmt.Sprintf("hace %ds", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("hace %dm", int(d.Minutes()))
	}

	if d < 48*time.Hour {
		return fmt.Sprintf("hace %dh", int(d.Hours()))
	}
	return fmt.Sprintf("hace %dd", int(d.Hours()/24))
}
