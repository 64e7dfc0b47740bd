package render

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"video-stats-updater/domain/model"
)

// FormatCount renders a count for display.
//
// Below scaleThreshold the value is digit-grouped ("45,200"). At or above it the
// value is divided by one million ("M") when the threshold is at least one
// million, otherwise by one thousand ("k"), rounded half-up to one decimal and
// stripped of a trailing ".0" ("1.3M", "15k").
func FormatCount(value, scaleThreshold int64) string {
	if value < 0 {
		value = 0
	}
	if scaleThreshold <= 0 {
		scaleThreshold = 1
	}
	if value < scaleThreshold {
		return humanize.Comma(value)
	}

	divisor, suffix := int64(1_000), "k"
	if scaleThreshold >= 1_000_000 {
		divisor, suffix = 1_000_000, "M"
	}

	// integer tenths; split quotient and remainder so value*10 never overflows
	q, r := value/divisor, value%divisor
	tenths := q*10 + (r*10+divisor/2)/divisor
	whole, frac := tenths/10, tenths%10
	if frac == 0 {
		return fmt.Sprintf("%d%s", whole, suffix)
	}
	return fmt.Sprintf("%d.%d%s", whole, frac, suffix)
}

// FormatLabel is FormatCount with the source value kept alongside.
func FormatLabel(value, scaleThreshold int64) model.FormattedLabel {
	return model.FormattedLabel{Text: FormatCount(value, scaleThreshold), SourceValue: value}
}
