package montecarlo

import (
	"math"
	"strconv"
	"strings"
)

// Precision returns the number of significant digits used to display an
// estimate over total samples: the decimal digit count of total.
func Precision(total int) int {
	if total <= 0 {
		return 1
	}
	return len(strconv.Itoa(total))
}

// Estimate returns 4*inside/total rounded to Precision(total) significant
// digits. It returns 0 when total is 0.
func Estimate(inside, total int) float64 {
	if total <= 0 {
		return 0
	}
	v, _ := strconv.ParseFloat(FormatEstimate(inside, total), 64)
	return v
}

// FormatEstimate is the display form of Estimate ("0" when total is 0).
func FormatEstimate(inside, total int) string {
	if total <= 0 {
		return "0"
	}
	return ToPrecision(4*float64(inside)/float64(total), Precision(total))
}

// Difference returns |π - Estimate(inside, total)| and its display form,
// rounded with the same precision rule.
func Difference(inside, total int) (float64, string) {
	d := math.Abs(math.Pi - Estimate(inside, total))
	s := ToPrecision(d, Precision(total))
	v, _ := strconv.ParseFloat(s, 64)
	return v, s
}

// Accuracy buckets the distance between an estimate and π.
type Accuracy uint8

const (
	AccuracyPoor Accuracy = iota
	AccuracyFair
	AccuracyGood
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyGood:
		return "good"
	case AccuracyFair:
		return "fair"
	default:
		return "poor"
	}
}

// AccuracyOf classifies a difference: < 0.01 good, < 0.1 fair, else poor.
func AccuracyOf(diff float64) Accuracy {
	switch {
	case diff < 0.01:
		return AccuracyGood
	case diff < 0.1:
		return AccuracyFair
	default:
		return AccuracyPoor
	}
}

// exactDigits is enough 'e' precision to spell out any float64 exactly.
const exactDigits = 800

// ToPrecision formats v with p significant digits. Trailing zeros are kept,
// and exponential notation is used when the decimal exponent is below -6 or
// at least p. Exact ties round away from zero.
func ToPrecision(v float64, p int) string {
	if p < 1 {
		p = 1
	}
	if p > exactDigits {
		p = exactDigits
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	if v == 0 {
		return strconv.FormatFloat(0, 'f', p-1, 64)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits, exp := roundSignificant(v, p)

	var b strings.Builder
	b.WriteString(sign)
	switch {
	case exp < -6 || exp >= p:
		b.WriteString(digits[:1])
		if p > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if exp < 0 {
			b.WriteByte('-')
			exp = -exp
		} else {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(exp))
	case exp >= 0:
		b.WriteString(digits[:exp+1])
		if p > exp+1 {
			b.WriteByte('.')
			b.WriteString(digits[exp+1:])
		}
	default:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-1))
		b.WriteString(digits)
	}
	return b.String()
}

// roundSignificant rounds v > 0 to p significant digits, half up, and
// returns the digits with the decimal exponent of the first one.
func roundSignificant(v float64, p int) (string, int) {
	mant, exp := splitExp(strconv.FormatFloat(v, 'e', exactDigits, 64))
	all := make([]byte, 0, len(mant))
	for i := 0; i < len(mant); i++ {
		if mant[i] != '.' {
			all = append(all, mant[i])
		}
	}

	d := append([]byte(nil), all[:p]...)
	if all[p] >= '5' {
		i := p - 1
		for ; i >= 0 && d[i] == '9'; i-- {
			d[i] = '0'
		}
		if i < 0 {
			// 99..9 carried into a new leading digit.
			d = append([]byte{'1'}, d[:p-1]...)
			exp++
		} else {
			d[i]++
		}
	}
	return string(d), exp
}

func splitExp(s string) (mant string, exp int) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == 'e' {
			n, _ := strconv.Atoi(s[i+1:])
			return s[:i], n
		}
	}
	return s, 0
}
