package view

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToFixed formats x with the given number of decimals the way the browser's
// Number.prototype.toFixed does: the exact binary value is rounded, and a
// value exactly half-way rounds away from zero (85.25 -> "85.3").
func ToFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.Abs(x) >= 1e21:
		return Number(x)
	}
	if digits < 0 {
		digits = 0
	}

	neg := x < 0
	if neg {
		x = -x
	}

	// x * 10^digits is exact at 256 bits of precision
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	pow := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	scaled.Mul(scaled, pow)

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetPrec(256).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Fixed1 rounds x to one decimal with ToFixed semantics.
func Fixed1(x float64) float64 {
	v, err := strconv.ParseFloat(ToFixed(x, 1), 64)
	if err != nil {
		return x
	}
	return v
}

// Number prints a value the way the browser prints a plain number:
// shortest form, no trailing zeros (5 -> "5", 87.5 -> "87.5").
func Number(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	abs := math.Abs(x)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Capitalize upper-cases the first character and keeps the rest as is.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
