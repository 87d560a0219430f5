package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var multipliers = map[byte]float64{
	'R': 1,
	'r': 1,
	'm': 1e-3,
	'k': 1e3,
	'K': 1e3,
	'M': 1e6,
	'G': 1e9,
}

// ParseValue parses a resistance written as a plain number ("470", "2.2e3"),
// with an SI suffix ("4.7k", "1M") or in RKM notation where the multiplier
// letter stands in for the decimal point ("4k7", "4R7", "2M2"). A trailing
// "Ω" or "ohm" is ignored. Negative and non-finite values are rejected.
func ParseValue(s string) (float64, error) {
	text := strings.TrimSpace(s)
	text = strings.TrimSuffix(text, "Ω")
	text = strings.TrimSuffix(text, "ohm")
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	mult := 1.0
	for i := 0; i < len(text); i++ {
		m, ok := multipliers[text[i]]
		if !ok {
			continue
		}
		last := i == len(text)-1
		if (i == 0 && last) || (!last && strings.Contains(text[:i], ".")) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		mult = m
		if last {
			text = text[:i]
		} else {
			// RKM: the letter is the decimal point, "R47" is 0.47.
			text = text[:i] + "." + text[i+1:]
		}
		break
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	v *= mult
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %q is not a finite non-negative resistance", ErrInvalidValue, s)
	}
	return v, nil
}

// ParseList parses a comma or whitespace separated list of resistances.
func ParseList(s string) (Catalog, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make(Catalog, 0, len(fields))
	for _, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
