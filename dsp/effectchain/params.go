package effectchain

import (
	"maps"
	"math"
)

// Params is the control-surface view of one chain node: identity, bypass
// state and named numeric and string values.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum returns the numeric value for key, or def when it is missing,
// NaN or infinite.
func (p Params) GetNum(key string, def float64) float64 {
	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetStr returns the string value for key, or def when it is missing or empty.
func (p Params) GetStr(key, def string) string {
	if v := p.Str[key]; v != "" {
		return v
	}

	return def
}

// WithNum returns a copy of p with key set to v. p is not modified.
func (p Params) WithNum(key string, v float64) Params {
	num := make(map[string]float64, len(p.Num)+1)
	maps.Copy(num, p.Num)
	num[key] = v
	p.Num = num

	return p
}
