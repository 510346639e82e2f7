// Package units implements the built-in unit authority: a parser for the
// FITS unit-string grammar and dimension algebra over its symbol table.
//
// The authority answers dimension questions only (it never rescales values),
// which is exactly the surface validation needs: two units are convertible
// when they share a physical dimension, and a unit is dimensionless when its
// dimension vector is zero. Counting units (ct, pix, mag) carry their own
// axes, so "ct" is not interchangeable with a bare number.
package units

import (
	"fmt"
	"strconv"
	"strings"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// Authority is the built-in fitsschema.UnitAuthority.
type Authority struct{}

// Standard returns the built-in authority over the FITS symbol table.
func Standard() Authority { return Authority{} }

// Convertible reports whether a and b measure the same physical dimension.
// Unknown units are never convertible.
func (Authority) Convertible(a, b string) bool {
	da, err := Parse(a)
	if err != nil {
		return false
	}
	db, err := Parse(b)
	if err != nil {
		return false
	}
	return da == db
}

// Dim reports the physical dimension of u.
func (Authority) Dim(u string) (fitsschema.Dim, error) { return Parse(u) }

// Parse resolves a FITS unit string ("TeV", "km/s", "erg s-1 cm-2",
// "km/(s.Mpc)", "10**-17 erg") to its physical dimension. An empty or
// blank string is dimensionless.
func Parse(u string) (fitsschema.Dim, error) {
	p := &parser{s: strings.TrimSpace(u)}
	if p.s == "" {
		return fitsschema.Dim{}, nil
	}
	d, err := p.expr()
	if err != nil {
		return fitsschema.Dim{}, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return fitsschema.Dim{}, fmt.Errorf("units: unexpected %q in %q", p.s[p.pos:], u)
	}
	return d, nil
}

// ---- grammar ----
//
//   expr   := ['/'] term { ('.' | '*' | '/' | ' ') term }
//   term   := '(' expr ')' [exponent] | factor
//   factor := number | symbol [exponent]
//
// Division binds to the single following term, so "m/s/s" is m s^-2. A
// leading '/' divides an implied 1, so "/s" is s^-1.

type parser struct {
	s   string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) expr() (fitsschema.Dim, error) {
	p.skipSpace()
	var d fitsschema.Dim
	if p.pos < len(p.s) && p.s[p.pos] == '/' {
		// Leading division ("/s") divides an implied 1.
	} else {
		var err error
		d, err = p.term()
		if err != nil {
			return d, err
		}
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] == ')' {
			return d, nil
		}
		switch p.s[p.pos] {
		case '/':
			p.pos++
			t, err := p.term()
			if err != nil {
				return d, err
			}
			d = combine(d, t, -1)
		case '.', '*':
			p.pos++
			t, err := p.term()
			if err != nil {
				return d, err
			}
			d = combine(d, t, +1)
		default:
			t, err := p.term()
			if err != nil {
				return d, err
			}
			d = combine(d, t, +1)
		}
	}
}

func (p *parser) term() (fitsschema.Dim, error) {
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == '(' {
		p.pos++
		d, err := p.expr()
		if err != nil {
			return d, err
		}
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != ')' {
			return d, fmt.Errorf("units: missing ')' in %q", p.s)
		}
		p.pos++
		n, ok, err := p.exponent()
		if err != nil {
			return d, err
		}
		if ok {
			d = pow(d, n)
		}
		return d, nil
	}
	return p.factor()
}

func (p *parser) factor() (fitsschema.Dim, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return fitsschema.Dim{}, fmt.Errorf("units: truncated input %q", p.s)
	}
	if c := p.s[p.pos]; c >= '0' && c <= '9' {
		// Numeric scale factor (e.g. "10**-17 erg"): dimensionless.
		return p.number()
	}
	start := p.pos
	for p.pos < len(p.s) && isSymbolChar(p.s[p.pos]) {
		p.pos++
	}
	sym := p.s[start:p.pos]
	if sym == "" {
		return fitsschema.Dim{}, fmt.Errorf("units: unexpected %q in %q", p.s[p.pos:], p.s)
	}
	d, ok := lookup(sym)
	if !ok {
		return fitsschema.Dim{}, fmt.Errorf("units: unknown unit %q", sym)
	}
	n, ok, err := p.exponent()
	if err != nil {
		return fitsschema.Dim{}, err
	}
	if ok {
		d = pow(d, n)
	}
	return d, nil
}

func (p *parser) number() (fitsschema.Dim, error) {
	for p.pos < len(p.s) && (p.s[p.pos] >= '0' && p.s[p.pos] <= '9' || p.s[p.pos] == '.') {
		p.pos++
	}
	// Scientific notation: 1E-17, 2.5e3.
	if p.pos < len(p.s) && (p.s[p.pos] == 'e' || p.s[p.pos] == 'E') {
		q := p.pos + 1
		if q < len(p.s) && (p.s[q] == '+' || p.s[q] == '-') {
			q++
		}
		r := q
		for r < len(p.s) && p.s[r] >= '0' && p.s[r] <= '9' {
			r++
		}
		if r > q {
			p.pos = r
		}
	}
	// "10**-17" parses the ** as an exponent of the dimensionless factor.
	if _, _, err := p.exponent(); err != nil {
		return fitsschema.Dim{}, err
	}
	return fitsschema.Dim{}, nil
}

// exponent parses an optional integer exponent directly after a symbol,
// number or group: "2", "-1", "+3", "**2", "**(-2)", "^-1".
func (p *parser) exponent() (int, bool, error) {
	if p.pos >= len(p.s) {
		return 0, false, nil
	}
	i := p.pos
	marked := false
	if strings.HasPrefix(p.s[i:], "**") {
		i += 2
		marked = true
	} else if p.s[i] == '^' {
		i++
		marked = true
	}
	paren := false
	if marked && i < len(p.s) && p.s[i] == '(' {
		paren = true
		i++
	}
	j := i
	if j < len(p.s) && (p.s[j] == '+' || p.s[j] == '-') {
		j++
	}
	k := j
	for k < len(p.s) && p.s[k] >= '0' && p.s[k] <= '9' {
		k++
	}
	if k == j {
		if marked {
			return 0, false, fmt.Errorf("units: malformed exponent in %q", p.s)
		}
		return 0, false, nil
	}
	if k < len(p.s) && (p.s[k] == '/' || p.s[k] == '.') && k+1 < len(p.s) && p.s[k+1] >= '0' && p.s[k+1] <= '9' {
		return 0, false, fmt.Errorf("units: fractional exponents are not supported in %q", p.s)
	}
	n, err := strconv.Atoi(p.s[i:k])
	if err != nil {
		return 0, false, fmt.Errorf("units: malformed exponent in %q", p.s)
	}
	if paren {
		if k >= len(p.s) || p.s[k] != ')' {
			return 0, false, fmt.Errorf("units: missing ')' after exponent in %q", p.s)
		}
		k++
	}
	p.pos = k
	return n, true, nil
}

func isSymbolChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '%'
}

// ---- dimension algebra ----

func vec(d fitsschema.Dim) [12]int8 {
	return [12]int8{
		d.Length, d.Mass, d.Time, d.Current, d.Temperature, d.Amount,
		d.Intensity, d.Angle, d.SolidAngle, d.Count, d.Pixel, d.Magnitude,
	}
}

func dim(v [12]int8) fitsschema.Dim {
	return fitsschema.Dim{
		Length: v[0], Mass: v[1], Time: v[2], Current: v[3], Temperature: v[4],
		Amount: v[5], Intensity: v[6], Angle: v[7], SolidAngle: v[8],
		Count: v[9], Pixel: v[10], Magnitude: v[11],
	}
}

func combine(a, b fitsschema.Dim, sign int8) fitsschema.Dim {
	va, vb := vec(a), vec(b)
	for i := range va {
		va[i] += sign * vb[i]
	}
	return dim(va)
}

func pow(d fitsschema.Dim, n int) fitsschema.Dim {
	v := vec(d)
	for i := range v {
		v[i] *= int8(n)
	}
	return dim(v)
}

// ---- symbol table ----

// lookup resolves a bare symbol, falling back to one SI prefix plus a known
// symbol ("TeV" = T + eV, "Mpc" = M + pc). Exact symbols win over prefixed
// readings, so "mas" stays milliarcsecond and "Pa" stays pascal.
func lookup(sym string) (fitsschema.Dim, bool) {
	if d, ok := symbols[sym]; ok {
		return d, true
	}
	for _, plen := range []int{2, 1} {
		if len(sym) <= plen {
			continue
		}
		if _, ok := prefixes[sym[:plen]]; !ok {
			continue
		}
		if d, ok := symbols[sym[plen:]]; ok {
			return d, true
		}
	}
	return fitsschema.Dim{}, false
}

var prefixes = map[string]struct{}{
	"y": {}, "z": {}, "a": {}, "f": {}, "p": {}, "n": {}, "u": {}, "m": {},
	"c": {}, "d": {}, "da": {}, "h": {}, "k": {}, "M": {}, "G": {}, "T": {},
	"P": {}, "E": {}, "Z": {}, "Y": {},
}

var symbols = map[string]fitsschema.Dim{
	// SI base
	"m":   {Length: 1},
	"g":   {Mass: 1},
	"s":   {Time: 1},
	"A":   {Current: 1},
	"K":   {Temperature: 1},
	"mol": {Amount: 1},
	"cd":  {Intensity: 1},
	// angles
	"rad":    {Angle: 1},
	"deg":    {Angle: 1},
	"arcmin": {Angle: 1},
	"arcsec": {Angle: 1},
	"mas":    {Angle: 1},
	"sr":     {SolidAngle: 1},
	"beam":   {SolidAngle: 1},
	// time
	"min": {Time: 1},
	"h":   {Time: 1},
	"d":   {Time: 1},
	"a":   {Time: 1},
	"yr":  {Time: 1},
	// length and area
	"au":       {Length: 1},
	"AU":       {Length: 1},
	"pc":       {Length: 1},
	"lyr":      {Length: 1},
	"Angstrom": {Length: 1},
	"barn":     {Length: 2},
	// mass
	"u":       {Mass: 1},
	"solMass": {Mass: 1},
	// derived
	"Hz":     {Time: -1},
	"Bq":     {Time: -1},
	"N":      {Mass: 1, Length: 1, Time: -2},
	"Pa":     {Mass: 1, Length: -1, Time: -2},
	"bar":    {Mass: 1, Length: -1, Time: -2},
	"J":      {Mass: 1, Length: 2, Time: -2},
	"erg":    {Mass: 1, Length: 2, Time: -2},
	"eV":     {Mass: 1, Length: 2, Time: -2},
	"Ry":     {Mass: 1, Length: 2, Time: -2},
	"W":      {Mass: 1, Length: 2, Time: -3},
	"solLum": {Mass: 1, Length: 2, Time: -3},
	"C":      {Current: 1, Time: 1},
	"V":      {Mass: 1, Length: 2, Time: -3, Current: -1},
	"F":      {Mass: -1, Length: -2, Time: 4, Current: 2},
	"Ohm":    {Mass: 1, Length: 2, Time: -3, Current: -2},
	"S":      {Mass: -1, Length: -2, Time: 3, Current: 2},
	"Wb":     {Mass: 1, Length: 2, Time: -2, Current: -1},
	"T":      {Mass: 1, Time: -2, Current: -1},
	"G":      {Mass: 1, Time: -2, Current: -1},
	"H":      {Mass: 1, Length: 2, Time: -2, Current: -2},
	"lm":     {Intensity: 1, SolidAngle: 1},
	"lx":     {Intensity: 1, SolidAngle: 1, Length: -2},
	"Gy":     {Length: 2, Time: -2},
	"Sv":     {Length: 2, Time: -2},
	"Jy":     {Mass: 1, Time: -2},
	// counting / instrument
	"ct":     {Count: 1},
	"count":  {Count: 1},
	"photon": {Count: 1},
	"ph":     {Count: 1},
	"adu":    {Count: 1},
	"pix":    {Pixel: 1},
	"pixel":  {Pixel: 1},
	"mag":    {Magnitude: 1},
	// dimensionless names
	"percent": {},
	"%":       {},
}
