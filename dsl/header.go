package dsl

import (
	"errors"
	"fmt"
	"regexp"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
)

// Header starts a header schema. Chain Card/Required/Position/Unknown* and
// finish with Build or MustBuild.
func Header() *headerBuilder {
	return &headerBuilder{cards: map[string]*cardDesc{}}
}

type headerBuilder struct {
	keys    []string // declaration order, normalized keywords
	cards   map[string]*cardDesc
	unknown fitsschema.UnknownPolicy
	errs    []error
}

type cardDesc struct {
	keyword  string
	spec     CardSpec
	required bool
	position int // -1 when unconstrained
	def      any
	re       *regexp.Regexp
}

// Card declares a header card. The keyword is normalized to upper case and
// must follow the FITS rules: at most 8 characters from A-Z, 0-9, '_' and
// '-'. Redeclaring a keyword replaces the earlier card in place, keeping its
// slot in the declaration order; the pre-seeded standard headers rely on
// this to let callers override individual cards.
func (b *headerBuilder) Card(keyword string, spec CardSpec) *cardStep {
	kw := fitsschema.NormalizeKeyword(keyword)
	if err := validateKeyword(kw); err != nil {
		b.errs = append(b.errs, err)
		return &cardStep{b: b, kw: kw}
	}
	if _, ok := b.cards[kw]; !ok {
		b.keys = append(b.keys, kw)
	}
	b.cards[kw] = &cardDesc{keyword: kw, spec: spec, position: -1}
	return &cardStep{b: b, kw: kw}
}

// Require marks previously declared cards as required by keyword.
func (b *headerBuilder) Require(keywords ...string) *headerBuilder {
	for _, k := range keywords {
		kw := fitsschema.NormalizeKeyword(k)
		if cd, ok := b.cards[kw]; ok {
			cd.required = true
		} else {
			b.errs = append(b.errs, headerErr(kw, "required keyword is not a declared card"))
		}
	}
	return b
}

// UnknownError makes undeclared cards validation errors. Commentary cards
// (COMMENT, HISTORY and blank keywords) are never reported.
func (b *headerBuilder) UnknownError() *headerBuilder {
	b.unknown = fitsschema.UnknownError
	return b
}

// UnknownWarn reports undeclared cards as warnings. This is the default.
func (b *headerBuilder) UnknownWarn() *headerBuilder {
	b.unknown = fitsschema.UnknownWarn
	return b
}

// UnknownIgnore silently accepts undeclared cards.
func (b *headerBuilder) UnknownIgnore() *headerBuilder {
	b.unknown = fitsschema.UnknownIgnore
	return b
}

// Build validates the declarations and freezes them into a HeaderSchema.
func (b *headerBuilder) Build() (fitsschema.HeaderSchema, error) {
	errs := append([]error(nil), b.errs...)
	positions := map[int]string{}
	compiled := map[string]*regexp.Regexp{}
	for _, kw := range b.keys {
		cd := b.cards[kw]
		if err := cd.spec.validate(kw); err != nil {
			errs = append(errs, err)
		}
		if cd.position >= 0 {
			if other, taken := positions[cd.position]; taken {
				errs = append(errs, headerErr(kw, fmt.Sprintf("position %d already taken by %q", cd.position, other)))
			}
			positions[cd.position] = kw
		}
		if cd.spec.pattern != "" {
			re, err := regexp.Compile(cd.spec.pattern)
			if err != nil {
				errs = append(errs, headerErr(kw, fmt.Sprintf("invalid pattern: %v", err)))
				continue
			}
			compiled[kw] = re
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	s := &headerSchema{
		keys:    append([]string(nil), b.keys...),
		cards:   make(map[string]cardDesc, len(b.cards)),
		unknown: b.unknown,
	}
	for kw, cd := range b.cards {
		frozen := *cd
		frozen.re = compiled[kw]
		s.cards[kw] = frozen
	}
	return s, nil
}

// MustBuild is Build that panics on authoring mistakes.
func (b *headerBuilder) MustBuild() fitsschema.HeaderSchema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dsl.Header: %v", err))
	}
	return s
}

// cardStep scopes Required/Optional/Position/Default to the card just
// declared. Unlike fieldStep its modifiers return the step itself, because
// standard cards routinely stack position and requiredness:
//
//	Header().Card("XTENSION", StringValue().OneOf("BINTABLE")).Position(0).Required()
type cardStep struct {
	b  *headerBuilder
	kw string
}

// Required marks this card as required.
func (c *cardStep) Required() *cardStep {
	if cd, ok := c.b.cards[c.kw]; ok {
		cd.required = true
	}
	return c
}

// Optional clears the required mark.
func (c *cardStep) Optional() *cardStep {
	if cd, ok := c.b.cards[c.kw]; ok {
		cd.required = false
	}
	return c
}

// Position pins the card to a zero-based index in the header.
func (c *cardStep) Position(n int) *cardStep {
	if n < 0 {
		c.b.errs = append(c.b.errs, headerErr(c.kw, fmt.Sprintf("position must not be negative, got %d", n)))
		return c
	}
	if cd, ok := c.b.cards[c.kw]; ok {
		cd.position = n
	}
	return c
}

// Default records the value readers assume when the card is absent. It does
// not affect validation; absent optional cards pass either way.
func (c *cardStep) Default(v any) *cardStep {
	if cd, ok := c.b.cards[c.kw]; ok {
		cd.def = v
	}
	return c
}

func (c *cardStep) Card(keyword string, spec CardSpec) *cardStep {
	return c.b.Card(keyword, spec)
}

func (c *cardStep) Require(keywords ...string) *headerBuilder { return c.b.Require(keywords...) }

func (c *cardStep) UnknownError() *headerBuilder  { return c.b.UnknownError() }
func (c *cardStep) UnknownWarn() *headerBuilder   { return c.b.UnknownWarn() }
func (c *cardStep) UnknownIgnore() *headerBuilder { return c.b.UnknownIgnore() }

func (c *cardStep) Build() (fitsschema.HeaderSchema, error) { return c.b.Build() }

func (c *cardStep) MustBuild() fitsschema.HeaderSchema { return c.b.MustBuild() }

func validateKeyword(kw string) error {
	if kw == "" {
		return headerErr(kw, "keyword must not be empty")
	}
	if len(kw) > 8 {
		return headerErr(kw, "keyword exceeds 8 characters")
	}
	for i := 0; i < len(kw); i++ {
		c := kw[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' && c != '-' {
			return headerErr(kw, fmt.Sprintf("keyword contains %q; only A-Z, 0-9, '_' and '-' are allowed", string(c)))
		}
	}
	return nil
}

// Commentary cards repeat freely and carry no structured value, so the
// unknown-card scan skips them.
func isCommentary(kw string) bool {
	return kw == "" || kw == "COMMENT" || kw == "HISTORY"
}

// ---- built schema ----

type headerSchema struct {
	keys    []string
	cards   map[string]cardDesc
	unknown fitsschema.UnknownPolicy
}

var _ fitsschema.HeaderSchema = (*headerSchema)(nil)

func (s *headerSchema) Keywords() []string {
	return append([]string(nil), s.keys...)
}

// ValidateHeader checks every declared card in declaration order, then
// scans for undeclared cards in header order. A duplicated keyword in the
// header is checked once, against its first card.
func (s *headerSchema) ValidateHeader(hdr fitsschema.Header, opt fitsschema.Options) fitsschema.Diagnostics {
	var ds fitsschema.Diagnostics
	for _, kw := range s.keys {
		cd := s.cards[kw]
		ds = append(ds, cd.check(hdr)...)
	}
	if s.unknown != fitsschema.UnknownIgnore {
		sev := unknownSeverity(s.unknown)
		seen := make(map[string]struct{}, len(hdr.Cards))
		for _, card := range hdr.Cards {
			kw := fitsschema.NormalizeKeyword(card.Keyword)
			if isCommentary(kw) {
				continue
			}
			if _, ok := s.cards[kw]; ok {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			d := fitsschema.DiagnosticAt(sev, kw, fitsschema.CodeUnknownField, card.Value)
			d.Hint = "header card is not declared in the schema"
			ds = append(ds, d)
		}
	}
	return ds
}

// check runs the per-card pipeline: presence, position, emptiness, then the
// value constraints. A card with an undefined value skips the value checks;
// Empty/NonEmpty decide whether that is acceptable.
func (cd cardDesc) check(hdr fitsschema.Header) fitsschema.Diagnostics {
	idx := hdr.Index(cd.keyword)
	if idx < 0 {
		if cd.required {
			return fitsschema.Diagnostics{
				fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeMissingHeaderCard, nil),
			}
		}
		return nil
	}
	card := hdr.Cards[idx]

	var ds fitsschema.Diagnostics
	if cd.position >= 0 && idx != cd.position {
		d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeWrongPosition, idx)
		d.Hint = fmt.Sprintf("card sits at index %d, want %d", idx, cd.position)
		d.Params = map[string]any{"want": cd.position, "got": idx}
		ds = append(ds, d)
	}
	if cd.spec.empty != nil {
		if *cd.spec.empty && card.Value != nil {
			d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeInvalidHeaderValue, card.Value)
			d.Hint = "card must not carry a value"
			ds = append(ds, d)
		}
		if !*cd.spec.empty && card.Value == nil {
			d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeInvalidHeaderValue, nil)
			d.Hint = "card must carry a value"
			ds = append(ds, d)
		}
	}
	if card.Value == nil {
		return ds
	}
	if len(cd.spec.types) > 0 && !typeAllowed(card.Value, cd.spec.types) {
		d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeInvalidHeaderValue, card.Value)
		d.Hint = fmt.Sprintf("value type %T not allowed, want %v", card.Value, cd.spec.types)
		ds = append(ds, d)
	}
	if len(cd.spec.allowed) > 0 && !memberOf(card.Value, cd.spec.allowed) {
		d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeInvalidHeaderValue, card.Value)
		d.Hint = "value not in allowed set"
		ds = append(ds, d)
	}
	if cd.re != nil {
		s, ok := card.Value.(string)
		if !ok || !cd.re.MatchString(s) {
			d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeInvalidHeaderValue, card.Value)
			d.Hint = fmt.Sprintf("value does not match %q", cd.spec.pattern)
			ds = append(ds, d)
		}
	}
	if cd.spec.lo != nil {
		n, ok := asInt(card.Value)
		if !ok || n < *cd.spec.lo || n > *cd.spec.hi {
			d := fitsschema.DiagnosticAt(fitsschema.Error, cd.keyword, fitsschema.CodeInvalidHeaderValue, card.Value)
			d.Hint = fmt.Sprintf("value must be an integer in %d..%d", *cd.spec.lo, *cd.spec.hi)
			ds = append(ds, d)
		}
	}
	return ds
}
