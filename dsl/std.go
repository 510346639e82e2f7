package dsl

// Standard headers mandated by the FITS standard. Both functions return a
// builder, not a built schema, so callers refine them before Build:
//
//	hdr := dsl.BinaryTableHeader()
//	hdr.Card("EXTNAME", dsl.StringValue().OneOf("EVENTS")).Required()
//	hdr.Card("TELESCOP", dsl.StringValue()).Required()
//	events := hdr.MustBuild()
//
// Redeclaring EXTNAME above replaced the pre-seeded optional card in place.

// PrimaryHeader declares the mandatory cards of a primary HDU: SIMPLE,
// BITPIX and NAXIS pinned to the first three slots, plus the common
// optional cards.
func PrimaryHeader() *headerBuilder {
	b := Header()
	b.Card("SIMPLE", BoolValue().OneOf(true)).Position(0).Required()
	b.Card("BITPIX", IntValue().OneOf(8, 16, 32, 64, -32, -64)).Position(1).Required()
	b.Card("NAXIS", IntValue().Between(0, 999)).Position(2).Required()
	b.Card("EXTEND", BoolValue())
	b.Card("TELESCOP", StringValue())
	b.Card("INSTRUME", StringValue())
	b.Card("OBSERVER", StringValue())
	b.Card("OBJECT", StringValue())
	b.Card("DATE-OBS", StringValue())
	b.Card("DATE-END", StringValue())
	return b
}

// BinaryTableHeader declares the mandatory cards of a BINTABLE extension
// HDU in their fixed order, plus an optional EXTNAME.
func BinaryTableHeader() *headerBuilder {
	b := Header()
	b.Card("XTENSION", StringValue().OneOf("BINTABLE")).Position(0).Required()
	b.Card("BITPIX", IntValue().OneOf(8)).Position(1).Required()
	b.Card("NAXIS", IntValue().OneOf(2)).Position(2).Required()
	b.Card("NAXIS1", IntValue()).Position(3).Required()
	b.Card("NAXIS2", IntValue()).Position(4).Required()
	b.Card("PCOUNT", IntValue()).Position(5).Required()
	b.Card("GCOUNT", IntValue().OneOf(1)).Position(6).Required()
	b.Card("TFIELDS", IntValue()).Position(7).Required()
	b.Card("EXTNAME", StringValue())
	return b
}
