package byteclass

// Core rule factories reproducing the ASCII ranges of RFC 5234 Appendix B.1,
// as required by spec §4.1. Each is constructed once at call time; callers
// that need one repeatedly should keep the returned value, since Class is
// cheap to copy but not free to rebuild.

// Alpha matches 0x41-0x5A and 0x61-0x7A (52 bytes).
func Alpha() Class {
	return Range('A', 'Z').Union(Range('a', 'z')).Named("ALPHA")
}

// Bit matches '0' and '1' (2 bytes).
func Bit() Class {
	return Bytes('0', '1').Named("BIT")
}

// Char matches 0x01-0x7F (127 bytes).
func Char() Class {
	return Range(0x01, 0x7F).Named("CHAR")
}

// CR matches 0x0D.
func CR() Class {
	return Byte(0x0D).Named("CR")
}

// LF matches 0x0A.
func LF() Class {
	return Byte(0x0A).Named("LF")
}

// CRLF is the byte-level expansion of the CR LF sequence: the union of its
// member bytes. Sequencing (CR followed by LF) is a graph-level concern,
// not something a single predicate can express.
func CRLF() Class {
	return Bytes(0x0D, 0x0A).Named("CRLF")
}

// CTL matches the control characters 0x00-0x1F and 0x7F (33 bytes).
func CTL() Class {
	return Range(0x00, 0x1F).Union(Byte(0x7F)).Named("CTL")
}

// Digit matches '0'-'9' (10 bytes).
func Digit() Class {
	return Range('0', '9').Named("DIGIT")
}

// DQuote matches the double-quote character.
func DQuote() Class {
	return Byte(0x22).Named("DQUOTE")
}

// HexDig matches '0'-'9', 'A'-'F', 'a'-'f' (22 bytes).
func HexDig() Class {
	return Range('0', '9').Union(Range('A', 'F')).Union(Range('a', 'f')).Named("HEXDIG")
}

// HTab matches the horizontal tab character.
func HTab() Class {
	return Byte(0x09).Named("HTAB")
}

// LWSP is the byte-level expansion of linear whitespace: SP and HTAB.
func LWSP() Class {
	return Bytes(0x20, 0x09).Named("LWSP")
}

// Octet matches every byte value (256 bytes).
func Octet() Class {
	return Range(0x00, 0xFF).Named("OCTET")
}

// SP matches the space character.
func SP() Class {
	return Byte(0x20).Named("SP")
}

// VChar matches the visible (printing) characters 0x21-0x7E (94 bytes).
func VChar() Class {
	return Range(0x21, 0x7E).Named("VCHAR")
}

// WSP matches SP and HTAB (2 bytes), same members as LWSP at the byte
// level.
func WSP() Class {
	return Bytes(0x20, 0x09).Named("WSP")
}
