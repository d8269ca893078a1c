// This file plays the role cmd/gencharsets's literal-array output
// would: decode tables for the handful of legacy single-byte charsets
// this repo ships built in. Point cmd/gencharsets at a directory of
// "0xHH\t0xHHHH" mapping files (the same format the upstream charset
// registries publish) to regenerate a replacement with more charsets.

package charset

const unassigned = rune(0xFFFD)

// identityTable builds a 256-entry table where byte b decodes to rune
// b, the base every legacy single-byte charset below overrides.
func identityTable() []rune {
	t := make([]rune, 256)
	for i := range t {
		t[i] = rune(i)
	}
	return t
}

// windows1252Overrides holds the C1-range (0x80-0x9F) mappings where
// Windows-1252 diverges from ISO-8859-1/Latin-1, taken from the
// upstream mapping file's "0xHH 0xHHHH" rows; unlisted bytes in that
// range are unassigned in the real charset.
var windows1252Overrides = map[byte]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

var generatedTables = map[string][]rune{
	"ascii":        asciiTable(),
	"iso-8859-1":   identityTable(),
	"latin1":       identityTable(),
	"windows-1252": windows1252Table(),
	"cp1252":       windows1252Table(),
}

func asciiTable() []rune {
	t := identityTable()
	for i := 0x80; i <= 0xFF; i++ {
		t[i] = unassigned
	}
	return t
}

func windows1252Table() []rune {
	t := identityTable()
	for i := 0x80; i <= 0x9F; i++ {
		t[i] = unassigned
	}
	for b, r := range windows1252Overrides {
		t[b] = r
	}
	return t
}
