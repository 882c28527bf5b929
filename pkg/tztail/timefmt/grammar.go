package timefmt

// TokenRule maps a format token to the regular expression fragment that
// recognizes values of that token in free text.
type TokenRule struct {
	// Token is the literal specifier spelling, e.g. "%Y" or "%.3f".
	Token string

	// Pattern is the regexp fragment matching one value of the token.
	// Fragments never contain '%', so no fragment can contain another
	// token's spelling.
	Pattern string
}

// Fragments shared by several tokens.
const (
	twoDigits    = `\d{2}`
	fourDigits   = `\d{4}`
	spacePadded  = `[ \d]?\d`
	shortName    = `[A-Za-z]{3}`
	hms          = `\d{2}:\d{2}:\d{2}`
	numericShort = `[\+\-]\d{4}`
)

// grammar is the fixed token table. Order is irrelevant for compilation,
// the tokenizer always takes the longest token at each '%'.
var grammar = []TokenRule{
	// Date
	{"%Y", fourDigits},
	{"%C", twoDigits},
	{"%y", twoDigits},
	{"%m", twoDigits},
	{"%b", shortName},
	{"%h", shortName},
	{"%B", `[A-Za-z]{3,9}`},
	{"%d", twoDigits},
	{"%e", spacePadded},
	{"%a", shortName},
	{"%A", `[A-Za-z]{6,9}`},
	{"%w", `[0-6]`},
	{"%u", `[1-7]`},
	{"%U", twoDigits},
	{"%W", twoDigits},
	{"%G", fourDigits},
	{"%g", twoDigits},
	{"%V", twoDigits},
	{"%j", `\d{3}`},
	{"%D", `\d{2}/\d{2}/\d{2}`},
	{"%x", `\d{2}/\d{2}/\d{2}`},
	{"%F", `\d{4}-\d{2}-\d{2}`},
	{"%v", `[ \d]?\d-[A-Za-z]{3}-\d{4}`},

	// Time
	{"%H", twoDigits},
	{"%k", spacePadded},
	{"%I", twoDigits},
	{"%l", spacePadded},
	{"%P", `[ap]m`},
	{"%p", `[AP]M`},
	{"%M", twoDigits},
	{"%S", twoDigits},
	{"%f", `\d+`},
	{"%3f", `\d{3}`},
	{"%6f", `\d{6}`},
	{"%9f", `\d{9}`},
	{"%.f", `\.\d+`},
	{"%.3f", `\.\d{3}`},
	{"%.6f", `\.\d{6}`},
	{"%.9f", `\.\d{9}`},
	{"%R", `\d{2}:\d{2}`},
	{"%T", hms},
	{"%X", hms},
	{"%r", hms + ` [AP]M`},

	// Timezone
	{"%Z", `[A-Z]+`},
	{"%z", numericShort},
	{"%:z", `[\+\-]\d{2}:\d{2}`},
	{"%#z", `[\+\-]\d{2}(?::?\d{2})?`},

	// Date and time
	{"%c", shortName + ` ` + shortName + ` ` + spacePadded + ` ` + hms + ` ` + fourDigits},
	{"%+", `\d{4}-\d{2}-\d{2}T` + hms + `(?:\.\d+)?[\+\-]\d{2}:\d{2}`},
	{"%s", `-?\d+`},

	// Escapes
	{"%%", `%`},
	{"%n", `\n`},
	{"%t", `\t`},
}

// zoneTokens are the tokens that carry an offset or zone name. A format
// containing any of them, or an absolute-instant token, is timezone-aware.
var zoneTokens = map[string]bool{
	"%Z":  true,
	"%z":  true,
	"%:z": true,
	"%#z": true,
}

// instantTokens denote an absolute instant on their own.
var instantTokens = map[string]bool{
	"%+": true,
	"%s": true,
}

// escapeTokens expand to a fixed character and carry no value.
var escapeTokens = map[string]string{
	"%%": "%",
	"%n": "\n",
	"%t": "\t",
}

var (
	grammarIndex = make(map[string]string, len(grammar))
	longestToken int
)

func init() {
	for _, r := range grammar {
		grammarIndex[r.Token] = r.Pattern
		if len(r.Token) > longestToken {
			longestToken = len(r.Token)
		}
	}
}

// Expand returns the regexp fragment for token.
func Expand(token string) (string, bool) {
	p, ok := grammarIndex[token]
	return p, ok
}

// Grammar returns a copy of the token table.
func Grammar() []TokenRule {
	out := make([]TokenRule, len(grammar))
	copy(out, grammar)
	return out
}

// matchToken returns the longest token spelled at the start of s.
func matchToken(s string) (string, bool) {
	n := longestToken
	if n > len(s) {
		n = len(s)
	}
	for ; n >= 2; n-- {
		if _, ok := grammarIndex[s[:n]]; ok {
			return s[:n], true
		}
	}
	return "", false
}
