// Package timefmt compiles strftime-style format specifiers into matchers
// that locate timestamps in free text, parse them into instants, and render
// instants back with the same specifier.
//
// # Specifiers
//
// A specifier mixes tokens with literal text:
//
//	%Y-%m-%d %H:%M:%S%.3f %z
//
// Each token stands for a class of values (%Y four-digit year, %b month
// abbreviation, %z offset as +HHMM, ...). See [Grammar] for the full table.
// Literal text is copied into the regular expression unescaped.
//
// # Timezone-aware and naive formats
//
// A specifier containing %Z, %z, %:z, %#z, %+ or %s is timezone-aware: the
// offset, zone name or absolute instant is read from the text. Any other
// specifier is naive and its values are read as UTC.
//
// # Registry
//
// A [Registry] tries formats in a fixed order and returns the first match:
//
//	reg := timefmt.NewDefaultRegistry()
//	if m, ok := reg.Find(line); ok {
//	    t, err := m.Format.Parse(m.Text)
//	    ...
//	    line = line[:m.Start] + m.Format.Render(t.In(loc)) + line[m.End:]
//	}
package timefmt
