package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// templateDriver copies a template file to the output a line at a time,
// stopping at each line beginning with "%%" (the cut point) and
// resuming on the next xfer call, the way lemon.c's tplt_xfer/tplt_open
// pair works: callers interleave fragment writers between xfer calls.
type templateDriver struct {
	sc     *bufio.Scanner
	lineno int
}

// xfer copies lines from the template into w until a line beginning with
// "%%" is consumed, substituting the parser name for every word that
// begins with "Parse" and isn't preceded by an identifier character.
// This can't be expressed as a regexp: RE2 has no lookbehind, and the
// "not preceded by an identifier character" condition is exactly that.
func (t *templateDriver) xfer(w io.Writer, name string) {
	for t.sc.Scan() {
		t.lineno++
		line := t.sc.Text()
		if strings.HasPrefix(line, "%%") {
			return
		}
		if name != "" {
			line = substituteParsePrefix(line, name)
		}
		fmt.Fprintln(w, line)
	}
}

func isIdentCharForSubst(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func substituteParsePrefix(line, name string) string {
	const word = "Parse"
	var b strings.Builder
	i := 0
	for i < len(line) {
		if line[i] == 'P' && strings.HasPrefix(line[i:], word) &&
			(i == 0 || !isIdentCharForSubst(line[i-1])) {
			b.WriteString(name)
			i += len(word)
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}
