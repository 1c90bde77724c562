package emit

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func newDriver(src string) *templateDriver {
	sc := bufio.NewScanner(strings.NewReader(src))
	return &templateDriver{sc: sc}
}

func TestXferStopsAtCutPoint(t *testing.T) {
	t.Parallel()
	src := "line one\nline two\n%%\nline three\n"
	d := newDriver(src)

	var buf bytes.Buffer
	d.xfer(&buf, "")

	got := buf.String()
	if !strings.Contains(got, "line one") || !strings.Contains(got, "line two") {
		t.Errorf("xfer output %q missing pre-cut lines", got)
	}
	if strings.Contains(got, "line three") {
		t.Errorf("xfer output %q leaked past the cut point", got)
	}
}

func TestXferResumesAfterCutPoint(t *testing.T) {
	t.Parallel()
	src := "a\n%%\nb\n%%\nc\n"
	d := newDriver(src)

	var first, second bytes.Buffer
	d.xfer(&first, "")
	d.xfer(&second, "")

	if strings.TrimSpace(first.String()) != "a" {
		t.Errorf("first xfer = %q, want \"a\"", first.String())
	}
	if strings.TrimSpace(second.String()) != "b" {
		t.Errorf("second xfer = %q, want \"b\"", second.String())
	}
}

func TestSubstituteParsePrefixOnlyAtIdentifierBoundary(t *testing.T) {
	t.Parallel()
	cases := []struct {
		line, name, want string
	}{
		{"func ParseInit() {", "Calc", "func CalcInit() {"},
		{"myParseInit()", "Calc", "myParseInit()"}, // preceded by an identifier char, not a boundary
		{"ParseParse()", "Calc", "CalcParse()"},    // the second Parse follows 'e', an identifier char
		{"x = 1 // Parse nothing here mid-word: xParsey", "Calc", "x = 1 // Calc nothing here mid-word: xParsey"},
	}
	for _, c := range cases {
		got := substituteParsePrefix(c.line, c.name)
		if got != c.want {
			t.Errorf("substituteParsePrefix(%q, %q) = %q, want %q", c.line, c.name, got, c.want)
		}
	}
}

func TestXferAppliesNameSubstitution(t *testing.T) {
	t.Parallel()
	src := "func ParseNew() *ParseState {\n%%\n"
	d := newDriver(src)

	var buf bytes.Buffer
	d.xfer(&buf, "Calc")

	got := buf.String()
	if !strings.Contains(got, "func CalcNew() *CalcState {") {
		t.Errorf("xfer with name substitution = %q, want ParseState/ParseNew replaced by Calc-prefixed names", got)
	}
}
