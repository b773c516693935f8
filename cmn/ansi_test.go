package cmn

import "testing"

func TestAnsiFlagString(t *testing.T) {
	tests := map[AnsiFlag]string{
		AttrOff:               "\033[0m",
		ForeRed:               "\033[31m",
		AttrBold | ForeYellow: "\033[1;33m",
		ForeWhite | BackBlue:  "\033[37;44m",
	}
	for f, expected := range tests {
		if s := f.String(); s != expected {
			t.Errorf("expected %q, got %q", expected, s)
		}
	}
}
