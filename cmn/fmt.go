package cmn

import (
	"fmt"
	"io"
	"os"
)

/*
	printing helpers, these are the only "logger" colfam has.
	Formatted variants wrap text in ansi sequences,
	raw variants (Cnd* with fmtdisable == true) print plain lines
	so output can be piped.
*/

var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

/*
applies Ansi formatting to the text and at the end resets it
*/
func FPrintfTrailing(w io.Writer, seq AnsiFlag, format string, args ...interface{}) {
	fmt.Fprintf(w, "%v%s%v", seq, fmt.Sprintf(format, args...), AttrOff)
}

/*
works the same as FPrintfTrailing, but adds LF before finishing escape sequence
*/
func FPrintflnTrailing(w io.Writer, seq AnsiFlag, format string, args ...interface{}) {
	fmt.Fprintf(w, "%v%s\n%v", seq, fmt.Sprintf(format, args...), AttrOff)
}

const MediumMark string = "✓"

func PrintflnSuccess(prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(Stderr, "%s%v%s %s%v\n",
		prefix, ForeGreen, MediumMark, fmt.Sprintf(_fmt, argv...), AttrOff)
}

func PrintflnError(_fmt string, argv ...interface{}) {
	FPrintflnTrailing(Stderr, ForeRed, _fmt, argv...)
}

func PrintError(err error) {
	PrintflnError("%s", err)
}

const MediumX string = "✕"

func PrintflnWarn(prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(Stderr, "%s%v%s %s%v\n",
		prefix, ForeYellow, MediumX, fmt.Sprintf(_fmt, argv...), AttrOff)
}

const MediumBulletPoint string = "•"

func PrintflnNotify(prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(Stderr, "%s%v%s%v %s\n",
		prefix, ForeBlue, MediumBulletPoint, AttrOff, fmt.Sprintf(_fmt, argv...))
}

/*
conditional formatting.
if fmtdisable == false then formatting provided function fptr will be used
else raw call is equivalent to printing to Stderr with additional LF at the end
*/
func CndPrintfln(
	fmtdisable bool,
	fptr func(string, string, ...interface{}),
	prefix, _fmt string, argv ...interface{}) {

	if fmtdisable {
		fmt.Fprintf(Stderr, "%s%s\n", prefix, fmt.Sprintf(_fmt, argv...))
	} else {
		fptr(prefix, _fmt, argv...)
	}
}

func CndPrintln(
	fmtdisable bool,
	fptr func(string, string, ...interface{}),
	prefix,
	text string) {

	CndPrintfln(fmtdisable, fptr, prefix, "%s", text)
}

func CndPrintError(fmtdisable bool, err error) {
	if fmtdisable {
		fmt.Fprintf(Stderr, "%s\n", err)
	} else {
		PrintError(err)
	}
}

// Logger carries the verbose and raw switches so library code
// can report progress without knowing about cli flags.
type Logger struct {
	Verbose bool
	Raw     bool
}

func (l *Logger) Notify(_fmt string, argv ...interface{}) {
	if l == nil || !l.Verbose {
		return
	}
	CndPrintfln(l.Raw, PrintflnNotify, "", _fmt, argv...)
}

func (l *Logger) Success(prefix, _fmt string, argv ...interface{}) {
	if l == nil || !l.Verbose {
		return
	}
	CndPrintfln(l.Raw, PrintflnSuccess, prefix, _fmt, argv...)
}

func (l *Logger) Warn(prefix, _fmt string, argv ...interface{}) {
	if l == nil {
		return
	}
	CndPrintfln(l.Raw, PrintflnWarn, prefix, _fmt, argv...)
}
