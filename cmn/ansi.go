package cmn

import (
	"strconv"
	"strings"
)

/*
	ansi escape sequences used by the printing helpers.

	fmt.Printf("%vHello World%v\n", cmn.ForeRed, cmn.AttrOff)

	flags from different groups may be or'ed together:

	fmt.Printf("%vwarn%v\n", cmn.AttrBold|cmn.ForeYellow, cmn.AttrOff)
*/

type AnsiFlag uint32

const (
	AttrOff AnsiFlag = iota
	AttrBold
	_
	_
	AttrUnderscore
	AttrBlink
	_
	AttrReverseVideo
	AttrConcealed
)

const (
	ForeBlack AnsiFlag = (iota + 30) << 8
	ForeRed
	ForeGreen
	ForeYellow
	ForeBlue
	ForeMagenta
	ForeCyan
	ForeWhite
)

const (
	BackBlack AnsiFlag = (iota + 40) << 16
	BackRed
	BackGreen
	BackYellow
	BackBlue
	BackMagenta
	BackCyan
	BackWhite
)

// String renders flag as SGR sequence, e.g. "\033[1;33m".
func (f AnsiFlag) String() string {
	parts := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		if b := f & 0xFF; b != 0 {
			parts = append(parts, strconv.Itoa(int(b)))
		}
		f >>= 8
	}
	if len(parts) == 0 {
		return "\033[0m"
	}
	return "\033[" + strings.Join(parts, ";") + "m"
}
