package domain

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// CellKind identifies which scalar a Cell holds.
type CellKind uint8

const (
	// KindEmpty is an empty or missing cell.
	KindEmpty CellKind = iota
	// KindText is text representable in a narrow (ASCII) encoding.
	KindText
	// KindWideText is text that needs a wide representation.
	KindWideText
	// KindNumber is a floating point number.
	KindNumber
	// KindBool is a boolean.
	KindBool
	// KindError is a spreadsheet error code.
	KindError
)

// String returns the lowercase name of the kind.
func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindWideText:
		return "widetext"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorCode is a spreadsheet error value, using the host's numeric codes.
type ErrorCode int

// Error codes understood by the host.
const (
	ErrCodeNull  ErrorCode = 0
	ErrCodeDiv0  ErrorCode = 7
	ErrCodeValue ErrorCode = 15
	ErrCodeRef   ErrorCode = 23
	ErrCodeName  ErrorCode = 29
	ErrCodeNum   ErrorCode = 36
	ErrCodeNA    ErrorCode = 42
)

// UnrecognizedErrorText is the text used for codes outside the closed set.
const UnrecognizedErrorText = "Unrecognized Excel error code"

var errorTexts = map[ErrorCode]string{
	ErrCodeNull:  "#NULL!",
	ErrCodeDiv0:  "#DIV/0!",
	ErrCodeValue: "#VALUE!",
	ErrCodeRef:   "#REF!",
	ErrCodeName:  "#NAME?",
	ErrCodeNum:   "#NUM!",
	ErrCodeNA:    "#N/A",
}

var errorCodes = func() map[string]ErrorCode {
	m := make(map[string]ErrorCode, len(errorTexts))
	for code, text := range errorTexts {
		m[text] = code
	}
	return m
}()

// Text returns the sentinel text for the code.
func (c ErrorCode) Text() string {
	if t, ok := errorTexts[c]; ok {
		return t
	}
	return UnrecognizedErrorText
}

// ParseErrorText maps a sentinel text such as "#N/A" back to its code.
func ParseErrorText(s string) (ErrorCode, bool) {
	c, ok := errorCodes[s]
	return c, ok
}

// Cell is a single tagged scalar of a grid.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
	Code ErrorCode
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell. Strings outside ASCII are tagged as wide text.
func Text(s string) Cell {
	if isASCII(s) {
		return Cell{Kind: KindText, Str: s}
	}
	return Cell{Kind: KindWideText, Str: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// ErrorCell returns an error cell.
func ErrorCell(code ErrorCode) Cell { return Cell{Kind: KindError, Code: code} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// IsText reports whether the cell holds narrow or wide text.
func (c Cell) IsText() bool { return c.Kind == KindText || c.Kind == KindWideText }

// Equal compares two cells. Narrow and wide text holding the same string are equal.
func (c Cell) Equal(o Cell) bool {
	if c.IsText() && o.IsText() {
		return c.Str == o.Str
	}
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case KindNumber:
		return c.Num == o.Num || (math.IsNaN(c.Num) && math.IsNaN(o.Num))
	case KindBool:
		return c.Bool == o.Bool
	case KindError:
		return c.Code == o.Code
	default:
		return true
	}
}

// String renders the cell the way the host displays it.
func (c Cell) String() string {
	switch c.Kind {
	case KindText, KindWideText:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case KindBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindError:
		return c.Code.Text()
	default:
		return ""
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsASCII reports whether s only contains ASCII characters.
func IsASCII(s string) bool { return isASCII(s) }
