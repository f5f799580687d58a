package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is provided, nil is returned. If exactly one non nil error is
// given, it is returned as is.
// Returned error supports both the causer and the unpacker interface. The
// cause is the first error, which keeps ABCI code resolution fail-fast.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten nested groups so that the result stays readable.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// unpacker is implemented by errors that group several errors together.
type unpacker interface {
	Unpack() []error
}

type multiErr []error

var _ unpacker = multiErr(nil)
var _ causer = multiErr(nil)
var _ coder = multiErr(nil)

func (m multiErr) Unpack() []error {
	return []error(m)
}

func (m multiErr) Cause() error {
	return m[0]
}

// ABCICode returns the code of the first error that carries one. When no
// error in the group has a code, the internal code is returned.
func (m multiErr) ABCICode() uint32 {
	for _, e := range m {
		if c := abciCode(e); c != internalABCICode {
			return c
		}
	}
	return internalABCICode
}

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(m), strings.Join(points, "\n\t"))
}
