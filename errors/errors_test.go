package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"field error wraps the root": {
			a:      ErrEmpty,
			b:      Field("Owners", ErrEmpty, "no owners"),
			wantIs: true,
		},
		"one of many": {
			a:      ErrState,
			b:      Append(ErrEmpty, Wrap(ErrState, "executed")),
			wantIs: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v wanted:%v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "again")
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrUnauthorized, "not an owner"),
			wantCode: ErrUnauthorized.code,
			wantLog:  "not an owner: unauthorized",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("disk exploded"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"panic is internal": {
			err:      Wrap(stdlib.New("boom"), "recovered"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRoundTrip(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrDuplicate, "owner"), false)
	err := ABCIError(code, log)
	if !ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}

	unknown := ABCIError(987654, "custom")
	if ErrNotFound.Is(unknown) {
		t.Fatal("unknown code must not match a registered error")
	}
	if code := abciCode(unknown); code != 987654 {
		t.Fatalf("unexpected code %d", code)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("at the disco")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
	if Redact(err, false).Error() != internalABCILog {
		t.Fatal("panic information must be redacted")
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Owners", ErrEmpty, "no owners"),
		Field("Required", ErrInput, "must be %d or less", 5),
		nil,
	)

	if errs := FieldErrors(err, "Owners"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected owners errors: %v", errs)
	}
	if errs := FieldErrors(err, "Required"); len(errs) != 1 || !strings.Contains(errs[0].Error(), "must be 5 or less") {
		t.Fatalf("unexpected required errors: %v", errs)
	}
	if errs := FieldErrors(err, "Metadata"); len(errs) != 0 {
		t.Fatalf("unexpected metadata errors: %v", errs)
	}
	if AppendField(nil, "Owners", nil) != nil {
		t.Fatal("nil field error must be ignored")
	}
}
