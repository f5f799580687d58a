package cash

import (
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestSendMsgValidate(t *testing.T) {
	src := weavetest.NewCondition().Address()
	dst := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg       *SendMsg
		wantField map[string]*errors.Error
	}{
		"valid": {
			msg: &SendMsg{
				Metadata:    quorum.Metadata{Schema: 1},
				Source:      src,
				Destination: dst,
				Amount:      coin.NewAmount(1),
			},
			wantField: map[string]*errors.Error{
				"Metadata":    nil,
				"Source":      nil,
				"Destination": nil,
				"Amount":      nil,
				"Memo":        nil,
			},
		},
		"everything wrong": {
			msg: &SendMsg{
				Source: quorum.Address{1, 2},
				Amount: coin.NewAmount(0),
				Memo:   strings.Repeat("x", maxMemoSize+1),
			},
			wantField: map[string]*errors.Error{
				"Metadata":    errors.ErrMetadata,
				"Source":      errors.ErrInput,
				"Destination": errors.ErrEmpty,
				"Amount":      errors.ErrAmount,
				"Memo":        errors.ErrInput,
			},
		},
		"malformed amount": {
			msg: &SendMsg{
				Metadata:    quorum.Metadata{Schema: 1},
				Source:      src,
				Destination: dst,
				Amount:      coin.Amount{1},
			},
			wantField: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantField {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}
