package quorum_test

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Text string
}

func (pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.ErrEmpty.New("text")
	}
	return nil
}

type otherMsg struct{}

func (otherMsg) Path() string { return "test/other" }
func (*otherMsg) Validate() error { return nil }

type msgTx struct {
	msg quorum.Msg
	err error
}

func (tx msgTx) GetMsg() (quorum.Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      quorum.Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"valid message": {
			tx:   msgTx{msg: &pingMsg{Text: "hi"}},
			dest: &pingMsg{},
		},
		"invalid message": {
			tx:      msgTx{msg: &pingMsg{}},
			dest:    &pingMsg{},
			wantErr: errors.ErrEmpty,
		},
		"wrong destination type": {
			tx:      msgTx{msg: &otherMsg{}},
			dest:    &pingMsg{},
			wantErr: errors.ErrType,
		},
		"destination not a pointer": {
			tx:      msgTx{msg: &pingMsg{Text: "hi"}},
			dest:    pingMsg{},
			wantErr: errors.ErrType,
		},
		"no message": {
			tx:      msgTx{},
			dest:    &pingMsg{},
			wantErr: errors.ErrMsg,
		},
		"broken transaction": {
			tx:      msgTx{err: errors.ErrState.New("broken")},
			dest:    &pingMsg{},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := quorum.LoadMsg(tc.tx, tc.dest)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hi", tc.dest.(*pingMsg).Text)
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", quorum.GetPath(msgTx{msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", quorum.GetPath(msgTx{}))
}
