package cash

import (
	"testing"

	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	carol := weavetest.NewCondition().Address()

	cases := map[string]struct {
		src, dest []byte
		amount    coin.Amount
		wantErr   *errors.Error
		wantAlice coin.Amount
		wantBob   coin.Amount
		wantCarol coin.Amount
	}{
		"send part of balance": {
			src: alice, dest: bob, amount: coin.NewAmount(30),
			wantAlice: coin.NewAmount(70), wantBob: coin.NewAmount(30), wantCarol: coin.NewAmount(5),
		},
		"send everything": {
			src: alice, dest: carol, amount: coin.NewAmount(100),
			wantAlice: coin.NewAmount(0), wantBob: coin.NewAmount(0), wantCarol: coin.NewAmount(105),
		},
		"send to self": {
			src: alice, dest: alice, amount: coin.NewAmount(40),
			wantAlice: coin.NewAmount(100), wantBob: coin.NewAmount(0), wantCarol: coin.NewAmount(5),
		},
		"insufficient funds": {
			src: carol, dest: bob, amount: coin.NewAmount(6),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.NewAmount(100), wantBob: coin.NewAmount(0), wantCarol: coin.NewAmount(5),
		},
		"empty account": {
			src: bob, dest: alice, amount: coin.NewAmount(1),
			wantErr:   ErrEmptyAccount,
			wantAlice: coin.NewAmount(100), wantBob: coin.NewAmount(0), wantCarol: coin.NewAmount(5),
		},
		"zero amount": {
			src: alice, dest: bob, amount: coin.NewAmount(0),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.NewAmount(100), wantBob: coin.NewAmount(0), wantCarol: coin.NewAmount(5),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController()
			assert.Nil(t, c.CoinMint(db, alice, coin.NewAmount(100)))
			assert.Nil(t, c.CoinMint(db, carol, coin.NewAmount(5)))

			err := c.MoveCoins(db, tc.src, tc.dest, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			for name, want := range map[string]struct {
				addr []byte
				want coin.Amount
			}{
				"alice": {alice, tc.wantAlice},
				"bob":   {bob, tc.wantBob},
				"carol": {carol, tc.wantCarol},
			} {
				got, err := c.Balance(db, want.addr)
				assert.Nil(t, err)
				if !want.want.Equals(got) {
					t.Errorf("%s: want %s, got %s", name, want.want, got)
				}
			}
		})
	}
}

func TestCoinMintOverflow(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	addr := weavetest.NewCondition().Address()

	max := coin.MustParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	assert.Nil(t, c.CoinMint(db, addr, max))
	if err := c.CoinMint(db, addr, coin.NewAmount(1)); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}
	got, err := c.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, max.Equals(got))
}
