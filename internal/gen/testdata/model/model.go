package model

import (
	"errors"
	"strings"
)

type Account struct {
	Owner   string
	Balance int64
	Tags    []string
}

func (a *Account) Deposit(n int64) (int64, error) {
	if n <= 0 {
		return a.Balance, errors.New("non-positive deposit")
	}
	a.Balance += n
	return a.Balance, nil
}

func (a Account) Label() string { return strings.ToUpper(a.Owner) }

func (a *Account) Tag(tags ...string) { a.Tags = append(a.Tags, tags...) }

func (a *Account) Close() error { return nil }

func (a *Account) Notify(ch chan string) {}

func (a *Account) lock() {}

func Open(owner string) *Account { return &Account{Owner: owner} }

type Store interface {
	Get(id string) (*Account, error)
}
