package ledger

import (
	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
)

// TreasuryAddress is the reserved account the engine's retained commission
// accrues on until the operator withdraws it.
const TreasuryAddress = domain.Address("0x000000000000000000000000000000000000dead")

// Account is a funds balance in payment token base units.
type Account struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
	Address domain.Address `json:"address" bson:"address"`
	Balance int64          `json:"balance" bson:"balance"`
}

func (a *Account) ToId() AccountId {
	return AccountId{ChainId: a.ChainId, Address: a.Address}
}

type AccountId struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
	Address domain.Address `json:"address" bson:"address"`
}

func (id AccountId) LowerCased() AccountId {
	id.Address = id.Address.ToLower()
	return id
}

type Repo interface {
	FindOne(c ctx.Ctx, id AccountId) (*Account, error)

	// Credit adds amount to the account, creating it when missing.
	Credit(c ctx.Ctx, id AccountId, amount int64) error

	// Debit subtracts amount from the account. It fails with
	// domain.ErrInsufficientFunds when the balance does not cover amount,
	// guarded at the storage layer so concurrent debits cannot overdraw.
	Debit(c ctx.Ctx, id AccountId, amount int64) error
}

type UseCase interface {
	GetBalance(c ctx.Ctx, id AccountId) (int64, error)
	Deposit(c ctx.Ctx, id AccountId, amount int64) error
}
