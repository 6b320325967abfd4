package domain

import (
	"github.com/tessera-xyz/goapi/base/ctx"
)

// AssetGateway is the external authority for ownership, balance and approval
// facts, and for executing the actual asset transfer. Answers must be fetched
// fresh at the moment of validation and never cached across a
// check-then-transfer sequence.
type AssetGateway interface {
	// OwnerOrBalance returns how many units of (contract, tokenId) the
	// account currently holds. For single-item assets the answer is 0 or 1.
	OwnerOrBalance(c ctx.Ctx, chainId ChainId, tokenType TokenType, contract Address, tokenId TokenId, account Address) (int64, error)

	// IsApproved reports whether owner granted operator the right to move
	// assets of the collection.
	IsApproved(c ctx.Ctx, chainId ChainId, tokenType TokenType, contract Address, owner, operator Address) (bool, error)

	// Transfer moves quantity units from seller to buyer. It fails atomically
	// when the operator is unauthorized or the balance is insufficient.
	Transfer(c ctx.Ctx, chainId ChainId, tokenType TokenType, contract Address, tokenId TokenId, from, to Address, quantity int64) (TxHash, error)
}
