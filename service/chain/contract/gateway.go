package contract

import (
	"math/big"
	"strings"

	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/service/chain"
)

type gatewayImpl struct {
	erc721  Erc721Contract
	erc1155 Erc1155Contract
}

// NewAssetGateway builds the on chain asset authority over the erc721 and
// erc1155 contract bindings.
func NewAssetGateway(chainService chain.Client) domain.AssetGateway {
	return &gatewayImpl{
		erc721:  NewErc721(chainService),
		erc1155: NewErc1155(chainService),
	}
}

func (g *gatewayImpl) OwnerOrBalance(c bCtx.Ctx, chainId domain.ChainId, tokenType domain.TokenType, contract domain.Address, tokenId domain.TokenId, account domain.Address) (int64, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		c.WithField("err", err).Error("failed to parse token id")
		return 0, domain.ErrBadParamInput
	}
	switch tokenType {
	case domain.TokenType721:
		owner, err := g.erc721.OwnerOf(c, int32(chainId), string(contract), id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "tokenId": tokenId}).Error("erc721.OwnerOf failed")
			return 0, err
		}
		if strings.EqualFold(owner, string(account)) {
			return 1, nil
		}
		return 0, nil
	case domain.TokenType1155:
		balance, err := g.erc1155.BalanceOf(c, int32(chainId), string(contract), string(account), id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "tokenId": tokenId}).Error("erc1155.BalanceOf failed")
			return 0, err
		}
		if !balance.IsInt64() {
			return 0, domain.ErrQuantityMismatch
		}
		return balance.Int64(), nil
	default:
		return 0, domain.ErrBadParamInput
	}
}

func (g *gatewayImpl) IsApproved(c bCtx.Ctx, chainId domain.ChainId, tokenType domain.TokenType, contract domain.Address, owner, operator domain.Address) (bool, error) {
	switch tokenType {
	case domain.TokenType721:
		approved, err := g.erc721.IsApprovedForAll(c, int32(chainId), string(contract), string(owner), string(operator))
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "owner": owner}).Error("erc721.IsApprovedForAll failed")
			return false, err
		}
		return approved, nil
	case domain.TokenType1155:
		approved, err := g.erc1155.IsApprovedForAll(c, int32(chainId), string(contract), string(owner), string(operator))
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "owner": owner}).Error("erc1155.IsApprovedForAll failed")
			return false, err
		}
		return approved, nil
	default:
		return false, domain.ErrBadParamInput
	}
}

func (g *gatewayImpl) Transfer(c bCtx.Ctx, chainId domain.ChainId, tokenType domain.TokenType, contract domain.Address, tokenId domain.TokenId, from, to domain.Address, quantity int64) (domain.TxHash, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		c.WithField("err", err).Error("failed to parse token id")
		return "", domain.ErrBadParamInput
	}
	switch tokenType {
	case domain.TokenType721:
		hash, err := g.erc721.SafeTransferFrom(c, int32(chainId), string(contract), string(from), string(to), id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "tokenId": tokenId}).Error("erc721.SafeTransferFrom failed")
			return "", err
		}
		return domain.TxHash(hash.Hex()), nil
	case domain.TokenType1155:
		hash, err := g.erc1155.SafeTransferFrom(c, int32(chainId), string(contract), string(from), string(to), id, big.NewInt(quantity))
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "tokenId": tokenId}).Error("erc1155.SafeTransferFrom failed")
			return "", err
		}
		return domain.TxHash(hash.Hex()), nil
	default:
		return "", domain.ErrBadParamInput
	}
}
