package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
)

type fakeErc721 struct {
	owner    string
	approved bool
	txHash   common.Hash
}

func (f *fakeErc721) Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error) {
	return true, nil
}

func (f *fakeErc721) OwnerOf(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error) {
	return f.owner, nil
}

func (f *fakeErc721) GetApproved(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error) {
	return "", nil
}

func (f *fakeErc721) IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr string, owner, operator string) (bool, error) {
	return f.approved, nil
}

func (f *fakeErc721) SafeTransferFrom(ctx bCtx.Ctx, chainId int32, addr string, from, to string, tokenId *big.Int) (common.Hash, error) {
	return f.txHash, nil
}

type fakeErc1155 struct {
	balance  *big.Int
	approved bool
	txHash   common.Hash
}

func (f *fakeErc1155) Supports1155Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error) {
	return true, nil
}

func (f *fakeErc1155) BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string, tokenId *big.Int) (*big.Int, error) {
	return f.balance, nil
}

func (f *fakeErc1155) IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr string, owner, operator string) (bool, error) {
	return f.approved, nil
}

func (f *fakeErc1155) SafeTransferFrom(ctx bCtx.Ctx, chainId int32, addr string, from, to string, tokenId, amount *big.Int) (common.Hash, error) {
	return f.txHash, nil
}

func TestGatewayOwnerOrBalance(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	holder := domain.Address("0x71c4658acc7b53ee814a29ce31100ff85ca23ca7")
	g := &gatewayImpl{
		erc721:  &fakeErc721{owner: string(holder)},
		erc1155: &fakeErc1155{balance: big.NewInt(7)},
	}

	n, err := g.OwnerOrBalance(ctx, 1, domain.TokenType721, "0xc0ffee", "1", holder)
	req.NoError(err)
	req.Equal(int64(1), n)

	n, err = g.OwnerOrBalance(ctx, 1, domain.TokenType721, "0xc0ffee", "1", "0x94ead797046c7b654cab82c1c27ad223b6501f1f")
	req.NoError(err)
	req.Equal(int64(0), n)

	n, err = g.OwnerOrBalance(ctx, 1, domain.TokenType1155, "0xc0ffee", "1", holder)
	req.NoError(err)
	req.Equal(int64(7), n)

	_, err = g.OwnerOrBalance(ctx, 1, domain.TokenType721, "0xc0ffee", "not-a-number", holder)
	req.ErrorIs(err, domain.ErrBadParamInput)
}

func TestGatewayIsApproved(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	g := &gatewayImpl{
		erc721:  &fakeErc721{approved: true},
		erc1155: &fakeErc1155{approved: false},
	}

	approved, err := g.IsApproved(ctx, 1, domain.TokenType721, "0xc0ffee", "0xaaa", "0xbbb")
	req.NoError(err)
	req.True(approved)

	approved, err = g.IsApproved(ctx, 1, domain.TokenType1155, "0xc0ffee", "0xaaa", "0xbbb")
	req.NoError(err)
	req.False(approved)
}

func TestGatewayTransfer(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()

	hash := common.HexToHash("0xdeadbeef")
	g := &gatewayImpl{
		erc721:  &fakeErc721{txHash: hash},
		erc1155: &fakeErc1155{txHash: hash},
	}

	txHash, err := g.Transfer(ctx, 1, domain.TokenType721, "0xc0ffee", "1", "0xaaa", "0xbbb", 1)
	req.NoError(err)
	req.Equal(domain.TxHash(hash.Hex()), txHash)

	txHash, err = g.Transfer(ctx, 1, domain.TokenType1155, "0xc0ffee", "1", "0xaaa", "0xbbb", 3)
	req.NoError(err)
	req.Equal(domain.TxHash(hash.Hex()), txHash)
}
