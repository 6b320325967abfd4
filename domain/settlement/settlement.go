package settlement

import (
	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/listing"
)

// PurchasePayload is a buyer's settlement request. ExpectedQuantity is the
// quantity the buyer believes they are buying; the engine rejects on
// mismatch so a stale read converts into a hard failure instead of a silent
// over- or undercharge. Buyer is the authenticated caller.
type PurchasePayload struct {
	Id               listing.Id     `json:"-"`
	Buyer            domain.Address `json:"-"`
	ExpectedQuantity int64          `json:"expectedQuantity"`
	PaidAmount       int64          `json:"paidAmount"`
}

// Receipt reports how a successful purchase settled.
type Receipt struct {
	ListingId      domain.ListingId `json:"listingId"`
	PaidAmount     int64            `json:"paidAmount"`
	Commission     int64            `json:"commission"`
	SellerProceeds int64            `json:"sellerProceeds"`
	TxHash         domain.TxHash    `json:"txHash"`
}

type UseCase interface {
	Purchase(c ctx.Ctx, payload PurchasePayload) (*Receipt, error)
}
