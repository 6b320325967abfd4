package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/delivery"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/listing"
	"github.com/tessera-xyz/goapi/domain/settlement"
	authMiddleware "github.com/tessera-xyz/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	settlement settlement.UseCase
}

// New registers the purchase endpoint
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, settlementUC settlement.UseCase) {
	h := &handler{settlementUC}

	g := e.Group("/listing")
	g.POST("/purchase", h.purchase, authMw.Auth())
}

func (h *handler) purchase(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	buyer := c.Get("address").(domain.Address)

	type params struct {
		ChainId          domain.ChainId `json:"chainId"`
		Contract         domain.Address `json:"contract"`
		TokenId          domain.TokenId `json:"tokenId"`
		Seller           domain.Address `json:"seller"`
		ExpectedQuantity int64          `json:"expectedQuantity"`
		PaidAmount       int64          `json:"paidAmount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	payload := settlement.PurchasePayload{
		Id: listing.Id{
			ChainId:  p.ChainId,
			Contract: p.Contract,
			TokenId:  p.TokenId,
			Seller:   p.Seller,
		},
		Buyer:            buyer,
		ExpectedQuantity: p.ExpectedQuantity,
		PaidAmount:       p.PaidAmount,
	}

	if receipt, err := h.settlement.Purchase(ctx, payload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, receipt)
	}
}
