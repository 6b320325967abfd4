package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/delivery"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/marketplace"
	authMiddleware "github.com/tessera-xyz/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
}

// New registers the marketplace policy endpoints
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, marketplaceUC marketplace.UseCase) {
	h := &handler{marketplaceUC}

	g := e.Group("/marketplace")
	g.GET("/commission", h.getCommission)
	g.PUT("/commission", h.setCommission, authMw.Auth())
	g.POST("/withdraw", h.withdraw, authMw.Auth())
}

func (h *handler) getCommission(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId domain.ChainId `query:"chainId"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if percent, err := h.marketplace.GetCommissionPercent(ctx, p.ChainId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		res := struct {
			ChainId           domain.ChainId `json:"chainId"`
			CommissionPercent int64          `json:"commissionPercent"`
		}{p.ChainId, percent}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) setCommission(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	caller := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `json:"chainId"`
		Percent int64          `json:"percent"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := h.marketplace.SetCommissionPercent(ctx, p.ChainId, caller, p.Percent); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	caller := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `json:"chainId"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if amount, err := h.marketplace.Withdraw(ctx, p.ChainId, caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		res := struct {
			Amount int64 `json:"amount"`
		}{amount}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
