package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/delivery"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/ledger"
	authMiddleware "github.com/tessera-xyz/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	ledger ledger.UseCase
}

// New registers the ledger endpoints
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, ledgerUC ledger.UseCase) {
	h := &handler{ledgerUC}

	g := e.Group("/ledger")
	g.GET("/balance", h.getBalance)
	g.POST("/deposit", h.deposit, authMw.Auth())
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId domain.ChainId `query:"chainId"`
		Address domain.Address `query:"address"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	id := ledger.AccountId{ChainId: p.ChainId, Address: p.Address}

	if balance, err := h.ledger.GetBalance(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		res := struct {
			ChainId domain.ChainId `json:"chainId"`
			Address domain.Address `json:"address"`
			Balance int64          `json:"balance"`
		}{id.ChainId, id.Address.ToLower(), balance}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	caller := c.Get("address").(domain.Address)

	type params struct {
		ChainId domain.ChainId `json:"chainId"`
		Amount  int64          `json:"amount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	id := ledger.AccountId{ChainId: p.ChainId, Address: caller}
	if err := h.ledger.Deposit(ctx, id, p.Amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
