package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/delivery"
	"github.com/tessera-xyz/goapi/base/ethereum"
	"github.com/tessera-xyz/goapi/domain"
)

type authHandler struct {
	auth               domain.AuthUsecase
	signingMsgTemplate string
}

func New(e *echo.Echo, auth domain.AuthUsecase, template string) {
	handler := &authHandler{
		auth:               auth,
		signingMsgTemplate: template,
	}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
	g.GET("/signingMsgTemplate", handler.getSigningMsgTemplate)
}

func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address   domain.Address `json:"address"`
		Signature string         `json:"signature"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	msg := fmt.Sprintf(h.signingMsgTemplate, p.Address.ToLowerStr())
	if ok, err := ethereum.ValidateMsgSignature([]byte(msg), p.Signature, string(p.Address)); err != nil {
		ctx.WithField("err", err).Error("ethereum.ValidateMsgSignature failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidSignature)
	} else if !ok {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrInvalidSignature)
	}

	if tkn, err := h.auth.SignToken(ctx, p.Address); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}

func (h *authHandler) getSigningMsgTemplate(c echo.Context) error {
	res := struct {
		Msg string `json:"template"`
	}{
		Msg: h.signingMsgTemplate,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
