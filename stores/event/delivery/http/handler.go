package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/delivery"
	"github.com/tessera-xyz/goapi/middleware"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
)

type handler struct {
	events event.Repo
}

// New registers the event log endpoints
func New(e *echo.Echo, eventRepo event.Repo) {
	h := &handler{eventRepo}

	g := e.Group("/events")
	g.GET("", h.find, middleware.CacheHttp(10*time.Second))
}

func (h *handler) find(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Type      *event.Type       `query:"type"`
		ChainId   *domain.ChainId   `query:"chainId"`
		Contract  *domain.Address   `query:"contract"`
		TokenId   *domain.TokenId   `query:"tokenId"`
		ListingId *domain.ListingId `query:"listingId"`
		Offset    int32             `query:"offset"`
		Limit     int32             `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if p.Limit == 0 || p.Limit > 500 {
		p.Limit = 500
	}

	opts := []event.FindAllOptionsFunc{
		event.WithPagination(p.Offset, p.Limit),
	}

	if p.Type != nil {
		opts = append(opts, event.WithType(*p.Type))
	}

	if p.ChainId != nil {
		opts = append(opts, event.WithChainId(*p.ChainId))
	}

	if p.Contract != nil {
		opts = append(opts, event.WithContract(*p.Contract))
	}

	if p.TokenId != nil {
		opts = append(opts, event.WithTokenId(*p.TokenId))
	}

	if p.ListingId != nil {
		opts = append(opts, event.WithListingId(*p.ListingId))
	}

	if res, err := h.events.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
