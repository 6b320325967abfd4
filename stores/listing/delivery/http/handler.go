package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/delivery"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/listing"
	authMiddleware "github.com/tessera-xyz/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.UseCase
}

// New registers the listing endpoints
func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, listingUC listing.UseCase) {
	h := &handler{listingUC}

	g := e.Group("/listing")
	g.GET("", h.find)
	g.GET("/one", h.get)
	g.POST("", h.create, authMw.Auth())
	g.DELETE("", h.cancel, authMw.Auth())
}

func (h *handler) find(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ChainId   *domain.ChainId   `query:"chainId"`
		Contract  *domain.Address   `query:"contract"`
		TokenId   *domain.TokenId   `query:"tokenId"`
		Seller    *domain.Address   `query:"seller"`
		TokenType *domain.TokenType `query:"tokenType"`
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

	opts := []listing.FindAllOptionsFunc{
		listing.WithPagination(p.Offset, p.Limit),
	}

	if p.ChainId != nil {
		opts = append(opts, listing.WithChainId(*p.ChainId))
	}

	if p.Contract != nil {
		opts = append(opts, listing.WithContract(*p.Contract))
	}

	if p.TokenId != nil {
		opts = append(opts, listing.WithTokenId(*p.TokenId))
	}

	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}

	if p.TokenType != nil {
		opts = append(opts, listing.WithTokenType(*p.TokenType))
	}

	if res, err := h.listing.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// bindListingId reads the canonical listing key from the query string.
// seller is required for multi-item listings only.
func bindListingId(c echo.Context) (listing.Id, error) {
	type params struct {
		ChainId  domain.ChainId `query:"chainId"`
		Contract domain.Address `query:"contract"`
		TokenId  domain.TokenId `query:"tokenId"`
		Seller   domain.Address `query:"seller"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return listing.Id{}, err
	}

	return listing.Id{
		ChainId:  p.ChainId,
		Contract: p.Contract,
		TokenId:  p.TokenId,
		Seller:   p.Seller,
	}, nil
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	id, err := bindListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if res, err := h.listing.Get(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	seller := c.Get("address").(domain.Address)

	p := listing.CreatePayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	p.Seller = seller

	if listingId, err := h.listing.Create(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		res := struct {
			ListingId domain.ListingId `json:"listingId"`
		}{listingId}
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	caller := c.Get("address").(domain.Address)

	id, err := bindListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := h.listing.Cancel(ctx, id, caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
