package listing

import (
	"fmt"
	"math/big"
	"time"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
)

// Listing is a seller's standing offer to sell quantity units of
// (contract, tokenId) at a fixed per-unit price until ExpiresAt.
type Listing struct {
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	Contract  domain.Address   `json:"contract" bson:"contract"`
	TokenId   domain.TokenId   `json:"tokenId" bson:"tokenId"`
	TokenType domain.TokenType `json:"tokenType" bson:"tokenType"`
	Seller    domain.Address   `json:"seller" bson:"seller"`
	Quantity  int64            `json:"quantity" bson:"quantity"`
	// UnitPrice is in payment token base units. Single-item listings carry
	// Quantity 1, so UnitPrice is the total price there.
	UnitPrice int64 `json:"unitPrice" bson:"unitPrice"`
	// CommissionPercent is snapshotted from the marketplace settings at
	// creation time and immutable for the listing's lifetime.
	CommissionPercent int64     `json:"commissionPercent" bson:"commissionPercent"`
	ExpiresAt         time.Time `json:"expiresAt" bson:"expiresAt"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
}

func (l *Listing) LowerCase() {
	l.Contract = l.Contract.ToLower()
	l.Seller = l.Seller.ToLower()
}

func (l *Listing) ToId() Id {
	id := Id{
		ChainId:  l.ChainId,
		Contract: l.Contract,
		TokenId:  l.TokenId,
	}
	if l.TokenType == domain.TokenType1155 {
		id.Seller = l.Seller
	}
	return id
}

// TotalPrice returns UnitPrice * Quantity without overflow.
func (l *Listing) TotalPrice() *big.Int {
	return new(big.Int).Mul(big.NewInt(l.UnitPrice), big.NewInt(l.Quantity))
}

func (l *Listing) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// Id is the canonical listing key. Seller is part of the key only for
// multi-item listings, where several sellers may list portions of the same
// token id independently; it stays empty for single-item lookups.
type Id struct {
	ChainId  domain.ChainId `json:"chainId" bson:"chainId"`
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Seller   domain.Address `json:"seller,omitempty" bson:"seller,omitempty"`
}

func (id Id) LowerCased() Id {
	id.Contract = id.Contract.ToLower()
	id.Seller = id.Seller.ToLower()
	return id
}

// LockKey is the string the keyed lock serializes listing mutations on.
// Single and multi-item writes to the same token contend on the same key.
func (id Id) LockKey() string {
	return fmt.Sprintf("%d:%s:%s", id.ChainId, id.Contract.ToLowerStr(), id.TokenId)
}

type FindAllOptions struct {
	ChainId   *domain.ChainId
	Contract  *domain.Address
	TokenId   *domain.TokenId
	Seller    *domain.Address
	TokenType *domain.TokenType
	Offset    *int32
	Limit     *int32
	Sort      *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithContract(contract domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Contract = contract.ToLowerPtr()
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithTokenType(tokenType domain.TokenType) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenType = &tokenType
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

// Repo is the listing table. Absence is explicit: FindOne returns
// domain.ErrNotFound when nothing is listed at the key, there is no
// zero-priced sentinel record.
type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	FindOne(c ctx.Ctx, id Id) (*Listing, error)
	Upsert(c ctx.Ctx, l *Listing) error
	Remove(c ctx.Ctx, id Id) error
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
}

// CreatePayload carries the terms of a new listing. Seller is the
// authenticated caller, never taken from the request body.
type CreatePayload struct {
	ChainId       domain.ChainId   `json:"chainId"`
	Contract      domain.Address   `json:"contract"`
	TokenId       domain.TokenId   `json:"tokenId"`
	TokenType     domain.TokenType `json:"tokenType"`
	Seller        domain.Address   `json:"-"`
	Quantity      int64            `json:"quantity"`
	UnitPrice     int64            `json:"unitPrice"`
	DurationHours int64            `json:"durationHours"`
}

type UseCase interface {
	Create(c ctx.Ctx, payload CreatePayload) (domain.ListingId, error)
	Cancel(c ctx.Ctx, id Id, caller domain.Address) error
	Get(c ctx.Ctx, id Id) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}
