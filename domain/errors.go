package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrUnauthorized will throw if the caller may not perform the action
	ErrUnauthorized = errors.New("Unauthorized")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")

	// listing validation against the asset gateway
	ErrNotOwner            = errors.New("caller is not the asset owner")
	ErrInsufficientBalance = errors.New("asset balance below listed quantity")
	ErrNotApproved         = errors.New("marketplace is not an approved operator")

	// stale state discovered at purchase time; the caller did nothing
	// wrong, the world changed since the listing was observed
	ErrListingExpired   = errors.New("listing expired")
	ErrQuantityMismatch = errors.New("listed quantity differs from expected quantity")

	// settlement
	ErrSelfPurchase      = errors.New("seller may not purchase own listing")
	ErrPaymentMismatch   = errors.New("paid amount differs from listing price")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPayoutFailed      = errors.New("seller payout failed")

	// commission policy
	ErrCommissionOutOfRange = errors.New("commission percent exceeds maximum")
)

// IsStaleStateError reports whether err is a purchase-time re-validation
// failure rather than a caller mistake.
func IsStaleStateError(err error) bool {
	switch {
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrNotApproved),
		errors.Is(err, ErrListingExpired),
		errors.Is(err, ErrQuantityMismatch):
		return true
	}
	return false
}

// IsSettlementError reports whether err happened after validation passed.
// These must never leave partial state behind.
func IsSettlementError(err error) bool {
	switch {
	case errors.Is(err, ErrSelfPurchase),
		errors.Is(err, ErrPaymentMismatch),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrPayoutFailed):
		return true
	}
	return false
}
