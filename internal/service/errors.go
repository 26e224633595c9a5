package service

import "errors"

var (
	ErrTenderNotFound   = errors.New("tender not found")
	ErrProposalNotFound = errors.New("proposal not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrBuyerNotFound    = errors.New("buyer profile not found")
	ErrBidderNotFound   = errors.New("bidder profile not found")

	ErrNotTenderOwner   = errors.New("caller doesn't own the tender")
	ErrNotContractParty = errors.New("caller isn't a party to the contract")

	ErrTenderNotOpen            = errors.New("tender is not open for proposals")
	ErrDeadlinePassed           = errors.New("tender closing deadline has passed")
	ErrProposalAlreadySubmitted = errors.New("a proposal from this bidder already exists for the tender")
	ErrTenderAlreadyAwarded     = errors.New("tender is already awarded")
	ErrProposalNotSelectable    = errors.New("proposal is not in a selectable status")
	ErrInvalidTransition        = errors.New("tender status doesn't allow this operation")
	ErrContractNotAdvanceable   = errors.New("contract acceptance can't advance from its current state")

	ErrTermsNotAccepted = errors.New("all three acceptance flags must be true")
	ErrInvalidPrice     = errors.New("annual price must be a positive finite number")
	ErrTenderIncomplete = errors.New("tender needs a title and a category before publication")
)
