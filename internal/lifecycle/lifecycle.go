// Package lifecycle centralizes every legal status transition of the engine.
// Handlers and services never compare or assign statuses on their own; they
// ask the tables here, so no call site can apply an illegal transition.
package lifecycle

import (
	"errors"
	"fmt"

	"tender-adjudication-api/internal/common"
)

type Event string

const (
	EventPublish    Event = "publish"
	EventClose      Event = "close"
	EventAdjudicate Event = "adjudicate"
	EventCancel     Event = "cancel"
)

// ErrIllegalTransition is wrapped by every transition failure returned here.
var ErrIllegalTransition = errors.New("illegal status transition")

var tenderTransitions = map[string]map[Event]string{
	common.TenderDraft: {
		EventPublish: common.TenderOpen,
		EventCancel:  common.TenderCancelled,
	},
	common.TenderOpen: {
		EventClose:      common.TenderInEvaluation,
		EventAdjudicate: common.TenderAwarded,
		EventCancel:     common.TenderCancelled,
	},
	common.TenderInEvaluation: {
		EventAdjudicate: common.TenderAwarded,
		EventCancel:     common.TenderCancelled,
	},
	// awarded and cancelled are terminal
}

// NextTenderStatus returns the status a tender moves to when event fires,
// or an error wrapping ErrIllegalTransition.
func NextTenderStatus(current string, event Event) (string, error) {
	next, ok := tenderTransitions[current][event]
	if !ok {
		return "", fmt.Errorf("%w: tender %s on %s", ErrIllegalTransition, current, event)
	}

	return next, nil
}

// CanReceiveProposals reports whether a tender in the given status admits
// new proposals. Only open tenders do.
func CanReceiveProposals(status string) bool {
	return status == common.TenderOpen
}

// TenderTerminal reports whether the status is final.
func TenderTerminal(status string) bool {
	return status == common.TenderAwarded || status == common.TenderCancelled
}

// ProposalSelectable reports whether a proposal in the given status takes
// part in adjudication. Drafts never do and stay drafts.
func ProposalSelectable(status string) bool {
	return status == common.ProposalSubmitted || status == common.ProposalUnderReview
}

var acceptanceAdvance = map[string]string{
	common.AcceptancePending:        common.AcceptanceBidderAccepted,
	common.AcceptanceBidderAccepted: common.AcceptanceInForce,
}

// NextAcceptanceStatus advances the contract acceptance sub-state.
// pending -> bidder_accepted -> in_force, nothing else.
func NextAcceptanceStatus(current string) (string, error) {
	next, ok := acceptanceAdvance[current]
	if !ok {
		return "", fmt.Errorf("%w: contract acceptance %s", ErrIllegalTransition, current)
	}

	return next, nil
}
