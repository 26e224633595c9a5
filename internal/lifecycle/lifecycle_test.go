package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tender-adjudication-api/internal/common"
)

func TestNextTenderStatus(t *testing.T) {
	cases := []struct {
		name    string
		current string
		event   Event
		want    string
		ok      bool
	}{
		{"publish draft", common.TenderDraft, EventPublish, common.TenderOpen, true},
		{"close open", common.TenderOpen, EventClose, common.TenderInEvaluation, true},
		{"adjudicate open", common.TenderOpen, EventAdjudicate, common.TenderAwarded, true},
		{"adjudicate in evaluation", common.TenderInEvaluation, EventAdjudicate, common.TenderAwarded, true},
		{"cancel draft", common.TenderDraft, EventCancel, common.TenderCancelled, true},
		{"cancel open", common.TenderOpen, EventCancel, common.TenderCancelled, true},
		{"cancel in evaluation", common.TenderInEvaluation, EventCancel, common.TenderCancelled, true},
		{"publish open", common.TenderOpen, EventPublish, "", false},
		{"close draft", common.TenderDraft, EventClose, "", false},
		{"adjudicate draft", common.TenderDraft, EventAdjudicate, "", false},
		{"adjudicate awarded", common.TenderAwarded, EventAdjudicate, "", false},
		{"cancel awarded", common.TenderAwarded, EventCancel, "", false},
		{"cancel cancelled", common.TenderCancelled, EventCancel, "", false},
		{"close awarded", common.TenderAwarded, EventClose, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NextTenderStatus(tc.current, tc.event)
			if !tc.ok {
				require.ErrorIs(t, err, ErrIllegalTransition)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, next)
		})
	}
}

func TestCanReceiveProposals(t *testing.T) {
	require.True(t, CanReceiveProposals(common.TenderOpen))
	require.False(t, CanReceiveProposals(common.TenderDraft))
	require.False(t, CanReceiveProposals(common.TenderInEvaluation))
	require.False(t, CanReceiveProposals(common.TenderAwarded))
	require.False(t, CanReceiveProposals(common.TenderCancelled))
}

func TestProposalSelectable(t *testing.T) {
	require.True(t, ProposalSelectable(common.ProposalSubmitted))
	require.True(t, ProposalSelectable(common.ProposalUnderReview))
	require.False(t, ProposalSelectable(common.ProposalDraft))
	require.False(t, ProposalSelectable(common.ProposalWon))
	require.False(t, ProposalSelectable(common.ProposalNotSelected))
}

func TestNextAcceptanceStatus(t *testing.T) {
	next, err := NextAcceptanceStatus(common.AcceptancePending)
	require.NoError(t, err)
	require.Equal(t, common.AcceptanceBidderAccepted, next)

	next, err = NextAcceptanceStatus(common.AcceptanceBidderAccepted)
	require.NoError(t, err)
	require.Equal(t, common.AcceptanceInForce, next)

	_, err = NextAcceptanceStatus(common.AcceptanceInForce)
	require.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTenderTerminal(t *testing.T) {
	require.True(t, TenderTerminal(common.TenderAwarded))
	require.True(t, TenderTerminal(common.TenderCancelled))
	require.False(t, TenderTerminal(common.TenderOpen))
}
