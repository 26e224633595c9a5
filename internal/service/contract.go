package service

import (
	"context"
	"errors"
	"log/slog"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/lifecycle"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo"
	"tender-adjudication-api/internal/repo/repo_errors"
)

type ContractService struct {
	contractRepo repo.Contract
	notifier     notify.Dispatcher
	log          *slog.Logger
}

func NewContractService(d Deps) *ContractService {
	return &ContractService{
		contractRepo: d.Repos.Contract,
		notifier:     d.Notifier,
		log:          d.Log,
	}
}

// AcceptContract advances pending -> bidder_accepted. Only the contract's
// bidder may do it; the repo guard catches a concurrent advance.
func (s *ContractService) AcceptContract(ctx context.Context, contractId, bidderId string) (*entity.ContractOutputModel, error) {
	contract, err := s.contractRepo.GetContractById(ctx, contractId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrContractNotFound
		}

		return nil, err
	}

	if contract.BidderId.String() != bidderId {
		return nil, ErrNotContractParty
	}

	if contract.AcceptanceStatus != common.AcceptancePending {
		return nil, ErrContractNotAdvanceable
	}

	return s.advanceAcceptance(ctx, contract)
}

// CountersignContract advances bidder_accepted -> in_force on the buyer's
// side, after which the contract is binding.
func (s *ContractService) CountersignContract(ctx context.Context, contractId, buyerId string) (*entity.ContractOutputModel, error) {
	contract, err := s.contractRepo.GetContractById(ctx, contractId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrContractNotFound
		}

		return nil, err
	}

	if contract.BuyerId.String() != buyerId {
		return nil, ErrNotContractParty
	}

	if contract.AcceptanceStatus != common.AcceptanceBidderAccepted {
		return nil, ErrContractNotAdvanceable
	}

	return s.advanceAcceptance(ctx, contract)
}

func (s *ContractService) advanceAcceptance(ctx context.Context, contract *entity.Contract) (*entity.ContractOutputModel, error) {
	next, err := lifecycle.NextAcceptanceStatus(contract.AcceptanceStatus)
	if err != nil {
		return nil, ErrContractNotAdvanceable
	}

	err = s.contractRepo.AdvanceAcceptance(ctx, contract.Id.String(), contract.AcceptanceStatus, next)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrContractNotAdvanceable
		}

		return nil, err
	}

	counterparty := contract.BuyerId
	if next == common.AcceptanceInForce {
		counterparty = contract.BidderId
	}
	s.notifier.Notify(ctx, notify.Notification{
		UserId:  counterparty,
		Kind:    common.NotifyContractAccepted,
		Title:   "Contract acceptance advanced",
		Message: "The contract acceptance moved to " + next + ".",
		Link:    "/contracts/" + contract.Id.String(),
	})

	contract, err = s.contractRepo.GetContractById(ctx, contract.Id.String())
	if err != nil {
		return nil, err
	}

	return mapContract(contract), nil
}

func (s *ContractService) GetPartyContracts(ctx context.Context, partyId string, pg *entity.PaginationInput) ([]entity.ContractOutputModel, error) {
	contracts, err := s.contractRepo.GetPartyContracts(ctx, partyId, pg)
	if err != nil {
		return nil, err
	}

	return mapContracts(contracts), nil
}
