package tokenization

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"

	"impact-ledger/impact-portal-backend/internal/config"
)

// horizonAPI is the slice of the Horizon client the issuance flow uses.
type horizonAPI interface {
	AccountDetail(request horizonclient.AccountRequest) (horizon.Account, error)
	SubmitTransaction(tx *txnbuild.Transaction) (horizon.Transaction, error)
	TransactionDetail(txHash string) (horizon.Transaction, error)
}

// StellarClient issues social-impact credits as a classic Stellar asset. Each
// mint is a payment of the credit asset from the issuer account to the
// distribution account.
type StellarClient struct {
	horizon           horizonAPI
	issuerKeyPair     *keypair.Full
	distributor       string
	assetCode         string
	networkPassphrase string
}

// MintRequest represents a request to issue credit tokens
type MintRequest struct {
	ProjectID string `json:"project_id"`
	Credits   int    `json:"credits"`
	Memo      string `json:"memo"`
}

// MintResponse represents the response from a mint operation
type MintResponse struct {
	TransactionHash string     `json:"transaction_hash"`
	LedgerSequence  int32      `json:"ledger_sequence"`
	Successful      bool       `json:"successful"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
}

// NewStellarClient creates a new Stellar issuance client
func NewStellarClient(cfg config.TokenizationConfig) (*StellarClient, error) {
	if err := ValidateAssetCode(cfg.AssetCode); err != nil {
		return nil, err
	}

	issuerKeyPair, err := keypair.ParseFull(cfg.IssuerSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse issuer key pair: %w", err)
	}
	distributorKeyPair, err := keypair.ParseFull(cfg.DistributorSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to parse distributor key pair: %w", err)
	}

	client := horizonclient.DefaultTestNetClient
	if cfg.HorizonURL != "" {
		client = &horizonclient.Client{HorizonURL: cfg.HorizonURL}
	}

	return &StellarClient{
		horizon:           client,
		issuerKeyPair:     issuerKeyPair,
		distributor:       distributorKeyPair.Address(),
		assetCode:         cfg.AssetCode,
		networkPassphrase: cfg.NetworkPassphrase,
	}, nil
}

// AssetCode returns the code of the issued credit asset.
func (s *StellarClient) AssetCode() string {
	return s.assetCode
}

// MintCredits issues the requested credit quantity on the ledger.
func (s *StellarClient) MintCredits(ctx context.Context, req *MintRequest) (*MintResponse, error) {
	response := &MintResponse{
		SubmittedAt: time.Now(),
	}

	if req.Credits <= 0 {
		response.ErrorMessage = "credit quantity must be positive"
		return response, fmt.Errorf("credit quantity must be positive, got %d", req.Credits)
	}

	tx, err := s.buildMintTransaction(req)
	if err != nil {
		response.ErrorMessage = fmt.Sprintf("failed to build transaction: %v", err)
		return response, err
	}

	tx, err = tx.Sign(s.networkPassphrase, s.issuerKeyPair)
	if err != nil {
		response.ErrorMessage = fmt.Sprintf("failed to sign transaction: %v", err)
		return response, fmt.Errorf("failed to sign transaction: %w", err)
	}

	txResp, err := s.horizon.SubmitTransaction(tx)
	if err != nil {
		response.ErrorMessage = fmt.Sprintf("failed to submit transaction: %v", err)
		return response, fmt.Errorf("failed to submit transaction: %w", err)
	}

	response.TransactionHash = txResp.Hash
	response.Successful = txResp.Successful
	response.LedgerSequence = txResp.Ledger

	if !txResp.Successful {
		response.ErrorMessage = fmt.Sprintf("transaction failed: %s", txResp.ResultXdr)
		return response, fmt.Errorf("transaction failed: %s", txResp.ResultXdr)
	}

	confirmedAt, err := s.waitForConfirmation(ctx, txResp.Hash)
	if err != nil {
		response.ErrorMessage = fmt.Sprintf("transaction confirmation failed: %v", err)
		return response, fmt.Errorf("transaction confirmation failed: %w", err)
	}
	response.ConfirmedAt = &confirmedAt

	return response, nil
}

func (s *StellarClient) buildMintTransaction(req *MintRequest) (*txnbuild.Transaction, error) {
	account, err := s.horizon.AccountDetail(horizonclient.AccountRequest{
		AccountID: s.issuerKeyPair.Address(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get issuer account: %w", err)
	}

	payment := txnbuild.Payment{
		Destination: s.distributor,
		Amount:      strconv.Itoa(req.Credits),
		Asset: txnbuild.CreditAsset{
			Code:   s.assetCode,
			Issuer: s.issuerKeyPair.Address(),
		},
	}

	params := txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{&payment},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(300),
		},
	}
	if req.Memo != "" {
		params.Memo = txnbuild.MemoText(req.Memo)
	}

	tx, err := txnbuild.NewTransaction(params)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	return tx, nil
}

func (s *StellarClient) waitForConfirmation(ctx context.Context, txHash string) (time.Time, error) {
	const maxAttempts = 30
	for i := 0; i < maxAttempts; i++ {
		select {
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		default:
		}

		txResp, err := s.horizon.TransactionDetail(txHash)
		if err == nil && txResp.Successful {
			return time.Now(), nil
		}

		if i < maxAttempts-1 {
			time.Sleep(10 * time.Second)
		}
	}
	return time.Time{}, fmt.Errorf("transaction confirmation timeout")
}

// CreditBalance retrieves the distribution account's balance of the credit
// asset.
func (s *StellarClient) CreditBalance(ctx context.Context) (string, error) {
	account, err := s.horizon.AccountDetail(horizonclient.AccountRequest{
		AccountID: s.distributor,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get distribution account: %w", err)
	}

	for _, balance := range account.Balances {
		if balance.Code == s.assetCode && balance.Issuer == s.issuerKeyPair.Address() {
			return balance.Balance, nil
		}
	}
	return "0", nil
}

// ValidateAssetCode validates that an asset code meets Stellar requirements
func ValidateAssetCode(code string) error {
	if len(code) < 1 || len(code) > 12 {
		return fmt.Errorf("asset code must be 1-12 characters long")
	}
	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return fmt.Errorf("asset code can only contain alphanumeric characters")
		}
	}
	return nil
}
