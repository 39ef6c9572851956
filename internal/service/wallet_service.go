package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/btcsuite/btcd/btcutil"
)

type walletService struct {
	data   walletData
	logger *logger.Logger
}

// NewWalletService creates the service behind user-initiated wallet actions.
// Actions that change encryption state republish WalletInfo.
func NewWalletService(eng Engine, state Publisher, log *logger.Logger) WalletService {
	if log == nil {
		log = logger.Nop()
	}
	return &walletService{
		data:   walletData{engine: eng, state: state, reconciler: NewTxReconciler(), logger: log},
		logger: log,
	}
}

func (s *walletService) Encrypt(ctx context.Context, password string) error {
	if err := s.data.engine.Encrypt(ctx, password); err != nil {
		return fmt.Errorf("encrypt wallet: %w", err)
	}
	s.refreshInfo(ctx)
	return s.save(ctx)
}

func (s *walletService) Decrypt(ctx context.Context, password string) error {
	if err := s.data.engine.Decrypt(ctx, password); err != nil {
		return fmt.Errorf("decrypt wallet: %w", err)
	}
	s.refreshInfo(ctx)
	return s.save(ctx)
}

func (s *walletService) Lock(ctx context.Context) error {
	if err := s.data.engine.Lock(ctx); err != nil {
		return fmt.Errorf("lock wallet: %w", err)
	}
	s.refreshInfo(ctx)
	return nil
}

func (s *walletService) Unlock(ctx context.Context, password string) error {
	if err := s.data.engine.Unlock(ctx, password); err != nil {
		return fmt.Errorf("unlock wallet: %w", err)
	}
	s.refreshInfo(ctx)
	return nil
}

// NewAddress derives an address and republishes the address lists.
func (s *walletService) NewAddress(ctx context.Context, addrType models.AddressType) (string, error) {
	addr, err := s.data.engine.NewAddress(ctx, addrType)
	if err != nil {
		return "", fmt.Errorf("new %s address: %w", addrType, err)
	}
	if err = s.data.fetchBalances(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("address lists not refreshed after new address")
	}
	return addr, nil
}

func (s *walletService) Seed(ctx context.Context) (engine.Seed, error) {
	seed, err := s.data.engine.Seed(ctx)
	if err != nil {
		return engine.Seed{}, fmt.Errorf("read seed: %w", err)
	}
	return seed, nil
}

func (s *walletService) PrivateKey(ctx context.Context, address string) (string, error) {
	key, err := s.exportKey(ctx, address)
	if err != nil {
		return "", err
	}
	return key.PrivateKey, nil
}

func (s *walletService) ViewingKey(ctx context.Context, address string) (string, error) {
	key, err := s.exportKey(ctx, address)
	if err != nil {
		return "", err
	}
	return key.ViewingKey, nil
}

func (s *walletService) exportKey(ctx context.Context, address string) (engine.ExportedKey, error) {
	keys, err := s.data.engine.Export(ctx, address)
	if err != nil {
		return engine.ExportedKey{}, fmt.Errorf("export key: %w", err)
	}
	if len(keys) == 0 {
		return engine.ExportedKey{}, fmt.Errorf("%w: %s", ErrNoKeyExported, address)
	}
	return keys[0], nil
}

// ImportKey imports a spending or viewing key. birthday must be a block
// height; the engine rescans from it in the background.
func (s *walletService) ImportKey(ctx context.Context, key, birthday string) (string, error) {
	height, err := strconv.ParseInt(strings.TrimSpace(birthday), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBirthday, birthday)
	}

	res, err := s.data.engine.Import(ctx, key, height)
	if err != nil {
		return "", fmt.Errorf("import key: %w", err)
	}
	return res, nil
}

func (s *walletService) DefaultFee(ctx context.Context) (btcutil.Amount, error) {
	fee, err := s.data.engine.DefaultFee(ctx)
	if err != nil {
		return 0, fmt.Errorf("read default fee: %w", err)
	}
	return fee, nil
}

// SetWalletOption sets an engine option, saves the wallet and republishes
// the wallet settings.
func (s *walletService) SetWalletOption(ctx context.Context, name, value string) error {
	if err := s.data.setOptionAndSave(ctx, name, value); err != nil {
		return err
	}
	if err := s.data.fetchWalletSettings(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("wallet settings not refreshed")
	}
	return nil
}

func (s *walletService) refreshInfo(ctx context.Context) {
	if _, err := s.data.fetchInfo(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("wallet info not refreshed")
	}
}

func (s *walletService) save(ctx context.Context) error {
	if err := s.data.engine.Save(ctx); err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}
