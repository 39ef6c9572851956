package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/models"
)

const defaultSpamFilterThreshold = 50

// walletData fetches one kind of wallet data from the engine and publishes
// it. Nothing is published when the fetch fails.
type walletData struct {
	engine     Engine
	state      Publisher
	reconciler *TxReconciler
	logger     *logger.Logger
}

func (w *walletData) fetchInfo(ctx context.Context) (models.WalletInfo, error) {
	info, err := w.engine.Info(ctx)
	if err != nil {
		return models.WalletInfo{}, fmt.Errorf("fetch info: %w", err)
	}
	enc, err := w.engine.EncryptionStatus(ctx)
	if err != nil {
		return models.WalletInfo{}, fmt.Errorf("fetch encryption status: %w", err)
	}
	height, err := w.engine.Height(ctx)
	if err != nil {
		return models.WalletInfo{}, fmt.Errorf("fetch wallet height: %w", err)
	}

	walletInfo := models.WalletInfo{
		ChainName:          info.ChainName,
		Testnet:            info.Testnet(),
		LatestBlockHeight:  info.LatestBlockHeight,
		WalletSyncedHeight: height,
		Version:            info.FullVersion(),
		ZcashdVersion:      info.ZcashdVersion,
		Encrypted:          enc.Encrypted,
		Locked:             enc.Locked,
		CurrencyName:       models.CurrencyMainnet,
	}
	if walletInfo.Testnet {
		walletInfo.CurrencyName = models.CurrencyTestnet
	}

	w.state.SetInfo(walletInfo)
	return walletInfo, nil
}

func (w *walletData) fetchBalances(ctx context.Context) error {
	bal, err := w.engine.Balance(ctx)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}
	notes, err := w.engine.Notes(ctx)
	if err != nil {
		return fmt.Errorf("fetch pending notes: %w", err)
	}

	w.state.SetBalance(models.Balance{
		Transparent:       bal.Transparent,
		Orchard:           bal.Orchard,
		Sapling:           bal.Sapling,
		VerifiedSapling:   bal.VerifiedSapling,
		UnverifiedSapling: bal.UnverifiedSapling,
		SpendableSapling:  bal.SpendableSapling,
		Total:             bal.Orchard + bal.Sapling + bal.Transparent,
	})

	pending := notes.PendingAddresses()
	var withBalance []models.AddressBalance
	var all []models.AddressDetail

	collect := func(lines []engine.AddressAmount, addrType models.AddressType) {
		for _, l := range lines {
			all = append(all, models.AddressDetail{Address: l.Address, Type: addrType})
			if l.Amount <= 0 {
				continue
			}
			_, isPending := pending[l.Address]
			withBalance = append(withBalance, models.AddressBalance{
				Address:         l.Address,
				Balance:         l.Amount,
				ContainsPending: isPending,
			})
		}
	}
	collect(bal.UnifiedAddresses, models.AddressTypeUnified)
	collect(bal.SaplingAddresses, models.AddressTypeSapling)
	collect(bal.TransparentAddresses, models.AddressTypeTransparent)

	w.state.SetAddressesWithBalance(withBalance)
	w.state.SetAllAddresses(all)
	return nil
}

func (w *walletData) fetchTransactions(ctx context.Context, latestBlockHeight int64) error {
	entries, err := w.engine.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch transactions: %w", err)
	}

	w.state.SetTransactions(w.reconciler.Reconcile(entries, latestBlockHeight))
	return nil
}

func (w *walletData) fetchPrice(ctx context.Context) error {
	price, err := w.engine.ZecPrice(ctx)
	if err != nil {
		return fmt.Errorf("fetch price: %w", err)
	}
	if price != nil && *price > 0 {
		w.state.SetZecPrice(*price)
	}
	return nil
}

func (w *walletData) fetchWalletSettings(ctx context.Context) error {
	downloadMemos, err := w.engine.GetOption(ctx, models.OptionDownloadMemos)
	if err != nil {
		return fmt.Errorf("fetch option %s: %w", models.OptionDownloadMemos, err)
	}

	settings := models.WalletSettings{DownloadMemos: downloadMemos}

	raw, err := w.engine.GetOption(ctx, models.OptionSpamFilterThreshold)
	if err != nil {
		w.logger.Warn().Err(err).Str("option", models.OptionSpamFilterThreshold).Msg("spam filter threshold unavailable")
	} else if threshold, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
		settings.SpamFilterThreshold = threshold
	}

	if settings.SpamFilterThreshold == -1 {
		value := strconv.Itoa(defaultSpamFilterThreshold)
		if err = w.setOptionAndSave(ctx, models.OptionSpamFilterThreshold, value); err != nil {
			return err
		}
		settings.SpamFilterThreshold = defaultSpamFilterThreshold
	}

	w.state.SetWalletSettings(settings)
	return nil
}

func (w *walletData) setOptionAndSave(ctx context.Context, name, value string) error {
	if err := w.engine.SetOption(ctx, name, value); err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	if err := w.engine.Save(ctx); err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}
