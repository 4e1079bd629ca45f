package wallet

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/chainpocket/wallet-core/internal/util"
	"github.com/chainpocket/wallet-core/internal/wallet/catalog"
	"github.com/chainpocket/wallet-core/internal/wallet/secret"
	"github.com/chainpocket/wallet-core/internal/wallet/store"
)

// The two durable metadata keys. Both are read and written as whole values.
const (
	kvKeyWallets      = "wallets"
	kvKeyActiveWallet = "active_wallet"
)

// Repository owns the wallet list and the active-wallet pointer as one
// consistency unit, and proxies secret access by fingerprint. Callers never
// address the secret store directly. Operations are atomic individually;
// the caller layer serializes concurrent mutations.
type Repository interface {
	// ListWallets returns all wallets in insertion order.
	ListWallets(ctx context.Context) ([]*Wallet, error)

	// SaveWallet upserts the wallet by id (replacing in place, preserving
	// position) and always stores the mnemonic under the wallet's
	// fingerprint before the metadata write is considered durable.
	SaveWallet(ctx context.Context, w *Wallet, mnemonic string) error

	// GetActiveWallet returns the wallet matching the active pointer,
	// falling back to the first wallet in list order when no pointer is
	// recorded, and nil when the list is empty.
	GetActiveWallet(ctx context.Context) (*Wallet, error)

	// SetActiveWallet overwrites the active pointer unconditionally.
	SetActiveWallet(ctx context.Context, id string) error

	// RemoveWallet deletes the wallet and its secret. If it was active, the
	// first remaining wallet is promoted; the pointer is cleared when none
	// remain.
	RemoveWallet(ctx context.Context, id string) error

	// GetMnemonic returns the wallet's mnemonic. ok is false when the
	// secret store has no entry for the wallet's fingerprint.
	GetMnemonic(ctx context.Context, w *Wallet) (mnemonic string, ok bool, err error)

	// ClearAll deletes all wallet metadata, the active pointer, and every
	// wallet's secret.
	ClearAll(ctx context.Context) error
}

// storedWallet is the persisted wire shape. The network is stored by chain
// id and rehydrated from the catalog so endpoint changes never require a
// migration.
type storedWallet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	ChainID     int64     `json:"chainId"`
	CreatedAt   time.Time `json:"createdAt"`
	IsImported  bool      `json:"isImported"`
	Fingerprint string    `json:"fingerprint"`
}

type repository struct {
	kv      store.KV
	secrets secret.Store
}

// NewRepository creates the wallet repository over the metadata store and
// the secret store.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewRepository(kv store.KV, secrets secret.Store) Repository {
	return &repository{kv: kv, secrets: secrets}
}

func (r *repository) ListWallets(ctx context.Context) ([]*Wallet, error) {
	stored, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	wallets := make([]*Wallet, 0, len(stored))
	for _, sw := range stored {
		w, err := fromStored(sw)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}

	return wallets, nil
}

func (r *repository) SaveWallet(ctx context.Context, w *Wallet, mnemonic string) error {
	log := util.LogFromContext(ctx)

	if err := r.secrets.Put(ctx, w.Fingerprint, mnemonic); err != nil {
		return errors.Wrap(err, "failed to store wallet secret")
	}

	stored, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, sw := range stored {
		if sw.ID == w.ID {
			stored[i] = toStored(w)
			replaced = true
			break
		}
	}
	if !replaced {
		stored = append(stored, toStored(w))
	}

	if err := r.writeAll(ctx, stored); err != nil {
		return err
	}

	log.Debug().
		Str("wallet_id", w.ID).
		Str("address", w.Address).
		Int64("chain_id", w.Network.ChainID).
		Bool("replaced", replaced).
		Msg("Wallet saved")

	return nil
}

func (r *repository) GetActiveWallet(ctx context.Context) (*Wallet, error) {
	wallets, err := r.ListWallets(ctx)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, nil
	}

	value, ok, err := r.kv.Get(ctx, kvKeyActiveWallet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read active wallet pointer")
	}

	if ok {
		activeID := string(value)
		for _, w := range wallets {
			if w.ID == activeID {
				return w, nil
			}
		}
	}

	// no pointer, or a stale one: fall back to the first wallet
	return wallets[0], nil
}

func (r *repository) SetActiveWallet(ctx context.Context, id string) error {
	if err := r.kv.Put(ctx, kvKeyActiveWallet, []byte(id)); err != nil {
		return errors.Wrap(err, "failed to write active wallet pointer")
	}

	return nil
}

func (r *repository) RemoveWallet(ctx context.Context, id string) error {
	log := util.LogFromContext(ctx)

	stored, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	var removed *storedWallet
	remaining := make([]storedWallet, 0, len(stored))
	for _, sw := range stored {
		if sw.ID == id {
			sw := sw
			removed = &sw
			continue
		}
		remaining = append(remaining, sw)
	}

	if removed == nil {
		return errors.Wrapf(ErrWalletNotFound, "id=%s", id)
	}

	if err := r.writeAll(ctx, remaining); err != nil {
		return err
	}

	if err := r.secrets.Remove(ctx, removed.Fingerprint); err != nil {
		return errors.Wrap(err, "failed to remove wallet secret")
	}

	value, ok, err := r.kv.Get(ctx, kvKeyActiveWallet)
	if err != nil {
		return errors.Wrap(err, "failed to read active wallet pointer")
	}

	if ok && string(value) == id {
		if len(remaining) > 0 {
			if err := r.SetActiveWallet(ctx, remaining[0].ID); err != nil {
				return err
			}
		} else if err := r.kv.Delete(ctx, kvKeyActiveWallet); err != nil {
			return errors.Wrap(err, "failed to clear active wallet pointer")
		}
	}

	log.Debug().Str("wallet_id", id).Msg("Wallet removed")

	return nil
}

func (r *repository) GetMnemonic(ctx context.Context, w *Wallet) (string, bool, error) {
	return r.secrets.Get(ctx, w.Fingerprint)
}

func (r *repository) ClearAll(ctx context.Context) error {
	log := util.LogFromContext(ctx)

	stored, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	for _, sw := range stored {
		if err := r.secrets.Remove(ctx, sw.Fingerprint); err != nil {
			return errors.Wrapf(err, "failed to remove secret for fingerprint %s", sw.Fingerprint)
		}
	}

	if err := r.kv.Reset(ctx); err != nil {
		return errors.Wrap(err, "failed to reset metadata store")
	}

	log.Info().Int("wallet_count", len(stored)).Msg("All wallets cleared")

	return nil
}

func (r *repository) readAll(ctx context.Context) ([]storedWallet, error) {
	value, ok, err := r.kv.Get(ctx, kvKeyWallets)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read wallet list")
	}
	if !ok {
		return nil, nil
	}

	var stored []storedWallet
	if err := json.Unmarshal(value, &stored); err != nil {
		return nil, errors.Wrap(err, "failed to decode wallet list")
	}

	return stored, nil
}

func (r *repository) writeAll(ctx context.Context, stored []storedWallet) error {
	if stored == nil {
		stored = []storedWallet{}
	}

	value, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "failed to encode wallet list")
	}

	if err := r.kv.Put(ctx, kvKeyWallets, value); err != nil {
		return errors.Wrap(err, "failed to write wallet list")
	}

	return nil
}

func toStored(w *Wallet) storedWallet {
	return storedWallet{
		ID:          w.ID,
		Name:        w.Name,
		Address:     w.Address,
		ChainID:     w.Network.ChainID,
		CreatedAt:   w.CreatedAt,
		IsImported:  w.IsImported,
		Fingerprint: w.Fingerprint,
	}
}

func fromStored(sw storedWallet) (*Wallet, error) {
	network, err := catalog.NetworkByChainID(sw.ChainID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored wallet %s references unknown network", sw.ID)
	}

	return &Wallet{
		ID:          sw.ID,
		Name:        sw.Name,
		Address:     sw.Address,
		Network:     network,
		CreatedAt:   sw.CreatedAt,
		IsImported:  sw.IsImported,
		Fingerprint: sw.Fingerprint,
	}, nil
}
