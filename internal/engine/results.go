package engine

import (
	"bytes"
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil"
)

// Info is the engine's view of itself and the chain.
type Info struct {
	LatestBlockHeight int64  `json:"latest_block_height"`
	ChainName         string `json:"chain_name"`
	Vendor            string `json:"vendor"`
	GitCommit         string `json:"git_commit"`
	Version           string `json:"version"`
	ZcashdVersion     string `json:"zcashd_version"`
}

// Testnet reports whether the engine is connected to the test chain.
func (i Info) Testnet() bool {
	return i.ChainName == "test"
}

// FullVersion renders vendor, short commit and version as one string.
func (i Info) FullVersion() string {
	commit := i.GitCommit
	if len(commit) > 6 {
		commit = commit[:6]
	}
	return i.Vendor + "/" + commit + "/" + i.Version
}

// EncryptionStatus tells whether the wallet is encrypted and locked.
type EncryptionStatus struct {
	Encrypted bool `json:"encrypted"`
	Locked    bool `json:"locked"`
}

// AddressAmount is a per-address balance line reported by "balance".
type AddressAmount struct {
	Address string
	Amount  btcutil.Amount
}

// Balances is the decoded "balance" result.
type Balances struct {
	Orchard           btcutil.Amount `json:"uabalance"`
	Sapling           btcutil.Amount `json:"zbalance"`
	VerifiedSapling   btcutil.Amount `json:"verified_zbalance"`
	SpendableSapling  btcutil.Amount `json:"spendable_zbalance"`
	UnverifiedSapling btcutil.Amount `json:"unverified_zbalance"`
	Transparent       btcutil.Amount `json:"tbalance"`

	UnifiedAddresses     []AddressAmount `json:"-"`
	SaplingAddresses     []AddressAmount `json:"-"`
	TransparentAddresses []AddressAmount `json:"-"`
}

type balancesWire struct {
	Balances
	UA []struct {
		Address string         `json:"address"`
		Balance btcutil.Amount `json:"balance"`
	} `json:"ua_addresses"`
	Z []struct {
		Address  string         `json:"address"`
		ZBalance btcutil.Amount `json:"zbalance"`
	} `json:"z_addresses"`
	T []struct {
		Address string         `json:"address"`
		Balance btcutil.Amount `json:"balance"`
	} `json:"t_addresses"`
}

func (w balancesWire) toBalances() Balances {
	b := w.Balances
	for _, a := range w.UA {
		b.UnifiedAddresses = append(b.UnifiedAddresses, AddressAmount{Address: a.Address, Amount: a.Balance})
	}
	for _, a := range w.Z {
		b.SaplingAddresses = append(b.SaplingAddresses, AddressAmount{Address: a.Address, Amount: a.ZBalance})
	}
	for _, a := range w.T {
		b.TransparentAddresses = append(b.TransparentAddresses, AddressAmount{Address: a.Address, Amount: a.Balance})
	}
	return b
}

// PendingValue is an unconfirmed note or UTXO.
type PendingValue struct {
	Address string         `json:"address"`
	Value   btcutil.Amount `json:"value"`
}

// Notes is the decoded "notes" result, limited to pending entries.
type Notes struct {
	PendingNotes []PendingValue `json:"pending_notes"`
	PendingUTXOs []PendingValue `json:"pending_utxos"`
}

// PendingAddresses returns the set of addresses with pending value.
func (n Notes) PendingAddresses() map[string]struct{} {
	set := make(map[string]struct{}, len(n.PendingNotes)+len(n.PendingUTXOs))
	for _, p := range n.PendingNotes {
		set[p.Address] = struct{}{}
	}
	for _, p := range n.PendingUTXOs {
		set[p.Address] = struct{}{}
	}
	return set
}

type outgoingOutput struct {
	Address string         `json:"address"`
	Value   btcutil.Amount `json:"value"`
	Memo    *string        `json:"memo"`
}

type listItem struct {
	BlockHeight      int64            `json:"block_height"`
	Unconfirmed      bool             `json:"unconfirmed"`
	Datetime         int64            `json:"datetime"`
	TxID             string           `json:"txid"`
	Amount           btcutil.Amount   `json:"amount"`
	ZecPrice         *float64         `json:"zec_price"`
	Address          *string          `json:"address"`
	Memo             *string          `json:"memo"`
	OutgoingMetadata []outgoingOutput `json:"outgoing_metadata"`
}

// SendProgress is the decoded "sendprogress" result.
type SendProgress struct {
	ID       int64   `json:"id"`
	Sending  bool    `json:"sending"`
	Progress int64   `json:"progress"`
	Total    int64   `json:"total"`
	TxID     *string `json:"txid"`
	Error    *string `json:"error"`
}

// Seed is the wallet's recovery phrase and birthday height.
type Seed struct {
	Seed     string `json:"seed"`
	Birthday int64  `json:"birthday"`
}

// ExportedKey is one entry of the "export" result.
type ExportedKey struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	ViewingKey string `json:"viewing_key"`
}

type sendOutput struct {
	Address string         `json:"address"`
	Amount  btcutil.Amount `json:"amount"`
	Memo    string         `json:"memo,omitempty"`
}

type importArgs struct {
	Key      string `json:"key"`
	Birthday int64  `json:"birthday"`
}

type successResult struct {
	Result string `json:"result"`
}

// flexString decodes a JSON string or number as text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
