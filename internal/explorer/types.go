package explorer

// Wire types for the blockscout-style explorer API. Numeric fields
// arrive as strings and stay strings here; scaling happens in lib/calc.

// TransferPage is one page of token transfers, newest first.
type TransferPage struct {
	Items []TransferItem `json:"items"`
}

// TransferItem is a single on-chain token movement.
type TransferItem struct {
	BlockHash string      `json:"block_hash"`
	From      AddressInfo `json:"from"`
	To        AddressInfo `json:"to"`
	Token     TokenInfo   `json:"token"`
	Total     Total       `json:"total"`
	LogIndex  string      `json:"log_index"`
	Method    string      `json:"method"`
	Timestamp string      `json:"timestamp"`
	TxHash    string      `json:"tx_hash"`
	Type      string      `json:"type"`
}

type AddressInfo struct {
	ENSDomainName *string `json:"ens_domain_name"`
	Hash          string  `json:"hash"`
	IsContract    bool    `json:"is_contract"`
	IsVerified    bool    `json:"is_verified"`
	Name          *string `json:"name"`
}

// DisplayName is the attributed name of the address, empty when the
// explorer has not indexed one yet.
func (a AddressInfo) DisplayName() string {
	if a.Name == nil {
		return ""
	}
	return *a.Name
}

type TokenInfo struct {
	Address     string `json:"address"`
	Decimals    string `json:"decimals"`
	Holders     string `json:"holders"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	TotalSupply string `json:"total_supply"`
	Type        string `json:"type"`
}

type Total struct {
	Decimals string `json:"decimals"`
	Value    string `json:"value"`
}

// TxInfo is the transaction detail used for the fee line of an alert.
type TxInfo struct {
	Timestamp string   `json:"timestamp"`
	Fee       Fee      `json:"fee"`
	GasUsed   string   `json:"gas_used"`
	GasPrice  string   `json:"gas_price"`
	Status    string   `json:"status"`
	Method    string   `json:"method"`
	Result    string   `json:"result"`
	Value     string   `json:"value"`
	TxTypes   []string `json:"tx_types"`
}

type Fee struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
