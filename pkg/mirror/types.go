package mirror

type AccountInfo struct {
	Account    string         `json:"account"`
	Alias      string         `json:"alias"`
	EVMAddress string         `json:"evm_address"`
	Key        map[string]any `json:"key"`
	Memo       string         `json:"memo"`
	Deleted    bool           `json:"deleted"`
}

type Nft struct {
	AccountID         string `json:"account_id"`
	CreatedTimestamp  string `json:"created_timestamp"`
	Deleted           bool   `json:"deleted"`
	Metadata          string `json:"metadata"`
	ModifiedTimestamp string `json:"modified_timestamp"`
	SerialNumber      int64  `json:"serial_number"`
	TokenID           string `json:"token_id"`
}

type NftQueryOptions struct {
	AccountID string
	Limit     int
	Order     string
}

type nftsResponse struct {
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
	Nfts []Nft `json:"nfts"`
}
