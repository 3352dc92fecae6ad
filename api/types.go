package api

// ErrorResponse is the common error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// PoolResponse describes a pool's current state.
type PoolResponse struct {
	ID               string `json:"id"`
	BaseReserve      string `json:"base_reserve"`
	TokenReserve     string `json:"token_reserve"`
	OwnershipSupply  string `json:"ownership_supply"`
	FeeNumerator     string `json:"fee_numerator"`
	FeeDenominator   string `json:"fee_denominator"`
	MinBootstrapBase string `json:"min_bootstrap_base"`
}

// QuoteResponse is the result of a price query.
type QuoteResponse struct {
	Pool      string `json:"pool"`
	Direction string `json:"direction"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	Quote     string `json:"quote"`
}

// EventResponse mirrors an emitted pool event.
type EventResponse struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}
