package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"
)

// Event types emitted by the pool engine
const (
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeTokenPurchase   = "token_purchase"
	EventTypeBasePurchase    = "base_purchase"
)

// Event attribute keys
const (
	AttributeKeyPool         = "pool"
	AttributeKeyProvider     = "provider"
	AttributeKeyBuyer        = "buyer"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyBaseAmount   = "base_amount"
	AttributeKeyTokenAmount  = "token_amount"
	AttributeKeyUnits        = "units"
	AttributeKeyBaseSold     = "base_sold"
	AttributeKeyTokensSold   = "tokens_sold"
	AttributeKeyBaseBought   = "base_bought"
	AttributeKeyTokensBought = "tokens_bought"
)
