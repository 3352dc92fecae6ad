package api

import (
	"net/http"
	"sort"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Quote query parameter values.
const (
	directionBaseToToken = "base_to_token"
	directionTokenToBase = "token_to_base"
	kindInput            = "input"
	kindOutput           = "output"
)

func (s *Server) pool(c *gin.Context) (*keeper.Keeper, bool) {
	k, ok := s.pools[c.Param("pool_id")]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Pool not found",
			Code:  "POOL_NOT_FOUND",
		})
		return nil, false
	}
	return k, true
}

func poolResponse(id string, k *keeper.Keeper) PoolResponse {
	base, token := k.Reserves()
	p := k.Params()
	return PoolResponse{
		ID:               id,
		BaseReserve:      base.String(),
		TokenReserve:     token.String(),
		OwnershipSupply:  k.TotalOwnership().String(),
		FeeNumerator:     p.FeeNumerator.String(),
		FeeDenominator:   p.FeeDenominator.String(),
		MinBootstrapBase: p.MinBootstrapBase.String(),
	}
}

// handleListPools returns all pools with their current reserves.
func (s *Server) handleListPools(c *gin.Context) {
	ids := make([]string, 0, len(s.pools))
	for id := range s.pools {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pools := make([]PoolResponse, 0, len(ids))
	for _, id := range ids {
		pools = append(pools, poolResponse(id, s.pools[id]))
	}

	c.JSON(http.StatusOK, gin.H{
		"pools": pools,
		"count": len(pools),
	})
}

// handleGetPool returns a specific pool
func (s *Server) handleGetPool(c *gin.Context) {
	k, ok := s.pool(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, poolResponse(c.Param("pool_id"), k))
}

// handleQuote prices a hypothetical swap without executing it. Query
// parameters: direction (base_to_token or token_to_base), kind (input for
// an exact-input quote, output for an exact-output one) and amount.
func (s *Server) handleQuote(c *gin.Context) {
	k, ok := s.pool(c)
	if !ok {
		return
	}

	direction := c.DefaultQuery("direction", directionBaseToToken)
	kind := c.DefaultQuery("kind", kindInput)

	amount, ok := math.NewIntFromString(c.Query("amount"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid amount",
			Code:  "INVALID_AMOUNT",
		})
		return
	}

	var (
		quote math.Int
		err   error
	)
	switch {
	case direction == directionBaseToToken && kind == kindInput:
		quote, err = k.BaseToTokenInputPrice(amount)
	case direction == directionBaseToToken && kind == kindOutput:
		quote, err = k.BaseToTokenOutputPrice(amount)
	case direction == directionTokenToBase && kind == kindInput:
		quote, err = k.TokenToBaseInputPrice(amount)
	case direction == directionTokenToBase && kind == kindOutput:
		quote, err = k.TokenToBaseOutputPrice(amount)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid direction or kind",
			Code:  "INVALID_QUERY",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Quote failed",
			Code:    "QUOTE_FAILED",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		Pool:      c.Param("pool_id"),
		Direction: direction,
		Kind:      kind,
		Amount:    amount.String(),
		Quote:     quote.String(),
	})
}

// handleGetEvents returns the pool's emitted events in emission order.
func (s *Server) handleGetEvents(c *gin.Context) {
	k, ok := s.pool(c)
	if !ok {
		return
	}

	events := k.EventManager().Events()
	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, eventResponse(ev))
	}

	c.JSON(http.StatusOK, gin.H{
		"events": out,
		"count":  len(out),
	})
}

func eventResponse(ev types.Event) EventResponse {
	attrs := make(map[string]string, len(ev.Attributes))
	for _, attr := range ev.Attributes {
		attrs[attr.Key] = attr.Value
	}
	return EventResponse{Type: ev.Type, Attributes: attrs}
}
