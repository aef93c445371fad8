package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/marcward/aivest"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Error encoding response: %v", err))
	}
	return textResult(string(data))
}

// quotePayload is the wire shape of a single quote in tool responses.
type quotePayload struct {
	Symbol    string    `json:"symbol"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

func toPayload(q aivest.Quote) quotePayload {
	return quotePayload{
		Symbol:    q.Symbol,
		Price:     q.Price.String(),
		Timestamp: q.Timestamp,
		Source:    q.Source,
	}
}

func handleGetQuote(prices aivest.PriceProvider, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		symbol = aivest.NormalizeSymbol(symbol)
		if symbol == "" {
			return errorResult("Error: symbol must not be empty"), nil
		}

		quote, err := prices.CurrentPrice(ctx, symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("quote failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(toPayload(quote)), nil
	}
}

func handleGetBatchQuotes(prices aivest.PriceProvider, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbols := request.GetStringSlice("symbols", nil)
		if len(symbols) == 0 {
			return errorResult("Error: symbols must not be empty"), nil
		}
		for i, s := range symbols {
			symbols[i] = aivest.NormalizeSymbol(s)
		}

		batch, err := prices.BatchPrices(ctx, symbols)
		if err != nil {
			log.Warn().Err(err).Strs("symbols", symbols).Msg("batch quotes failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		type miss struct {
			Symbol string `json:"symbol"`
			Error  string `json:"error"`
		}
		resp := struct {
			Prices map[string]string `json:"prices"`
			Missed []miss            `json:"missed,omitempty"`
		}{
			Prices: make(map[string]string, len(batch.Prices)),
		}
		for sym, price := range batch.Prices {
			resp.Prices[sym] = price.String()
		}
		for _, m := range batch.Missed {
			resp.Missed = append(resp.Missed, miss{Symbol: m.Symbol, Error: m.Err.Error()})
		}
		return jsonResult(resp), nil
	}
}
