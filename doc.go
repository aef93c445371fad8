// Package aivest implements an investment-tracking ledger: portfolios of
// stock holdings with exact cash accounting, valuation against market
// prices, an append-only transaction log, AI-generated trade
// recommendations, and flat-file JSON persistence.
//
// The package is deliberately free of transport concerns. Market prices and
// company research arrive through the narrow PriceProvider and
// ResearchProvider interfaces; implementations live in the marketdata and
// research subpackages, and the mcp subpackage re-exposes quotes over a
// tool-calling transport without ever becoming a second source of truth.
package aivest
