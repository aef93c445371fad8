// Package cmd implements the CLI application to manage AI-assisted
// investment portfolios.
package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/marcward/aivest"
	"github.com/marcward/aivest/marketdata"
)

// Commands lists the subcommands in registration order.
// A main package iterates over it and calls Register on each.
var Commands = []subcommands.Command{
	&createCmd{},
	&listCmd{},
	&deleteCmd{},

	&buyCmd{},
	&sellCmd{},
	&txCmd{},

	&performanceCmd{},
	&criteriaCmd{},

	&researchCmd{},
	&recommendationsCmd{},
	&executeCmd{},

	&mcpCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", "aivest.toml", "Path to the configuration file (TOML)")

// newPriceProvider builds the market data client from the configuration.
func newPriceProvider(cfg Config) *marketdata.Client {
	log := newLogger(cfg)
	var opts []marketdata.Option
	if cfg.MarketData.Endpoint != "" {
		opts = append(opts, marketdata.WithBaseURL(cfg.MarketData.Endpoint))
	}
	if cfg.MarketData.CacheTTLSeconds > 0 {
		opts = append(opts, marketdata.WithTTL(time.Duration(cfg.MarketData.CacheTTLSeconds)*time.Second))
	}
	if cfg.MarketData.DiskCache {
		opts = append(opts, marketdata.WithDiskCache())
	}
	return marketdata.New(log, opts...)
}

// OpenStore is the central function to open the portfolio store with its
// live price provider, per the active configuration.
func OpenStore() (*aivest.Store, Config, error) {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return nil, cfg, err
	}
	store, err := aivest.Open(cfg.Store.DataDir, newPriceProvider(cfg), newLogger(cfg))
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

// findPortfolio resolves a portfolio by ID first, then by exact name.
// A name shared by several portfolios is ambiguous and must be replaced
// by an ID.
func findPortfolio(s *aivest.Store, key string) (*aivest.Portfolio, error) {
	if p, err := s.GetPortfolio(key); err == nil {
		return p, nil
	}

	var matches []*aivest.Portfolio
	for _, p := range s.ListPortfolios() {
		if p.Name == key {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no portfolio with id or name %q", key)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d portfolios are named %q, use an id instead", len(matches), key)
	}
}
