// Package domain provides the specialized caches application code talks
// to: market data (freshness-aware), optimization results
// (parameter-hashed) and session state (sliding expiry). Each cache owns
// its key construction and TTL choice and delegates storage, containment
// and serialization to the store layer.
package domain
