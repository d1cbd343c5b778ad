package model

import (
	"cidrsum/internal/ipv4"
)

type AggregateRequest struct {
	Nets       string
	MaxMasklen int
}

type AggregateResult struct {
	Networks   []ipv4.Network
	InputCount int
}

// CachedResult is the stored form of an AggregateResult.
type CachedResult struct {
	Networks   []string `json:"networks"`
	InputCount int      `json:"input_count"`
}
