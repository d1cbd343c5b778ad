package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"cidrsum/internal/config"
	"cidrsum/internal/ipv4"
	"cidrsum/internal/model"
)

type Cache interface {
	GetResult(ctx context.Context, key string) (*model.AggregateResult, error)
	SetResult(ctx context.Context, key string, result *model.AggregateResult) error
}

// ValidationError is a request problem that is not about a single network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type AggregateService struct {
	cache  Cache
	config *config.Config
	logger *zap.Logger
}

// NewAggregateService builds the service. cache may be nil.
func NewAggregateService(cache Cache, config *config.Config, logger *zap.Logger) *AggregateService {
	return &AggregateService{
		cache:  cache,
		config: config,
		logger: logger,
	}
}

func (s *AggregateService) Aggregate(ctx context.Context, req model.AggregateRequest) (*model.AggregateResult, error) {
	if req.MaxMasklen < 0 || req.MaxMasklen > 32 {
		return nil, &ValidationError{
			Message: fmt.Sprintf("max_masklen out of range: %d (must be 0-32)", req.MaxMasklen),
		}
	}

	tokens := strings.Fields(req.Nets)
	if limit := s.config.MaxTokens; limit > 0 && len(tokens) > limit {
		return nil, &ValidationError{
			Message: fmt.Sprintf("too many networks: %d (limit %d)", len(tokens), limit),
		}
	}

	key := cacheKey(tokens, req.MaxMasklen)
	if s.cache != nil {
		cached, err := s.cache.GetResult(ctx, key)
		if err != nil {
			s.logger.Warn("failed to read cached result", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	startTime := time.Now()
	nets, err := ipv4.ParseBatch(req.Nets)
	if err != nil {
		return nil, err
	}
	if req.MaxMasklen < 32 {
		for i := range nets {
			nets[i] = nets[i].Clamp(req.MaxMasklen)
		}
	}

	result := &model.AggregateResult{
		Networks:   ipv4.Collapse(nets),
		InputCount: len(nets),
	}

	s.logger.Debug("aggregated networks",
		zap.Int("input_networks", result.InputCount),
		zap.Int("output_networks", len(result.Networks)),
		zap.Int("max_masklen", req.MaxMasklen),
		zap.Duration("duration", time.Since(startTime)))

	if s.cache != nil {
		if err := s.cache.SetResult(ctx, key, result); err != nil {
			s.logger.Warn("failed to cache result", zap.Error(err))
			// The result is still good.
		}
	}

	return result, nil
}

func cacheKey(tokens []string, maxMasklen int) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(maxMasklen)))
	for _, tok := range tokens {
		h.Write([]byte{' '})
		h.Write([]byte(tok))
	}
	return hex.EncodeToString(h.Sum(nil))
}
