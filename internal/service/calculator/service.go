package calculator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/repository/cache"
	"github.com/mamadbah2/tco/pkg/tco"
)

const cacheKeyPrefix = "tco:calculate:"

// Service exposes the TCO engine to transport layers and memoizes single
// calculations.
type Service struct {
	cache  cache.Cache
	ttl    time.Duration
	search tco.SearchConfig
	logger *zap.Logger
}

// NewService wires a calculator. A nil cache disables memoization.
func NewService(c cache.Cache, ttl time.Duration, search tco.SearchConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cache: c, ttl: ttl, search: search, logger: logger}
}

// Calculate returns the TCO metrics of o, from cache when available.
func (s *Service) Calculate(ctx context.Context, o tco.Option) (tco.Result, error) {
	key, err := cacheKey(o)
	if err != nil {
		return tco.Result{}, err
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached tco.Result
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				s.logger.Debug("calculation served from cache", zap.String("key", key))
				return cached, nil
			}
			s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
		}
	}

	result, err := tco.CalculateTCO(o)
	if err != nil {
		return tco.Result{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			err = s.cache.Set(ctx, key, string(payload), s.ttl)
		}
		if err != nil {
			s.logger.Warn("failed to cache calculation", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

// Compare ranks the options by annual cost.
func (s *Service) Compare(_ context.Context, options []tco.NamedOption) ([]tco.Ranked, error) {
	rows, err := tco.CompareTCO(options)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("options compared", zap.Int("options", len(rows)), zap.String("best", rows[0].Name))
	return rows, nil
}

// Breakeven searches for the point where the cumulative costs of a and b cross.
func (s *Service) Breakeven(_ context.Context, a, b tco.Option) (tco.Breakeven, error) {
	return tco.CalculateBreakevenPointWithin(a, b, s.search)
}

func cacheKey(o tco.Option) (string, error) {
	payload, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
