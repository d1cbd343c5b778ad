package mocks

import (
	"context"

	"cidrsum/internal/model"
)

type MockCache struct {
	GetResultFunc func(ctx context.Context, key string) (*model.AggregateResult, error)
	SetResultFunc func(ctx context.Context, key string, result *model.AggregateResult) error
}

func (m *MockCache) GetResult(ctx context.Context, key string) (*model.AggregateResult, error) {
	return m.GetResultFunc(ctx, key)
}

func (m *MockCache) SetResult(ctx context.Context, key string, result *model.AggregateResult) error {
	return m.SetResultFunc(ctx, key, result)
}

type MockAggregateService struct {
	AggregateFunc func(ctx context.Context, req model.AggregateRequest) (*model.AggregateResult, error)
}

func (m *MockAggregateService) Aggregate(ctx context.Context, req model.AggregateRequest) (*model.AggregateResult, error) {
	return m.AggregateFunc(ctx, req)
}
