package service

import (
	"context"
	"errors"
	"testing"

	"quizmoa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConsumeGeneration_FirstOfDaySetsExpiry(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Incr", mock.Anything, mock.Anything).Return(int64(1), nil)
	cacheMock.On("Expire", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	remaining, err := svc.ConsumeGeneration(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 9, remaining)
	cacheMock.AssertCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
}

func TestConsumeGeneration_WithinQuota(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Incr", mock.Anything, mock.Anything).Return(int64(4), nil)

	remaining, err := svc.ConsumeGeneration(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 6, remaining)
	cacheMock.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
}

func TestConsumeGeneration_OverQuota(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Incr", mock.Anything, mock.Anything).Return(int64(11), nil)

	remaining, err := svc.ConsumeGeneration(context.Background(), "user-1")
	assert.Equal(t, 0, remaining)
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuotaExceeded, domainErr.Code)
}

func TestConsumeGeneration_CacheDownDoesNotBlock(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Incr", mock.Anything, mock.Anything).Return(int64(0), errors.New("redis down"))

	remaining, err := svc.ConsumeGeneration(context.Background(), "user-1")
	assert.NoError(t, err, "generation proceeds when the counter is unavailable")
	assert.Equal(t, 10, remaining)
}

func TestRemainingGenerations(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("3", nil)

	remaining, err := svc.RemainingGenerations(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 7, remaining)
}

func TestRemainingGenerations_NoCounterYet(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)

	remaining, err := svc.RemainingGenerations(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 10, remaining)
}

func TestRemainingGenerations_NeverNegative(t *testing.T) {
	cacheMock := new(MockCache)
	svc := NewUsageService(cacheMock, 10)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("25", nil)

	remaining, err := svc.RemainingGenerations(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, remaining)
}
