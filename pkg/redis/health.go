package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status     HealthStatus      `json:"status"`
	Details    map[string]string `json:"details"`
	LockStatus map[string]bool   `json:"lock_status,omitempty"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client    *Client
	lastError string
	mu        sync.Mutex
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client: client,
	}
}

// HealthCheck performs a comprehensive health check on the Redis connection
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	pingResult := h.testPing(ctx)
	operationResult := h.testBasicOperations(ctx)
	poolResult := h.testConnectionPool()

	var status HealthStatus
	if pingResult && operationResult && poolResult {
		status = StatusUp
		h.lastError = ""
	} else {
		status = StatusDown
	}

	config := h.client.GetConfig()
	details := map[string]string{
		"host":                  config.Host,
		"port":                  strconv.Itoa(config.Port),
		"database":              strconv.Itoa(config.Database),
		"ping_successful":       strconv.FormatBool(pingResult),
		"operations_successful": strconv.FormatBool(operationResult),
		"pool_healthy":          strconv.FormatBool(poolResult),
		"last_check":            time.Now().Format(time.RFC3339),
		"last_error":            h.lastError,
	}

	return RedisHealthCheck{
		Status:     status,
		Details:    details,
		LockStatus: GetLockStatus(),
	}
}

// IsHealthy performs a quick ping only check
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return h.client.Ping(ctx) == nil
}

// testPing tests basic connectivity to Redis
func (h *HealthChecker) testPing(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.client.Ping(ctx); err != nil {
		h.lastError = fmt.Sprintf("ping failed: %v", err)
		return false
	}
	return true
}

// testBasicOperations runs a set, get, delete roundtrip against a probe key
func (h *HealthChecker) testBasicOperations(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	testKey := "health_check_test"
	testValue := "test_value"

	if err := h.client.Set(ctx, testKey, testValue, time.Minute); err != nil {
		h.lastError = fmt.Sprintf("set operation failed: %v", err)
		return false
	}

	value, err := h.client.Get(ctx, testKey)
	if err != nil {
		h.lastError = fmt.Sprintf("get operation failed: %v", err)
		return false
	}
	if value != testValue {
		h.lastError = fmt.Sprintf("value mismatch: expected %s, got %s", testValue, value)
		return false
	}

	if err := h.client.Delete(ctx, testKey); err != nil {
		h.lastError = fmt.Sprintf("delete operation failed: %v", err)
		return false
	}

	return true
}

// testConnectionPool checks that the connection pool is accessible
func (h *HealthChecker) testConnectionPool() bool {
	stats := h.client.GetClient().PoolStats()

	if stats.TotalConns == 0 && stats.IdleConns == 0 {
		h.lastError = "connection pool is not accessible"
		return false
	}

	return true
}
