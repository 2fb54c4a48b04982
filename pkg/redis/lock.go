package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time
	TTL time.Duration
	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// RefreshInterval is the interval for refreshing the lock
	RefreshInterval time.Duration
	// LockNamespace is the namespace for organizing locks
	LockNamespace string
}

// NewLockOptions creates a new lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
		LockNamespace:   "",
	}
}

// WithTTL sets the lock expiration time
func (lo *LockOptions) WithTTL(ttl time.Duration) *LockOptions {
	lo.TTL = ttl
	return lo
}

// WithRetryDelay sets the delay between retry attempts
func (lo *LockOptions) WithRetryDelay(delay time.Duration) *LockOptions {
	lo.RetryDelay = delay
	return lo
}

// WithMaxRetries sets the maximum number of retry attempts
func (lo *LockOptions) WithMaxRetries(maxRetries int) *LockOptions {
	lo.MaxRetries = maxRetries
	return lo
}

// WithRefreshInterval sets the interval for refreshing the lock
func (lo *LockOptions) WithRefreshInterval(interval time.Duration) *LockOptions {
	lo.RefreshInterval = interval
	return lo
}

// WithLockNamespace sets the namespace for organizing locks
func (lo *LockOptions) WithLockNamespace(namespace string) *LockOptions {
	lo.LockNamespace = namespace
	return lo
}

// Lock represents a distributed lock
type Lock struct {
	client *Client
	name   string
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		name:   key,
		key:    key,
		value:  generateLockValue(),
		opts:   opts,
	}
}

// NewScheduledTaskLock creates a lock for a recurring task so a single instance
// runs it at a time, and registers it for health reporting. TTL and refresh
// interval are given in seconds.
func NewScheduledTaskLock(client *Client, name string, lockTTL, refreshInterval int, namespace string) *Lock {
	opts := NewLockOptions().
		WithTTL(time.Duration(lockTTL) * time.Second).
		WithRefreshInterval(time.Duration(refreshInterval) * time.Second).
		WithLockNamespace(namespace)

	lock := NewLock(client, name, opts)
	registerLock(lock)

	return lock
}

// buildLockKey constructs the full lock key using LockNamespace::lockKey format
func (l *Lock) buildLockKey() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// Lock attempts to acquire the lock
func (l *Lock) Lock(ctx context.Context) error {
	fullKey := l.buildLockKey()
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		// Try to acquire the lock using SET with NX and EX options
		result, err := l.client.GetClient().SetNX(ctx, fullKey, l.value, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}

		if result {
			return nil
		}

		// If this is the last attempt, return error
		if attempt == l.opts.MaxRetries {
			return fmt.Errorf("failed to acquire lock after %d attempts", l.opts.MaxRetries+1)
		}

		// Wait before retrying
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
			continue
		}
	}

	return fmt.Errorf("failed to acquire lock")
}

// Unlock releases the lock
func (l *Lock) Unlock(ctx context.Context) error {
	// Use Lua script to ensure we only delete our own lock
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`

	fullKey := l.buildLockKey()
	result, err := l.client.GetClient().Eval(ctx, script, []string{fullKey}, l.value).Result()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if result.(int64) == 0 {
		return fmt.Errorf("lock was not held by this client")
	}

	return nil
}

// Refresh extends the lock's TTL
func (l *Lock) Refresh(ctx context.Context) error {
	// Use Lua script to ensure we only refresh our own lock
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("EXPIRE", KEYS[1], ARGV[2])
		else
			return 0
		end
	`

	fullKey := l.buildLockKey()
	result, err := l.client.GetClient().Eval(ctx, script, []string{fullKey}, l.value, int(l.opts.TTL.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}

	if result.(int64) == 0 {
		return fmt.Errorf("lock was not held by this client")
	}

	return nil
}

// IsHeld checks if this client currently holds the lock
func (l *Lock) IsHeld(ctx context.Context) (bool, error) {
	value, err := l.client.Get(ctx, l.buildLockKey())
	if err != nil {
		return false, err
	}

	return value == l.value, nil
}

// AutoRefresh starts a goroutine that automatically refreshes the lock
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}

// generateLockValue generates a unique value for the lock
func generateLockValue() string {
	return uuid.NewString()
}

var (
	registeredLocks   = map[string]*Lock{}
	registeredLocksMu sync.RWMutex
)

// registerLock tracks long-lived locks so health checks can report them.
func registerLock(lock *Lock) {
	registeredLocksMu.Lock()
	defer registeredLocksMu.Unlock()

	registeredLocks[lock.name] = lock
}

// GetLockStatus reports, for every registered scheduled task lock, whether this
// instance currently holds it.
func GetLockStatus() map[string]bool {
	registeredLocksMu.RLock()
	snapshot := make(map[string]*Lock, len(registeredLocks))
	for name, lock := range registeredLocks {
		snapshot[name] = lock
	}
	registeredLocksMu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := make(map[string]bool, len(snapshot))
	for name, lock := range snapshot {
		held, err := lock.IsHeld(ctx)
		status[name] = err == nil && held
	}

	return status
}
