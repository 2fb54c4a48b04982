package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// TTL is the time to live for cached values, zero keeps them forever
	TTL time.Duration
	// RefreshTTL indicates whether to refresh the TTL on access
	RefreshTTL bool
	// Serializer is a custom serializer function
	Serializer func(interface{}) ([]byte, error)
	// Deserializer is a custom deserializer function
	Deserializer func([]byte, interface{}) error
	// CacheName namespaces every key of this cache
	CacheName string
}

// NewCacheOptions creates a new cache options with default values
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:          1 * time.Hour,
		RefreshTTL:   false,
		Serializer:   json.Marshal,
		Deserializer: json.Unmarshal,
		CacheName:    "",
	}
}

// WithTTL sets the TTL for cache operations
func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

// WithRefreshTTL enables TTL refresh on access
func (co *CacheOptions) WithRefreshTTL(refresh bool) *CacheOptions {
	co.RefreshTTL = refresh
	return co
}

// WithSerializer sets a custom serializer function
func (co *CacheOptions) WithSerializer(serializer func(interface{}) ([]byte, error)) *CacheOptions {
	co.Serializer = serializer
	return co
}

// WithDeserializer sets a custom deserializer function
func (co *CacheOptions) WithDeserializer(deserializer func([]byte, interface{}) error) *CacheOptions {
	co.Deserializer = deserializer
	return co
}

// WithCacheName sets the cache key namespace
func (co *CacheOptions) WithCacheName(cacheName string) *CacheOptions {
	co.CacheName = cacheName
	return co
}

// Cache provides high-level caching operations
type Cache struct {
	client *Client
	opts   *CacheOptions
}

// NewCache creates a new cache instance
func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions()
	}
	return &Cache{
		client: client,
		opts:   opts,
	}
}

// getTTL returns the TTL for the cache, preferring the cache options over the
// client default.
func (c *Cache) getTTL() time.Duration {
	if c.opts.TTL != 0 {
		return c.opts.TTL
	}
	if c.client.config.DefaultCacheTTL > 0 {
		return c.client.config.DefaultCacheTTL
	}

	return 0
}

// buildCacheKey constructs the full cache key using CacheName::cacheKey format
func (c *Cache) buildCacheKey(key string) string {
	if c.opts.CacheName != "" {
		return c.opts.CacheName + "::" + key
	}
	return key
}

// Get retrieves a value from cache and deserializes it into dest. The boolean
// reports whether the key was present.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	fullKey := c.buildCacheKey(key)
	data, err := c.client.GetBytes(ctx, fullKey)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if c.opts.RefreshTTL {
		_ = c.client.Expire(ctx, fullKey, c.getTTL())
	}

	if err := c.opts.Deserializer(data, dest); err != nil {
		return false, fmt.Errorf("failed to deserialize value for key %s: %w", fullKey, err)
	}

	return true, nil
}

// Set stores a value in cache with serialization
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, c.getTTL())
}

// SetWithTTL stores a value in cache with a custom TTL, zero meaning no expiration
func (c *Cache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	fullKey := c.buildCacheKey(key)
	data, err := c.opts.Serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	return c.client.Set(ctx, fullKey, data, ttl)
}

// Delete removes a value from cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.buildCacheKey(key))
}

// Exists checks whether a key is present in cache
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.client.Exists(ctx, c.buildCacheKey(key))
}

// GetTTL returns the remaining time to live for a cached key
func (c *Cache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, c.buildCacheKey(key))
}
