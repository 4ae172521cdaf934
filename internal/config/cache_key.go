package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key registering an issued admin token.
// The key disappearing (logout or TTL expiry) invalidates the token.
func (r *CacheKeyStruct) AdminSessionKey(jti string) string {
	return fmt.Sprintf("admin:session:%s", jti)
}

// AdminDraftKey returns the cache key holding an admin's authoring draft.
func (r *CacheKeyStruct) AdminDraftKey(adminID int) string {
	return fmt.Sprintf("admin:%d:draft", adminID)
}

// AttemptKey returns the cache key holding a participant's quiz attempt.
func (r *CacheKeyStruct) AttemptKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s", attemptID)
}

// ResultsChannel returns the Redis PubSub channel announcing submitted results.
func (r *CacheKeyStruct) ResultsChannel() string {
	return "results:events"
}

var CacheKey = NewCacheKeyStruct()
