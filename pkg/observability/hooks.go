// Package observability provides hooks for metrics and logging.
//
// Libraries emit events through a global registry whose defaults do
// nothing; binaries register real implementations at startup. The core
// signature package never imports this package; pipeline and server code
// call the hooks around each operation.
//
// # Usage
//
// Register hooks at startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	    hooks.Install()
//	    // ... run application
//	}
//
// Emit events from library code:
//
//	observability.Signature().OnSignatureStart(ctx, "signature", n)
//	// ... compute ...
//	observability.Signature().OnSignatureComplete(ctx, observability.SignatureEvent{...})
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Signature Hooks
// =============================================================================

// SignatureEvent describes one finished signature computation.
type SignatureEvent struct {
	Op          string // "signature", "labelling" or "classify"
	Height      int
	VertexCount int
	SearchSteps int
	Classes     int // classify only
	Duration    time.Duration
	Err         error
}

// SignatureHooks receives events from signature computations.
type SignatureHooks interface {
	OnSignatureStart(ctx context.Context, op string, vertexCount int)
	OnSignatureComplete(ctx context.Context, ev SignatureEvent)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a finished response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a handler error.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSignatureHooks is a no-op implementation of SignatureHooks.
type NoopSignatureHooks struct{}

func (NoopSignatureHooks) OnSignatureStart(context.Context, string, int)       {}
func (NoopSignatureHooks) OnSignatureComplete(context.Context, SignatureEvent) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	signatureHooks SignatureHooks = NoopSignatureHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetSignatureHooks registers signature hooks. Nil is ignored.
func SetSignatureHooks(h SignatureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		signatureHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Signature returns the registered signature hooks.
func Signature() SignatureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return signatureHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	signatureHooks = NoopSignatureHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
