package email

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

const (
	ProviderSimulated = "simulated"
	ProviderSES       = "ses"
)

type Config struct {
	Provider string
	Delay    time.Duration
	From     string
	Region   string
}

// DispatcherFactory builds a Dispatcher for one provider.
type DispatcherFactory func(ctx context.Context, cfg Config) (Dispatcher, error)

// Registry manages delivery provider factories
type Registry interface {
	Register(provider string, factory DispatcherFactory) error
	Create(ctx context.Context, cfg Config) (Dispatcher, error)
	ListProviders() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]DispatcherFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]DispatcherFactory),
	}
}

// NewDefaultRegistry returns a registry with the simulated and SES providers.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(ProviderSimulated, newSimulated)
	_ = r.Register(ProviderSES, newSES)
	return r
}

func (r *registry) Register(provider string, factory DispatcherFactory) error {
	if provider == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[provider]; exists {
		return fmt.Errorf("provider %q is already registered", provider)
	}

	r.factories[provider] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, cfg Config) (Dispatcher, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = ProviderSimulated
	}

	r.mu.RLock()
	factory, exists := r.factories[provider]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %q is not registered", provider)
	}

	return factory(ctx, cfg)
}

func (r *registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for provider := range r.factories {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}

func newSimulated(_ context.Context, cfg Config) (Dispatcher, error) {
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultSimulatedDelay
	}
	return NewSimulatedDispatcher(delay), nil
}

func newSES(ctx context.Context, cfg Config) (Dispatcher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return NewSESDispatcher(ses.NewFromConfig(awsCfg)), nil
}
