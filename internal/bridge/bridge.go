package bridge

import (
	"fmt"

	"github.com/dshills/nbshadow/internal/bridge/config"
	"github.com/dshills/nbshadow/internal/identity"
	"github.com/dshills/nbshadow/internal/logging"
	"github.com/dshills/nbshadow/internal/notebook"
	"github.com/dshills/nbshadow/internal/preview"
	"github.com/dshills/nbshadow/internal/rewrite"
)

// Bridge is the document-identity bridge for one editor session.
type Bridge struct {
	codec     *identity.Codec
	rewriter  *rewrite.Rewriter
	previews  *preview.Manager
	notebooks *notebook.Registry
	policy    *LuaPolicy
	log       *logging.Logger
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	log       *logging.Logger
	notebooks *notebook.Registry
	decorator preview.Decorator
	overlay   preview.OverlayCloser
}

// WithLogger sets the bridge logger. Defaults to a logger built from the
// configured log level.
func WithLogger(log *logging.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithNotebooks injects a shared notebook registry.
func WithNotebooks(r *notebook.Registry) Option {
	return func(o *options) {
		o.notebooks = r
	}
}

// WithDecorator sets the cell decoration collaborator for previews.
func WithDecorator(d preview.Decorator) Option {
	return func(o *options) {
		o.decorator = d
	}
}

// WithOverlayCloser sets the edit-overlay collaborator.
func WithOverlayCloser(oc preview.OverlayCloser) Option {
	return func(o *options) {
		o.overlay = oc
	}
}

// New creates a Bridge against an editor host.
func New(host preview.Host, cfg config.Config, opts ...Option) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log
	if log == nil {
		log = logging.New(logging.Config{
			Level:  logging.ParseLevel(cfg.LogLevel),
			Prefix: "nbshadow",
		})
	}

	notebooks := o.notebooks
	if notebooks == nil {
		notebooks = notebook.NewRegistry()
	}

	codec := identity.NewCodec(identity.NewRegistry(), notebooks, identity.WithScheme(cfg.Scheme))

	rwOpts := make([]rewrite.Option, 0, len(cfg.NavigationMethods)+len(cfg.PreviewMethods)+1)
	for _, m := range cfg.NavigationMethods {
		rwOpts = append(rwOpts, rewrite.WithTarget(m, rewrite.TargetNative))
	}
	for _, m := range cfg.PreviewMethods {
		rwOpts = append(rwOpts, rewrite.WithTarget(m, rewrite.TargetSynthetic))
	}

	var policy *LuaPolicy
	if cfg.PolicyScript != "" {
		var err error
		policy, err = LoadPolicyFile(cfg.PolicyScript, log)
		if err != nil {
			return nil, fmt.Errorf("policy script %s: %w", cfg.PolicyScript, err)
		}
		rwOpts = append(rwOpts, rewrite.WithPolicy(policy.Policy()))
	}

	previewOpts := []preview.ManagerOption{preview.WithLogger(log)}
	if o.decorator != nil {
		previewOpts = append(previewOpts, preview.WithDecorator(o.decorator))
	}
	if o.overlay != nil {
		previewOpts = append(previewOpts, preview.WithOverlayCloser(o.overlay))
	}

	return &Bridge{
		codec:     codec,
		rewriter:  rewrite.NewRewriter(codec, rwOpts...),
		previews:  preview.NewManager(codec, notebooks, host, previewOpts...),
		notebooks: notebooks,
		policy:    policy,
		log:       log,
	}, nil
}

// RewriteResult redirects shadow identities in a decoded server result.
// Called once per inbound result before it reaches any UI consumer.
func (b *Bridge) RewriteResult(result any, st *notebook.State, method string) any {
	return b.rewriter.Rewrite(result, st, method)
}

// RewriteRawResult is RewriteResult for undecoded JSON payloads.
func (b *Bridge) RewriteRawResult(raw []byte, st *notebook.State, method string) ([]byte, error) {
	return b.rewriter.RewriteRaw(raw, st, method)
}

// HandleSyntheticOpen is the editor's "load content for this identifier"
// hook for the synthetic scheme.
func (b *Bridge) HandleSyntheticOpen(view preview.View) {
	b.previews.Open(view)
}

// HandleSyntheticFocus is the editor's "a synthetic view became a window's
// active view" hook.
func (b *Bridge) HandleSyntheticFocus(win preview.Window) {
	b.previews.RedirectIfStray(win)
}

// CleanupPreviews sweeps this notebook's stale preview views on the next
// scheduling turn. Call when a facade view regains focus.
func (b *Bridge) CleanupPreviews(st *notebook.State) {
	b.previews.Cleanup(st)
}

// Notebooks returns the notebook registry the bridge resolves against.
func (b *Bridge) Notebooks() *notebook.Registry {
	return b.notebooks
}

// Codec returns the identity codec.
func (b *Bridge) Codec() *identity.Codec {
	return b.codec
}

// Close releases bridge resources.
func (b *Bridge) Close() {
	if b.policy != nil {
		b.policy.Close()
	}
}
