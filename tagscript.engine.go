package tagscript

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/japandotorg/TagScriptEngine/internal"
	"go.uber.org/zap"
)

// Engine interprets templates against a fixed set of Blocks and
// Adapters. An Engine is immutable after construction and safe for
// concurrent use; all mutable interpretation state lives in a per-call
// Context.
type Engine struct {
	blocks   []Block
	blockIdx map[string]Block
	adapters map[string]Adapter
	limits   Limits
	config   internal.Config
	logger   *zap.Logger
}

// New creates an Engine from an ordered block collection and an
// adapter map. Registration problems are caller programming mistakes
// and are reported here, before any interpretation: a nil block or
// adapter, a block with no aliases, an empty identifier, an identifier
// claimed by two different blocks, or an identifier registered as both
// an adapter and a block.
func New(blocks []Block, adapters map[string]Adapter, opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	grammar, err := grammarConfig(cfg.openDelim, cfg.closeDelim)
	if err != nil {
		return nil, err
	}

	blockIdx := make(map[string]Block)
	for _, b := range blocks {
		if b == nil {
			return nil, NewNilBlockError()
		}
		names := b.Names()
		if len(names) == 0 {
			return nil, NewNoBlockNamesError()
		}
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			key := normalizeIdentifier(name)
			if key == "" {
				return nil, NewEmptyIdentifierError()
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			if existing, ok := blockIdx[key]; ok {
				if !sameBlock(existing, b) {
					return nil, NewDuplicateBlockError(key)
				}
				continue
			}
			blockIdx[key] = b
		}
	}

	adapterIdx := make(map[string]Adapter, len(adapters))
	for name, a := range adapters {
		if a == nil {
			return nil, NewNilAdapterError(name)
		}
		key := normalizeIdentifier(name)
		if key == "" {
			return nil, NewEmptyIdentifierError()
		}
		if _, ok := blockIdx[key]; ok {
			return nil, NewAdapterCollisionError(key)
		}
		if _, ok := adapterIdx[key]; ok {
			return nil, NewDuplicateAdapterError(key)
		}
		adapterIdx[key] = a
	}

	logger.Debug(LogMsgEngineCreated,
		zap.Int(LogFieldBlocks, len(blockIdx)),
		zap.Int(LogFieldAdapters, len(adapterIdx)))

	return &Engine{
		blocks:   blocks,
		blockIdx: blockIdx,
		adapters: adapterIdx,
		limits:   cfg.limits,
		config:   grammar,
		logger:   logger,
	}, nil
}

// MustNew creates an Engine and panics if construction fails.
func MustNew(blocks []Block, adapters map[string]Adapter, opts ...Option) *Engine {
	engine, err := New(blocks, adapters, opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Process interprets the input template and returns its Response. It
// never returns an error: malformed syntax, unknown identifiers, and
// extension faults all degrade to literal text, and limit hits are
// observable only through the truncated flag.
func (e *Engine) Process(ctx context.Context, input string, opts ...ProcessOption) *Response {
	pcfg := &processConfig{limits: e.limits}
	for _, opt := range opts {
		opt(pcfg)
	}

	run := &runState{
		limits:    pcfg.limits,
		variables: normalizeSeeds(pcfg.seeds),
		response:  newResponse(),
	}

	e.logger.Debug(LogMsgProcessStart, zap.Int(LogFieldLength, len(input)))
	body := e.interpret(ctx, input, run)

	resp := run.response
	if run.bodyOverride != nil {
		resp.Body = *run.bodyOverride
	} else {
		resp.Body = body
	}
	resp.Truncated = run.truncated

	e.logger.Debug(LogMsgProcessEnd,
		zap.Int(LogFieldLength, len(resp.Body)),
		zap.Int(LogFieldInvocations, run.invocations),
		zap.Bool(LogFieldTruncated, resp.Truncated))
	return resp
}

// Limits returns the engine's configured default limits.
func (e *Engine) Limits() Limits {
	return e.limits
}

// interpret runs one Lexer→Parser→walk pass over source, accumulating
// output against the shared run state. It is re-entered by SubInterpret.
func (e *Engine) interpret(ctx context.Context, source string, run *runState) string {
	nodes := internal.NewParser(source, e.config, e.logger).Parse()

	var sb strings.Builder
	for i := range nodes {
		if run.halted || run.truncated {
			break
		}
		node := &nodes[i]

		var out string
		switch node.Kind {
		case internal.NodeDeclaration:
			out = e.dispatch(ctx, node, run)
		default:
			out = node.Text
		}

		if !e.appendBounded(&sb, out, run) {
			break
		}
	}
	return sb.String()
}

// appendBounded appends s subject to the character limit, truncating
// exactly at the boundary. Returns false when the walk must stop.
func (e *Engine) appendBounded(sb *strings.Builder, s string, run *runState) bool {
	max := run.limits.MaxCharLimit
	if max <= 0 {
		sb.WriteString(s)
		return true
	}
	remaining := max - sb.Len()
	if len(s) <= remaining {
		sb.WriteString(s)
		return true
	}
	sb.WriteString(s[:remaining])
	run.truncated = true
	e.logger.Debug(LogMsgCharLimitReached, zap.Int(LogFieldLimit, max))
	return false
}

// dispatch resolves one declaration node: call-scoped variables first,
// then the adapter registry, then block dispatch, then literal
// fallback. Each stage may decline (chain continues) or fault (literal
// fallback immediately, with a warning). Once the invocation budget is
// spent, every remaining declaration in the call stays literal,
// adapter-matched ones included.
func (e *Engine) dispatch(ctx context.Context, node *internal.Node, run *runState) string {
	if run.limits.MaxInvocations > 0 && run.invocations >= run.limits.MaxInvocations {
		e.logger.Debug(LogMsgInvocationsReached, zap.Int(LogFieldInvocations, run.invocations))
		return node.Raw
	}

	key := normalizeIdentifier(node.Identifier)
	ectx := &Context{verb: verbFromNode(node), engine: e, run: run}

	if a, ok := run.variables[key]; ok {
		out, err := safeResolve(ctx, a, ectx)
		if err == nil {
			return out
		}
		if !errors.Is(err, ErrDecline) {
			e.logger.Warn(LogMsgAdapterFault, zap.String(LogFieldIdentifier, key), zap.Error(err))
			return node.Raw
		}
	}

	if a, ok := e.adapters[key]; ok {
		out, err := safeResolve(ctx, a, ectx)
		if err == nil {
			return out
		}
		if !errors.Is(err, ErrDecline) {
			e.logger.Warn(LogMsgAdapterFault, zap.String(LogFieldIdentifier, key), zap.Error(err))
			return node.Raw
		}
	}

	if b, ok := e.blockIdx[key]; ok {
		run.invocations++

		out, err := safeProcess(ctx, b, ectx)
		if err == nil {
			return out
		}
		if !errors.Is(err, ErrDecline) {
			e.logger.Warn(LogMsgBlockFault, zap.String(LogFieldIdentifier, key), zap.Error(err))
		}
		return node.Raw
	}

	return node.Raw
}

// safeResolve invokes an adapter, converting panics into faults so one
// misbehaving extension cannot abort unrelated output.
func safeResolve(ctx context.Context, a Adapter, ectx *Context) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", ErrMsgExtensionPanic, r)
		}
	}()
	return a.Resolve(ctx, ectx)
}

// safeProcess invokes a block, converting panics into faults.
func safeProcess(ctx context.Context, b Block, ectx *Context) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", ErrMsgExtensionPanic, r)
		}
	}()
	return b.Process(ctx, ectx)
}

// verbFromNode converts a parsed declaration node into its public Verb.
func verbFromNode(node *internal.Node) *Verb {
	v := &Verb{
		Identifier:   node.Identifier,
		Raw:          node.Raw,
		parameter:    node.Parameter,
		hasParameter: node.HasParameter,
		payload:      node.Payload,
		hasPayload:   node.HasPayload,
	}
	return v
}

// sameBlock reports whether two registered blocks are the same
// registration. Pointer-shaped blocks compare by address; value-typed
// blocks compare with == only when their type is comparable, so a
// block carrying a map or slice field cannot panic here and two such
// values are treated as distinct registrations.
func sameBlock(a, b Block) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	}
	if !va.Type().Comparable() {
		return false
	}
	return a == b
}

// normalizeIdentifier lowercases and trims an identifier for matching.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeSeeds copies a seed map with normalized keys, dropping nil
// adapters and empty names.
func normalizeSeeds(seeds map[string]Adapter) map[string]Adapter {
	if len(seeds) == 0 {
		return nil
	}
	out := make(map[string]Adapter, len(seeds))
	for name, a := range seeds {
		key := normalizeIdentifier(name)
		if key == "" || a == nil {
			continue
		}
		out[key] = a
	}
	return out
}

// grammarConfig validates the configured delimiters and builds the
// internal grammar. Delimiters are restricted to single-byte characters
// so span offsets stay byte-stable.
func grammarConfig(open, close rune) (internal.Config, error) {
	grammar := internal.DefaultConfig()
	if open >= 128 || close >= 128 || open == close || open == 0 || close == 0 {
		return grammar, NewInvalidDelimitersError()
	}
	reserved := []byte{grammar.ParamOpen, grammar.ParamClose, grammar.Separator, grammar.Escape}
	for _, ch := range reserved {
		if byte(open) == ch || byte(close) == ch {
			return grammar, NewReservedDelimiterError()
		}
	}
	grammar.Open = byte(open)
	grammar.Close = byte(close)
	return grammar, nil
}
