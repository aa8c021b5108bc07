// Package core provides a minimal shared API for loading TOML
// documents, resolving property paths, and rendering the results. The
// CLI is a thin consumer of this facade; embedders can use it directly.
package core

import (
	"errors"
	"fmt"

	"github.com/gravures/tomlraider/internal/cel"
	"github.com/gravures/tomlraider/internal/formatter"
	"github.com/gravures/tomlraider/internal/raider"
	"github.com/gravures/tomlraider/pkg/loader"
)

// Evaluator evaluates expressions against a root node.
type Evaluator interface {
	Evaluate(expr string, root any) (any, error)
}

// SortOrder controls table key ordering in tree and list rendering.
type SortOrder = formatter.SortOrder

const (
	SortNone       = formatter.SortNone
	SortAscending  = formatter.SortAscending
	SortDescending = formatter.SortDescending
)

// Mode selects the output rendering.
type Mode = formatter.Mode

// Engine ties the path engine, expression evaluator, and formatter
// together behind one API.
type Engine struct {
	Evaluator Evaluator
	SortOrder SortOrder
	NoColor   bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom expression evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *Engine) {
		c.Evaluator = e
	}
}

// WithSortOrder sets the rendering sort order.
func WithSortOrder(order SortOrder) Option {
	return func(c *Engine) {
		c.SortOrder = order
	}
}

// WithNoColor disables colored rendering.
func WithNoColor(noColor bool) Option {
	return func(c *Engine) {
		c.NoColor = noColor
	}
}

// New creates an Engine with defaults.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{
		SortOrder: SortNone,
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Evaluator == nil {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Evaluator = eval
	}
	return engine, nil
}

// Query parses property as a path expression and resolves it against
// root. Failures are *raider.Error values carrying the error kind and
// the resolved prefix.
func (e *Engine) Query(root any, property string) (any, error) {
	return raider.Lookup(root, property)
}

// Evaluate runs a CEL expression with "_" bound to root.
func (e *Engine) Evaluate(expr string, root any) (any, error) {
	return e.Evaluator.Evaluate(expr, root)
}

// Exists reports whether property resolves in root. Resolution failures
// (missing key, out-of-range index, wrong node kind) return false;
// malformed path expressions still return an error.
func (e *Engine) Exists(root any, property string) (bool, error) {
	_, err := raider.Lookup(root, property)
	if err == nil {
		return true, nil
	}
	var rerr *raider.Error
	if errors.As(err, &rerr) && rerr.Kind != raider.ErrInvalidPathSyntax {
		return false, nil
	}
	return false, err
}

// Render formats a resolved node according to mode.
func (e *Engine) Render(node any, mode Mode) (string, error) {
	if err := formatter.ValidateMode(string(mode)); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return formatter.Render(node, mode, formatter.Options{
		NoColor:   e.NoColor,
		SortOrder: e.SortOrder,
	})
}

// LoadFile reads a TOML file (or stdin for "-") into a document tree.
func LoadFile(path string) (map[string]any, error) {
	return loader.LoadFile(path)
}

// LoadBytes decodes TOML bytes into a document tree.
func LoadBytes(data []byte) (map[string]any, error) {
	return loader.LoadBytes(data)
}
