// Package shorthand detects longhand declarations in one block that
// together spell out a shorthand property, and computes that shorthand's value.
package shorthand

import (
	"slices"
	"sort"
	"strings"

	"github.com/yacobolo/csslint/internal/reference"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

// Config narrows which shorthands and longhands take part
type Config struct {
	// IgnoreShorthand reports shorthands (unprefixed) that are never proposed
	IgnoreShorthand func(string) bool
	// IgnoreLonghands are left out of every group and every required set
	IgnoreLonghands []string
}

// Engine holds the longhand index for one configuration. It is read-only
// after NewEngine and may be shared by concurrent blocks.
type Engine struct {
	shorthandsOf map[string][]string
	required     map[string][]string
}

// NewEngine builds the longhand index, dropping ignored shorthands and longhands
func NewEngine(cfg Config) *Engine {
	ignored := make(map[string]bool, len(cfg.IgnoreLonghands))
	for _, l := range cfg.IgnoreLonghands {
		ignored[strings.ToLower(l)] = true
	}

	names := make([]string, 0, len(reference.LonghandSubProperties))
	for name := range reference.LonghandSubProperties {
		names = append(names, name)
	}
	sort.Strings(names)

	e := &Engine{
		shorthandsOf: make(map[string][]string),
		required:     make(map[string][]string),
	}
	for _, shorthand := range names {
		if cfg.IgnoreShorthand != nil && cfg.IgnoreShorthand(shorthand) {
			continue
		}
		var required []string
		for _, longhand := range reference.LonghandSubProperties[shorthand] {
			if ignored[longhand] {
				continue
			}
			required = append(required, longhand)
			e.shorthandsOf[longhand] = append(e.shorthandsOf[longhand], shorthand)
		}
		e.required[shorthand] = required
	}
	return e
}

// Candidate is a group of longhands that exactly forms a shorthand
type Candidate struct {
	// Shorthand is the prefixed shorthand property
	Shorthand    string
	Declarations []*stylesheet.Declaration
	Value        string
	// Resolved is false when the longhands are redundant but no equivalent
	// shorthand value can be written
	Resolved bool
}

// Apply replaces the first contributing declaration with the shorthand and
// removes the others. It does nothing when the candidate is unresolved or
// the first declaration was already detached by another edit.
func (c Candidate) Apply() {
	if !c.Resolved || len(c.Declarations) == 0 {
		return
	}
	first := c.Declarations[0]
	repl := first.Clone()
	repl.Prop = c.Shorthand
	repl.Value = c.Value
	if !stylesheet.ReplaceWith(first, repl) {
		return
	}
	for _, d := range c.Declarations[1:] {
		stylesheet.Remove(d)
	}
}

type group struct {
	props []string
	decls []*stylesheet.Declaration
}

// Block tracks the groups of one declaration block. It is not safe for
// concurrent use; create one per block.
type Block struct {
	engine *Engine
	groups map[string]*group
}

// NewBlock starts an empty declaration block
func (e *Engine) NewBlock() *Block {
	return &Block{engine: e, groups: make(map[string]*group)}
}

// Add records a declaration and returns the groups it completes
func (b *Block) Add(d *stylesheet.Declaration) []Candidate {
	// CSS-wide keywords cannot be folded into a shorthand
	if reference.IsBasicKeyword(d.Value) {
		return nil
	}

	prop := strings.ToLower(d.Prop)
	prefix := reference.VendorPrefix(prop)
	shorthands := b.engine.shorthandsOf[prop[len(prefix):]]

	var found []Candidate
	for _, shorthand := range shorthands {
		key := prefix + shorthand
		g := b.groups[key]
		if g == nil {
			g = &group{}
			b.groups[key] = g
		}
		g.props = append(g.props, prop)
		g.decls = append(g.decls, d)

		required := b.engine.required[shorthand]
		if !sameSet(g.props, prefix, required) {
			continue
		}
		if mixedImportance(g.decls) {
			continue
		}

		c := Candidate{
			Shorthand:    key,
			Declarations: slices.Clone(g.decls),
		}
		c.Value, c.Resolved = resolve(KindOf(shorthand), prefix, required, c.Declarations)
		found = append(found, c)

		if reference.ConflictingShorthands[shorthand] {
			b.purge(g.props)
		}
	}
	return found
}

// purge drops the given longhands from every group of the block so that
// overlapping shorthands are not proposed for the same declarations
func (b *Block) purge(props []string) {
	drop := make(map[string]bool, len(props))
	for _, p := range props {
		drop[p] = true
	}
	for _, g := range b.groups {
		keptProps := g.props[:0:0]
		keptDecls := g.decls[:0:0]
		for i, p := range g.props {
			if drop[p] {
				continue
			}
			keptProps = append(keptProps, p)
			keptDecls = append(keptDecls, g.decls[i])
		}
		g.props, g.decls = keptProps, keptDecls
	}
}

// sameSet compares the observed props, duplicates included, with the
// prefixed required longhands
func sameSet(props []string, prefix string, required []string) bool {
	if len(props) != len(required) || len(required) == 0 {
		return false
	}
	got := slices.Clone(props)
	want := make([]string, len(required))
	for i, r := range required {
		want[i] = prefix + r
	}
	sort.Strings(got)
	sort.Strings(want)
	return slices.Equal(got, want)
}

func mixedImportance(decls []*stylesheet.Declaration) bool {
	important := 0
	for _, d := range decls {
		if d.Important {
			important++
		}
	}
	return important > 0 && important != len(decls)
}
