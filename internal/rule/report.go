package rule

import (
	"strings"
	"sync"

	"github.com/yacobolo/csslint/internal/stylesheet"
)

// Kind distinguishes lint violations from problems with the run itself
type Kind string

const (
	KindViolation     Kind = "violation"
	KindInvalidOption Kind = "invalidOption"
	KindInternal      Kind = "internal"
)

// Warning is what a rule hands to the sink.
//
// Index and EndIndex are byte offsets relative to the start of Node's own
// text (the declaration's property, the rule's selector, the at-rule's
// "@"), never to the whole document. Node is nil for invalid-option and
// internal warnings.
type Warning struct {
	Rule     string
	Kind     Kind
	Message  string
	Node     stylesheet.Node
	Index    int
	EndIndex int
	Fix      *Fix
}

// Sink receives warnings. The host implementation must be safe for the
// way it runs rules; rules never call Warn concurrently themselves.
type Sink interface {
	Warn(Warning)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Warning)

func (f SinkFunc) Warn(w Warning) { f(w) }

// Fix is a deferred tree edit shared by every warning it resolves.
// Apply runs the edit at most once no matter how many warnings carry it.
type Fix struct {
	Node  stylesheet.Node
	once  sync.Once
	apply func()
}

// NewFix wraps apply; node is the subtree the edit touches
func NewFix(node stylesheet.Node, apply func()) *Fix {
	return &Fix{Node: node, apply: apply}
}

// Apply runs the edit. It reports true only for the call that ran it.
func (f *Fix) Apply() bool {
	ran := false
	f.once.Do(func() {
		if f.apply != nil {
			f.apply()
		}
		ran = true
	})
	return ran
}

// Descriptor is a finding as a rule describes it
type Descriptor struct {
	Rule    string
	Message string
	Node    stylesheet.Node
	// Index and EndIndex locate the problem within the node's text.
	// When EndIndex is zero and Word is set, the first occurrence of Word
	// is used instead.
	Index    int
	EndIndex int
	Word     string
	Fix      *Fix
}

// Report converts a descriptor into a violation warning
func Report(sink Sink, d Descriptor) {
	index, end := d.Index, d.EndIndex
	if end == 0 && d.Word != "" {
		if i := strings.Index(NodeText(d.Node), d.Word); i >= 0 {
			index, end = i, i+len(d.Word)
		}
	}
	if end < index {
		end = index
	}
	sink.Warn(Warning{
		Rule:     d.Rule,
		Kind:     KindViolation,
		Message:  d.Message,
		Node:     d.Node,
		Index:    index,
		EndIndex: end,
		Fix:      d.Fix,
	})
}

// NodeText is the text a warning's Index and EndIndex refer to
func NodeText(n stylesheet.Node) string {
	switch v := n.(type) {
	case *stylesheet.Declaration:
		return v.Text()
	case *stylesheet.Rule:
		return v.Selector
	case *stylesheet.AtRule:
		return "@" + v.Name + v.AfterName + v.Params
	case *stylesheet.Comment:
		return strings.TrimPrefix(v.String(), v.Before)
	case nil:
		return ""
	}
	return n.String()
}
