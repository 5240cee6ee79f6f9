// Package skippattern compiles dot-notation exclusion patterns into a
// prefix tree and answers, per field name, whether a field is pruned
// entirely or kept with a narrowed rule set for its children.
//
// A pattern is a dot-separated path: "address.country.code" excludes a
// single field, "address.country" or "address.country.*" excludes the
// whole subtree below that prefix. A segment may carry the wildcard
// token, which stands for any run of characters within a field name, so
// "*Name" prunes firstName and lastName at any matching level.
package skippattern

import (
	"regexp"
	"strings"
)

// Wildcard is the any-characters token recognized inside pattern segments.
const Wildcard = "*"

// Tree is a compiled set of exclusion rules for one nesting level.
// Keys keep their first-occurrence order so overlapping wildcard rules
// resolve deterministically.
type Tree struct {
	keys  []string
	nodes map[string]*node
}

type node struct {
	all  bool           // exclude the whole subtree at this segment
	re   *regexp.Regexp // set when the segment carries the wildcard
	next *Tree          // narrowed rules for child fields, nil when all
}

// Compile builds a rule tree from a flat pattern list. Empty patterns
// are ignored; a nil tree means no exclusion applies.
func Compile(patterns []string) *Tree {
	var root *Tree
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if root == nil {
			root = &Tree{}
		}
		root.add(strings.Split(pat, "."))
	}
	return root
}

func (t *Tree) add(segs []string) {
	cur := t
	var prev *node
	for i, seg := range segs {
		last := i == len(segs)-1

		// A trailing bare wildcard folds into the previous segment:
		// "a.b.*" excludes everything below b, same as plain "a.b".
		if last && seg == Wildcard && prev != nil {
			prev.all = true
			prev.next = nil
			return
		}

		n := cur.ensure(seg)
		if last {
			n.all = true
			n.next = nil
			return
		}
		if n.all {
			// Subtree already excluded wholesale by an earlier pattern.
			return
		}
		if n.next == nil {
			n.next = &Tree{}
		}
		prev = n
		cur = n.next
	}
}

func (t *Tree) ensure(seg string) *node {
	if t.nodes == nil {
		t.nodes = make(map[string]*node)
	}
	n, ok := t.nodes[seg]
	if !ok {
		n = &node{}
		if strings.Contains(seg, Wildcard) {
			n.re = wildcardRegexp(seg)
		}
		t.nodes[seg] = n
		t.keys = append(t.keys, seg)
	}
	return n
}

// wildcardRegexp turns a wildcard-bearing segment into an unanchored
// substring match: "*Name" behaves like /.*Name/ against the field name.
func wildcardRegexp(seg string) *regexp.Regexp {
	parts := strings.Split(seg, Wildcard)
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	return regexp.MustCompile(strings.Join(parts, ".*"))
}

// Match reports how name is affected by the rules at this level. When
// the field is excluded entirely the second result is true. Otherwise
// the first result is the rule set to apply to the field's children;
// nil means no rule matched and descendants carry no restriction.
//
// An exact key match is preferred. Failing that, wildcard keys are
// scanned in insertion order: any that excludes wholesale wins
// immediately, otherwise the last matching nested rule set is used.
func (t *Tree) Match(name string) (*Tree, bool) {
	if t == nil {
		return nil, false
	}
	if n, ok := t.nodes[name]; ok {
		if n.all {
			return nil, true
		}
		return n.next, false
	}
	var next *Tree
	for _, key := range t.keys {
		n := t.nodes[key]
		if n.re == nil || !n.re.MatchString(name) {
			continue
		}
		if n.all {
			return nil, true
		}
		next = n.next
	}
	return next, false
}
