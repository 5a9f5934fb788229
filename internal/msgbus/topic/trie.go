package topic

// Trie stores topic patterns and finds those matching a concrete topic in
// time proportional to the number of segments and wildcard branches. It is
// owned by the bus and not safe for concurrent use.
type Trie struct {
	root *trieNode
	size int
}

type trieNode struct {
	children map[string]*trieNode
	patterns []Topic
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

func (n *trieNode) isEmpty() bool {
	return len(n.children) == 0 && len(n.patterns) == 0
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert adds a pattern. Returns false if it was already present.
func (t *Trie) Insert(pattern Topic) bool {
	if pattern == "" {
		return false
	}
	if t.root == nil {
		t.root = newTrieNode()
	}

	node := t.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			node.children[seg] = newTrieNode()
		}
		node = node.children[seg]
	}
	for _, p := range node.patterns {
		if p == pattern {
			return false
		}
	}
	node.patterns = append(node.patterns, pattern)
	t.size++
	return true
}

type pathEntry struct {
	node *trieNode
	key  string
}

// Delete removes a pattern and prunes nodes left empty. Returns false if the
// pattern was not present.
func (t *Trie) Delete(pattern Topic) bool {
	if pattern == "" || t.root == nil {
		return false
	}

	segments := pattern.Segments()
	path := make([]pathEntry, 0, len(segments)+1)
	path = append(path, pathEntry{node: t.root})

	node := t.root
	for _, seg := range segments {
		child := node.children[seg]
		if child == nil {
			return false
		}
		path = append(path, pathEntry{node: child, key: seg})
		node = child
	}

	found := false
	for i, p := range node.patterns {
		if p == pattern {
			node.patterns = append(node.patterns[:i], node.patterns[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	t.size--

	for i := len(path) - 1; i > 0; i-- {
		if !path[i].node.isEmpty() {
			break
		}
		delete(path[i-1].node.children, path[i].key)
	}
	return true
}

// Contains reports whether the exact pattern is stored.
func (t *Trie) Contains(pattern Topic) bool {
	if pattern == "" || t.root == nil {
		return false
	}
	node := t.root
	for _, seg := range pattern.Segments() {
		if node = node.children[seg]; node == nil {
			return false
		}
	}
	for _, p := range node.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

type matchState struct {
	seen    map[Topic]struct{}
	matches []Topic
	visited map[visitKey]struct{}
}

type visitKey struct {
	node  *trieNode
	depth int
}

// Match returns every stored pattern matching the concrete topic, each once.
// Patterns are returned exact branches first, then "*", then "**", depth
// first.
func (t *Trie) Match(concrete Topic) []Topic {
	if concrete == "" || t.root == nil {
		return nil
	}
	state := &matchState{
		seen:    make(map[Topic]struct{}),
		visited: make(map[visitKey]struct{}),
	}
	t.match(t.root, concrete.Segments(), 0, state)
	return state.matches
}

// match memoizes (node, depth) pairs so "**" does not blow up.
func (t *Trie) match(node *trieNode, segments []string, depth int, state *matchState) {
	key := visitKey{node: node, depth: depth}
	if _, ok := state.visited[key]; ok {
		return
	}
	state.visited[key] = struct{}{}

	if depth == len(segments) {
		state.add(node.patterns)
		if child := node.children[WildcardMulti]; child != nil {
			t.match(child, segments, depth, state)
		}
		return
	}

	if child := node.children[segments[depth]]; child != nil {
		t.match(child, segments, depth+1, state)
	}
	if child := node.children[WildcardSingle]; child != nil {
		t.match(child, segments, depth+1, state)
	}
	if child := node.children[WildcardMulti]; child != nil {
		for i := depth; i <= len(segments); i++ {
			t.match(child, segments, i, state)
		}
	}
}

func (s *matchState) add(patterns []Topic) {
	for _, p := range patterns {
		if _, ok := s.seen[p]; !ok {
			s.seen[p] = struct{}{}
			s.matches = append(s.matches, p)
		}
	}
}

// All returns every stored pattern.
func (t *Trie) All() []Topic {
	var out []Topic
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		if n == nil {
			return
		}
		out = append(out, n.patterns...)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Len returns the number of stored patterns.
func (t *Trie) Len() int {
	return t.size
}

// Clear removes every pattern.
func (t *Trie) Clear() {
	t.root = newTrieNode()
	t.size = 0
}
