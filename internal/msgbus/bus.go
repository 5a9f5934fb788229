package msgbus

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dshills/wmevent/internal/metrics"
	"github.com/dshills/wmevent/internal/msgbus/topic"
	"github.com/dshills/wmevent/internal/rna"
	"github.com/dshills/wmevent/internal/tombstone"
	"github.com/dshills/wmevent/internal/wmlog"
)

// Bus is the message bus.
type Bus struct {
	props   map[Params]*key
	statics map[topic.Topic]*key
	trie    *topic.Trie

	// messages keeps keys in the order they were added.
	messages tombstone.List[*key]
	tagCount int

	resolver rna.Resolver
	metrics  *metrics.Metrics

	pubLog, subLog, debugLog *wmlog.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithResolver sets the resolver used by UpdateByID.
func WithResolver(r rna.Resolver) Option {
	return func(b *Bus) { b.resolver = r }
}

// WithLogger sets the logger.
func WithLogger(l *wmlog.Logger) Option {
	return func(b *Bus) { b.setLogger(l) }
}

// WithMetrics sets the metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bus) { b.metrics = m }
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		props:   make(map[Params]*key),
		statics: make(map[topic.Topic]*key),
		trie:    topic.NewTrie(),
		metrics: metrics.Noop(),
	}
	b.setLogger(wmlog.Null())
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) setLogger(l *wmlog.Logger) {
	b.pubLog = l.Channel(wmlog.ChannelMsgbusPub)
	b.subLog = l.Channel(wmlog.ChannelMsgbusSub)
	b.debugLog = l.Channel(wmlog.ChannelDebug)
}

// SetResolver replaces the resolver.
func (b *Bus) SetResolver(r rna.Resolver) {
	b.resolver = r
}

// Len returns the number of keys.
func (b *Bus) Len() int {
	return b.messages.Len()
}

// TagCount returns the number of values awaiting Handle.
func (b *Bus) TagCount() int {
	return b.tagCount
}

// Subscribe adds v to the key of p and returns the stored value. A value
// equal to one already on the key (same owner, user data and callback) is
// not added again; the existing one is returned.
func (b *Bus) Subscribe(p Params, v Value) (*Value, error) {
	if v.Notify == nil {
		return nil, ErrNilNotify
	}
	if p == (Params{}) {
		return nil, ErrInvalidParams
	}
	b.subLog.Debug("%s info=%q", p, v.Info)

	k, ok := b.props[p]
	if !ok {
		k = &key{params: p}
		b.addKey(k)
		b.props[p] = k
	}
	stored := b.attach(k, v)
	if stored.Persistent && k.path == "" && p.Data != "" {
		k.path = p.Data
	}
	return stored, nil
}

// SubscribeStatic adds v to the static key of pattern.
func (b *Bus) SubscribeStatic(pattern topic.Topic, v Value) (*Value, error) {
	if v.Notify == nil {
		return nil, ErrNilNotify
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	b.subLog.Debug("static(%s) info=%q", pattern, v.Info)

	k, ok := b.statics[pattern]
	if !ok {
		k = &key{topic: pattern}
		b.addKey(k)
		b.statics[pattern] = k
		b.trie.Insert(pattern)
	}
	return b.attach(k, v), nil
}

func (b *Bus) addKey(k *key) {
	k.elem = b.messages.PushBack(k)
}

func (b *Bus) attach(k *key, v Value) *Value {
	if existing := k.find(&v); existing != nil {
		return existing
	}
	stored := v
	stored.pending = false
	stored.key = k
	stored.elem = k.values.PushBack(&stored)
	return &stored
}

// Publish notifies the key of p, then the anonymous keys covering it: all
// properties of the same struct, the same property of any owner, and every
// property of the type.
func (b *Bus) Publish(p Params) {
	b.pubLog.Debug("%s", p)
	b.metrics.Published("property")

	b.publishKey(b.props[p])
	if p.anonymous() {
		return
	}

	anon := p
	if anon.Prop != "" {
		anon.Prop = ""
		b.publishKey(b.props[anon])
		anon.Prop = p.Prop
	}

	anon.Owner = uuid.Nil
	anon.Data = ""
	b.publishKey(b.props[anon])

	if p.Prop != "" {
		anon.Prop = ""
		b.publishKey(b.props[anon])
	}
}

// PublishProperty publishes prop of the struct at ptr.
func (b *Bus) PublishProperty(ptr rna.Pointer, prop string) {
	b.Publish(PropertyParams(ptr, prop))
}

// PublishStatic notifies every static key whose pattern matches t.
func (b *Bus) PublishStatic(t topic.Topic) {
	b.pubLog.Debug("static(%s)", t)
	b.metrics.Published("static")

	for _, pattern := range b.trie.Match(t) {
		b.publishKey(b.statics[pattern])
	}
}

func (b *Bus) publishKey(k *key) {
	if k == nil {
		return
	}
	msg := k.message()
	n := 0
	k.values.Each(func(e *tombstone.Element[*Value]) bool {
		v := e.Value
		if v.Tag {
			if !v.pending {
				v.pending = true
				b.tagCount++
			}
			return true
		}
		b.notify(msg, v)
		n++
		return true
	})
	b.metrics.Notified(n)
}

// Handle delivers every pending tagged value, in key order, and returns how
// many were notified.
func (b *Bus) Handle() int {
	if b.tagCount == 0 {
		return 0
	}
	n := 0
	b.messages.Each(func(ke *tombstone.Element[*key]) bool {
		k := ke.Value
		msg := k.message()
		k.values.Each(func(e *tombstone.Element[*Value]) bool {
			v := e.Value
			if !v.pending {
				return true
			}
			v.pending = false
			b.tagCount--
			b.notify(msg, v)
			n++
			return b.tagCount > 0
		})
		return b.tagCount > 0
	})
	b.metrics.Notified(n)
	return n
}

func (b *Bus) notify(msg Message, v *Value) {
	defer func() {
		if r := recover(); r != nil {
			b.debugLog.Warn("msgbus: %s notify %q panicked: %v", msg, v.Info, r)
		}
	}()
	v.Notify(msg, v)
}

// Unsubscribe removes a value. Returns false if it was not subscribed.
func (b *Bus) Unsubscribe(v *Value) bool {
	if v == nil || v.key == nil {
		return false
	}
	k := v.key
	b.removeValue(k, v)
	if k.values.Len() == 0 {
		b.removeKey(k)
	}
	return true
}

func (b *Bus) removeValue(k *key, v *Value) {
	if v.pending {
		v.pending = false
		b.tagCount--
	}
	k.values.Remove(v.elem)
	v.key = nil
}

// dropValues removes the values of k matching fn and returns how many.
func (b *Bus) dropValues(k *key, fn func(v *Value) bool) int {
	n := 0
	for e := k.values.Front(); e != nil; {
		next := e.Next()
		if fn(e.Value) {
			b.removeValue(k, e.Value)
			n++
		}
		e = next
	}
	return n
}

func (b *Bus) removeKey(k *key) {
	b.dropValues(k, func(*Value) bool { return true })
	if k.static() {
		if b.statics[k.topic] == k {
			delete(b.statics, k.topic)
			b.trie.Delete(k.topic)
		}
	} else if b.props[k.params] == k {
		delete(b.props, k.params)
	}
	b.messages.Remove(k.elem)
}

// keysOwnedBy returns the property keys owned by id in key order.
func (b *Bus) keysOwnedBy(id uuid.UUID) []*key {
	var out []*key
	for e := b.messages.Front(); e != nil; e = e.Next() {
		if k := e.Value; !k.static() && k.params.Owner == id {
			out = append(out, k)
		}
	}
	return out
}

// UpdateByID moves the keys owned by oldID to newID, after an entity was
// replaced. Non-persistent values are dropped. A key whose data location is
// the owner itself simply changes owner; one below the owner is
// re-resolved from newID through the recorded path. Keys left without
// values, or that fail to re-resolve, are removed.
func (b *Bus) UpdateByID(oldID, newID uuid.UUID) {
	if oldID == uuid.Nil || oldID == newID {
		return
	}
	for _, k := range b.keysOwnedBy(oldID) {
		delete(b.props, k.params)

		b.dropValues(k, func(v *Value) bool { return !v.Persistent })

		params, ok := b.relocate(k, newID)
		if !ok {
			b.debugLog.Debug("msgbus: dropping %s, not resolvable from %s", k.params, newID)
			b.removeKey(k)
			continue
		}

		k.params = params
		if dst, exists := b.props[params]; exists {
			b.dropValues(k, func(v *Value) bool {
				moved := b.attach(dst, *v)
				if v.pending && !moved.pending {
					moved.pending = true
					b.tagCount++
				}
				return true
			})
			b.messages.Remove(k.elem)
			continue
		}
		b.props[params] = k
	}
}

func (b *Bus) relocate(k *key, newID uuid.UUID) (Params, bool) {
	if k.values.Len() == 0 {
		return Params{}, false
	}
	p := k.params
	if p.Data == "" {
		p.Owner = newID
		return p, true
	}
	if b.resolver == nil || k.path == "" {
		return Params{}, false
	}
	ptr, ok := b.resolver.Resolve(newID, k.path)
	if !ok {
		return Params{}, false
	}
	if p.Prop != "" && !b.resolver.HasProperty(ptr, p.Prop) {
		return Params{}, false
	}
	p.Owner = ptr.Owner
	p.Data = ptr.Path
	if ptr.Type != "" {
		p.Type = ptr.Type
	}
	return p, true
}

// RemoveByID deletes every key owned by id.
func (b *Bus) RemoveByID(id uuid.UUID) {
	if id == uuid.Nil {
		return
	}
	for _, k := range b.keysOwnedBy(id) {
		b.removeKey(k)
	}
}

// ClearByOwner removes every value subscribed by owner, and the keys left
// empty.
func (b *Bus) ClearByOwner(owner any) int {
	if owner == nil {
		return 0
	}
	n := 0
	for ke := b.messages.Front(); ke != nil; {
		next := ke.Next()
		k := ke.Value
		n += b.dropValues(k, func(v *Value) bool { return equal(v.Owner, owner) })
		if k.values.Len() == 0 {
			b.removeKey(k)
		}
		ke = next
	}
	return n
}

// Clear removes every key.
func (b *Bus) Clear() {
	for e := b.messages.Front(); e != nil; {
		next := e.Next()
		b.removeKey(e.Value)
		e = next
	}
}

// Dump writes one line per key and value, in key order.
func (b *Bus) Dump(w io.Writer) error {
	for e := b.messages.Front(); e != nil; e = e.Next() {
		k := e.Value
		if _, err := fmt.Fprintf(w, "%s values=%d\n", k.message(), k.values.Len()); err != nil {
			return err
		}
		for ve := k.values.Front(); ve != nil; ve = ve.Next() {
			v := ve.Value
			if _, err := fmt.Fprintf(w, "  info=%q persistent=%t tag=%t pending=%t\n", v.Info, v.Persistent, v.Tag, v.pending); err != nil {
				return err
			}
		}
	}
	return nil
}
