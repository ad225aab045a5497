package pagination

import (
	"encoding/base64"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	offsetsTypeTag = "offsets:"

	// PositionKey is reserved in the encoded cursor for the merged position.
	PositionKey = "_position"
)

// Offsets is the resume point of a merged, multi-source page: how many
// nodes each source has contributed so far, and the 0-based position of the
// last emitted node in the merged sequence.
//
// Offsets values are immutable. Increment returns a new value and never
// touches the receiver, so snapshots attached to consecutive nodes can not
// alias each other. The zero value is the state before the first node with
// no known sources.
type Offsets[K ~string] struct {
	keys        []K
	counts      map[K]int
	position    int
	hasPosition bool
}

// EmptyOffsets returns the state for the first page: every source at 0 and
// no position yet. Key order is kept and drives the encoded form.
func EmptyOffsets[K ~string](keys []K) Offsets[K] {
	o := Offsets[K]{
		keys:   make([]K, 0, len(keys)),
		counts: make(map[K]int, len(keys)),
	}
	for _, k := range keys {
		if _, dup := o.counts[k]; dup {
			continue
		}
		o.keys = append(o.keys, k)
		o.counts[k] = 0
	}
	return o
}

// DecodeOffsets reverses Encoded.
func DecodeOffsets[K ~string](cursor string) (Offsets[K], error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return Offsets[K]{}, decodeError(cursor, "not base64", err)
	}

	payload, ok := strings.CutPrefix(string(raw), offsetsTypeTag)
	if !ok {
		return Offsets[K]{}, decodeError(cursor, "unexpected type tag", nil)
	}

	o := Offsets[K]{counts: make(map[K]int)}
	seenPosition := false

	for _, pair := range strings.Split(payload, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, found := strings.Cut(pair, "=")
		if !found {
			return Offsets[K]{}, decodeError(cursor, fmt.Sprintf("malformed pair %q", pair), nil)
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return Offsets[K]{}, decodeError(cursor, "malformed key", err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return Offsets[K]{}, decodeError(cursor, "malformed value", err)
		}

		if key == PositionKey {
			if seenPosition {
				return Offsets[K]{}, decodeError(cursor, "duplicate position", nil)
			}
			seenPosition = true
			if value == "null" {
				continue
			}
			n, err := parseCount(value)
			if err != nil {
				return Offsets[K]{}, decodeError(cursor, "position is not a valid integer", err)
			}
			o.position = n
			o.hasPosition = true
			continue
		}

		n, err := parseCount(value)
		if err != nil {
			return Offsets[K]{}, decodeError(cursor, fmt.Sprintf("offset for %q is not a valid integer", key), err)
		}
		k := K(key)
		if _, dup := o.counts[k]; dup {
			return Offsets[K]{}, decodeError(cursor, fmt.Sprintf("duplicate source %q", key), nil)
		}
		o.keys = append(o.keys, k)
		o.counts[k] = n
	}

	if !seenPosition {
		return Offsets[K]{}, decodeError(cursor, "missing position", nil)
	}
	return o, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

// Increment records one more node from key.
func (o Offsets[K]) Increment(key K) Offsets[K] {
	next := Offsets[K]{
		keys:        o.keys,
		counts:      make(map[K]int, len(o.counts)+1),
		hasPosition: true,
	}
	maps.Copy(next.counts, o.counts)
	if _, ok := next.counts[key]; !ok {
		next.keys = append(slices.Clone(o.keys), key)
	}
	next.counts[key]++

	if o.hasPosition {
		next.position = o.position + 1
	}
	return next
}

// Position returns the merged position of the last emitted node. ok is
// false before the first node.
func (o Offsets[K]) Position() (position int, ok bool) {
	return o.position, o.hasPosition
}

// Offset returns how many nodes of key have been emitted.
func (o Offsets[K]) Offset(key K) int {
	return o.counts[key]
}

// Has reports whether key is tracked.
func (o Offsets[K]) Has(key K) bool {
	_, ok := o.counts[key]
	return ok
}

// Keys returns the tracked sources in encoding order.
func (o Offsets[K]) Keys() []K {
	return slices.Clone(o.keys)
}

// State returns a copy of the per-source offsets.
func (o Offsets[K]) State() map[K]int {
	return maps.Clone(o.counts)
}

// Encoded is the opaque cursor for this state:
// base64("offsets:" + "_position=<n|null>&<key>=<n>&...").
func (o Offsets[K]) Encoded() string {
	var b strings.Builder
	b.WriteString(offsetsTypeTag)
	b.WriteString(PositionKey)
	b.WriteByte('=')
	if o.hasPosition {
		b.WriteString(strconv.Itoa(o.position))
	} else {
		b.WriteString("null")
	}
	for _, k := range o.keys {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(string(k)))
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(o.counts[k]))
	}
	return base64.StdEncoding.EncodeToString([]byte(b.String()))
}

func (o Offsets[K]) String() string {
	raw, _ := base64.StdEncoding.DecodeString(o.Encoded())
	return string(raw)
}
