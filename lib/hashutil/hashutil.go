// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashutil

import (
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"
)

// domain separation strings. Each is hashed as the first block so digests
// computed for different purposes can never collide even given identical
// input bytes.
const (
	domainDocset = "toolrouter.hashutil.docset.v1\x00"
	domainCard   = "toolrouter.hashutil.card.v1\x00"
)

func newHasher(domain string) *blake3.Hasher {
	h := blake3.New()
	_, _ = h.WriteString(domain)
	return h
}

// writeFramed writes s length-prefixed so "ab"+"c" and "a"+"bc" never
// produce the same byte stream.
func writeFramed(h *blake3.Hasher, s string) {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(s)))
	_, _ = h.Write(lenBuf[:])
	_, _ = h.WriteString(s)
}

// CardDigest hashes a single tool card's canonical field values, keyed by
// field name so callers can compute a digest without depending on a
// specific struct layout.
func CardDigest(fields map[string]string) [32]byte {
	h := newHasher(domainCard)
	writeSortedFields(h, fields)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// DocsetDigest hashes an entire catalog snapshot: for each tool ID, its
// pre-serialized canonical representation (the catalog passes its
// ToolSearchDoc fields joined with a \x1f separator). Tool IDs are sorted before hashing so the digest is
// independent of map iteration order, and changes to any single tool's
// content, or to the set of tool IDs present, change the digest.
func DocsetDigest(canonical map[string]string) [32]byte {
	h := newHasher(domainDocset)
	writeSortedFields(h, canonical)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func writeSortedFields(h *blake3.Hasher, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeFramed(h, k)
		writeFramed(h, fields[k])
	}
}

// ETag renders a digest as a quoted hex string suitable for use as an
// HTTP-style ETag or a catalog snapshot version tag.
func ETag(digest [32]byte) string {
	return `"` + hex.EncodeToString(digest[:]) + `"`
}
