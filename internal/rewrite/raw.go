package rewrite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/nbshadow/internal/notebook"
)

// ErrInvalidPayload is returned when RewriteRaw receives malformed JSON.
var ErrInvalidPayload = errors.New("invalid JSON payload")

// setOp is one pending identifier substitution in a raw payload.
type setOp struct {
	path  string
	value string
}

// RewriteRaw applies the same substitution as Rewrite to an undecoded JSON
// payload. The input slice is not modified; a payload with no shadow
// references comes back as-is. Payloads whose root is a scalar are already
// final and are returned unchanged.
func (rw *Rewriter) RewriteRaw(raw []byte, st *notebook.State, method string) ([]byte, error) {
	if st == nil {
		return raw, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidPayload
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() && !root.IsArray() {
		return raw, nil
	}

	shadowURI := FilePathToURI(st.ShadowPath)
	target := rw.targetIdentity(st, method)
	synthesize := method == MethodDocumentSymbol

	var ops []setOp
	collectOps(root, "", shadowURI, target, synthesize, &ops)

	out := raw
	for _, op := range ops {
		var err error
		out, err = sjson.SetBytes(out, op.path, op.value)
		if err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", op.path, err)
		}
	}
	return out, nil
}

func collectOps(node gjson.Result, prefix, shadowURI, target string, synthesize bool, ops *[]setOp) {
	switch {
	case node.IsObject():
		hasRange := false
		hasURI := false

		node.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			switch k {
			case "range":
				hasRange = true
			case uriField:
				hasURI = true
			}

			path := joinPath(prefix, escapeKey(k))
			if (k == uriField || k == targetURIField) &&
				value.Type == gjson.String && value.String() == shadowURI {
				*ops = append(*ops, setOp{path: path, value: target})
				return true
			}

			if value.IsObject() || value.IsArray() {
				collectOps(value, path, shadowURI, target, synthesize, ops)
			}
			return true
		})

		if synthesize && hasRange && !hasURI {
			*ops = append(*ops, setOp{path: joinPath(prefix, uriField), value: target})
		}

	case node.IsArray():
		i := 0
		node.ForEach(func(_, value gjson.Result) bool {
			path := joinPath(prefix, strconv.Itoa(i))
			if value.IsObject() || value.IsArray() {
				collectOps(value, path, shadowURI, target, synthesize, ops)
			}
			i++
			return true
		})
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// escapeKey escapes characters that are path syntax in gjson/sjson.
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `.*?|#@\`) {
		return key
	}

	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
