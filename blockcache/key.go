package blockcache

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/nativeblocks/innerblocks/blocktree"
	"github.com/zeebo/blake3"
)

// encMode uses Core Deterministic Encoding (sorted map keys, shortest
// integer forms), so equal options always serialize to identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("blockcache: CBOR encoder initialization failed: " + err.Error())
	}
}

// Key derives the cache key for markup rendered with opts: the hex BLAKE3
// digest of the markup, a zero separator, and the canonical CBOR encoding of
// opts with defaults applied.
func Key(markup string, opts blocktree.Options) (string, error) {
	encoded, err := encMode.Marshal(opts.WithDefaults())
	if err != nil {
		return "", fmt.Errorf("failed to encode render options: %w", err)
	}

	hasher := blake3.New()
	_, _ = io.WriteString(hasher, markup)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.Write(encoded)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
