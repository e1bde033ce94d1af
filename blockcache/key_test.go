package blockcache

import (
	"testing"

	"github.com/nativeblocks/innerblocks/blocktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStable(t *testing.T) {
	opts := func() blocktree.Options {
		return blocktree.Options{
			AllowedBlocks: []string{"core/paragraph"},
			Template: []blocktree.TemplateBlock{{
				Name:       "core/paragraph",
				Attributes: map[string]any{"placeholder": "Add", "align": "left", "level": 2},
			}},
		}
	}

	first, err := Key(demoMarkup, opts())
	require.NoError(t, err)
	second, err := Key(demoMarkup, opts())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestKeyDistinguishesInputs(t *testing.T) {
	base, err := Key(demoMarkup, blocktree.Options{})
	require.NoError(t, err)

	otherMarkup, err := Key(demoMarkup+" ", blocktree.Options{})
	require.NoError(t, err)
	emptyAllowed, err := Key(demoMarkup, blocktree.Options{AllowedBlocks: []string{}})
	require.NoError(t, err)
	locked, err := Key(demoMarkup, blocktree.Options{TemplateLock: blocktree.Bool(false)})
	require.NoError(t, err)

	assert.NotEqual(t, base, otherMarkup)
	assert.NotEqual(t, base, emptyAllowed)
	assert.NotEqual(t, base, locked)
}
