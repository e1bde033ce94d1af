package blocktree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	b := newTestBuilder(t, Config{})

	result := b.Build(`<div class="wp-block-demo"><p>Hello</p><InnerBlocks/></div>`, Options{})
	require.NotNil(t, result.Root)

	out, err := Render(result.Root)
	require.NoError(t, err)
	assert.Equal(t, `<div class="wp-block-demo"><p>Hello</p><div class="block-editor-inner-blocks"></div></div>`, out)
}

func TestRenderAttributes(t *testing.T) {
	root := &Node{
		Kind: KindElement,
		Tag:  "section",
		Props: map[string]any{
			PropClassName: "card",
			PropStyle:     map[string]string{"backgroundColor": "#fff", "margin": "0"},
			"id":          "x",
		},
		Children: []*Node{
			{Kind: KindElement, Tag: "img", Props: map[string]any{"alt": "a<b"}},
			{Kind: KindText, Text: "fish & chips"},
		},
	}

	out, err := Render(root)
	require.NoError(t, err)
	assert.Equal(t, `<section class="card" id="x" style="background-color:#fff;margin:0"><img alt="a&lt;b"/>fish &amp; chips</section>`, out)
}

func TestRenderNil(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
