package blockcache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nativeblocks/innerblocks/blocktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBuilder struct {
	builder *blocktree.Builder
	calls   atomic.Int64
}

func newCountingBuilder(t testing.TB) *countingBuilder {
	t.Helper()
	b, err := blocktree.New(blocktree.Config{})
	require.NoError(t, err)
	return &countingBuilder{builder: b}
}

func (c *countingBuilder) Build(markup string, opts blocktree.Options) blocktree.Result {
	c.calls.Add(1)
	return c.builder.Build(markup, opts)
}

const demoMarkup = `<div class="wp-block-demo"><p>Hello</p><InnerBlocks/></div>`

func TestGetOrBuildHit(t *testing.T) {
	builder := newCountingBuilder(t)
	cache := New(builder, 0)
	opts := blocktree.Options{AllowedBlocks: []string{"core/paragraph"}, TemplateLock: blocktree.Bool(false)}

	first := cache.GetOrBuild(demoMarkup, opts)
	second := cache.GetOrBuild(demoMarkup, blocktree.Options{AllowedBlocks: []string{"core/paragraph"}, TemplateLock: blocktree.Bool(false)})

	require.NotNil(t, first.Root)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), builder.calls.Load())
	assert.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 1}, cache.Stats())
	assert.Equal(t, DefaultCapacity, cache.Capacity())
}

func TestGetOrBuildCachesMissingTree(t *testing.T) {
	builder := newCountingBuilder(t)
	cache := New(builder, 10)

	markup := `<div class="wp-block-demo"><p>no sentinel</p></div>`
	assert.Nil(t, cache.GetOrBuild(markup, blocktree.Options{}).Root)
	assert.Nil(t, cache.GetOrBuild(markup, blocktree.Options{}).Root)
	assert.Equal(t, int64(1), builder.calls.Load())
	assert.True(t, cache.Contains(markup, blocktree.Options{}))
}

func TestGetOrBuildDistinguishesOptions(t *testing.T) {
	builder := newCountingBuilder(t)
	cache := New(builder, 10)

	locked := cache.GetOrBuild(demoMarkup, blocktree.Options{TemplateLock: blocktree.Bool(true)})
	unlocked := cache.GetOrBuild(demoMarkup, blocktree.Options{TemplateLock: blocktree.Bool(false)})
	unset := cache.GetOrBuild(demoMarkup, blocktree.Options{})

	assert.Equal(t, int64(3), builder.calls.Load())
	assert.Equal(t, blocktree.Bool(true), locked.Root.Regions()[0].Region.TemplateLock)
	assert.Equal(t, blocktree.Bool(false), unlocked.Root.Regions()[0].Region.TemplateLock)
	assert.Nil(t, unset.Root.Regions()[0].Region.TemplateLock)
}

func TestGetOrBuildDefaultSelectorSharesKey(t *testing.T) {
	builder := newCountingBuilder(t)
	cache := New(builder, 10)

	cache.GetOrBuild(demoMarkup, blocktree.Options{})
	cache.GetOrBuild(demoMarkup, blocktree.Options{WrapperSelector: blocktree.DefaultWrapperSelector})
	assert.Equal(t, int64(1), builder.calls.Load())
}

func TestEvictsOldestInserted(t *testing.T) {
	builder := newCountingBuilder(t)
	capacity := 5
	cache := New(builder, capacity)

	markups := make([]string, capacity+1)
	for i := range markups {
		markups[i] = fmt.Sprintf(`<div class="wp-block-demo-%d"><InnerBlocks/></div>`, i)
	}

	for _, markup := range markups[:capacity] {
		cache.GetOrBuild(markup, blocktree.Options{})
	}
	// a hit on the oldest entry must not protect it: eviction is by insertion order
	cache.GetOrBuild(markups[0], blocktree.Options{})
	assert.Equal(t, capacity, cache.Len())

	cache.GetOrBuild(markups[capacity], blocktree.Options{})
	assert.Equal(t, capacity, cache.Len())
	assert.False(t, cache.Contains(markups[0], blocktree.Options{}))
	for _, markup := range markups[1:] {
		assert.True(t, cache.Contains(markup, blocktree.Options{}))
	}
	assert.Equal(t, uint64(1), cache.Stats().Evictions)
}

func TestEvictsAtDefaultCapacity(t *testing.T) {
	cache := New(newCountingBuilder(t), 0)

	for i := 0; i <= DefaultCapacity; i++ {
		cache.GetOrBuild(fmt.Sprintf(`<p class="wp-block-p%d">x</p>`, i), blocktree.Options{})
	}
	assert.Equal(t, DefaultCapacity, cache.Len())
	assert.False(t, cache.Contains(`<p class="wp-block-p0">x</p>`, blocktree.Options{}))
	assert.True(t, cache.Contains(fmt.Sprintf(`<p class="wp-block-p%d">x</p>`, DefaultCapacity), blocktree.Options{}))
}

// gatedBuilder blocks every build until release is closed.
type gatedBuilder struct {
	*countingBuilder
	release chan struct{}
}

func (g *gatedBuilder) Build(markup string, opts blocktree.Options) blocktree.Result {
	<-g.release
	return g.countingBuilder.Build(markup, opts)
}

func TestGetOrBuildConcurrent(t *testing.T) {
	builder := &gatedBuilder{countingBuilder: newCountingBuilder(t), release: make(chan struct{})}
	cache := New(builder, 10)

	const workers = 32
	var arrived atomic.Int64
	var wg sync.WaitGroup
	results := make([]blocktree.Result, workers)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			arrived.Add(1)
			results[i] = cache.GetOrBuild(demoMarkup, blocktree.Options{})
		}(i)
	}

	require.Eventually(t, func() bool { return arrived.Load() == workers }, 5*time.Second, time.Millisecond)
	close(builder.release)
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, results[0], result)
	}
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, int64(1), builder.calls.Load())
	assert.Equal(t, uint64(1), cache.Stats().Misses)
}
