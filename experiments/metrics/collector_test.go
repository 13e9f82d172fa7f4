package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(3)
		for i := 0; i < 3; i++ {
			c.AddEpisode()
			c.AddFullPlayout()
			c.AddFullPlayout()
		}
		c.SetTreeReused(true)

		got := c.Complete(7)

		require.Equal(t, 3, got.Iterations)
		require.Equal(t, 3, got.Episodes)
		require.Equal(t, 6, got.FullPlayouts)
		require.True(t, got.IsTreeReused)
		require.Equal(t, 7, got.TreeSize)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddEpisode()
		c.Start(1)

		require.Zero(t, c.Complete(1).Episodes)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(5)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete(3))
	})
}
