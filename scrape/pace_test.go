package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/mfilipek/bookscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first wait is immediate", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(time.Hour)

		start := time.Now()
		err := p.Wait(context.Background())

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second wait enforces the delay", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(50 * time.Millisecond)
		require.NoError(t, p.Wait(context.Background()))

		start := time.Now()
		require.NoError(t, p.Wait(context.Background()))

		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("zero delay disables pacing", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(0)

		start := time.Now()
		for i := 0; i < 5; i++ {
			require.NoError(t, p.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("canceled context interrupts the wait", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(time.Hour)
		require.NoError(t, p.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := p.Wait(ctx)
		assert.Error(t, err)
	})
}
