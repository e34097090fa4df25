package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMonthCache(t *testing.T) {
	ctx := context.Background()
	anchor := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	events := []models.Event{{ID: 1, Name: "Mike Smith"}}

	t.Run("ZeroTTLDelegates", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).Return(events, nil)

		c := newMonthCache(st, 0)
		for i := 0; i < 2; i++ {
			got, err := c.Get(ctx, 1, anchor)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		}
		st.AssertNumberOfCalls(t, "GetEventsInMonth", 2)
	})

	t.Run("ServesFromCacheWithinTTL", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).Return(events, nil)

		c := newMonthCache(st, time.Minute)
		for i := 0; i < 3; i++ {
			got, err := c.Get(ctx, 1, anchor)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		}
		st.AssertNumberOfCalls(t, "GetEventsInMonth", 1)
	})

	t.Run("RebuildsAfterExpiry", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).Return(events, nil)

		c := newMonthCache(st, time.Minute)
		now := time.Date(2026, 4, 12, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		_, err := c.Get(ctx, 1, anchor)
		require.NoError(t, err)

		now = now.Add(61 * time.Second)
		_, err = c.Get(ctx, 1, anchor)
		require.NoError(t, err)

		st.AssertNumberOfCalls(t, "GetEventsInMonth", 2)
	})

	t.Run("InvalidateIsPerVenue", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetEventsInMonth", mock.Anything, mock.Anything, mock.Anything).Return(events, nil)

		c := newMonthCache(st, time.Minute)
		_, err := c.Get(ctx, 1, anchor)
		require.NoError(t, err)
		_, err = c.Get(ctx, 2, anchor)
		require.NoError(t, err)

		c.Invalidate(1)

		_, err = c.Get(ctx, 1, anchor) // rebuilt
		require.NoError(t, err)
		_, err = c.Get(ctx, 2, anchor) // still cached
		require.NoError(t, err)

		st.AssertNumberOfCalls(t, "GetEventsInMonth", 3)
	})

	t.Run("ErrorsAreNotCached", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).Return(nil, errors.New("db down")).Once()
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).Return(events, nil).Once()

		c := newMonthCache(st, time.Minute)

		_, err := c.Get(ctx, 1, anchor)
		assert.Error(t, err)

		got, err := c.Get(ctx, 1, anchor)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
