package calendar

import (
	"context"
	"testing"
	"time"

	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServiceVenues(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListVenues", mock.Anything).Return([]models.Venue{{ID: 1, Name: "Thalia Hall"}}, nil)

	svc := NewService(st, testConfig(), 0, nil)
	venues, err := svc.Venues(context.Background())

	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Thalia Hall", venues[0].Name)
}

func TestServiceMonthView(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	t.Run("AnchorsMonthInVenueZone", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetVenue", mock.Anything, uint(1)).Return(&testVenue, nil)
		st.On("GetEventsInMonth", mock.Anything, uint(1), instant(time.Date(2026, 4, 1, 0, 0, 0, 0, chicago))).
			Return([]models.Event{{ID: 5}}, nil)

		svc := NewService(st, testConfig(), 0, nil)
		events, err := svc.MonthView(context.Background(), 1, "2026-04")

		require.NoError(t, err)
		require.Len(t, events, 1)
		st.AssertExpectations(t)
	})

	t.Run("CachesWithinTTL", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetVenue", mock.Anything, uint(1)).Return(&testVenue, nil)
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).
			Return([]models.Event{{ID: 5}}, nil).Once()

		svc := NewService(st, testConfig(), time.Minute, nil)
		_, err := svc.MonthView(context.Background(), 1, "2026-04")
		require.NoError(t, err)
		_, err = svc.MonthView(context.Background(), 1, "2026-04")
		require.NoError(t, err)

		st.AssertNumberOfCalls(t, "GetEventsInMonth", 1)
	})

	t.Run("InvalidateForcesRebuild", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetVenue", mock.Anything, uint(1)).Return(&testVenue, nil)
		st.On("GetEventsInMonth", mock.Anything, uint(1), mock.Anything).
			Return([]models.Event{{ID: 5}}, nil)

		svc := NewService(st, testConfig(), time.Minute, nil)
		_, err := svc.MonthView(context.Background(), 1, "2026-04")
		require.NoError(t, err)

		svc.InvalidateVenue(1)
		_, err = svc.MonthView(context.Background(), 1, "2026-04")
		require.NoError(t, err)

		st.AssertNumberOfCalls(t, "GetEventsInMonth", 2)
	})

	t.Run("UnknownVenue", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetVenue", mock.Anything, uint(99)).Return(nil, nil)

		svc := NewService(st, testConfig(), 0, nil)
		_, err := svc.MonthView(context.Background(), 99, "2026-04")

		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("BadMonthParameter", func(t *testing.T) {
		st := new(mocks.Store)

		svc := NewService(st, testConfig(), 0, nil)
		for _, raw := range []string{"April 2026", "2026-4", "2026-13", ""} {
			_, err := svc.MonthView(context.Background(), 1, raw)
			assert.ErrorIs(t, err, ErrBadMonth, raw)
		}
		st.AssertNotCalled(t, "GetVenue", mock.Anything, mock.Anything)
	})
}
