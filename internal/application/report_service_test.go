package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

func TestReportFetch(t *testing.T) {
	gateway := &fakeReportGateway{
		reportFn: func(ctx context.Context, timeRange string) (reservation.Report, error) {
			assert.Equal(t, "30d", timeRange)
			return reservation.Report{TotalBookings: 12, TotalRevenue: 54000}, nil
		},
	}
	svc := NewReportService(gateway, zap.NewNop())

	report, err := svc.Fetch(context.Background(), "30d")
	require.NoError(t, err)
	assert.Equal(t, int64(12), report.TotalBookings)

	current, timeRange, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "30d", timeRange)
	assert.Equal(t, report, current)
}

func TestReportLatestWins(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	gateway := &fakeReportGateway{
		reportFn: func(ctx context.Context, timeRange string) (reservation.Report, error) {
			if timeRange == "90d" {
				close(slowStarted)
				select {
				case <-release:
				case <-ctx.Done():
					return reservation.Report{}, ctx.Err()
				}
				return reservation.Report{TotalBookings: 90}, nil
			}
			return reservation.Report{TotalBookings: 30}, nil
		},
	}
	svc := NewReportService(gateway, zap.NewNop())

	slowErr := make(chan error, 1)
	go func() {
		_, err := svc.Fetch(context.Background(), "90d")
		slowErr <- err
	}()

	<-slowStarted

	// The newer query takes over while the old one is still in flight.
	report, err := svc.Fetch(context.Background(), "30d")
	require.NoError(t, err)
	assert.Equal(t, int64(30), report.TotalBookings)

	close(release)
	err = <-slowErr
	require.Error(t, err)
	// The slow answer is dropped, never applied, and errors like a
	// cancellation rather than a failure.
	assert.True(t, errors.Is(err, ErrStaleQuery) || errors.Is(err, context.Canceled))

	current, timeRange, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "30d", timeRange)
	assert.Equal(t, int64(30), current.TotalBookings)
}

func TestReportFetchError(t *testing.T) {
	gateway := &fakeReportGateway{
		reportFn: func(ctx context.Context, timeRange string) (reservation.Report, error) {
			return reservation.Report{}, errors.New("upstream down")
		},
	}
	svc := NewReportService(gateway, zap.NewNop())

	_, err := svc.Fetch(context.Background(), "30d")
	require.Error(t, err)

	_, _, ok := svc.Current()
	assert.False(t, ok)
}

func TestReportClose(t *testing.T) {
	started := make(chan struct{})
	gateway := &fakeReportGateway{
		reportFn: func(ctx context.Context, timeRange string) (reservation.Report, error) {
			close(started)
			<-ctx.Done()
			return reservation.Report{}, ctx.Err()
		},
	}
	svc := NewReportService(gateway, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Fetch(context.Background(), "30d")
		done <- err
	}()

	<-started
	svc.Close()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not unblock after Close")
	}
}
