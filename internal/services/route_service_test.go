package services_test

import (
	"context"
	"errors"
	"testing"

	"tripweaver/internal/services"
)

type fakeORS struct {
	distanceKm  float64
	durationMin int
	err         error
	calls       int
}

func (f *fakeORS) Directions(ctx context.Context, originLat, originLng, destLat, destLng float64, profile string) (float64, int, error) {
	f.calls++
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.distanceKm, f.durationMin, nil
}

func TestGetRouteFallbackSpeeds(t *testing.T) {
	ors := &fakeORS{err: errors.New("no api key")}
	svc := services.NewRouteService(ors)

	// Bagdogra airport to Gangtok, roughly 68km straight line.
	driving := svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-car")
	if driving.Available {
		t.Error("fallback routes must be flagged unavailable")
	}
	if driving.DistanceKm <= 0 {
		t.Fatal("fallback should still estimate a distance")
	}

	walking := svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "foot-walking")
	if walking.DurationMinutes <= driving.DurationMinutes {
		t.Error("walking must take longer than driving over the same leg")
	}

	bus := svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-hgv")
	if bus.DurationMinutes <= driving.DurationMinutes {
		t.Error("the hgv profile assumes a slower speed than a car")
	}
}

func TestGetRouteCachesSuccesses(t *testing.T) {
	ors := &fakeORS{distanceKm: 72.4, durationMin: 150}
	svc := services.NewRouteService(ors)

	first := svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-car")
	second := svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-car")

	if ors.calls != 1 {
		t.Errorf("second lookup should come from cache, got %d calls", ors.calls)
	}
	if first != second {
		t.Errorf("cached route differs: %+v vs %+v", first, second)
	}
	if !first.Available {
		t.Error("routed result should be available")
	}
}

func TestGetRouteCacheKeyedByProfile(t *testing.T) {
	ors := &fakeORS{distanceKm: 72.4, durationMin: 150}
	svc := services.NewRouteService(ors)

	svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-car")
	svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-hgv")

	if ors.calls != 2 {
		t.Errorf("different profiles must not share cache entries, got %d calls", ors.calls)
	}
}

func TestGetRouteDoesNotCacheFallbacks(t *testing.T) {
	ors := &fakeORS{err: errors.New("down")}
	svc := services.NewRouteService(ors)

	svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-car")
	svc.GetRoute(context.Background(), 26.681, 88.328, 27.338, 88.606, "driving-car")

	if ors.calls != 2 {
		t.Errorf("fallback results must not be cached, got %d calls", ors.calls)
	}
}

func TestGroundTransportOptions(t *testing.T) {
	ors := &fakeORS{distanceKm: 72.4, durationMin: 150}
	svc := services.NewRouteService(ors)

	gt := svc.GroundTransportOptions(context.Background(), 26.681, 88.328, 27.338, 88.606)

	if gt.Taxi.Mode != "taxi" || gt.Bus.Mode != "bus" || gt.SharedTaxi.Mode != "shared_taxi" {
		t.Errorf("modes mislabeled: %+v", gt)
	}

	// The fake returns identical routes for both profiles, so the bus gets
	// the slower-than-car correction.
	want := int(float64(gt.Taxi.DurationMinutes) * 1.3)
	if gt.Bus.DurationMinutes != want {
		t.Errorf("bus duration: got %d, want %d", gt.Bus.DurationMinutes, want)
	}

	wantShared := int(float64(gt.Taxi.DurationMinutes) * 1.15)
	if gt.SharedTaxi.DurationMinutes != wantShared {
		t.Errorf("shared taxi duration: got %d, want %d", gt.SharedTaxi.DurationMinutes, wantShared)
	}

	if gt.Taxi.DistanceKm != gt.SharedTaxi.DistanceKm {
		t.Error("shared taxi rides the same route as the taxi")
	}
}
