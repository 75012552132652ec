package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// NewRouteReport assembles a report and derives its advisory. The ID is a
// deterministic hash of the request so repeated plans for the same shipment
// share an ID downstream.
func NewRouteReport(origin, destination string, pickup, delivery time.Time, route RouteData, weathers []WaypointWeather) RouteReport {
	return RouteReport{
		ID:           reportID(origin, destination, pickup, delivery),
		Origin:       origin,
		Destination:  destination,
		PickupDate:   pickup,
		DeliveryDate: delivery,
		Route:        route,
		Weather:      weathers,
		Advice:       GenerateAdvice(weathers, &pickup, &delivery),
		GeneratedAt:  Now(),
	}
}

func reportID(origin, destination string, pickup, delivery time.Time) string {
	input := fmt.Sprintf("%s|%s|%s|%s", origin, destination, pickup.Format(time.DateOnly), delivery.Format(time.DateOnly))
	hash := sha256.Sum256([]byte(input))
	return "route-" + hex.EncodeToString(hash[:8])
}
