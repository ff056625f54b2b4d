package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tpapu/FlightTrackers/pkg/utils"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$289.99", utils.FormatPrice(289.99, "USD"))
	assert.Equal(t, "€150.00", utils.FormatPrice(150, "eur"))
	assert.Equal(t, "120.50 CHF", utils.FormatPrice(120.5, "CHF"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5h 20m", utils.FormatDuration(320))
	assert.Equal(t, "45m", utils.FormatDuration(45))
	assert.Equal(t, "2h", utils.FormatDuration(120))
	assert.Equal(t, "0m", utils.FormatDuration(0))
	assert.Equal(t, "0m", utils.FormatDuration(-10))
}

func TestFormatRoute(t *testing.T) {
	assert.Equal(t, "JFK → LAX", utils.FormatRoute("jfk", "lax"))
}

func TestFormatStops(t *testing.T) {
	assert.Equal(t, "non-stop", utils.FormatStops(0))
	assert.Equal(t, "1 stop", utils.FormatStops(1))
	assert.Equal(t, "2 stops", utils.FormatStops(2))
}
