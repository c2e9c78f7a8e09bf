package venue

import (
	"testing"

	venueModel "venue-booking/models/venue"

	"github.com/stretchr/testify/assert"
)

func TestVenueUpsertRequestValidate(t *testing.T) {
	valid := VenueUpsertRequest{
		Name:       "Main Auditorium",
		Capacity:   600,
		Location:   "Block A",
		CostAmount: 50000,
		Amenities:  []string{venueModel.AmenityProjector, venueModel.AmenityStage},
	}
	assert.NoError(t, valid.Validate())

	blank := valid
	blank.Name = "  "
	assert.Error(t, blank.Validate())

	noCap := valid
	noCap.Capacity = 0
	assert.Error(t, noCap.Validate())

	negCost := valid
	negCost.CostAmount = -10
	assert.Error(t, negCost.Validate())

	badAmenity := valid
	badAmenity.Amenities = []string{"helipad"}
	assert.Error(t, badAmenity.Validate())
}

func TestSearchRequestValidate(t *testing.T) {
	valid := SearchRequest{
		Date:             "2026-09-10",
		StartTime:        "09:00",
		EndTime:          "12:00",
		RequiredCapacity: 50,
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartTime = "13:00"
	inverted.EndTime = "12:00"
	assert.Error(t, inverted.Validate())

	badDate := valid
	badDate.Date = "next tuesday"
	assert.Error(t, badDate.Validate())

	noCapacity := valid
	noCapacity.RequiredCapacity = 0
	assert.Error(t, noCapacity.Validate())
}
