package seeders

import (
	"log"

	"gorm.io/gorm"

	userModel "venue-booking/models/user"
	venueModel "venue-booking/models/venue"
)

// SeedVenues inserts the initial venue catalogue if it is missing.
func SeedVenues(db *gorm.DB) {
	log.Printf("🔍 Checking venue catalogue data integrity...")

	venues := []venueModel.Venue{
		{Name: "Main Auditorium", Description: "Tiered auditorium with full stage and sound", Capacity: 600, Location: "Administration Block, Ground Floor", CostAmount: 250000, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityStage, venueModel.AmenitySoundSystem, venueModel.AmenityProjector, venueModel.AmenityAirConditioning, venueModel.AmenityParking}, CreatedBy: "seeder"},
		{Name: "Senate Conference Hall", Description: "Formal conference hall for meetings and defenses", Capacity: 80, Location: "Senate Building, 2nd Floor", CostAmount: 60000, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityProjector, venueModel.AmenityAirConditioning, venueModel.AmenityWifi, venueModel.AmenityWhiteboard}, CreatedBy: "seeder"},
		{Name: "Lecture Theatre 1", Description: "General purpose lecture theatre", Capacity: 200, Location: "Science Complex", CostAmount: 0, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityProjector, venueModel.AmenityWhiteboard, venueModel.AmenityWifi}, CreatedBy: "seeder"},
		{Name: "Lecture Theatre 2", Description: "General purpose lecture theatre", Capacity: 150, Location: "Science Complex", CostAmount: 0, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityProjector, venueModel.AmenityWhiteboard}, CreatedBy: "seeder"},
		{Name: "Open Grounds", Description: "Outdoor grounds for large gatherings", Capacity: 2000, Location: "Sports Complex", CostAmount: 400000, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityParking, venueModel.AmenityStage}, CreatedBy: "seeder"},
		{Name: "Seminar Room A", Description: "Small seminar room", Capacity: 40, Location: "Library Annex, 1st Floor", CostAmount: 20000, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityWhiteboard, venueModel.AmenityWifi, venueModel.AmenityAirConditioning}, CreatedBy: "seeder"},
		{Name: "Seminar Room B", Description: "Small seminar room", Capacity: 40, Location: "Library Annex, 1st Floor", CostAmount: 20000, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityWhiteboard, venueModel.AmenityWifi}, CreatedBy: "seeder"},
		{Name: "Banquet Hall", Description: "Catering-ready hall for dinners and ceremonies", Capacity: 300, Location: "Staff Club", CostAmount: 180000, IsActive: true, Amenities: userModel.StringSlice{venueModel.AmenityCatering, venueModel.AmenitySoundSystem, venueModel.AmenityAirConditioning, venueModel.AmenityParking}, CreatedBy: "seeder"},
	}

	for _, v := range venues {
		var existing venueModel.Venue
		if err := db.Where("name = ?", v.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&v).Error; err != nil {
			log.Printf("❌ Failed to seed venue %s: %v", v.Name, err)
		} else {
			log.Printf("✅ Seeded venue: %s", v.Name)
		}
	}
}
