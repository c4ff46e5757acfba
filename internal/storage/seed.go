package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/instanthaul/haul-platform/internal/model"
)

// seed loads the fixed reference data the demo/test store starts with:
// the six service categories, the pricing sheet, two providers and one
// test user. Runs once from the constructor, before the store is shared.
func (s *MemoryStorage) seed() {
	now := time.Now().UTC()
	price := decimal.RequireFromString

	categories := []model.ServiceCategory{
		{
			Name:        "Furniture Removal",
			Description: "Couches, chairs, mattresses & more",
			BasePrice:   price("85.00"),
			Image:       "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=150",
			ServiceType: model.ServiceTypeStandard,
		},
		{
			Name:        "Appliance Removal",
			Description: "Washers, dryers, refrigerators & more",
			BasePrice:   price("75.00"),
			Image:       "https://images.unsplash.com/photo-1581578731548-c64695cc6952?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=150",
			ServiceType: model.ServiceTypeStandard,
		},
		{
			Name:        "Yard Waste Removal",
			Description: "Leaves, branches & yard debris",
			BasePrice:   price("50.00"),
			Image:       "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=150",
			ServiceType: model.ServiceTypeStandard,
			IsRecurring: true,
		},
		{
			Name:        "Electronics & Misc",
			Description: "TVs, computers & miscellaneous items",
			BasePrice:   price("30.00"),
			Image:       "https://images.unsplash.com/photo-1504307651254-35680f356dfd?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=150",
			ServiceType: model.ServiceTypeStandard,
		},
		{
			Name:        "Construction Debris",
			Description: "Renovation & construction waste",
			BasePrice:   price("150.00"),
			Image:       "https://images.unsplash.com/photo-1504307651254-35680f356dfd?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=150",
			ServiceType: model.ServiceTypeDemolition,
		},
		{
			Name:        "Donation/Transport",
			Description: "Item delivery & donation services",
			BasePrice:   price("75.00"),
			Image:       "https://images.unsplash.com/photo-1581578731548-c64695cc6952?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=150",
			ServiceType: model.ServiceTypeYouLoad,
		},
	}
	for _, c := range categories {
		c.ID = s.nextCategoryID
		s.nextCategoryID++
		s.categories[c.ID] = c
	}

	type sheetRow struct {
		categoryID  int64
		description string
		min, max    string
		addOn       bool
	}
	sheet := []sheetRow{
		// Furniture Removal
		{1, "Couch/Sofa (3-seater)", "85.00", "120.00", false},
		{1, "Recliner/Chair", "60.00", "90.00", false},
		{1, "Mattress & Box Spring", "90.00", "120.00", false},
		{1, "Bed Frame (disassembled)", "40.00", "60.00", false},
		// Appliance Removal
		{2, "Washer or Dryer", "75.00", "95.00", false},
		{2, "Refrigerator", "100.00", "140.00", false},
		{2, "Dishwasher/Microwave", "60.00", "80.00", false},
		{2, "Stove/Oven", "85.00", "110.00", false},
		{2, "Water Heater", "70.00", "90.00", false},
		// Yard Waste Removal
		{3, "Bagged Leaves (10 bags)", "50.00", "70.00", false},
		{3, "Small Tree Branch Load", "90.00", "120.00", false},
		{3, "Full Branch Load", "250.00", "300.00", false},
		{3, "Lawn Furniture (each)", "40.00", "60.00", false},
		// Electronics & Misc
		{4, "TV (under 40\")", "50.00", "70.00", false},
		{4, "Large TV", "80.00", "110.00", false},
		{4, "Computer or Monitor", "30.00", "50.00", false},
		{4, "Tires (each)", "15.00", "20.00", false},
		{4, "Bags of Junk (each)", "20.00", "30.00", true},
		{4, "Box of Clothes/Books", "15.00", "25.00", true},
		// Construction Debris
		{5, "Bathroom Remodel Load", "200.00", "300.00", false},
		{5, "Sheetrock/Wood Load", "150.00", "250.00", false},
		{5, "Tile/Concrete Load", "200.00", "350.00", false},
		{5, "Rolled Carpet (per room)", "75.00", "100.00", false},
		// Donation/Transport
		{6, "Single Item Delivery", "75.00", "100.00", false},
		{6, "2–3 Medium Items", "100.00", "150.00", false},
		{6, "Small Apartment Move", "200.00", "300.00", false},
		{6, "Full House Move", "400.00", "600.00", false},
		{6, "Donation Load (Full)", "250.00", "300.00", false},
		// Clothing specials
		{4, "1–5 Bags of Clothes", "50.00", "65.00", false},
		{4, "Add-On: Bags of Clothes", "20.00", "30.00", true},
	}
	for _, row := range sheet {
		item := model.PricingItem{
			ID:                 s.nextPricingItemID,
			CategoryID:         row.categoryID,
			ServiceDescription: row.description,
			MinPrice:           price(row.min),
			MaxPrice:           price(row.max),
			IsAddOn:            row.addOn,
		}
		s.nextPricingItemID++
		s.pricingItems[item.ID] = item
	}

	mikeImage := "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=100"
	sarahImage := "https://images.unsplash.com/photo-1494790108755-2616b612b786?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=100"
	providers := []model.ServiceProvider{
		{
			Name:         "Mike Johnson",
			Email:        "mike@instanthaul.com",
			Phone:        "(555) 123-4567",
			Vehicle:      "2019 Ford F-150",
			License:      "ABC123",
			Rating:       price("4.9"),
			TotalJobs:    324,
			IsAvailable:  true,
			ProfileImage: &mikeImage,
			CreatedAt:    now,
		},
		{
			Name:         "Sarah Chen",
			Email:        "sarah@instanthaul.com",
			Phone:        "(555) 234-5678",
			Vehicle:      "2020 Chevrolet Silverado",
			License:      "XYZ789",
			Rating:       price("4.8"),
			TotalJobs:    256,
			IsAvailable:  true,
			ProfileImage: &sarahImage,
			CreatedAt:    now,
		},
	}
	for _, p := range providers {
		p.ID = s.nextProviderID
		s.nextProviderID++
		s.providers[p.ID] = p
	}

	phone := "(555) 987-6543"
	testUser := model.User{
		ID:        s.nextUserID,
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "password",
		Address:   "123 Main St, San Francisco, CA",
		Phone:     &phone,
		CreatedAt: now,
	}
	s.nextUserID++
	s.users[testUser.ID] = testUser
}
