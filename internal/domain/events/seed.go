package events

import "time"

// seedCatalog builds the fixed event list the catalog starts with. Dates are
// relative to process start so the catalog always contains upcoming events.
func seedCatalog(now time.Time) []Event {
	return []Event{
		{
			ID:               1,
			Name:             "Tech Innovation Summit 2026",
			Date:             now.AddDate(0, 0, 15),
			Location:         "San Francisco",
			Description:      "Join industry leaders discussing the latest in AI, blockchain, and quantum computing. Network with innovators and discover breakthrough technologies that will shape the future.",
			Price:            299.00,
			Capacity:         500,
			RegisteredCount:  234,
			OrganizerName:    "TechEvents Inc.",
			OrganizerContact: "contact@techevents.com",
			Tags:             []string{"Technology", "AI", "Networking", "Innovation"},
		},
		{
			ID:               2,
			Name:             "Community Food Festival",
			Date:             now.AddDate(0, 0, 7),
			Location:         "New York",
			Description:      "Celebrate diverse cuisines from around the world. Local restaurants, food trucks, and cooking demonstrations all day long. Family-friendly event with live music.",
			Price:            0,
			Capacity:         1000,
			RegisteredCount:  567,
			OrganizerName:    "NYC Community Events",
			OrganizerContact: "info@nycevents.org",
			Tags:             []string{"Food", "Community", "Family", "Culture"},
		},
		{
			ID:               3,
			Name:             "Digital Marketing Masterclass",
			Date:             now.AddDate(0, 0, 22),
			Location:         "Los Angeles",
			Description:      "Learn advanced strategies for social media, SEO, and content marketing. Hands-on workshops with industry experts and practical exercises.",
			Price:            149.50,
			Capacity:         200,
			RegisteredCount:  89,
			OrganizerName:    "Marketing Pros Academy",
			OrganizerContact: "learn@marketingpros.com",
			Tags:             []string{"Marketing", "Digital", "SEO", "Social Media"},
		},
		{
			ID:               4,
			Name:             "Startup Pitch Competition",
			Date:             now.AddDate(0, 0, 30),
			Location:         "Chicago",
			Description:      "Watch promising startups pitch their ideas to investors. Network with entrepreneurs and venture capitalists. Cash prizes for top 3 pitches.",
			Price:            25.00,
			Capacity:         300,
			RegisteredCount:  156,
			OrganizerName:    "Startup Chicago",
			OrganizerContact: "events@startupchicago.com",
			Tags:             []string{"Startup", "Investment", "Entrepreneurship", "Competition"},
		},
		{
			ID:               5,
			Name:             "Art & Culture Expo",
			Date:             now.AddDate(0, 0, 12),
			Location:         "New York",
			Description:      "Explore contemporary art installations, meet local artists, and participate in interactive cultural workshops. Live performances throughout the day.",
			Price:            35.00,
			Capacity:         400,
			RegisteredCount:  278,
			OrganizerName:    "NYC Arts Council",
			OrganizerContact: "expo@nycartscouncil.org",
			Tags:             []string{"Art", "Culture", "Exhibition", "Workshops"},
		},
		{
			ID:               6,
			Name:             "Blockchain & Crypto Conference",
			Date:             now.AddDate(0, 0, 45),
			Location:         "Miami",
			Description:      "Deep dive into blockchain technology, cryptocurrency trends, and DeFi innovations. Featuring keynotes from industry pioneers and hands-on workshops.",
			Price:            399.00,
			Capacity:         800,
			RegisteredCount:  456,
			OrganizerName:    "CryptoWorld Events",
			OrganizerContact: "info@cryptoworldevents.com",
			Tags:             []string{"Blockchain", "Cryptocurrency", "DeFi", "Technology"},
		},
		{
			ID:               7,
			Name:             "Fitness & Wellness Bootcamp",
			Date:             now.AddDate(0, 0, 5),
			Location:         "Austin",
			Description:      "Transform your health with expert-led fitness sessions, nutrition workshops, and mental wellness seminars. All fitness levels welcome.",
			Price:            75.00,
			Capacity:         150,
			RegisteredCount:  89,
			OrganizerName:    "Austin Wellness Center",
			OrganizerContact: "events@austinwellness.com",
			Tags:             []string{"Fitness", "Wellness", "Health", "Bootcamp"},
		},
		{
			ID:               8,
			Name:             "Jazz Under the Stars",
			Date:             now.AddDate(0, 0, 18),
			Location:         "New Orleans",
			Description:      "An enchanting evening of live jazz music in an outdoor setting. Local and touring musicians performing classic and contemporary pieces.",
			Price:            45.00,
			Capacity:         250,
			RegisteredCount:  187,
			OrganizerName:    "New Orleans Music Society",
			OrganizerContact: "tickets@nolamusic.org",
			Tags:             []string{"Music", "Jazz", "Outdoor", "Concert"},
		},
		{
			ID:               9,
			Name:             "Sustainable Living Workshop",
			Date:             now.AddDate(0, 0, 25),
			Location:         "Portland",
			Description:      "Learn practical tips for eco-friendly living, sustainable fashion, zero-waste practices, and renewable energy solutions for your home.",
			Price:            0,
			Capacity:         100,
			RegisteredCount:  67,
			OrganizerName:    "Green Portland Initiative",
			OrganizerContact: "workshops@greenportland.org",
			Tags:             []string{"Sustainability", "Environment", "Workshop", "Green Living"},
		},
		{
			ID:               10,
			Name:             "Photography Masterclass: Urban Landscapes",
			Date:             now.AddDate(0, 0, 35),
			Location:         "Seattle",
			Description:      "Capture stunning urban photography with professional techniques. Morning theory session followed by guided photo walk through the city.",
			Price:            120.00,
			Capacity:         30,
			RegisteredCount:  23,
			OrganizerName:    "Seattle Photo Academy",
			OrganizerContact: "classes@seattlephoto.com",
			Tags:             []string{"Photography", "Urban", "Masterclass", "Art"},
		},
		{
			ID:               11,
			Name:             "Wine Tasting & Vineyard Tour",
			Date:             now.AddDate(0, 0, 40),
			Location:         "Napa Valley",
			Description:      "Discover exceptional wines from local vineyards. Guided tastings, winemaking insights, and gourmet food pairings in beautiful vineyard settings.",
			Price:            185.00,
			Capacity:         60,
			RegisteredCount:  42,
			OrganizerName:    "Napa Valley Tours",
			OrganizerContact: "bookings@napavalleytours.com",
			Tags:             []string{"Wine", "Tasting", "Food", "Tourism"},
		},
		{
			ID:               12,
			Name:             "Gaming & Esports Tournament",
			Date:             now.AddDate(0, 0, 28),
			Location:         "Las Vegas",
			Description:      "Competitive gaming tournament featuring multiple popular titles. Prize pools, streaming, and meet & greets with professional gamers.",
			Price:            50.00,
			Capacity:         500,
			RegisteredCount:  312,
			OrganizerName:    "Vegas Gaming Arena",
			OrganizerContact: "tournaments@vegasgaming.com",
			Tags:             []string{"Gaming", "Esports", "Competition", "Technology"},
		},
		{
			ID:               13,
			Name:             "Mindfulness & Meditation Retreat",
			Date:             now.AddDate(0, 0, 50),
			Location:         "Sedona",
			Description:      "Weekend retreat focused on mindfulness practices, guided meditation, and personal wellness. Set in the serene red rock landscape of Sedona.",
			Price:            350.00,
			Capacity:         40,
			RegisteredCount:  28,
			OrganizerName:    "Sedona Wellness Retreats",
			OrganizerContact: "info@sedonawellness.com",
			Tags:             []string{"Mindfulness", "Meditation", "Retreat", "Wellness"},
		},
		{
			ID:               14,
			Name:             "Science Fiction Convention",
			Date:             now.AddDate(0, 0, 60),
			Location:         "Denver",
			Description:      "Celebrate sci-fi culture with author panels, cosplay contests, technology demos, and screenings of classic and new science fiction films.",
			Price:            65.00,
			Capacity:         1200,
			RegisteredCount:  789,
			OrganizerName:    "Mile High Sci-Fi",
			OrganizerContact: "convention@milehighscifi.com",
			Tags:             []string{"Science Fiction", "Convention", "Cosplay", "Entertainment"},
		},
		{
			ID:               15,
			Name:             "Cooking Class: Italian Cuisine",
			Date:             now.AddDate(0, 0, 20),
			Location:         "Boston",
			Description:      "Learn authentic Italian cooking techniques from a professional chef. Hands-on preparation of pasta, sauces, and traditional desserts.",
			Price:            95.00,
			Capacity:         24,
			RegisteredCount:  18,
			OrganizerName:    "Boston Culinary Institute",
			OrganizerContact: "classes@bostonculi.edu",
			Tags:             []string{"Cooking", "Italian", "Cuisine", "Class"},
		},
	}
}
