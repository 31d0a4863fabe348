// Package trip holds the fixed trip plan and the pure domain calculations
// shared by the web handlers: expense summaries, settlement, birthday
// ordering, trip progress and conversation filtering.
package trip

import (
	"github.com/google/uuid"

	store "tripmate/store/store"
)

// Itinerary is the fixed day-by-day plan. It is build-time data, never
// persisted or edited.
var Itinerary = []store.ItineraryDay{
	{
		Day:      0,
		Date:     "2025-11-12",
		Title:    "Train Journey to Delhi",
		MealPlan: "On your own",
		Details:  "Board the RAJDHANI EXP (22691) from Secunderabad Jn at 07:15. It's a 22h 15m journey to Hazrat Nizamuddin Delhi.",
		Image:    "https://picsum.photos/seed/train/800/400",
		City:     "Delhi",
	},
	{
		Day:      1,
		Date:     "2025-11-13",
		Title:    "Delhi to Shimla By Cab",
		MealPlan: "No",
		Details:  "Morning: Pick-up from Delhi (Railway Station/Airport/Hotel). Drive towards Shimla via Karnal, Ambala, Solan. En route: Halt for lunch and scenic photos. Evening: Arrive in Shimla, check-in to hotel. Leisure: Explore Mall Road, Christ Church, and The Ridge (if time permits). Overnight stay: Shimla",
		Image:    "https://picsum.photos/seed/shimla-road/800/400",
		City:     "Shimla",
	},
	{
		Day:      2,
		Date:     "2025-11-14",
		Title:    "Shimla Local Sightseeing + Kufri Excursion",
		MealPlan: "Breakfast & Dinner",
		Details:  "After breakfast: Visit Kufri Fun World (famous for adventure activities and yak rides), Green Valley View Point, Indira Tourist Park, Himalayan Nature Park. Afternoon: Return to Shimla for local sightseeing - Jakhoo Temple, Scandal Point, Lakkar Bazaar, Tara Devi Temple. Overnight stay: Shimla",
		Image:    "https://picsum.photos/seed/kufri/800/400",
		City:     "Shimla",
	},
	{
		Day:      3,
		Date:     "2025-11-15",
		Title:    "Shimla to Manali (Approx. 8-9 hrs drive)",
		MealPlan: "Breakfast & Dinner",
		Details:  "Morning: Check-out after breakfast and drive to Manali via scenic Kullu Valley. En route sightseeing: Pandoh Dam, Sundar Nagar Lake, Hanogi Mata Temple, Kullu Shawl Factory. Evening: Arrive in Manali and check-in to hotel. Overnight stay: Manali",
		Image:    "https://picsum.photos/seed/kullu-valley/800/400",
		City:     "Manali",
	},
	{
		Day:      4,
		Date:     "2025-11-16",
		Title:    "Manali Local City Tour (Full Day Sightseeing)",
		MealPlan: "Breakfast, Lunch & Dinner",
		Details:  "After breakfast: Explore the beauty of Manali: Hadimba Devi Temple, Vashisht Hot Springs, Manu Temple, Club House, Van Vihar, Tibetan Monastery. Evening: Enjoy shopping and café hopping on Mall Road. Overnight stay: Manali",
		Image:    "https://picsum.photos/seed/manali-temple/800/400",
		City:     "Manali",
	},
	{
		Day:      5,
		Date:     "2025-11-17",
		Title:    "Manali Atal Tunnel Sissu Village Solang Valley Excursion",
		MealPlan: "Breakfast, Lunch & Dinner",
		Details:  "After breakfast: Start for a full-day excursion covering: Atal Tunnel - Asia's longest highway tunnel (9.02 km). Sissu Village (Lahaul Valley) - admire waterfalls, glaciers, and snow-clad peaks. Solang Valley - famous for adventure activities like paragliding, zorbing, ropeway ride, skiing (seasonal). Evening: Return to Manali and relax at leisure. Overnight stay: Manali",
		Image:    "https://picsum.photos/seed/solang-valley/800/400",
		City:     "Manali",
	},
	{
		Day:      6,
		Date:     "2025-11-18",
		Title:    "Manali Manikaran Kasol Manali",
		MealPlan: "Breakfast & Dinner",
		Details:  "Morning: Drive to Manikaran Sahib - famous for its hot springs and Gurudwara. Proceed to Kasol (Mini Israel of India) – enjoy riverside cafés, local markets, and peaceful walks by the Parvati River. Evening: Return to Manali. Overnight stay: Manali",
		Image:    "https://picsum.photos/seed/kasol/800/400",
		City:     "Manali",
	},
	{
		Day:      7,
		Date:     "2025-11-19",
		Title:    "Manali Delhi Drop (Approx. 12-13 hrs drive)",
		MealPlan: "Breakfast Only",
		Details:  "Morning: Check-out after breakfast. Drive back to Delhi with scenic mountain views. Evening/Night: Drop at Delhi (Hotel/Railway Station/Airport).",
		Image:    "https://picsum.photos/seed/delhi-drop/800/400",
		City:     "Delhi",
	},
}

// MotivationalQuotes feed the morning notification.
var MotivationalQuotes = []string{
	"Jobs fill your pockets, but adventures fill your soul.",
	"Travel is the only thing you buy that makes you richer.",
	"The world is a book and those who do not travel read only one page.",
	"Adventure is worthwhile.",
	"Travel far enough, you meet yourself.",
}

func coord(v float64) *float64 { return &v }

// DefaultSeed returns the roster and starter places applied once to an
// empty store.
func DefaultSeed() store.Seed {
	return store.Seed{
		Users: []store.User{
			{ID: 1, Name: "You", Avatar: "https://i.pravatar.cc/150?u=1", Birthday: "03-15"},
			{ID: 2, Name: "Aarav", Avatar: "https://i.pravatar.cc/150?u=2", Birthday: "05-20"},
			{ID: 3, Name: "Vivaan", Avatar: "https://i.pravatar.cc/150?u=3", Birthday: "07-11"},
			{ID: 4, Name: "Aditya", Avatar: "https://i.pravatar.cc/150?u=4", Birthday: "09-01"},
			{ID: 5, Name: "Vihaan", Avatar: "https://i.pravatar.cc/150?u=5", Birthday: "11-23"},
			{ID: 6, Name: "Arjun", Avatar: "https://i.pravatar.cc/150?u=6", Birthday: "01-30"},
			{ID: 7, Name: "Sai", Avatar: "https://i.pravatar.cc/150?u=7", Birthday: "04-18"},
			{ID: 8, Name: "Reyansh", Avatar: "https://i.pravatar.cc/150?u=8", Birthday: "06-25"},
			{ID: 9, Name: "Krishna", Avatar: "https://i.pravatar.cc/150?u=9", Birthday: "08-14"},
			{ID: 10, Name: "Ishaan", Avatar: "https://i.pravatar.cc/150?u=10", Birthday: "10-05"},
			{ID: 11, Name: "Anika", Avatar: "https://i.pravatar.cc/150?u=11", Birthday: "12-12"},
			{ID: 12, Name: "Diya", Avatar: "https://i.pravatar.cc/150?u=12", Birthday: "02-28"},
		},
		Places: []store.Place{
			{ID: uuid.New(), Name: "Johnson's Cafe", Category: store.PlaceCafe, Visited: false, Lat: coord(32.2427), Lng: coord(77.1890)},
			{ID: uuid.New(), Name: "Cafe 1947", Category: store.PlaceCafe, Visited: false, Lat: coord(32.2618), Lng: coord(77.1877)},
			{ID: uuid.New(), Name: "Hadimba Temple", Category: store.PlaceGeneric, Visited: true, Lat: coord(32.2445), Lng: coord(77.1816)},
			{ID: uuid.New(), Name: "Solang Valley", Category: store.PlaceGeneric, Visited: false, Lat: coord(32.3167), Lng: coord(77.1667)},
		},
	}
}
