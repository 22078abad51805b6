package directory

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// seedAccounts returns the sample dataset the console ships with until the
// accounts API exists.
func seedAccounts() []Account {
	base := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	seeds := []Account{
		{BusinessName: "Harbor Light Coffee", Email: "ops@harborlight.coffee", Phone: "415-555-0121", Address: "18 Pier Ave, San Francisco, CA", EIN: "82-1044873", FirstName: "Mara", LastName: "Quinn", Username: "mquinn"},
		{BusinessName: "Cedar & Sage Catering", Email: "hello@cedarsage.com", Phone: "503-555-0188", Address: "902 Alder St, Portland, OR", EIN: "47-2285910", FirstName: "Devon", LastName: "Park", Username: "dpark"},
		{BusinessName: "Bluewater Bike Repair", Email: "shop@bluewaterbikes.com", Phone: "206-555-0140", Address: "77 Canal Rd, Seattle, WA", EIN: "91-6630124", FirstName: "Iris", LastName: "Novak", Username: "inovak"},
		{BusinessName: "Golden Hour Studio", Email: "bookings@goldenhour.studio", Phone: "312-555-0177", Address: "441 Wabash Ave, Chicago, IL", EIN: "36-4417209", FirstName: "Theo", LastName: "Marsh", Username: "tmarsh"},
		{BusinessName: "Stonebridge Hardware", Email: "counter@stonebridgehw.com", Phone: "617-555-0102", Address: "250 Milk St, Boston, MA", EIN: "04-3391580", FirstName: "Ana", LastName: "Costa", Username: "acosta"},
		{BusinessName: "Juniper Bookbinding", Email: "orders@juniperbind.com", Phone: "512-555-0133", Address: "12 E 6th St, Austin, TX", EIN: "74-2810466", FirstName: "Sam", LastName: "Whitaker", Username: "swhitaker"},
		{BusinessName: "North Fork Creamery", Email: "dairy@northforkcreamery.com", Phone: "802-555-0165", Address: "3 Creamery Ln, Burlington, VT", EIN: "03-0577342", FirstName: "Lena", LastName: "Brandt", Username: "lbrandt"},
		{BusinessName: "Redline Auto Detail", Email: "service@redlinedetail.com", Phone: "702-555-0119", Address: "880 Sahara Ave, Las Vegas, NV", EIN: "88-1290457", FirstName: "Marcus", LastName: "Bell", Username: "mbell"},
		{BusinessName: "Willow Lane Florist", Email: "flowers@willowlane.com", Phone: "919-555-0150", Address: "64 Willow Ln, Raleigh, NC", EIN: "56-2204981", FirstName: "Priya", LastName: "Raman", Username: "praman"},
		{BusinessName: "Summit Trail Outfitters", Email: "gear@summittrail.com", Phone: "303-555-0196", Address: "1509 Blake St, Denver, CO", EIN: "84-0993125", FirstName: "Cole", LastName: "Harding", Username: "charding"},
		{BusinessName: "Driftwood Surf Shop", Email: "aloha@driftwoodsurf.com", Phone: "858-555-0108", Address: "700 Garnet Ave, San Diego, CA", EIN: "33-5518762", FirstName: "Keanu", LastName: "Akana", Username: "kakana"},
		{BusinessName: "Maple Street Diner", Email: "kitchen@maplestdiner.com", Phone: "614-555-0173", Address: "98 Maple St, Columbus, OH", EIN: "31-1728045", FirstName: "Ruth", LastName: "Calloway", Username: "rcalloway"},
	}

	for i := range seeds {
		seeds[i].ID = ulid.Make().String()
		seeds[i].CreatedAt = base.Add(time.Duration(i) * 24 * time.Hour)
	}
	return seeds
}
