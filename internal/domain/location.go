package domain

// Location represents a geographic planning area and its base daily
// rate per shelf. Immutable reference data; looked up by area code when
// installation requests are created and when bookings are priced.
type Location struct {
	Area        string
	Name        string
	PricePerDay float64
}

// locationDefs is the fixed table of planning areas and their rates.
var locationDefs = []Location{
	{"AMK", "Ang Mo Kio", 6.99},
	{"BDK", "Bedok", 6.99},
	{"BSH", "Bishan", 6.99},
	{"BLY", "Boon Lay", 6.99},
	{"BBK", "Bukit Batok", 6.99},
	{"BMR", "Bukit Merah", 6.99},
	{"BPN", "Bukit Panjang", 6.99},
	{"BTM", "Bukit Timah", 6.99},
	{"CWC", "Central Water Catchment", 6.99},
	{"CGI", "Changi", 6.99},
	{"CGB", "Changi Bay", 6.99},
	{"CLE", "Clementi", 6.99},
	{"DTC", "Downtown Core", 6.99},
	{"GEY", "Geylang", 6.99},
	{"HOU", "Hougang", 6.99},
	{"JES", "Jurong East", 6.99},
	{"JWS", "Jurong West", 6.99},
	{"KLL", "Kallang", 6.99},
	{"LCK", "Lim Chu Kang", 6.99},
	{"MAN", "Mandai", 6.99},
	{"MAE", "Marina East", 6.99},
	{"MAS", "Marina South", 6.99},
	{"MPA", "Marine Parade", 6.99},
	{"MUS", "Museum", 6.99},
	{"NEW", "Newton", 6.99},
	{"NEI", "North-Eastern Islands", 6.99},
	{"NOV", "Novena", 6.99},
	{"ORC", "Orchard", 6.99},
	{"OUT", "Outram", 6.99},
	{"PBL", "Paya Lebar", 6.99},
	{"PIO", "Pioneer", 6.99},
	{"PGL", "Punggol", 6.99},
	{"PRS", "Pasir Ris", 6.99},
	{"QTN", "Queenstown", 6.99},
	{"RVL", "River Valley", 6.99},
	{"RCH", "Rochor", 6.99},
	{"SEL", "Seletar", 6.99},
	{"SBW", "Sembawang", 6.99},
	{"SKG", "Sengkang", 6.99},
	{"SRG", "Serangoon", 6.99},
	{"SMP", "Simpang", 6.99},
	{"SGR", "Singapore River", 6.99},
	{"SIS", "Southern Islands", 6.99},
	{"SKT", "Sungei Kadut", 6.99},
	{"STV", "Straits View", 6.99},
	{"TMP", "Tampines", 6.99},
	{"TGL", "Tanglin", 6.99},
	{"TGH", "Tengah", 6.99},
	{"TPY", "Toa Payoh", 6.99},
	{"TUA", "Tuas", 6.99},
	{"WIS", "Western Islands", 6.99},
	{"WWC", "Western Water Catchment", 6.99},
	{"WDL", "Woodlands", 6.99},
	{"YSH", "Yishun", 6.99},
}

// locationsByArea indexes locationDefs by area code.
var locationsByArea = func() map[string]Location {
	m := make(map[string]Location, len(locationDefs))
	for _, loc := range locationDefs {
		m[loc.Area] = loc
	}
	return m
}()

// LocationByArea returns the location for an area code.
func LocationByArea(area string) (Location, bool) {
	loc, ok := locationsByArea[area]
	return loc, ok
}

// Locations returns a copy of the full location table.
func Locations() []Location {
	out := make([]Location, len(locationDefs))
	copy(out, locationDefs)
	return out
}
