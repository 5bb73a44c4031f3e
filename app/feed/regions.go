package feed

import "strings"

// Coarse keyword-to-coordinate mapping for New Zealand regions and towns.
// Precise geocoding is out of scope; the first matching keyword wins.

type regionCoord struct {
	name string
	lat  float64
	lng  float64
}

var regionCoords = []regionCoord{
	{"northland", -35.5, 173.8},
	{"auckland", -36.85, 174.76},
	{"waikato", -37.8, 175.3},
	{"bay of plenty", -37.8, 176.5},
	{"tauranga", -37.69, 176.17},
	{"mount maunganui", -37.64, 176.18},
	{"papamoa", -37.72, 176.28},
	{"pāpāmoa", -37.72, 176.28},
	{"welcome bay", -37.73, 176.12},
	{"tairua", -36.99, 175.85},
	{"rotorua", -38.14, 176.25},
	{"gisborne", -38.66, 178.02},
	{"east coast", -38.5, 177.8},
	{"hawkes bay", -39.5, 176.9},
	{"hawke's bay", -39.5, 176.9},
	{"napier", -39.49, 176.92},
	{"hastings", -39.64, 176.85},
	{"taranaki", -39.3, 174.0},
	{"new plymouth", -39.06, 174.08},
	{"manawatu", -40.3, 175.6},
	{"palmerston north", -40.35, 175.61},
	{"whanganui", -39.9, 175.0},
	{"wellington", -41.29, 174.78},
	{"lower hutt", -41.21, 174.91},
	{"upper hutt", -41.12, 175.07},
	{"wairarapa", -41.2, 175.5},
	{"masterton", -40.96, 175.66},
	{"nelson", -41.27, 173.28},
	{"marlborough", -41.5, 173.9},
	{"blenheim", -41.51, 173.95},
	{"west coast", -42.5, 171.2},
	{"greymouth", -42.45, 171.21},
	{"canterbury", -43.53, 172.64},
	{"christchurch", -43.53, 172.64},
	{"timaru", -44.40, 171.25},
	{"otago", -45.0, 169.5},
	{"dunedin", -45.87, 170.50},
	{"queenstown", -45.03, 168.66},
	{"southland", -46.1, 168.3},
	{"invercargill", -46.41, 168.35},
	{"fiordland", -45.4, 167.7},
	{"central plateau", -39.2, 175.5},
	{"coromandel", -36.8, 175.5},
	{"taupo", -38.7, 176.1},
	{"hamilton", -37.79, 175.28},
	{"whangarei", -35.73, 174.32},
}

// LocateRegion tags an item with the first region keyword found in its
// text. Items without a match are returned unchanged.
func LocateRegion(item Item) Item {
	text := item.SearchText()
	for _, region := range regionCoords {
		if !strings.Contains(text, region.name) {
			continue
		}
		lat, lng := region.lat, region.lng
		item.Region = region.name
		item.Lat = &lat
		item.Lng = &lng
		return item
	}
	return item
}
