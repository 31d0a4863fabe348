package gateway

import "fmt"

func placeInfoPrompt(placeName string) string {
	return fmt.Sprintf(`Provide a short, exciting, one-paragraph description for %q in Manali, suitable for a group of young friends on a trip. Mention what makes it special.`, placeName)
}

func extractLocationsPrompt(narrative string) string {
	return fmt.Sprintf(`Extract the names of all specific places, landmarks, cafes and locations mentioned in this itinerary text. Return them in the order they appear.

Itinerary: %s`, narrative)
}

const travelTipsPrompt = `Give a short, practical list of travel tips for a group of young friends visiting Manali in mid-November. Cover weather, clothing, altitude and local etiquette in one compact paragraph.`

const captionPrompt = `Write one short, fun caption for this trip photo. Reply with the caption only, no quotes.`

const captionChoicesPrompt = `Write three short, fun caption options for this trip photo. Reply with a JSON array of three strings, nothing else.`

// stringArraySchema constrains model output to a plain string array so
// the caller can parse without free-text cleanup.
const stringArraySchema = `{"type":"ARRAY","items":{"type":"STRING"}}`
