package services

import "strings"

// Coordinates is an entry in the offline geocode table.
type Coordinates struct {
	Lat float64
	Lng float64
}

// depotCoordinates maps service-area town names to coordinates so stops can
// be pinned without a network geocoder. Stop names like "Covington A" resolve
// through their town prefix.
var depotCoordinates = map[string]Coordinates{
	"Covington":    {30.4755, -90.1009},
	"Mandeville":   {30.3582, -90.0656},
	"Madisonville": {30.4061, -90.1631},
	"Hammond":      {30.5044, -90.4612},
	"Baton Rouge":  {30.4515, -91.1871},
	"Slidell":      {30.2752, -89.7812},
	"Gulfport":     {30.3674, -89.0928},
	"Biloxi":       {30.3960, -88.8853},
}

// LookupCoordinates resolves a stop name against the offline table, first by
// exact match, then by town prefix.
func LookupCoordinates(name string) (Coordinates, bool) {
	if pos, ok := depotCoordinates[name]; ok {
		return pos, true
	}
	for town, pos := range depotCoordinates {
		if strings.HasPrefix(name, town+" ") {
			return pos, true
		}
	}
	return Coordinates{}, false
}
