package domain

import "strings"

// City is an allowed target city for fake-user generation.
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

// CountryCities groups the allowed cities per country for dropdowns.
type CountryCities struct {
	Country string `json:"country"`
	Cities  []City `json:"cities"`
}

// AllowedCities is the fixed set of launch markets.
var AllowedCities = []CountryCities{
	{Country: "Italy", Cities: []City{
		{Name: "Milan", Latitude: 45.4642, Longitude: 9.1900},
		{Name: "Rome", Latitude: 41.9028, Longitude: 12.4964},
		{Name: "Bologna", Latitude: 44.4949, Longitude: 11.3426},
		{Name: "Florence", Latitude: 43.7696, Longitude: 11.2558},
		{Name: "Turin", Latitude: 45.0703, Longitude: 7.6869},
	}},
	{Country: "Spain", Cities: []City{
		{Name: "Barcelona", Latitude: 41.3851, Longitude: 2.1734},
		{Name: "Madrid", Latitude: 40.4168, Longitude: -3.7038},
		{Name: "Valencia", Latitude: 39.4699, Longitude: -0.3763},
		{Name: "Granada", Latitude: 37.1773, Longitude: -3.5986},
		{Name: "Malaga", Latitude: 36.7213, Longitude: -4.4213},
	}},
	{Country: "France", Cities: []City{
		{Name: "Paris", Latitude: 48.8566, Longitude: 2.3522},
		{Name: "Lyon", Latitude: 45.7640, Longitude: 4.8357},
		{Name: "Marseille", Latitude: 43.2965, Longitude: 5.3698},
		{Name: "Montpellier", Latitude: 43.6108, Longitude: 3.8767},
		{Name: "Nice", Latitude: 43.7102, Longitude: 7.2620},
	}},
	{Country: "Germany", Cities: []City{
		{Name: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
		{Name: "Munich", Latitude: 48.1351, Longitude: 11.5820},
		{Name: "Hamburg", Latitude: 53.5511, Longitude: 9.9937},
		{Name: "Cologne", Latitude: 50.9375, Longitude: 6.9603},
		{Name: "Freiburg", Latitude: 47.9990, Longitude: 7.8421},
	}},
	{Country: "Portugal", Cities: []City{
		{Name: "Lisbon", Latitude: 38.7223, Longitude: -9.1393},
		{Name: "Porto", Latitude: 41.1579, Longitude: -8.6291},
		{Name: "Faro", Latitude: 37.0194, Longitude: -7.9307},
		{Name: "Coimbra", Latitude: 40.2033, Longitude: -8.4103},
		{Name: "Braga", Latitude: 41.5454, Longitude: -8.4265},
	}},
	{Country: "United Kingdom", Cities: []City{
		{Name: "London", Latitude: 51.5074, Longitude: -0.1278},
		{Name: "Manchester", Latitude: 53.4830, Longitude: -2.2446},
		{Name: "Bristol", Latitude: 51.4545, Longitude: -2.5879},
		{Name: "Brighton", Latitude: 50.8225, Longitude: -0.1372},
		{Name: "Leeds", Latitude: 53.8008, Longitude: -1.5491},
	}},
}

// CityAllowed matches a city name case-insensitively against the allowed set
// and returns the canonical name.
func CityAllowed(name string) (string, bool) {
	for _, country := range AllowedCities {
		for _, city := range country.Cities {
			if strings.EqualFold(city.Name, name) {
				return city.Name, true
			}
		}
	}
	return "", false
}
