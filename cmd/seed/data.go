package main

import "caravan/internal/modules/pricing"

type cityRow struct {
	Name     string
	NameAr   string
	Lat, Lng float64
	HasCoord bool
}

func coord(name, nameAr string, lat, lng float64) cityRow {
	return cityRow{Name: name, NameAr: nameAr, Lat: lat, Lng: lng, HasCoord: true}
}

// Cities without coordinates can only be priced from the distance table,
// or after geocoding.
var cities = []cityRow{
	coord("Casablanca", "الدار البيضاء", 33.5731, -7.5898),
	coord("Marrakech", "مراكش", 31.6295, -7.9811),
	coord("Rabat", "الرباط", 34.0209, -6.8416),
	coord("Fes", "فاس", 34.0331, -5.0003),
	coord("Tangier", "طنجة", 35.7595, -5.8340),
	coord("Agadir", "أكادير", 30.4278, -9.5981),
	coord("Meknes", "مكناس", 33.8935, -5.5473),
	coord("Essaouira", "الصويرة", 31.5085, -9.7595),
	coord("Chefchaouen", "شفشاون", 35.1688, -5.2636),
	coord("Ouarzazate", "ورزازات", 30.9335, -6.9370),
	{Name: "Oujda"},
	{Name: "Kenitra"},
	{Name: "Tetouan"},
	{Name: "Safi"},
}

type routeRow struct {
	From, To string
	Km       float64
}

var routes = []routeRow{
	{"Casablanca", "Rabat", 87},
	{"Casablanca", "Marrakech", 240},
	{"Casablanca", "Fes", 300},
	{"Casablanca", "Tangier", 340},
	{"Casablanca", "Agadir", 500},
	{"Casablanca", "Meknes", 250},
	{"Casablanca", "Oujda", 600},
	{"Casablanca", "Kenitra", 120},
	{"Casablanca", "Tetouan", 370},
	{"Casablanca", "Safi", 200},
	{"Casablanca", "Essaouira", 360},
	{"Rabat", "Marrakech", 330},
	{"Rabat", "Fes", 210},
	{"Rabat", "Tangier", 250},
	{"Rabat", "Agadir", 580},
	{"Rabat", "Meknes", 140},
	{"Rabat", "Oujda", 510},
	{"Rabat", "Kenitra", 40},
	{"Rabat", "Tetouan", 280},
	{"Rabat", "Safi", 280},
	{"Marrakech", "Fes", 530},
	{"Marrakech", "Tangier", 580},
	{"Marrakech", "Agadir", 260},
	{"Marrakech", "Meknes", 480},
	{"Marrakech", "Essaouira", 190},
	{"Marrakech", "Safi", 160},
	{"Fes", "Tangier", 300},
	{"Fes", "Meknes", 60},
	{"Fes", "Oujda", 320},
	{"Fes", "Tetouan", 230},
	{"Tangier", "Tetouan", 60},
	{"Tangier", "Meknes", 250},
	{"Tangier", "Agadir", 820},
	{"Agadir", "Essaouira", 170},
	{"Agadir", "Safi", 300},
}

var vehicleTypes = []pricing.VehicleType{
	{Name: "Economy Car", NameAr: "سيارة اقتصادية", Capacity: 4, BasePricePerKm: 5.0, MinPrice: 150},
	{Name: "Luxury Van", NameAr: "شاحنة فاخرة", Capacity: 7, BasePricePerKm: 8.0, MinPrice: 250},
	{Name: "Minibus", NameAr: "حافلة صغيرة", Capacity: 15, BasePricePerKm: 12.0, MinPrice: 400},
	{Name: "4x4 SUV", NameAr: "سيارة دفع رباعي", Capacity: 5, BasePricePerKm: 10.0, MinPrice: 300},
}

type categoryRow struct {
	Name, Description string
	Multiplier        float64
	Vehicles          []vehicleRow
}

type vehicleRow struct {
	Name       string
	Capacity   int
	PricePerKm float64
}

var categories = []categoryRow{
	{"Standard", "Comfortable everyday cars", 1.0, []vehicleRow{
		{"Toyota Corolla", 4, 5.00},
		{"Hyundai Accent", 4, 4.50},
		{"Dacia Logan", 5, 4.00},
		{"Renault Symbol", 4, 4.50},
	}},
	{"VIP", "Executive sedans", 1.5, []vehicleRow{
		{"Mercedes-Benz E-Class", 4, 12.00},
		{"BMW 5 Series", 4, 12.50},
		{"Audi A6", 4, 13.00},
	}},
	{"VVIP", "Chauffeured luxury", 2.0, nil},
}

var partners = []struct {
	Name, Company string
}{
	{"Ahmed El Fassi", "Fassi Transport"},
	{"Youssef Berrada", "Berrada Tours"},
	{"Fatima Zahra", "Atlas Rides"},
}
