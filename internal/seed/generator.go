package seed

import (
	"math"
	"math/rand"
	"time"
)

// VehicleSeed is one synthetic record ready for insertion. The database
// fills in id, created_at and the search vector.
type VehicleSeed struct {
	Brand           string
	Model           string
	YearManufacture int
	YearModel       int
	EngineSize      float64
	FuelType        string
	Color           string
	Mileage         int
	Doors           int
	Transmission    string
	Price           float64
}

// Generator produces a deterministic synthetic inventory: the same seed and
// catalog always yield the same records.
type Generator struct {
	catalog     *Catalog
	rng         *rand.Rand
	currentYear int
}

func NewGenerator(catalog *Catalog, seed int64) *Generator {
	return &Generator{
		catalog:     catalog,
		rng:         rand.New(rand.NewSource(seed)),
		currentYear: time.Now().UTC().Year(),
	}
}

// Generate builds count vehicles. Prices depreciate exponentially with age
// and mileage accumulates roughly 15000 km per year, both jittered.
func (g *Generator) Generate(count int) []VehicleSeed {
	vehicles := make([]VehicleSeed, 0, count)
	for i := 0; i < count; i++ {
		brand := g.catalog.Brands[g.rng.Intn(len(g.catalog.Brands))]
		model := brand.Models[g.rng.Intn(len(brand.Models))]

		yearManufacture := 2010 + g.rng.Intn(g.currentYear-2010)
		yearModel := yearManufacture
		if g.rng.Intn(2) == 1 {
			yearModel++
		}

		price, mileage := g.priceAndMileage(yearManufacture)

		vehicles = append(vehicles, VehicleSeed{
			Brand:           brand.Name,
			Model:           model,
			YearManufacture: yearManufacture,
			YearModel:       yearModel,
			EngineSize:      g.catalog.EngineSizes[g.rng.Intn(len(g.catalog.EngineSizes))],
			FuelType:        g.catalog.FuelTypes[g.rng.Intn(len(g.catalog.FuelTypes))],
			Color:           g.catalog.Colors[g.rng.Intn(len(g.catalog.Colors))],
			Mileage:         mileage,
			Doors:           g.catalog.Doors[g.rng.Intn(len(g.catalog.Doors))],
			Transmission:    g.catalog.Transmissions[g.rng.Intn(len(g.catalog.Transmissions))],
			Price:           price,
		})
	}
	return vehicles
}

func (g *Generator) priceAndMileage(yearManufacture int) (float64, int) {
	age := g.currentYear - yearManufacture

	basePrice := 120000 * math.Exp(-float64(age)*0.15)
	price := basePrice * (0.8 + 0.4*g.rng.Float64())
	price = math.Round(price*100) / 100
	if price <= 0 {
		price = 0.01
	}

	baseMileage := float64(age) * 15000
	mileage := int(baseMileage * (0.7 + 0.6*g.rng.Float64()))
	if mileage < 0 {
		mileage = 0
	}

	return price, mileage
}
