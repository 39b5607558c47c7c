package seeds

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/models"
	"github.com/beesaferoot/unilets/internal/slug"
)

type cityData struct {
	Name        string
	Description string
}

var cityRows = []cityData{
	{"London", "The capital, home to more universities than any other UK city."},
	{"Manchester", "A large student city with a lively music and food scene."},
	{"Birmingham", "The UK's second city, with five universities and good transport links."},
	{"Leeds", "A compact city centre with student areas in Hyde Park and Headingley."},
	{"Liverpool", "Waterfront city with three universities and affordable rents."},
	{"Bristol", "Creative harbourside city in the south west."},
	{"Sheffield", "Green, hilly and one of the most affordable big student cities."},
	{"Nottingham", "Two universities and a busy city centre."},
	{"Edinburgh", "Scotland's capital with a historic old town."},
	{"Glasgow", "Scotland's largest city, with three universities."},
}

type universityData struct {
	Name         string
	City         string
	Latitude     float64
	Longitude    float64
	StudentCount int
}

var universityRows = []universityData{
	{"University College London", "london", 51.5246, -0.1340, 46830},
	{"King's College London", "london", 51.5115, -0.1160, 37960},
	{"University of Manchester", "manchester", 53.4668, -2.2339, 44485},
	{"University of Birmingham", "birmingham", 52.4508, -1.9305, 38430},
	{"University of Leeds", "leeds", 53.8067, -1.5550, 38840},
	{"Leeds Beckett University", "leeds", 53.8030, -1.5490, 27320},
	{"University of Liverpool", "liverpool", 53.4058, -2.9658, 29695},
	{"University of Bristol", "bristol", 51.4584, -2.6030, 27330},
	{"University of Sheffield", "sheffield", 53.3811, -1.4879, 30030},
	{"University of Nottingham", "nottingham", 52.9387, -1.1951, 35785},
	{"University of Edinburgh", "edinburgh", 55.9445, -3.1892, 39260},
	{"University of Glasgow", "glasgow", 55.8721, -4.2882, 33960},
}

var featureRows = []models.Feature{
	{Name: "WiFi", Icon: "wifi", Category: "utilities"},
	{Name: "Bills Included", Icon: "receipt", Category: "utilities"},
	{Name: "Washing Machine", Icon: "washing-machine", Category: "appliances"},
	{Name: "Dishwasher", Icon: "dishwasher", Category: "appliances"},
	{Name: "Furnished", Icon: "sofa", Category: "interior"},
	{Name: "Double Beds", Icon: "bed", Category: "interior"},
	{Name: "En-suite", Icon: "bath", Category: "interior"},
	{Name: "Garden", Icon: "tree", Category: "outdoor"},
	{Name: "Bike Storage", Icon: "bike", Category: "outdoor"},
	{Name: "Parking", Icon: "car", Category: "outdoor"},
	{Name: "Gym", Icon: "dumbbell", Category: "amenities"},
	{Name: "Study Room", Icon: "book", Category: "amenities"},
}

var citiesSeed = Seed{
	Name:        "01_cities",
	Kind:        KindReplace,
	Description: "UK student cities",
	Run: func(_ context.Context, tx *gorm.DB, _ Env) (Result, error) {
		deleted, err := deleteAll(tx, &models.City{})
		if err != nil {
			return Result{}, err
		}

		cities := make([]models.City, 0, len(cityRows))
		for _, row := range cityRows {
			cities = append(cities, models.City{
				Name:        row.Name,
				Slug:        slug.Make(row.Name),
				Description: row.Description,
				ImageURL:    "/images/cities/" + slug.Make(row.Name) + ".jpg",
			})
		}
		if err := tx.Create(&cities).Error; err != nil {
			return Result{}, fmt.Errorf("failed to insert cities: %w", err)
		}

		if err := RefreshPropertyCounts(tx); err != nil {
			return Result{}, err
		}
		return Result{Inserted: len(cities), Deleted: deleted}, nil
	},
}

var universitiesSeed = Seed{
	Name:        "02_universities",
	Kind:        KindReplace,
	Description: "universities linked to cities by slug",
	Run: func(_ context.Context, tx *gorm.DB, _ Env) (Result, error) {
		cities, err := IndexBySlug(tx, "cities")
		if err != nil {
			return Result{}, err
		}

		universities := make([]models.University, 0, len(universityRows))
		for _, row := range universityRows {
			cityID, err := cities.Resolve(row.City)
			if err != nil {
				return Result{}, fmt.Errorf("university %q: %w", row.Name, err)
			}
			lat, lng, students := row.Latitude, row.Longitude, row.StudentCount
			universities = append(universities, models.University{
				Name:         row.Name,
				Slug:         slug.Make(row.Name),
				CityID:       &cityID,
				Latitude:     &lat,
				Longitude:    &lng,
				StudentCount: &students,
			})
		}

		deleted, err := deleteAll(tx, &models.University{})
		if err != nil {
			return Result{}, err
		}
		if err := tx.Create(&universities).Error; err != nil {
			return Result{}, fmt.Errorf("failed to insert universities: %w", err)
		}
		return Result{Inserted: len(universities), Deleted: deleted}, nil
	},
}

var featuresSeed = Seed{
	Name:        "03_features",
	Kind:        KindReplace,
	Description: "property features and amenities",
	Run: func(_ context.Context, tx *gorm.DB, _ Env) (Result, error) {
		deleted, err := deleteAll(tx, &models.Feature{})
		if err != nil {
			return Result{}, err
		}

		features := make([]models.Feature, len(featureRows))
		copy(features, featureRows)
		if err := tx.Create(&features).Error; err != nil {
			return Result{}, fmt.Errorf("failed to insert features: %w", err)
		}
		return Result{Inserted: len(features), Deleted: deleted}, nil
	},
}

func deleteAll(tx *gorm.DB, model interface{}) (int, error) {
	result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear table: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}
