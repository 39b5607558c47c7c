package seeds

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/models"
	"github.com/beesaferoot/unilets/internal/slug"
)

type propertyData struct {
	ID            uint
	Title         string
	City          string
	University    string
	Address       string
	Postcode      string
	Bedrooms      int
	Bathrooms     int
	Price         float64
	Period        models.PricePeriod
	BillsIncluded bool
	Featured      bool
	Features      []string
	Description   string
}

func (p propertyData) slug() string {
	return slug.Make(p.Title)
}

var propertyRows = []propertyData{
	{
		Title:         "Hyde Park Terrace 5 Bed",
		City:          "leeds",
		University:    "university-of-leeds",
		Address:       "12 Hyde Park Terrace",
		Postcode:      "LS6 1BJ",
		Bedrooms:      5,
		Bathrooms:     2,
		Price:         145,
		Period:        models.PricePerPersonPerWeek,
		BillsIncluded: true,
		Featured:      true,
		Features:      []string{"WiFi", "Bills Included", "Washing Machine", "Furnished"},
		Description:   "Large terraced house a short walk from campus.",
	},
	{
		Title:       "Headingley Lane Flat",
		City:        "leeds",
		University:  "leeds-beckett-university",
		Address:     "48 Headingley Lane",
		Postcode:    "LS6 2AS",
		Bedrooms:    2,
		Bathrooms:   1,
		Price:       950,
		Period:      models.PricePerMonth,
		Features:    []string{"WiFi", "Double Beds", "Bike Storage"},
		Description: "Two bedroom flat close to the Headingley shops.",
	},
	{
		Title:         "Fallowfield Student House",
		City:          "manchester",
		University:    "university-of-manchester",
		Address:       "7 Ladybarn Road",
		Postcode:      "M14 6WN",
		Bedrooms:      6,
		Bathrooms:     3,
		Price:         135,
		Period:        models.PricePerPersonPerWeek,
		BillsIncluded: true,
		Featured:      true,
		Features:      []string{"WiFi", "Bills Included", "Dishwasher", "Garden"},
		Description:   "Six bedroom house on a quiet road in Fallowfield.",
	},
	{
		Title:       "Selly Oak Shared House",
		City:        "birmingham",
		University:  "university-of-birmingham",
		Address:     "21 Tiverton Road",
		Postcode:    "B29 6BP",
		Bedrooms:    4,
		Bathrooms:   2,
		Price:       120,
		Period:      models.PricePerPersonPerWeek,
		Features:    []string{"WiFi", "Washing Machine", "Garden", "Furnished"},
		Description: "Four bedroom house five minutes from the university.",
	},
	{
		Title:         "Clifton En-suite Studio",
		City:          "bristol",
		University:    "university-of-bristol",
		Address:       "3 Whiteladies Road",
		Postcode:      "BS8 1PB",
		Bedrooms:      1,
		Bathrooms:     1,
		Price:         260,
		Period:        models.PricePerWeek,
		BillsIncluded: true,
		Features:      []string{"WiFi", "Bills Included", "En-suite", "Gym"},
		Description:   "Self contained studio in Clifton with an on-site gym.",
	},
	{
		Title:       "Marchmont Tenement Flat",
		City:        "edinburgh",
		University:  "university-of-edinburgh",
		Address:     "15 Warrender Park Road",
		Postcode:    "EH9 1EW",
		Bedrooms:    3,
		Bathrooms:   1,
		Price:       1650,
		Period:      models.PricePerMonth,
		Features:    []string{"WiFi", "Furnished", "Study Room"},
		Description: "Traditional tenement flat near the Meadows.",
	},
}

// additionalPropertyRows carry fixed ids above the range the demo seed
// uses so re-runs never collide with auto-assigned ids.
var additionalPropertyRows = []propertyData{
	{
		ID:            1001,
		Title:         "Ecclesall Road Townhouse",
		City:          "sheffield",
		University:    "university-of-sheffield",
		Address:       "210 Ecclesall Road",
		Postcode:      "S11 8JD",
		Bedrooms:      5,
		Bathrooms:     2,
		Price:         115,
		Period:        models.PricePerPersonPerWeek,
		BillsIncluded: true,
		Features:      []string{"WiFi", "Bills Included", "Bike Storage"},
		Description:   "Five bedroom townhouse on Ecclesall Road.",
	},
	{
		ID:          1002,
		Title:       "Lenton Shared House",
		City:        "nottingham",
		University:  "university-of-nottingham",
		Address:     "34 Lenton Boulevard",
		Postcode:    "NG7 2ES",
		Bedrooms:    4,
		Bathrooms:   1,
		Price:       105,
		Period:      models.PricePerPersonPerWeek,
		Features:    []string{"WiFi", "Washing Machine", "Parking"},
		Description: "Four bedroom house in Lenton.",
	},
	{
		ID:            1003,
		Title:         "Smithdown Road Flat",
		City:          "liverpool",
		University:    "university-of-liverpool",
		Address:       "88 Smithdown Road",
		Postcode:      "L15 3JR",
		Bedrooms:      3,
		Bathrooms:     1,
		Price:         99,
		Period:        models.PricePerPersonPerWeek,
		BillsIncluded: true,
		Features:      []string{"WiFi", "Bills Included", "Furnished"},
		Description:   "Three bedroom flat above a row of shops.",
	},
	{
		ID:          1004,
		Title:       "West End Studio",
		City:        "glasgow",
		University:  "university-of-glasgow",
		Address:     "5 Great George Street",
		Postcode:    "G12 8LH",
		Bedrooms:    1,
		Bathrooms:   1,
		Price:       795,
		Period:      models.PricePerMonth,
		Features:    []string{"WiFi", "En-suite"},
		Description: "Studio flat in the West End close to campus.",
	},
}

type propertyRefs struct {
	cities       Index
	universities Index
	features     Index
}

func loadPropertyRefs(tx *gorm.DB) (propertyRefs, error) {
	var refs propertyRefs
	var err error
	if refs.cities, err = IndexBySlug(tx, "cities"); err != nil {
		return refs, err
	}
	if refs.universities, err = IndexBySlug(tx, "universities"); err != nil {
		return refs, err
	}
	if refs.features, err = IndexByName(tx, "features"); err != nil {
		return refs, err
	}
	return refs, nil
}

func (p propertyData) build(refs propertyRefs) (models.Property, []uint, error) {
	cityID, err := refs.cities.ResolveOptional(p.City)
	if err != nil {
		return models.Property{}, nil, fmt.Errorf("property %q: %w", p.Title, err)
	}
	universityID, err := refs.universities.ResolveOptional(p.University)
	if err != nil {
		return models.Property{}, nil, fmt.Errorf("property %q: %w", p.Title, err)
	}

	featureIDs := make([]uint, 0, len(p.Features))
	for _, name := range p.Features {
		id, err := refs.features.Resolve(name)
		if err != nil {
			return models.Property{}, nil, fmt.Errorf("property %q: %w", p.Title, err)
		}
		featureIDs = append(featureIDs, id)
	}

	return models.Property{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.slug(),
		Description:   p.Description,
		AddressLine1:  p.Address,
		Postcode:      p.Postcode,
		CityID:        cityID,
		UniversityID:  universityID,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Price:         p.Price,
		PricePeriod:   p.Period,
		BillsIncluded: p.BillsIncluded,
		Status:        models.PropertyStatusActive,
		Featured:      p.Featured,
	}, featureIDs, nil
}

func createProperty(tx *gorm.DB, property *models.Property, featureIDs []uint) error {
	if err := tx.Create(property).Error; err != nil {
		return fmt.Errorf("failed to insert property %s: %w", property.Slug, err)
	}
	if len(featureIDs) == 0 {
		return nil
	}

	links := make([]models.PropertyFeature, 0, len(featureIDs))
	for _, id := range featureIDs {
		links = append(links, models.PropertyFeature{PropertyID: property.ID, FeatureID: id})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link features to %s: %w", property.Slug, err)
	}
	return nil
}

func demoSlugs() []string {
	slugs := make([]string, 0, len(propertyRows))
	for _, row := range propertyRows {
		slugs = append(slugs, row.slug())
	}
	return slugs
}

var propertiesSeed = Seed{
	Name:        "04_properties",
	Kind:        KindScoped,
	Description: "demo properties with feature links",
	Run: func(_ context.Context, tx *gorm.DB, _ Env) (Result, error) {
		refs, err := loadPropertyRefs(tx)
		if err != nil {
			return Result{}, err
		}

		type built struct {
			property   models.Property
			featureIDs []uint
		}
		rows := make([]built, 0, len(propertyRows))
		for _, row := range propertyRows {
			property, featureIDs, err := row.build(refs)
			if err != nil {
				return Result{}, err
			}
			rows = append(rows, built{property, featureIDs})
		}

		// Images, availability and feature links of these rows cascade.
		deleted := tx.Where("slug IN ?", demoSlugs()).Delete(&models.Property{})
		if deleted.Error != nil {
			return Result{}, fmt.Errorf("failed to clear demo properties: %w", deleted.Error)
		}

		for i := range rows {
			if err := createProperty(tx, &rows[i].property, rows[i].featureIDs); err != nil {
				return Result{}, err
			}
		}

		if err := RefreshPropertyCounts(tx); err != nil {
			return Result{}, err
		}
		return Result{Inserted: len(rows), Deleted: int(deleted.RowsAffected)}, nil
	},
}

func demoPropertyIndex(tx *gorm.DB) (Index, error) {
	var rows []KeyRow
	err := tx.Model(&models.Property{}).
		Select("id, slug AS natural_key").
		Where("slug IN ?", demoSlugs()).
		Scan(&rows).Error
	if err != nil {
		return Index{}, fmt.Errorf("failed to read demo properties: %w", err)
	}
	return NewIndex("properties", rows), nil
}

var propertyImagesSeed = Seed{
	Name:        "05_property_images",
	Kind:        KindScoped,
	Description: "gallery images for the demo properties",
	Run: func(_ context.Context, tx *gorm.DB, _ Env) (Result, error) {
		properties, err := demoPropertyIndex(tx)
		if err != nil {
			return Result{}, err
		}

		var images []models.PropertyImage
		var ids []uint
		for _, row := range propertyRows {
			id, err := properties.Resolve(row.slug())
			if err != nil {
				return Result{}, err
			}
			ids = append(ids, id)
			for i, room := range []string{"exterior", "living-room", "bedroom"} {
				images = append(images, models.PropertyImage{
					PropertyID:   id,
					URL:          fmt.Sprintf("/images/properties/%s/%s.jpg", row.slug(), room),
					AltText:      fmt.Sprintf("%s %s", row.Title, room),
					IsPrimary:    i == 0,
					DisplayOrder: i,
				})
			}
		}

		deleted := tx.Where("property_id IN ?", ids).Delete(&models.PropertyImage{})
		if deleted.Error != nil {
			return Result{}, fmt.Errorf("failed to clear demo images: %w", deleted.Error)
		}
		if err := tx.Create(&images).Error; err != nil {
			return Result{}, fmt.Errorf("failed to insert images: %w", err)
		}
		return Result{Inserted: len(images), Deleted: int(deleted.RowsAffected)}, nil
	},
}

// academicYearStart is the next 1 September on or after now
func academicYearStart(now time.Time) time.Time {
	year := now.Year()
	start := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	if now.After(start) {
		start = start.AddDate(1, 0, 0)
	}
	return start
}

var propertyAvailabilitySeed = Seed{
	Name:        "06_property_availability",
	Kind:        KindScoped,
	Description: "availability windows for the next academic year",
	Run: func(_ context.Context, tx *gorm.DB, env Env) (Result, error) {
		properties, err := demoPropertyIndex(tx)
		if err != nil {
			return Result{}, err
		}

		start := academicYearStart(env.Now())
		var windows []models.PropertyAvailability
		var ids []uint
		for i, row := range propertyRows {
			id, err := properties.Resolve(row.slug())
			if err != nil {
				return Result{}, err
			}
			ids = append(ids, id)

			status := models.AvailabilityAvailable
			if i%3 == 2 {
				status = models.AvailabilityReserved
			}
			windows = append(windows,
				models.PropertyAvailability{PropertyID: id, StartDate: start, EndDate: start.AddDate(1, 0, -1), Status: status},
				models.PropertyAvailability{PropertyID: id, StartDate: start.AddDate(1, 0, 0), EndDate: start.AddDate(2, 0, -1), Status: models.AvailabilityAvailable},
			)
		}

		deleted := tx.Where("property_id IN ?", ids).Delete(&models.PropertyAvailability{})
		if deleted.Error != nil {
			return Result{}, fmt.Errorf("failed to clear demo availability: %w", deleted.Error)
		}
		if err := tx.Create(&windows).Error; err != nil {
			return Result{}, fmt.Errorf("failed to insert availability: %w", err)
		}
		return Result{Inserted: len(windows), Deleted: int(deleted.RowsAffected)}, nil
	},
}

var additionalPropertiesSeed = Seed{
	Name:        "08_additional_properties",
	Kind:        KindAdditive,
	Description: "extra listings with fixed ids, skipped when already present",
	Run: func(_ context.Context, tx *gorm.DB, env Env) (Result, error) {
		refs, err := loadPropertyRefs(tx)
		if err != nil {
			return Result{}, err
		}

		type pending struct {
			property   models.Property
			featureIDs []uint
		}
		var result Result
		var displaced []pending
		for _, row := range additionalPropertyRows {
			var existing int64
			err := tx.Model(&models.Property{}).Where("slug = ?", row.slug()).Count(&existing).Error
			if err != nil {
				return Result{}, fmt.Errorf("failed to check property %s: %w", row.slug(), err)
			}
			if existing > 0 {
				result.Skipped++
				continue
			}

			property, featureIDs, err := row.build(refs)
			if err != nil {
				return Result{}, err
			}

			var taken int64
			if err := tx.Model(&models.Property{}).Where("id = ?", row.ID).Count(&taken).Error; err != nil {
				return Result{}, fmt.Errorf("failed to check property id %d: %w", row.ID, err)
			}
			if taken > 0 {
				property.ID = 0
				displaced = append(displaced, pending{property, featureIDs})
				continue
			}

			if err := createProperty(tx, &property, featureIDs); err != nil {
				return Result{}, err
			}
			result.Inserted++
		}

		// Rows whose fixed id belongs to another listing go in after the
		// fixed-id rows, with a database-assigned id.
		if len(displaced) > 0 {
			if err := database.ResetSequence(tx, "properties", "id"); err != nil {
				return Result{}, err
			}
		}
		for _, d := range displaced {
			if err := createProperty(tx, &d.property, d.featureIDs); err != nil {
				return Result{}, err
			}
			env.Logger.Printf("additional properties: fixed id taken, inserted %s as id %d", d.property.Slug, d.property.ID)
			result.Inserted++
		}

		env.Logger.Printf("additional properties: added %d, skipped %d", result.Inserted, result.Skipped)

		if err := database.ResetSequence(tx, "properties", "id"); err != nil {
			return Result{}, err
		}
		if err := RefreshPropertyCounts(tx); err != nil {
			return Result{}, err
		}
		return result, nil
	},
}
