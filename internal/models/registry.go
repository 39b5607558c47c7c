package models

// All returns one instance of every model, parents before children
func All() []interface{} {
	return []interface{}{
		&City{},
		&University{},
		&Feature{},
		&User{},
		&Property{},
		&PropertyImage{},
		&PropertyFeature{},
		&PropertyAvailability{},
		&UserShortlist{},
		&Booking{},
		&Payment{},
		&Refund{},
		&RentPayment{},
		&ActivityLog{},
	}
}

// ModelTypeRegistry maps model names to instances, in the shape the schema
// inspector expects.
var ModelTypeRegistry = map[string]interface{}{
	"City":                 City{},
	"University":           University{},
	"Feature":              Feature{},
	"User":                 User{},
	"Property":             Property{},
	"PropertyImage":        PropertyImage{},
	"PropertyFeature":      PropertyFeature{},
	"PropertyAvailability": PropertyAvailability{},
	"UserShortlist":        UserShortlist{},
	"Booking":              Booking{},
	"Payment":              Payment{},
	"Refund":               Refund{},
	"RentPayment":          RentPayment{},
	"ActivityLog":          ActivityLog{},
}
