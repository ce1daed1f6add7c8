package models

// Treatment is a bookable appointment type with a fixed, ordered catalogue
// of slot labels. Treatments are seeded out of band and read-only here.
type Treatment struct {
	ID    string   `bson:"_id,omitempty" json:"_id"`
	Name  string   `bson:"name" json:"name"`
	Slots []string `bson:"slots" json:"slots"`
}

// TreatmentName is the projection served by the treatment listing.
type TreatmentName struct {
	ID   string `bson:"_id,omitempty" json:"_id"`
	Name string `bson:"name" json:"name"`
}
