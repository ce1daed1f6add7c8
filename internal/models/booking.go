package models

import (
	"encoding/json"
	"fmt"
)

// Booking is a patient's reservation of one slot of one treatment on one
// date. The treatment is referenced by name. Extra holds any additional
// fields the client sent (patient name, phone, ...) and is stored inline.
type Booking struct {
	ID            string                 `bson:"_id"`
	TreatmentName string                 `bson:"treatmentName"`
	Date          string                 `bson:"date"`
	PatientEmail  string                 `bson:"patientEmail"`
	Slot          string                 `bson:"slot"`
	Extra         map[string]interface{} `bson:",inline"`
}

// BookingKey is the de-duplication key: one booking per patient per
// treatment per date, whatever the slot.
type BookingKey struct {
	TreatmentName string
	Date          string
	PatientEmail  string
}

func (b *Booking) Key() BookingKey {
	return BookingKey{TreatmentName: b.TreatmentName, Date: b.Date, PatientEmail: b.PatientEmail}
}

var bookingFields = []string{"_id", "treatmentName", "date", "patientEmail", "slot"}

// MarshalJSON flattens Extra next to the named fields, the same shape the
// document has in the store.
func (b Booking) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(b.Extra)+len(bookingFields))
	for k, v := range b.Extra {
		out[k] = v
	}
	out["_id"] = b.ID
	out["treatmentName"] = b.TreatmentName
	out["date"] = b.Date
	out["patientEmail"] = b.PatientEmail
	out["slot"] = b.Slot
	return json.Marshal(out)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	dst := map[string]*string{
		"_id":           &b.ID,
		"treatmentName": &b.TreatmentName,
		"date":          &b.Date,
		"patientEmail":  &b.PatientEmail,
		"slot":          &b.Slot,
	}
	for _, name := range bookingFields {
		v, ok := raw[name]
		if !ok || v == nil {
			delete(raw, name)
			continue
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("booking field %q must be a string", name)
		}
		*dst[name] = s
		delete(raw, name)
	}
	b.Extra = nil
	if len(raw) > 0 {
		b.Extra = raw
	}
	return nil
}
