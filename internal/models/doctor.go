package models

// Doctor is a provider on the roster managed by administrators.
type Doctor struct {
	ID        string `bson:"_id,omitempty" json:"_id"`
	Name      string `bson:"name" json:"name" binding:"required"`
	Email     string `bson:"email" json:"email" binding:"required,email"`
	Specialty string `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Img       string `bson:"img,omitempty" json:"img,omitempty"`
}
