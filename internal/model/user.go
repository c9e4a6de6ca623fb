package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Firstname    string               `bson:"firstname" json:"firstname"`
	Lastname     string               `bson:"lastname" json:"lastname"`
	Email        string               `bson:"email" json:"-"`
	PasswordHash string               `bson:"password" json:"-"`
	SavedRecipes []primitive.ObjectID `bson:"savedRecipes" json:"savedRecipes"`
}

// DisplayName is what other users get to see: first and last name, never
// email or anything else.
func (u *User) DisplayName() string {
	return u.Firstname + " " + u.Lastname
}
