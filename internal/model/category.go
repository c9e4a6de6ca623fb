package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is a flat label; there is no hierarchy.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}
