package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// LocalTime persists in MongoDB as its canonical string form so directory
// documents stay readable and free of timezone drift.

func (lt LocalTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(lt.String())
}

func (lt *LocalTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err != nil {
		return err
	}
	if s == "" {
		*lt = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}
