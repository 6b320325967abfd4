package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

// MakeBsonM flattens a struct into a bson.M selector or updater, honoring
// the bson struct tags. Zero-valued fields are dropped, so a partially
// filled struct selects on the fields it carries only. Non-nil pointer
// fields are dereferenced, which lets a patch set a field to its zero
// value.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr && val.Elem().Kind() == reflect.Struct {
		val = val.Elem()
	}

	res := bson.M{}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		tag, err := bsoncodec.DefaultStructTagParser(val.Type().Field(i))
		if err != nil {
			return nil, err
		}

		switch {
		case tag.Skip:
		case !field.CanInterface():
		case tag.OmitEmpty && field.IsZero():
		case field.Kind() == reflect.Ptr && !field.IsNil():
			res[tag.Name] = reflect.Indirect(reflect.ValueOf(field.Interface())).Interface()
		case !field.IsZero():
			res[tag.Name] = field.Interface()
		}
	}

	return res, nil
}
