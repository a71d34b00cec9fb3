package validators

import "go.mongodb.org/mongo-driver/bson"

var ScheduleTemplateValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"professional_id",
			"weekday",
			"start_time",
			"end_time",
			"valid_from",
			"valid_until",
			"attention_type_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"professional_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"weekday": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  7,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$",
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$",
			},

			"valid_from": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"valid_until": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"attention_type_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"consultation_number": bson.M{
				"bsonType":  "string",
				"maxLength": 32,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
