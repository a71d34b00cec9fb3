package validators

import "go.mongodb.org/mongo-driver/bson"

var ExceptionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"professional_id",
			"date",
			"status",
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

			"date": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"cancelled", "manual"},
			},

			"start_time": bson.M{
				"bsonType": "string",
			},

			"end_time": bson.M{
				"bsonType": "string",
			},

			"reason": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
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
