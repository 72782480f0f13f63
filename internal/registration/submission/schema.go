package submission

// payloadSchema describes the document the sink accepts.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["businessName", "description", "email", "address", "businessHours", "services"],
  "properties": {
    "businessName": {"type": "string", "minLength": 2},
    "description": {"type": "string", "minLength": 10},
    "email": {"type": "string", "minLength": 3},
    "googlePlaceId": {"type": "string"},
    "facebookPageId": {"type": "string"},
    "facebookLink": {"type": "string"},
    "instagramLink": {"type": "string"},
    "whatsappLink": {"type": "string"},
    "averageRating": {"type": "number", "minimum": 0, "maximum": 5},
    "address": {
      "type": "object",
      "required": ["buildingName", "streetName", "unitNumber", "postalCode", "fullAddress", "latitude", "longitude"],
      "properties": {
        "buildingName": {"type": "string", "minLength": 1},
        "streetName": {"type": "string", "minLength": 1},
        "unitNumber": {"type": "string", "minLength": 1},
        "postalCode": {"type": "string", "minLength": 1},
        "fullAddress": {"type": "string", "minLength": 1},
        "latitude": {"type": "number", "minimum": -90, "maximum": 90},
        "longitude": {"type": "number", "minimum": -180, "maximum": 180}
      }
    },
    "businessHours": {
      "type": "array",
      "minItems": 7,
      "maxItems": 7,
      "items": {
        "type": "object",
        "required": ["day", "openTime", "closeTime"],
        "properties": {
          "day": {"enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"]},
          "openTime": {"type": "string"},
          "closeTime": {"type": "string"}
        }
      }
    },
    "services": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "tags", "pricing"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}, "uniqueItems": true},
          "pricing": {
            "type": "object",
            "required": ["price", "currency", "unit", "variantName"],
            "properties": {
              "price": {"type": "number", "minimum": 0},
              "currency": {"type": "string", "minLength": 1},
              "unit": {"type": "string", "minLength": 1},
              "variantName": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`
