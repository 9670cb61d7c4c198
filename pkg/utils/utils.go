package utils

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

func ReadJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func GenerateUUID() string {
	return uuid.New().String()
}

func ValidateUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}
