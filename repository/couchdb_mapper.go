package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-resty/resty/v2"
)

// MapToObject maps a couchdb resty response to the given object
func MapToObject(resp interface{}, obj interface{}) error {
	response, ok := resp.(*resty.Response)
	if !ok {
		return errors.New("resp is not a resty.Response")
	}
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return errors.New("obj is not a pointer to a struct")
	}
	if err := json.Unmarshal(response.Body(), obj); err != nil {
		return fmt.Errorf("%s cannot be mapped to the given object", response.Body())
	}
	return nil
}
