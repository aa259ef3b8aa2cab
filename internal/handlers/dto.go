package handlers

import (
	"fmt"

	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	if err := decoder.Decode(&pos, src); err != nil {
		return pos, fmt.Errorf("invalid cell position: %w", err)
	}
	return pos, nil
}
