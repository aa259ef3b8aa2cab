package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrUnknownPreset   = errors.New("unknown preset")
	ErrMalformedOption = errors.New("malformed game option")
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// SettingsDTO holds the recognized game options. Nil fields were not given.
type SettingsDTO struct {
	Preset    *string `schema:"preset"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
}

func ParseSettingsDTO(src map[string][]string) (SettingsDTO, error) {
	var dto SettingsDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("%w: %w", ErrMalformedOption, err)
	}
	return dto, nil
}

// Apply overlays the given options on base: a preset replaces all three
// values, explicit keys then override single values.
func (dto SettingsDTO) Apply(base mines.Settings) (mines.Settings, error) {
	s := base
	if dto.Preset != nil {
		preset, ok := mines.Preset(*dto.Preset)
		if !ok {
			return base, fmt.Errorf("%w %q", ErrUnknownPreset, *dto.Preset)
		}
		s = preset
	}
	if dto.Width != nil {
		s.Width = *dto.Width
	}
	if dto.Height != nil {
		s.Height = *dto.Height
	}
	if dto.MineCount != nil {
		s.MineCount = *dto.MineCount
	}
	if err := s.Validate(); err != nil {
		return base, err
	}
	return s, nil
}

// SettingsFromValues decodes width, height, mine_count and preset from a query
// string or launch arguments on top of base. Other keys are ignored.
func SettingsFromValues(base mines.Settings, values url.Values) (mines.Settings, error) {
	dto, err := ParseSettingsDTO(values)
	if err != nil {
		return base, err
	}
	return dto.Apply(base)
}

// ValuesFromArgs collects key=value launch arguments. An argument may also be
// a whole query string, with or without the leading '?'.
func ValuesFromArgs(args []string) (url.Values, error) {
	values := url.Values{}
	for _, arg := range args {
		query := strings.TrimPrefix(arg, "?")
		if !strings.Contains(query, "=") {
			return nil, fmt.Errorf("%w: argument %q is not key=value", ErrMalformedOption, arg)
		}
		parsed, err := url.ParseQuery(query)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedOption, err)
		}
		for key, vs := range parsed {
			values[key] = append(values[key], vs...)
		}
	}
	return values, nil
}
