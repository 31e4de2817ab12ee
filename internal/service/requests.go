package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/tagging"
)

var (
	// ErrInvalidTag is returned when a tag is not one of the four storable tags.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidRequest is returned for any other malformed request.
	ErrInvalidRequest = errors.New("invalid request")
)

// DefaultDroppedDays is the idle threshold used when a request gives none.
const DefaultDroppedDays = tagging.DroppedAfterDays

// GameRequest addresses one game.
type GameRequest struct {
	AppID string `json:"appid" validate:"required,appid"`
}

func (r *GameRequest) normalize() {
	r.AppID = strings.TrimSpace(r.AppID)
}

// SetTagRequest sets a manual tag.
type SetTagRequest struct {
	AppID string `json:"appid" validate:"required,appid"`
	Tag   string `json:"tag" validate:"required,gametag"`
}

func (r *SetTagRequest) normalize() {
	r.AppID = strings.TrimSpace(r.AppID)
	r.Tag = strings.ToLower(strings.TrimSpace(r.Tag))
}

// SyncGameRequest syncs one game. Without Live the local inventory (or,
// failing that, the stored stats) supplies the data.
type SyncGameRequest struct {
	AppID string            `json:"appid" validate:"required,appid"`
	Live  *tagging.LiveData `json:"live,omitempty"`
	Force bool              `json:"force,omitempty"`
}

func (r *SyncGameRequest) normalize() {
	r.AppID = strings.TrimSpace(r.AppID)
}

// SyncLibraryRequest syncs a batch of games. Only ids in Games are touched.
// An empty Games syncs every game the local inventory lists.
type SyncLibraryRequest struct {
	Games map[string]tagging.LiveData `json:"games" validate:"omitempty,dive,keys,appid,endkeys"`
	Names map[string]string           `json:"names,omitempty"`
}

// UpdateSettingsRequest writes one or more settings.
type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings" validate:"required,min=1,dive,keys,setting,endkeys"`
}

// CheckDroppedRequest runs a dropped-game sweep. Zero Days means 365.
type CheckDroppedRequest struct {
	Days int `json:"days" validate:"omitempty,min=1,max=36500"`
}

func (r *CheckDroppedRequest) normalize() {
	if r.Days == 0 {
		r.Days = DefaultDroppedDays
	}
}

type normalizer interface {
	normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("appid", validateAppID)
	_ = v.RegisterValidation("gametag", validateTag)
	_ = v.RegisterValidation("setting", validateSettingKey)
	return v
}

// check normalizes and validates a request.
func check(req any) error {
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns validator output into one readable error
// without leaking Go field names.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "gametag":
			return fmt.Errorf("%w %q: must be one of %s", ErrInvalidTag, e.Value(), tagList())
		case "required":
			msgs = append(msgs, field+" is required")
		case "appid":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not a game id", field, e.Value()))
		case "setting":
			msgs = append(msgs, fmt.Sprintf("unknown setting %q", e.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func tagList() string {
	tags := models.AllTags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func validateAppID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateTag(fl validator.FieldLevel) bool {
	return models.Tag(fl.Field().String()).Valid()
}

func validateSettingKey(fl validator.FieldLevel) bool {
	_, ok := models.DefaultSettings[fl.Field().String()]
	return ok
}

// checkSettingValue enforces the type each setting is stored as.
func checkSettingValue(key string, value any) (any, error) {
	def := models.DecodeSettingValue(models.DefaultSettings[key])
	switch def.(type) {
	case bool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case float64:
		switch n := value.(type) {
		case float64:
			if n >= 0 {
				return n, nil
			}
		case int:
			if n >= 0 {
				return float64(n), nil
			}
		}
	default:
		if s, ok := value.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: setting %q cannot be %v", ErrInvalidRequest, key, value)
}
