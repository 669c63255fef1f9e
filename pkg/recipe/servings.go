package recipe

import (
	"bytes"
	"encoding/json"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
)

// NormalizeServings checks that raw has the shape servingsUnit requires and
// returns its canonical encoding: a positive integer for NUMBER,
// {"diameter"} for SPRINGFORM and {"width","length"} for BAKING_TRAY.
// Servings are optional: no unit and no value gives nil.
func NormalizeServings(servingsUnit string, raw json.RawMessage) (entities.Servings, error) {
	if servingsUnit == "" {
		if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, nil
		}
		return nil, domain.ErrInvalidServingsUnit
	}

	var value any

	switch servingsUnit {
	case entities.ServingsUnitNumber:
		var n int
		if err := strictDecode(raw, &n); err != nil || n <= 0 {
			return nil, domain.ErrInvalidServings
		}
		value = n
	case entities.ServingsUnitSpringform:
		var s domain.SpringformServings
		if err := strictDecode(raw, &s); err != nil || s.Diameter <= 0 {
			return nil, domain.ErrInvalidServings
		}
		value = s
	case entities.ServingsUnitBakingTray:
		var s domain.BakingTrayServings
		if err := strictDecode(raw, &s); err != nil || s.Width <= 0 || s.Length <= 0 {
			return nil, domain.ErrInvalidServings
		}
		value = s
	default:
		return nil, domain.ErrInvalidServingsUnit
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return entities.Servings(encoded), nil
}

func strictDecode(raw json.RawMessage, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
