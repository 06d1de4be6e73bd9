package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"orderdesk/internal/model"
)

var (
	errMissingField = errors.New("missing field")
	errNotNumeric   = errors.New("not a number")
	errNotIntegral  = errors.New("not an integer")
	errNotObject    = errors.New("not an object")
)

// productRequest is the raw POST /api/produits body. Fields stay raw so that
// numbers sent as strings can be coerced the way clients expect.
type productRequest struct {
	Name  json.RawMessage `json:"nom"`
	Price json.RawMessage `json:"prix"`
	Stock json.RawMessage `json:"stock"`
}

// orderRequest is the raw POST /api/commandes body.
type orderRequest struct {
	Items json.RawMessage `json:"items"`
}

// toInput converts the loose body into the strict domain input.
func (req productRequest) toInput() (model.ProductInput, error) {
	name, err := decodeString(req.Name)
	if err != nil {
		return model.ProductInput{}, err
	}

	price, err := decodeNumber(req.Price)
	if err != nil {
		return model.ProductInput{}, err
	}

	stock, err := decodeNumber(req.Stock)
	if err != nil {
		return model.ProductInput{}, err
	}

	return model.ProductInput{Name: name, Price: price, Stock: stock}, nil
}

// toLines converts the items array into line requests. Each element must be
// an object with integral produitId and quantite.
func (req orderRequest) toLines() ([]model.OrderLineRequest, error) {
	if isAbsent(req.Items) {
		return nil, errMissingField
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(req.Items, &elements); err != nil {
		return nil, err
	}

	lines := make([]model.OrderLineRequest, 0, len(elements))
	for _, element := range elements {
		var fields struct {
			ProductID json.RawMessage `json:"produitId"`
			Quantity  json.RawMessage `json:"quantite"`
		}
		if !bytes.HasPrefix(bytes.TrimSpace(element), []byte("{")) {
			return nil, errNotObject
		}
		if err := json.Unmarshal(element, &fields); err != nil {
			return nil, err
		}

		productID, err := decodeInt(fields.ProductID)
		if err != nil {
			return nil, err
		}
		quantity, err := decodeInt(fields.Quantity)
		if err != nil {
			return nil, err
		}

		lines = append(lines, model.OrderLineRequest{ProductID: productID, Quantity: quantity})
	}

	return lines, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", errMissingField
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// decodeNumber accepts a JSON number or a string holding one.
func decodeNumber(raw json.RawMessage) (float64, error) {
	if isAbsent(raw) {
		return 0, errMissingField
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, errNotNumeric
		}
		return f, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, errNotNumeric
	}
	return f, nil
}

// decodeInt accepts only an integral JSON number.
func decodeInt(raw json.RawMessage) (int, error) {
	if isAbsent(raw) {
		return 0, errMissingField
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, errNotNumeric
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errNotIntegral
	}
	return int(f), nil
}
