// Package feed is the single normalization boundary for externally supplied
// product data. Historical backends returned product lists in several shapes
// (a bare array, {"value":[...]}, {"data":[...]}, and items wrapped in
// {"value":{...}}) with drifting field names; everything is translated into
// canonical domain.Product values here, once, before the data reaches the
// rest of the application.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"printshop/internal/domain"
)

var ErrUnknownShape = errors.New("feed: unrecognized document shape")

type envelope struct {
	Value json.RawMessage `json:"value"`
	Data  json.RawMessage `json:"data"`
}

// item tolerates the field aliases used by older backend revisions alongside
// the canonical names embedded via domain.Product.
type item struct {
	domain.Product
	// ids arrive as numbers in some revisions and strings in others; this
	// field shadows the embedded Product.ID during decoding
	RawID           json.RawMessage   `json:"id"`
	ProductName     string            `json:"productName"`
	ImageName       string            `json:"imageName"`
	ProductRating   float64           `json:"productRating"`
	NumberOfReviews int               `json:"numberOfReviews"`
	ProductFeatures []string          `json:"productFeatures"`
	Specification   map[string]string `json:"specs"`
}

// Decode parses data in any of the known feed shapes and returns the
// canonical product list. Items missing an id or a name are dropped rather
// than half-imported.
func Decode(data []byte) ([]domain.Product, error) {
	list, err := itemList(data)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(list))
	for _, raw := range list {
		p, ok, err := decodeItem(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func itemList(data []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, ErrUnknownShape
	}

	if trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("feed: %w", err)
		}
		return list, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	wrapped := env.Value
	if wrapped == nil {
		wrapped = env.Data
	}
	if wrapped == nil {
		return nil, ErrUnknownShape
	}
	// a single wrapped object is a one-item list
	if inner := strings.TrimSpace(string(wrapped)); strings.HasPrefix(inner, "{") {
		return []json.RawMessage{wrapped}, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(wrapped, &list); err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return list, nil
}

func decodeItem(raw json.RawMessage) (domain.Product, bool, error) {
	// unwrap per-item {"value": {...}} if present
	var wrap struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Value != nil {
		raw = wrap.Value
	}

	var it item
	if err := json.Unmarshal(raw, &it); err != nil {
		return domain.Product{}, false, fmt.Errorf("feed: %w", err)
	}

	p := it.Product
	p.ID = idString(it.RawID)
	if p.Name == "" {
		p.Name = it.ProductName
	}
	if p.ImageRef == "" {
		p.ImageRef = it.ImageName
	}
	if p.Rating == 0 {
		p.Rating = it.ProductRating
	}
	if p.ReviewCount == 0 {
		p.ReviewCount = it.NumberOfReviews
	}
	if len(p.Features) == 0 {
		p.Features = it.ProductFeatures
	}
	if len(p.Specs) == 0 {
		p.Specs = it.Specification
	}
	p.Active = true

	if p.ID == "" || p.Name == "" {
		return domain.Product{}, false, nil
	}
	return p, true, nil
}

func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
