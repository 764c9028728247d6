// Package shipping models checkout destinations and the delivery fee policy.
package shipping

import (
	"encoding/json"

	"github.com/go-faster/errors"
)

// DeliveryType selects how an Omani order is delivered.
type DeliveryType string

const (
	DeliveryHome   DeliveryType = "home"
	DeliveryOffice DeliveryType = "office"
)

// Country keys as submitted by the checkout form.
const (
	CountryOman        = "oman"
	CountryUAE         = "uae"
	CountrySaudiArabia = "saudi_arabia"
	CountryQatar       = "qatar"
	CountryBahrain     = "bahrain"
	CountryKuwait      = "kuwait"
)

// Destination is a tagged variant: orders either ship within Oman, addressed
// by governorate and wilayah, or internationally with a free-text address.
type Destination interface {
	Country() string
	destination()
}

// Oman is the domestic destination variant.
type Oman struct {
	DeliveryType DeliveryType `json:"delivery_type"`
	Governorate  string       `json:"governorate"`
	Wilayah      string       `json:"wilayah"`
}

func (Oman) Country() string { return CountryOman }
func (Oman) destination()    {}

// International is the cross-border destination variant.
type International struct {
	CountryKey  string `json:"country"`
	AddressLine string `json:"address_line"`
}

func (d International) Country() string { return d.CountryKey }
func (International) destination()      {}

type destinationEnvelope struct {
	Kind          string          `json:"kind"`
	Oman          *Oman           `json:"oman,omitempty"`
	International *International  `json:"international,omitempty"`
}

const (
	kindOman          = "oman"
	kindInternational = "international"
)

// EncodeDestination serializes a destination with its variant tag, for JSONB
// storage and API payloads.
func EncodeDestination(d Destination) ([]byte, error) {
	switch v := d.(type) {
	case Oman:
		return json.Marshal(destinationEnvelope{Kind: kindOman, Oman: &v})
	case International:
		return json.Marshal(destinationEnvelope{Kind: kindInternational, International: &v})
	default:
		return nil, errors.Errorf("unknown destination type %T", d)
	}
}

// DecodeDestination is the inverse of EncodeDestination.
func DecodeDestination(data []byte) (Destination, error) {
	var env destinationEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decode destination")
	}

	switch env.Kind {
	case kindOman:
		if env.Oman == nil {
			return nil, errors.New("oman destination missing payload")
		}
		return *env.Oman, nil
	case kindInternational:
		if env.International == nil {
			return nil, errors.New("international destination missing payload")
		}
		return *env.International, nil
	default:
		return nil, errors.Errorf("unknown destination kind %q", env.Kind)
	}
}
