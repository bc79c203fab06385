package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SourceType string

const (
	SourceBot  SourceType = "bot"
	SourceUser SourceType = "user"
)

func ParseSource(s string) (SourceType, error) {
	switch SourceType(s) {
	case SourceBot, SourceUser:
		return SourceType(s), nil
	}
	return "", fmt.Errorf("unknown source %q", s)
}

type PlaceCategory string

const (
	PlaceCourt      PlaceCategory = "court"
	PlacePolice     PlaceCategory = "police"
	PlaceProsecutor PlaceCategory = "prosecutor"
	PlaceOther      PlaceCategory = "other"
)

// LegalRole is the fixed vocabulary of target-audience tags (attorney,
// legal counsel, trainee variants). Read-mostly reference data.
type LegalRole struct {
	ID   uint64    `gorm:"primaryKey" json:"-"`
	UUID uuid.UUID `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Name string    `gorm:"size:64;not null" json:"name"`

	Offers []Offer `gorm:"many2many:offers_legal_roles_link;" json:"-"`
}

// Place is a physical institution an offer may point at.
type Place struct {
	ID             uint64        `gorm:"primaryKey" json:"-"`
	UUID           uuid.UUID     `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Name           string        `gorm:"type:text" json:"name"`
	NameASCII      string        `gorm:"column:name_ascii;type:text" json:"name_ascii"`
	Department     string        `gorm:"type:text" json:"department,omitempty"`
	Category       PlaceCategory `gorm:"size:16" json:"category"`
	StreetName     string        `gorm:"type:text" json:"street_name"`
	StreetNumber   string        `gorm:"size:32" json:"street_number"`
	City           string        `gorm:"type:text" json:"city"`
	StateProvince  string        `gorm:"size:64" json:"state_province,omitempty"`
	PostalCode     string        `gorm:"size:16" json:"postal_code,omitempty"`
	Lat            *float64      `gorm:"type:decimal(10,7)" json:"lat"`
	Lon            *float64      `gorm:"type:decimal(10,7)" json:"lon"`
	Website        string        `gorm:"type:text" json:"website,omitempty"`
	Email          string        `gorm:"type:text" json:"email,omitempty"`
	CountryCode    string        `gorm:"size:8" json:"country_code,omitempty"`
	NationalNumber string        `gorm:"size:32" json:"national_number,omitempty"`
	Epuap          string        `gorm:"type:text" json:"epuap,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// City carries the centroid plus a bounding box and ranking metadata.
// TerytCode uniquely identifies a city when present.
type City struct {
	ID         uint64    `gorm:"primaryKey" json:"-"`
	UUID       uuid.UUID `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	NameASCII  string    `gorm:"column:name_ascii;size:128;not null" json:"name_ascii"`
	Lat        *float64  `gorm:"type:decimal(10,7)" json:"lat"`
	Lon        *float64  `gorm:"type:decimal(10,7)" json:"lon"`
	LatMin     *float64  `gorm:"type:decimal(10,7)" json:"lat_min,omitempty"`
	LonMin     *float64  `gorm:"type:decimal(10,7)" json:"lon_min,omitempty"`
	LatMax     *float64  `gorm:"type:decimal(10,7)" json:"lat_max,omitempty"`
	LonMax     *float64  `gorm:"type:decimal(10,7)" json:"lon_max,omitempty"`
	Population *int64    `json:"population,omitempty"`
	Importance *float64  `json:"importance,omitempty"`
	Category   string    `gorm:"size:16" json:"category"`
	Region     string    `gorm:"size:64" json:"region"` // voivodeship
	TerytCode  string    `gorm:"size:16;index" json:"teryt_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Offer is the central record: one legal-substitution listing.
type Offer struct {
	ID       uint64    `gorm:"primaryKey" json:"-"`
	UUID     uuid.UUID `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	RawData  *string   `gorm:"size:1024" json:"raw_data"`
	OfferUID *string   `gorm:"column:offer_uid;size:255;uniqueIndex" json:"offer_uid"`

	Author    string      `gorm:"size:96;not null" json:"author"`
	AuthorUID *string     `gorm:"column:author_uid;size:1024" json:"author_uid"`
	Source    SourceType  `gorm:"size:8;not null" json:"source"`
	Status    OfferStatus `gorm:"size:16;not null;default:new;index" json:"status"`

	PlaceName *string `gorm:"size:1024" json:"place_name"`
	CityName  *string `gorm:"size:1024" json:"city_name"`

	PlaceID *uint64 `gorm:"index" json:"-"`
	CityID  *uint64 `gorm:"index" json:"-"`
	Place   *Place  `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	City    *City   `gorm:"foreignKey:CityID" json:"city,omitempty"`

	// Coordinates inherited from the linked place on update.
	Lat *float64 `gorm:"type:decimal(10,7)" json:"lat"`
	Lon *float64 `gorm:"type:decimal(10,7)" json:"lon"`

	Email       *string    `gorm:"type:text" json:"email"`
	URL         *string    `gorm:"type:text" json:"url"`
	Date        *time.Time `gorm:"type:date" json:"date"`
	Hour        *string    `gorm:"size:5" json:"hour"` // HH:MM
	Price       *float64   `gorm:"type:decimal(10,2)" json:"price"`
	Description *string    `gorm:"type:text" json:"description"`
	Invoice     *bool      `json:"invoice"`
	Visible     *bool      `json:"visible"`

	AddedAt   *time.Time `json:"added_at"`
	ValidTo   *time.Time `json:"valid_to"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	LegalRoles []LegalRole `gorm:"many2many:offers_legal_roles_link;" json:"legal_roles,omitempty"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == uuid.Nil {
		o.UUID = uuid.New()
	}
	return nil
}

func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}

func (c *City) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
