package domain

import (
	"errors"
	"strings"
)

// Type groups pets for matching and reporting.
type Type string

const (
	TypeDog   Type = "DOG"
	TypeCat   Type = "CAT"
	TypeBird  Type = "BIRD"
	TypeFish  Type = "FISH"
	TypeOther Type = "OTHER"
)

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrInvalidOwner  = errors.New("owner id must be greater than zero")
	ErrInvalidType   = errors.New("pet type is invalid")
	ErrInvalidAge    = errors.New("age must be zero or greater")
	ErrInvalidWeight = errors.New("weight must be greater than zero")
)

// Pet represents an animal registered by an owner.
type Pet struct {
	ID       int64
	OwnerID  int64
	Name     string
	Type     Type
	Breed    string
	Age      int
	WeightKg float64
}

// NewPet validates the invariants and builds a new Pet aggregate.
func NewPet(id, ownerID int64, name string, petType Type) (*Pet, error) {
	p := &Pet{ID: id}
	if err := p.AssignOwner(ownerID); err != nil {
		return nil, err
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetType(petType); err != nil {
		return nil, err
	}
	return p, nil
}

// AssignOwner links the pet to its owner account.
func (p *Pet) AssignOwner(ownerID int64) error {
	if ownerID <= 0 {
		return ErrInvalidOwner
	}
	p.OwnerID = ownerID
	return nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetType validates known species values. An empty type defaults to OTHER.
func (p *Pet) SetType(petType Type) error {
	if petType == "" {
		petType = TypeOther
	}
	switch petType {
	case TypeDog, TypeCat, TypeBird, TypeFish, TypeOther:
		p.Type = petType
		return nil
	default:
		return ErrInvalidType
	}
}

// SetBreed stores the free-form breed label.
func (p *Pet) SetBreed(breed string) {
	p.Breed = strings.TrimSpace(breed)
}

// SetAge stores the pet age in whole years.
func (p *Pet) SetAge(age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	p.Age = age
	return nil
}

// SetWeight stores the latest known weight measurement.
func (p *Pet) SetWeight(kg float64) error {
	if kg <= 0 {
		return ErrInvalidWeight
	}
	p.WeightKg = kg
	return nil
}
