package pawsitserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/pawsit/pawsit-server/internal/domains/pets/application"
	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// PetAPI handles pet registry endpoints.
type PetAPI struct {
	service ports.Service
}

// NewPetAPI wires the pet endpoints to the pet service.
func NewPetAPI(service ports.Service) PetAPI {
	return PetAPI{service: service}
}

// RegisterPet adds a pet to an owner's roster.
func (api PetAPI) RegisterPet(c *gin.Context) {
	var payload Pet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	pet, err := petFromModel(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.Register(c.Request.Context(), pet)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPetModel(created))
}

// GetPet returns a single pet by id.
func (api PetAPI) GetPet(c *gin.Context) {
	id, err := parseIDParam(c, "petId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetModel(pet))
}

// UpdatePet replaces the mutable fields of a pet.
func (api PetAPI) UpdatePet(c *gin.Context) {
	id, err := parseIDParam(c, "petId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload Pet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := petFromModel(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	pet, err := api.service.Update(c.Request.Context(), id, updated)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetModel(pet))
}

// DeletePet removes a pet from the registry.
func (api PetAPI) DeletePet(c *gin.Context) {
	id, err := parseIDParam(c, "petId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPets returns all pets, optionally filtered by owner.
func (api PetAPI) ListPets(c *gin.Context) {
	ownerID, filtered, err := parseOptionalID(c, "ownerId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var pets []*projection.Projection[*domain.Pet]
	if filtered {
		pets, err = api.service.FindByOwner(c.Request.Context(), ownerID)
	} else {
		pets, err = api.service.List(c.Request.Context())
	}
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetModels(pets))
}

func respondPetServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, app.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func petFromModel(payload Pet) (*domain.Pet, error) {
	pet, err := domain.NewPet(payload.ID, payload.OwnerID, payload.Name, domain.Type(payload.Type))
	if err != nil {
		return nil, err
	}
	pet.SetBreed(payload.Breed)
	if payload.Age != 0 {
		if err := pet.SetAge(payload.Age); err != nil {
			return nil, err
		}
	}
	if payload.Weight != 0 {
		if err := pet.SetWeight(payload.Weight); err != nil {
			return nil, err
		}
	}
	return pet, nil
}

func toPetModel(pet *projection.Projection[*domain.Pet]) Pet {
	if pet == nil || pet.Entity == nil {
		return Pet{}
	}
	entity := pet.Entity
	return Pet{
		ID:      entity.ID,
		OwnerID: entity.OwnerID,
		Name:    entity.Name,
		Type:    string(entity.Type),
		Breed:   entity.Breed,
		Age:     entity.Age,
		Weight:  entity.WeightKg,
	}
}

func toPetModels(pets []*projection.Projection[*domain.Pet]) []Pet {
	models := make([]Pet, 0, len(pets))
	for _, pet := range pets {
		models = append(models, toPetModel(pet))
	}
	return models
}
