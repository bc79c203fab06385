package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/substytucje-pro/offers-backend/src/offersd/places"
	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

type Places struct {
	repo *places.Repository
}

func NewPlaces(repo *places.Repository) Places {
	return Places{repo: repo}
}

func (h Places) CreatePlace(c *gin.Context) {
	var req struct {
		Name         string   `json:"name" binding:"required"`
		NameASCII    string   `json:"name_ascii"`
		Department   string   `json:"department"`
		Category     string   `json:"category" binding:"required,oneof=court police prosecutor other"`
		StreetName   string   `json:"street_name"`
		StreetNumber string   `json:"street_number"`
		City         string   `json:"city" binding:"required"`
		PostalCode   string   `json:"postal_code"`
		Lat          *float64 `json:"lat"`
		Lon          *float64 `json:"lon"`
		Website      string   `json:"website"`
		Email        string   `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	place := &types.Place{
		Name:         req.Name,
		NameASCII:    req.NameASCII,
		Department:   req.Department,
		Category:     types.PlaceCategory(req.Category),
		StreetName:   req.StreetName,
		StreetNumber: req.StreetNumber,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Lat:          req.Lat,
		Lon:          req.Lon,
		Website:      req.Website,
		Email:        req.Email,
	}
	if err := h.repo.CreatePlace(c.Request.Context(), place); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, place)
}

func (h Places) CreateCity(c *gin.Context) {
	var req struct {
		Name       string   `json:"name" binding:"required"`
		NameASCII  string   `json:"name_ascii"`
		Lat        *float64 `json:"lat"`
		Lon        *float64 `json:"lon"`
		LatMin     *float64 `json:"lat_min"`
		LonMin     *float64 `json:"lon_min"`
		LatMax     *float64 `json:"lat_max"`
		LonMax     *float64 `json:"lon_max"`
		Population *int64   `json:"population"`
		Importance *float64 `json:"importance"`
		Category   string   `json:"category"`
		Region     string   `json:"region"`
		TerytCode  string   `json:"teryt_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	city := &types.City{
		Name:       req.Name,
		NameASCII:  req.NameASCII,
		Lat:        req.Lat,
		Lon:        req.Lon,
		LatMin:     req.LatMin,
		LonMin:     req.LonMin,
		LatMax:     req.LatMax,
		LonMax:     req.LonMax,
		Population: req.Population,
		Importance: req.Importance,
		Category:   req.Category,
		Region:     req.Region,
		TerytCode:  req.TerytCode,
	}
	if err := h.repo.CreateCity(c.Request.Context(), city); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

func (h Places) SearchPlaces(c *gin.Context) {
	rows, err := h.repo.SearchPlaces(c.Request.Context(), c.Param("name"), 20)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h Places) SearchCities(c *gin.Context) {
	rows, err := h.repo.SearchCities(c.Request.Context(), c.Param("name"), 20)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h Places) ListRoles(c *gin.Context) {
	roles, err := h.repo.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}
