package handlers

import (
	"net/http"

	"traintrek/internal/services"

	"github.com/gin-gonic/gin"
)

// GetAllTrains lists the whole catalog.
func GetAllTrains(c *gin.Context) {
	trains, err := services.CatalogService{}.All()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trains)
}

// SearchTrains matches source and destination substrings; both required.
func SearchTrains(c *gin.Context) {
	trains, err := services.CatalogService{}.Search(c.Query("source"), c.Query("destination"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trains)
}

func GetTrainByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	train, err := services.CatalogService{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, train)
}
