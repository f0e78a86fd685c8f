package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellfit-garage/database"
)

// ListLookups returns the code definitions (selection options)
func ListLookups(c *gin.Context) {
	lookups, err := database.GetLookups()
	if err != nil {
		fmt.Println(err)
		c.JSON(http.StatusNoContent, nil)
		return
	}

	c.JSON(http.StatusOK, lookups)
}
