package controllers

import (
	"os"
	"time"

	"github.com/punkyalice/Foodprep/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	started := time.Now()

	dbOK := false
	var dbError *string
	var one int
	if err := config.DB.Raw("SELECT 1").Scan(&one).Error; err != nil {
		msg := err.Error()
		dbError = &msg
	} else {
		dbOK = true
	}

	status := 200
	if !dbOK {
		status = 503
	}
	c.JSON(status, gin.H{
		"ok":      dbOK,
		"service": "freezer-inventory",
		"env":     os.Getenv("APP_ENV"),
		"time":    time.Now().Format(time.RFC3339),
		"db": gin.H{
			"ok":    dbOK,
			"host":  os.Getenv("DB_HOST"),
			"name":  os.Getenv("DB_NAME"),
			"error": dbError,
		},
		"latency_ms": time.Since(started).Milliseconds(),
	})
}
