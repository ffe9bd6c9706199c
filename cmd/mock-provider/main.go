// Command mock-provider serves canned WeatherAPI forecast responses for
// local runs. Point WEATHER_API_BASE_URL at http://localhost:<port>/v1.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"weatherlookup.app/pkg/logger"
)

type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type location struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	LocalTime string `json:"localtime"`
}

type current struct {
	TempC     float64   `json:"temp_c"`
	Condition condition `json:"condition"`
	WindKph   float64   `json:"wind_kph"`
}

type day struct {
	MaxTempC  float64   `json:"maxtemp_c"`
	MinTempC  float64   `json:"mintemp_c"`
	Condition condition `json:"condition"`
}

type forecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       day    `json:"day"`
}

type forecastResponse struct {
	Location location `json:"location"`
	Current  current  `json:"current"`
	Forecast struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type cityWeather struct {
	location location
	tempC    float64
	windKph  float64
	text     string
	icon     string
}

var cities = map[string]cityWeather{
	"london": {location{"London", "City of London, Greater London", "United Kingdom", ""}, 15, 13.0, "Partly cloudy", "116"},
	"paris":  {location{"Paris", "Ile-de-France", "France", ""}, 18, 11.2, "Sunny", "113"},
	"berlin": {location{"Berlin", "Berlin", "Germany", ""}, 12, 7.6, "Overcast", "122"},
}

func apiError(c *gin.Context, status, code int, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func iconURL(code string) string {
	return "//cdn.weatherapi.com/weather/64x64/day/" + code + ".png"
}

func buildForecast(w cityWeather, days int, now time.Time) forecastResponse {
	var resp forecastResponse
	resp.Location = w.location
	resp.Location.LocalTime = now.Format("2006-01-02 15:04")
	resp.Current = current{TempC: w.tempC, WindKph: w.windKph, Condition: condition{w.text, iconURL(w.icon)}}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		resp.Forecast.ForecastDay = append(resp.Forecast.ForecastDay, forecastDay{
			Date:      date.Format("2006-01-02"),
			DateEpoch: date.Unix(),
			Day: day{
				MaxTempC:  w.tempC + float64(i%3) + 0.5,
				MinTempC:  w.tempC - 6 + float64(i%2),
				Condition: condition{w.text, iconURL(w.icon)},
			},
		})
	}
	return resp
}

func forecastHandler(c *gin.Context) {
	if c.Query("key") == "" {
		apiError(c, http.StatusUnauthorized, 1002, "API key is invalid or not provided.")
		return
	}

	city := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if city == "" {
		apiError(c, http.StatusBadRequest, 1003, "Parameter q is missing.")
		return
	}

	switch city {
	case "servererror":
		apiError(c, http.StatusBadRequest, 9999, "Internal application error.")
		return
	case "nowhere":
		apiError(c, http.StatusBadRequest, 1006, "No matching location found.")
		return
	}

	weather, ok := cities[city]
	if !ok {
		apiError(c, http.StatusBadRequest, 1006, "No matching location found.")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil || days < 1 {
		days = 1
	}
	if days > 14 {
		days = 14
	}

	c.JSON(http.StatusOK, buildForecast(weather, days, time.Now().UTC()))
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/v1/forecast.json", forecastHandler)
	return r
}

func main() {
	port := flag.Int("port", 8081, "listen port")
	flag.Parse()

	logger.New().SetDefault()
	gin.SetMode(gin.ReleaseMode)

	slog.Info("Mock WeatherAPI server starting", "port", *port)
	if err := newRouter().Run(fmt.Sprintf(":%d", *port)); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
