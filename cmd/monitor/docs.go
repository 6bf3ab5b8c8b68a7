package main

//go:generate swag init -g cmd/monitor/main.go -o docs

// @title           TraderLens Monitor API
// @version         0.1.0
// @description     Position snapshot collection, enriched history, and live portfolio summaries for monitored derivatives traders.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
