package main

// @title Stock Ledger Service API
// @version 1.0
// @description Inventory ledger and balance engine with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/stokq/stock-ledger
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/stokq/stock-ledger/blob/main/LICENSE

// @host localhost:8082
// @BasePath /

// @tag.name Items
// @tag.description Item management endpoints

// @tag.name Movements
// @tag.description Append-only stock movement ledger endpoints

// @tag.name Stats
// @tag.description Ledger statistics endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
