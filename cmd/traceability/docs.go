package main

// @title Traceability Service API
// @version 1.0
// @description This is the Traceability Service API with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/openorigin/traceability
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/openorigin/traceability/blob/main/LICENSE

// @host localhost:8084
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Actors
// @tag.description Supply chain actor management endpoints

// @tag.name Items
// @tag.description Item definition endpoints

// @tag.name Locations
// @tag.description Location management endpoints

// @tag.name Processes
// @tag.description Process definition endpoints

// @tag.name Batches
// @tag.description Batch lifecycle endpoints

// @tag.name Events
// @tag.description Event recording endpoints

// @tag.name Operations
// @tag.description Supply chain operation endpoints

// @tag.name Traceability
// @tag.description Trace and lineage query endpoints

// @tag.name Compliance
// @tag.description Recall and compliance reporting endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
