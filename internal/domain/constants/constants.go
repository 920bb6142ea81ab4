// Package constants holds identifiers shared across configuration and wiring.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Document store drivers
const (
	StoreDriverMongo    = "mongo"
	StoreDriverDocstore = "docstore"
)

// Change event broker providers
const (
	BrokerProviderRabbitMQ = "rabbitmq"
	BrokerProviderGoogle   = "google"
	BrokerProviderMem      = "mem"
)

// Component names reported by the health endpoints
const (
	ComponentGateway  = "api_gateway"
	ComponentUserV1   = "user_v1"
	ComponentUserV2   = "user_v2"
	ComponentOrder    = "order_service"
	ComponentConsumer = "event_system"
)
